// Package parser turns uploaded documents into the ordered span stream the
// segmenter consumes. PDF spans carry their real rendered font sizes;
// structured formats map heading levels onto synthetic sizes so every
// format goes through the same font-size segmentation.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"paperpal/internal/paper"
)

// Parser converts raw document bytes into ordered text spans.
type Parser interface {
	Parse(r io.Reader, filename string) ([]paper.TextSpan, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".txt":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
