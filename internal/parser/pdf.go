package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"paperpal/internal/paper"
)

// PDFParser extracts text spans with their rendered font sizes.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]paper.TextSpan, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "paperpal-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	return extractPDFSpans(tmpPath)
}

// extractPDFSpans walks pages in order, grouping row text into runs of one
// rounded font size. Malformed pages are skipped rather than failing the
// whole document.
func extractPDFSpans(path string) ([]paper.TextSpan, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var spans []paper.TextSpan
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			spans = append(spans, rowSpans(row.Content)...)
		}
	}
	return spans, nil
}

// rowSpans splits one text row into spans of uniform font size. The
// library reports text in small fragments, so consecutive fragments of the
// same rounded size merge into one span.
func rowSpans(texts []pdflib.Text) []paper.TextSpan {
	var spans []paper.TextSpan
	var sb strings.Builder
	size := 0

	flush := func() {
		text := strings.TrimSpace(sb.String())
		if text != "" {
			spans = append(spans, paper.TextSpan{Text: text, FontSize: size})
		}
		sb.Reset()
	}

	for _, t := range texts {
		s := int(math.Round(t.FontSize))
		if sb.Len() > 0 && s != size {
			flush()
		}
		size = s
		sb.WriteString(t.S)
	}
	flush()
	return spans
}
