package parser

import (
	"bufio"
	"io"
	"strings"

	"paperpal/internal/paper"
)

// TextParser handles plain text files. Paragraphs become body-sized spans;
// with no structural signal, the whole document segments into one section.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]paper.TextSpan, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var spans []paper.TextSpan
	var current strings.Builder

	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			spans = append(spans, paper.TextSpan{Text: text, FontSize: SyntheticBodySize})
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return spans, nil
}
