package segment

import (
	"strings"

	"paperpal/internal/paper"
)

// Config controls heading detection.
type Config struct {
	TitleSizeOffset int // A span is a heading candidate when its size exceeds the dominant body size by more than this.
	TitleMaxWords   int // Spans with this many words or more are never headings.
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		TitleSizeOffset: 1,
		TitleMaxWords:   30,
	}
}

// DefaultTitle names the content that precedes the first detected heading.
const DefaultTitle = "Introduction"

// Segment walks spans in document order and splits them into titled
// sections. The dominant font size (by span count) is taken as the body
// text baseline; spans larger than baseline+offset with few enough words
// open a new section. Sections whose accumulated content is blank are
// dropped, so a document where every span looks like a heading can
// legitimately segment to nothing.
func Segment(spans []paper.TextSpan, cfg Config) []paper.Section {
	if len(spans) == 0 {
		return nil
	}
	if cfg.TitleSizeOffset <= 0 {
		cfg.TitleSizeOffset = 1
	}
	if cfg.TitleMaxWords <= 0 {
		cfg.TitleMaxWords = 30
	}

	threshold := bodyTextSize(spans) + cfg.TitleSizeOffset

	var sections []paper.Section
	current := paper.Section{Title: DefaultTitle}
	var content strings.Builder

	flush := func() {
		current.Content = strings.TrimSpace(content.String())
		if current.Content != "" {
			sections = append(sections, current)
		}
		content.Reset()
	}

	for _, span := range spans {
		if span.FontSize > threshold && len(strings.Fields(span.Text)) < cfg.TitleMaxWords {
			flush()
			current = paper.Section{Title: span.Text}
		} else {
			content.WriteString(span.Text)
			content.WriteString(" ")
		}
	}
	flush()

	return sections
}

// bodyTextSize returns the most frequent font size across all spans. Body
// text dominates by span count, so the mode is the baseline. Ties break
// toward the size seen first in document order.
func bodyTextSize(spans []paper.TextSpan) int {
	counts := make(map[int]int, 8)
	order := make([]int, 0, 8)
	for _, span := range spans {
		if counts[span.FontSize] == 0 {
			order = append(order, span.FontSize)
		}
		counts[span.FontSize]++
	}

	best := order[0]
	for _, size := range order[1:] {
		if counts[size] > counts[best] {
			best = size
		}
	}
	return best
}
