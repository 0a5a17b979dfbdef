package parser

// SyntheticBodySize is the font size assigned to body text from formats
// that have no rendered sizes. Heading levels map onto larger sizes so the
// segmenter's dominant-size heuristic sees the same shape as a PDF.
const SyntheticBodySize = 10

func headingFontSize(level int) int {
	switch level {
	case 1:
		return 20
	case 2:
		return 18
	case 3:
		return 16
	case 4:
		return 14
	case 5:
		return 13
	case 6:
		return 12
	}
	return SyntheticBodySize
}
