package paper

// TextSpan is one observed run of text with its rendered font size.
// PDF extraction reports real sizes; structured formats (markdown, docx,
// html) report synthetic sizes derived from heading levels so all formats
// feed the same segmenter.
type TextSpan struct {
	Text     string
	FontSize int
}

// Section is a titled, contiguous region of paper text between two
// detected headings (or start/end of document).
type Section struct {
	Title   string
	Content string
}
