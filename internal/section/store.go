// Package section persists segmented paper text as one file per logical
// unit: header metadata, abstract, then each heading-delimited body section
// up to (but excluding) the references.
package section

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"paperpal/internal/paper"
)

// Options controls section file naming.
type Options struct {
	// Dedup appends a numeric suffix when two titles sanitize to the same
	// slug. Off by default: the last section written wins, matching the
	// upstream markdown convention where duplicate headings are rare.
	Dedup bool
}

const (
	headerFile   = "header_info.txt"
	abstractFile = "abstract.txt"
)

// WriteMarkdown renders sections as the intermediate markdown document:
// one "## title" block per section.
func WriteMarkdown(sections []paper.Section, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range sections {
		if _, err := fmt.Fprintf(bw, "## %s\n\n%s\n\n", s.Title, strings.TrimSpace(s.Content)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteMarkdownFile renders sections to path, creating parent directories.
func WriteMarkdownFile(sections []paper.Section, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create markdown dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create markdown file: %w", err)
	}
	if err := WriteMarkdown(sections, f); err != nil {
		f.Close()
		return fmt.Errorf("write markdown: %w", err)
	}
	return f.Close()
}

// Split reads the intermediate markdown at mdPath and writes one file per
// logical unit into outDir, returning the written paths in creation order:
// header (content before the abstract heading, if any), abstract (if
// present), then each "## " body section. The references or bibliography
// section and everything after it are excluded. Any files already in outDir
// are removed first, so re-running is an idempotent replace, never a merge.
func Split(mdPath, outDir string, opts Options) ([]string, error) {
	f, err := os.Open(mdPath)
	if err != nil {
		return nil, fmt.Errorf("open markdown: %w", err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create section dir: %w", err)
	}
	if err := clearDir(outDir); err != nil {
		return nil, fmt.Errorf("clear section dir: %w", err)
	}

	header, abstract, rest := splitAbstract(lines)

	w := &writer{dir: outDir, opts: opts, used: map[string]int{}}
	if len(header) > 0 {
		if err := w.writeNamed(headerFile, header); err != nil {
			return nil, err
		}
	}
	if len(abstract) > 0 {
		if err := w.writeNamed(abstractFile, abstract); err != nil {
			return nil, err
		}
	}

	body := trimReferences(rest)
	if err := writeBodySections(w, body); err != nil {
		return nil, err
	}
	return w.paths, nil
}

// splitAbstract separates lines into header (before "## abstract"), the
// abstract body, and everything from the next heading on. Without an
// abstract heading the whole document is "rest" and neither the header nor
// the abstract file is ever produced.
func splitAbstract(lines []string) (header, abstract, rest []string) {
	start := -1
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), "## abstract") {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, nil, lines
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}
	return lines[:start], lines[start+1 : end], lines[end:]
}

// trimReferences cuts the body at the references or bibliography heading.
func trimReferences(lines []string) []string {
	for i, line := range lines {
		t := strings.ToLower(strings.TrimSpace(line))
		if t == "## references" || t == "## bibliography" {
			return lines[:i]
		}
	}
	return lines
}

func writeBodySections(w *writer, lines []string) error {
	title := "introduction" // content before the first body heading
	var current []string

	flush := func() error {
		if title == "" || len(current) == 0 {
			return nil
		}
		return w.writeSlugged(title, current)
	}

	for _, line := range lines {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "## "); ok {
			if err := flush(); err != nil {
				return err
			}
			title = strings.TrimSpace(rest)
			current = []string{line}
		} else {
			current = append(current, line)
		}
	}
	return flush()
}

type writer struct {
	dir   string
	opts  Options
	used  map[string]int
	paths []string
}

func (w *writer) writeNamed(name string, lines []string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(joinLines(lines)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.paths = append(w.paths, path)
	return nil
}

func (w *writer) writeSlugged(title string, lines []string) error {
	name := Slug(title)
	if w.opts.Dedup {
		w.used[name]++
		if n := w.used[name]; n > 1 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
		}
	}
	return w.writeNamed(name, lines)
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
