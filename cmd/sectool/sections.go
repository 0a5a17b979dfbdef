package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"paperpal/internal/parser"
	"paperpal/internal/section"
	"paperpal/internal/segment"
)

func sectionsCmd() *cobra.Command {
	var out string
	var dedup bool
	var sizeOffset int
	var maxWords int

	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "Split a paper (pdf, docx, md, html, txt) into section files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			filename := filepath.Base(path)

			p, err := parser.ForFile(filename)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			spans, err := p.Parse(f, filename)
			if err != nil {
				return err
			}
			if len(spans) == 0 {
				return fmt.Errorf("no text could be extracted from %s", path)
			}

			sections := segment.Segment(spans, segment.Config{
				TitleSizeOffset: sizeOffset,
				TitleMaxWords:   maxWords,
			})
			if len(sections) == 0 {
				return fmt.Errorf("no sections could be segmented from %s", path)
			}

			// Intermediate markdown lives only for the duration of the run.
			tmpDir, err := os.MkdirTemp("", "sectool-*")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmpDir)

			mdPath := filepath.Join(tmpDir, "paper.md")
			if err := section.WriteMarkdownFile(sections, mdPath); err != nil {
				return err
			}

			paths, err := section.Split(mdPath, out, section.Options{Dedup: dedup})
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "sections", "output directory for section files")
	cmd.Flags().BoolVar(&dedup, "dedup", false, "disambiguate colliding section file names with a numeric suffix")
	cmd.Flags().IntVar(&sizeOffset, "title-size-offset", 1, "font size points above body text that mark a heading")
	cmd.Flags().IntVar(&maxWords, "title-max-words", 30, "spans with this many words or more are never headings")
	return cmd
}
