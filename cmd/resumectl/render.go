package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-optimizer/internal/layout"
	infra "resume-optimizer/pkg/infrastructure"
)

func newRenderCmd() *cobra.Command {
	var (
		inPath   string
		outPath  string
		htmlOnly bool
		title    string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render resume text or HTML to an A4 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			html, err := layout.Document(string(content), layout.Options{Title: title})
			if err != nil {
				return err
			}
			if outPath == "" {
				ext := ".pdf"
				if htmlOnly {
					ext = ".html"
				}
				outPath = strings.TrimSuffix(inPath, ".txt") + ext
			}
			if htmlOnly {
				return os.WriteFile(outPath, []byte(html), 0o644)
			}

			renderer := infra.NewChromedpRenderer(infra.RendererConfig{
				ChromePath:  cfg.ChromePath,
				Concurrency: 1,
				Timeout:     cfg.RenderTimeout,
			})
			defer renderer.Close()
			pdf, err := renderer.RenderHTMLToPDF(cmd.Context(), html)
			if err != nil {
				return err
			}
			if !bytes.HasPrefix(pdf, []byte("%PDF")) {
				return fmt.Errorf("renderer returned invalid PDF output (len=%d)", len(pdf))
			}
			if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "resume text or HTML file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: input name with .pdf)")
	cmd.Flags().BoolVar(&htmlOnly, "html", false, "write the laid out HTML instead of a PDF")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	cmd.MarkFlagRequired("in")
	return cmd
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the plain text of a txt, pdf or docx resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readResume(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
