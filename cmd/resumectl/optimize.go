package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-optimizer/internal/extract"
	"resume-optimizer/pkg/ai"
)

type aiFlags struct {
	resumePath string
	jobPath    string
	language   string
}

func (f *aiFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.resumePath, "resume", "r", "", "resume file (txt, pdf or docx)")
	cmd.Flags().StringVarP(&f.jobPath, "job", "j", "", "job description text file")
	cmd.Flags().StringVar(&f.language, "lang", "", "prompt language (zh or en), defaults to AI_LANGUAGE")
	cmd.MarkFlagRequired("resume")
	cmd.MarkFlagRequired("job")
}

func (f *aiFlags) load(cmd *cobra.Command) (*ai.Client, string, string, error) {
	resume, err := readResume(f.resumePath)
	if err != nil {
		return nil, "", "", err
	}
	job, err := os.ReadFile(f.jobPath)
	if err != nil {
		return nil, "", "", fmt.Errorf("read job description: %w", err)
	}
	lang := f.language
	if lang == "" {
		lang = cfg.AILanguage
	}
	gen, err := ai.NewGeminiGenerator(cmd.Context(), cfg.GoogleAPIKey, cfg.AIModel)
	if err != nil {
		return nil, "", "", err
	}
	return ai.NewClient(gen, lang), resume, strings.TrimSpace(string(job)), nil
}

func readResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	return extract.Text(extract.DetectType("", path), data)
}

func newOptimizeCmd() *cobra.Command {
	var (
		flags   aiFlags
		outPath string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Rewrite a resume for a job description",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, resume, job, err := flags.load(cmd)
			if err != nil {
				return err
			}
			res, err := client.OptimizeResume(cmd.Context(), resume, job)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(res.OptimizedResume), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "Match score: %d\n\n", res.MatchScore)
			if outPath == "" {
				fmt.Fprintln(out, res.OptimizedResume)
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "Suggestions:")
			for _, s := range res.Suggestions {
				fmt.Fprintf(out, "  - %s\n", s)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the optimized resume to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var flags aiFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print how well a resume matches a job description (0-100)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, resume, job, err := flags.load(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.CalculateMatchScore(cmd.Context(), resume, job))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
