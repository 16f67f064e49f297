package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-optimizer/internal/config"
	"resume-optimizer/pkg/logger"
)

var (
	cfg      config.Config
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Optimize, score and render resumes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}
			logger.Setup(logLevel, cfg.LogFormat)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newOptimizeCmd(), newScoreCmd(), newRenderCmd(), newExtractCmd())
	return root
}
