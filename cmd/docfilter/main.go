package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// setupLogger configures the default slog logger from the verbosity flags
func setupLogger(cmd *cobra.Command) {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")

	var level slog.Level
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	case quiet:
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// sources returns the positional arguments, or stdin when there are none
func sources(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// runContext returns a context cancelled on interrupt
func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

var rootCmd = &cobra.Command{
	Use:   "docfilter",
	Short: "Filter and prepare sentence-per-line text corpora",
	Long: `Docfilter removes low-quality documents from large text corpora. Input is
sentence-per-line text with blank lines between documents; sources may be
local files (optionally .gz, .zst or .bz2 compressed), URLs, or standard input.

Examples:
  docfilter filter --min-sents 3 --digit-ratio 0.2 corpus.txt > clean.txt
  docfilter filter --language fi --foreign-ratio 0.01 --langdetect fi fi.txt.gz
  docfilter split --document-tags wiki.txt | docfilter stats`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress and warnings")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress information")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	rootCmd.AddCommand(filterCmd, ppfilterCmd, sampleCmd, statsCmd, lettersCmd, splitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
