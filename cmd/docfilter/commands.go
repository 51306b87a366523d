package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chriscorrea/docfilter/internal/app"
	"github.com/chriscorrea/docfilter/internal/counter"
)

var ppfilterCmd = &cobra.Command{
	Use:   "ppfilter [sources...]",
	Short: "Drop documents with a high average sentence score",
	Long: `Ppfilter reads documents whose lines have the form "score<TAB>sentence",
typically language model perplexities, optionally trims low-quality sentences
from the start and end of each document, and writes the remaining sentences of
documents whose average score is at most the threshold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		minTokens, _ := cmd.Flags().GetInt("min-tokens")
		encoding, _ := cmd.Flags().GetString("encoding")

		config := app.PerplexityConfig{
			Sources:   sources(args),
			Threshold: threshold,
			MinTokens: minTokens,
			Encoding:  encoding,
		}
		if cmd.Flags().Changed("trim-threshold") {
			trim, _ := cmd.Flags().GetFloat64("trim-threshold")
			config.TrimThreshold = &trim
		}

		ctx, stop := runContext()
		defer stop()

		if _, err := app.RunPerplexity(ctx, config, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("ppfilter failed: %w", err)
		}
		return nil
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample ratio sources...",
	Short: "Randomly sample documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ratio, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid ratio %q: %w", args[0], err)
		}
		encoding, _ := cmd.Flags().GetString("encoding")

		config := app.SampleConfig{
			Sources:  sources(args[1:]),
			Ratio:    ratio,
			Encoding: encoding,
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			config.Seed = &seed
		}

		sampled, closeSampled, err := createOutput(cmd, "sampled")
		if err != nil {
			return err
		}
		defer closeSampled()
		rest, closeRest, err := createOutput(cmd, "rest")
		if err != nil {
			return err
		}
		defer closeRest()

		ctx, stop := runContext()
		defer stop()

		res, err := app.RunSample(ctx, config, sampled, rest)
		if err != nil {
			return fmt.Errorf("sample failed: %w", err)
		}
		slog.Debug("Sample complete", "sampled", res.Sampled, "total", res.Total)
		return nil
	},
}

// createOutput opens the file named by flag, or returns stdout for the
// sampled output and nil for the rest when the flag is unset.
func createOutput(cmd *cobra.Command, flag string) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		if flag == "sampled" {
			return cmd.OutOrStdout(), func() {}, nil
		}
		return nil, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s output: %w", flag, err)
	}
	return f, func() { f.Close() }, nil
}

var statsCmd = &cobra.Command{
	Use:   "stats [sources...]",
	Short: "Count documents, sentences and words",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, _ := cmd.Flags().GetString("unit")
		encoding, _ := cmd.Flags().GetString("encoding")

		method, err := counter.ParseCountingMethod(unit)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		ctx, stop := runContext()
		defer stop()

		config := app.StatsConfig{Sources: sources(args), Method: method, Encoding: encoding}
		if _, err := app.RunStats(ctx, config, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("stats failed: %w", err)
		}
		return nil
	},
}

var lettersCmd = &cobra.Command{
	Use:   "letters [sources...]",
	Short: "Count letter frequencies or derive an alphabet",
	Long: `Letters counts letter characters and prints them by descending frequency.
With --alphabet it prints the lowercase letters whose relative frequency
exceeds the threshold as a single string suitable for filter --word-chars.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lower, _ := cmd.Flags().GetBool("lower")
		ignore, _ := cmd.Flags().GetString("ignore")
		alphabet, _ := cmd.Flags().GetBool("alphabet")
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		encoding, _ := cmd.Flags().GetString("encoding")

		ctx, stop := runContext()
		defer stop()

		config := app.LettersConfig{
			Sources:   sources(args),
			Lower:     lower,
			Ignore:    ignore,
			Alphabet:  alphabet,
			Threshold: threshold,
			Encoding:  encoding,
		}
		if _, err := app.RunLetters(ctx, config, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("letters failed: %w", err)
		}
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split [sources...]",
	Short: "Split paragraph-per-line text into sentence-per-line documents",
	Long: `Split segments each input line into sentences, one per output line.
WikiExtractor <doc> tags delimit documents and the closing tag becomes the
blank line between documents. With --html every source is read as an HTML page
whose main content becomes one document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keepBlank, _ := cmd.Flags().GetBool("keep-blank")
		documentTags, _ := cmd.Flags().GetBool("document-tags")
		noSplit, _ := cmd.Flags().GetBool("no-split")
		html, _ := cmd.Flags().GetBool("html")
		selector, _ := cmd.Flags().GetString("selector")
		saveStats, _ := cmd.Flags().GetString("save-stats")
		encoding, _ := cmd.Flags().GetString("encoding")

		ctx, stop := runContext()
		defer stop()

		config := app.SplitConfig{
			Sources:      sources(args),
			KeepBlank:    keepBlank,
			DocumentTags: documentTags,
			NoSplit:      noSplit,
			HTML:         html,
			Selector:     selector,
			SaveStats:    saveStats,
			Encoding:     encoding,
		}
		stats, err := app.RunSplit(ctx, config, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("split failed: %w", err)
		}
		slog.Info("Split complete", "sentences", stats.Sentences, "tokens", stats.Tokens)
		return nil
	},
}

func init() {
	ppfilterCmd.Flags().Float64("threshold", app.DefaultPerplexityThreshold, "Maximum average score of an output document")
	ppfilterCmd.Flags().Float64("trim-threshold", 0, "Trim leading and trailing sentences scoring above this")
	ppfilterCmd.Flags().Int("min-tokens", 0, "Trim edge sentences shorter than this and exclude them from the average")

	sampleCmd.Flags().String("sampled", "", "Write sampled documents to file (default stdout)")
	sampleCmd.Flags().String("rest", "", "Write documents not sampled to file (default discard)")
	sampleCmd.Flags().Uint64("seed", 0, "Random seed")

	statsCmd.Flags().StringP("unit", "u", "words", "Counting unit: words, tokens or characters")

	lettersCmd.Flags().Bool("lower", false, "Lowercase input")
	lettersCmd.Flags().String("ignore", "", "Letters to leave out of the counts")
	lettersCmd.Flags().Bool("alphabet", false, "Print letters above the threshold as one string")
	lettersCmd.Flags().Float64P("threshold", "t", app.DefaultAlphabetThreshold, "Relative frequency cutoff for --alphabet")

	splitCmd.Flags().BoolP("keep-blank", "b", false, "Include blank lines in output")
	splitCmd.Flags().BoolP("document-tags", "d", false, "Include document start/end tags in output")
	splitCmd.Flags().BoolP("no-split", "n", false, "Do not split sentences on separate lines")
	splitCmd.Flags().Bool("html", false, "Read sources as HTML pages")
	splitCmd.Flags().String("selector", "", "CSS selector for --html extraction")
	splitCmd.Flags().StringP("save-stats", "s", "", "Write character, token and sentence counts as JSON to file")

	for _, cmd := range []*cobra.Command{ppfilterCmd, sampleCmd, statsCmd, lettersCmd, splitCmd} {
		cmd.Flags().StringP("encoding", "e", "", "Input encoding (default UTF-8)")
	}
}
