package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chriscorrea/docfilter/internal/app"
	"github.com/chriscorrea/docfilter/internal/filter"
)

// buildFilterConfig constructs an app.FilterConfig from the optional preset
// file and the command flags; flags given explicitly win over the preset.
func buildFilterConfig(cmd *cobra.Command, args []string) (app.FilterConfig, error) {
	flags := cmd.Flags()

	var cfg filter.Config
	if path, _ := flags.GetString("config"); path != "" {
		preset, err := filter.LoadConfig(path)
		if err != nil {
			return app.FilterConfig{}, err
		}
		cfg = preset
	}

	intFlag(flags, "avg-len", &cfg.AvgLen)
	intFlag(flags, "min-sents", &cfg.MinSents)
	intFlag(flags, "max-sents", &cfg.MaxSents)
	intFlag(flags, "min-toks", &cfg.MinToks)
	intFlag(flags, "max-toks", &cfg.MaxToks)
	intFlag(flags, "min-words", &cfg.MinWords)
	intFlag(flags, "limit", &cfg.Limit)
	floatFlag(flags, "no-word-ratio", &cfg.NoWordRatio)
	floatFlag(flags, "punct-ratio", &cfg.PunctRatio)
	floatFlag(flags, "upper-ratio", &cfg.UpperRatio)
	floatFlag(flags, "digit-ratio", &cfg.DigitRatio)
	floatFlag(flags, "foreign-ratio", &cfg.ForeignRatio)
	floatFlag(flags, "boilerplate-ratio", &cfg.BoilerplateRatio)

	if flags.Changed("langdetect") {
		cfg.LangDetect, _ = flags.GetString("langdetect")
	}
	if flags.Changed("language") {
		cfg.Language, _ = flags.GetString("language")
	}
	if flags.Changed("word-chars") {
		cfg.WordChars, _ = flags.GetString("word-chars")
	}
	if flags.Changed("invert") {
		cfg.Invert, _ = flags.GetBool("invert")
	}

	if cfg.Limit != nil && *cfg.Limit < 0 {
		return app.FilterConfig{}, fmt.Errorf("limit must not be negative, got %d", *cfg.Limit)
	}

	encoding, _ := flags.GetString("encoding")
	quiet, _ := flags.GetBool("quiet")

	return app.FilterConfig{
		Sources:  sources(args),
		Filter:   cfg,
		Encoding: encoding,
		Quiet:    quiet,
	}, nil
}

// intFlag stores the value of an explicitly set int flag in dst
func intFlag(flags *pflag.FlagSet, name string, dst **int) {
	if !flags.Changed(name) {
		return
	}
	v, _ := flags.GetInt(name)
	*dst = &v
}

// floatFlag stores the value of an explicitly set float flag in dst
func floatFlag(flags *pflag.FlagSet, name string, dst **float64) {
	if !flags.Changed(name) {
		return
	}
	v, _ := flags.GetFloat64(name)
	*dst = &v
}

var filterCmd = &cobra.Command{
	Use:   "filter [sources...]",
	Short: "Drop documents that fail quality criteria",
	Long: `Filter reads documents (sentences on consecutive lines, blank lines between
documents) and writes those that pass every configured criterion. Criteria are
checked in a fixed order and the first failure decides; per-criterion counts are
reported on standard error for each source.

Examples:
  docfilter filter -s 3 -d 0.2 -u 0.3 corpus.txt > clean.txt
  docfilter filter --language fi -F 0.01 -l fi fi.txt.gz
  docfilter filter -c preset.yaml --invert corpus.txt > rejected.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildFilterConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		ctx, stop := runContext()
		defer stop()

		if _, err := app.RunFilter(ctx, config, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("filter failed: %w", err)
		}
		return nil
	},
}

func init() {
	addFilterFlags(filterCmd.Flags())
}

// addFilterFlags registers the criterion and run control flags on f
func addFilterFlags(f *pflag.FlagSet) {
	// length criteria
	f.IntP("avg-len", "a", 0, "Minimum average number of words per sentence")
	f.IntP("min-sents", "s", 0, "Minimum number of sentences")
	f.IntP("max-sents", "S", 0, "Maximum number of sentences")
	f.IntP("min-toks", "t", 0, "Minimum number of whitespace-separated tokens")
	f.IntP("max-toks", "T", 0, "Maximum number of whitespace-separated tokens")
	f.IntP("min-words", "w", 0, "Minimum number of words")

	// character ratio criteria
	f.Float64P("no-word-ratio", "n", 0, "Maximum ratio of sentences without a word")
	f.Float64P("punct-ratio", "p", 0, "Maximum ratio of punctuation characters")
	f.Float64P("upper-ratio", "u", 0, "Maximum ratio of uppercase characters")
	f.Float64P("digit-ratio", "d", 0, "Maximum ratio of digit characters")
	f.Float64P("foreign-ratio", "F", 0, "Maximum ratio of letters outside the alphabet")
	f.Float64P("boilerplate-ratio", "b", 0, "Maximum ratio of boilerplate sentences")

	// language
	f.StringP("langdetect", "l", "", "Required detected language (ISO 639-1 code)")
	f.String("language", "", "Language whose alphabet defines words (ISO 639-1 code)")
	f.StringP("word-chars", "W", "", "Characters that form words, overriding --language")

	// run control
	f.BoolP("invert", "i", false, "Output rejected documents instead of accepted ones")
	f.IntP("limit", "L", 0, "Stop each source after this many documents")
	f.StringP("config", "c", "", "YAML file with preset criteria")
	f.StringP("encoding", "e", "", "Input encoding (default UTF-8)")
}
