package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chriscorrea/docfilter/internal/document"
	"github.com/chriscorrea/docfilter/internal/fetch"
	"github.com/chriscorrea/docfilter/internal/filter"
)

// DefaultPerplexityThreshold is the threshold callers use when none is
// given; a zero Threshold is honoured as is.
const DefaultPerplexityThreshold = 10000.0

const (
	failEmptyAfterTrim filter.Criterion = "empty-after-trim"
	failPerplexity     filter.Criterion = "perplexity"
)

// PerplexityConfig holds options for filtering score-prefixed documents.
type PerplexityConfig struct {
	Sources       []string
	Threshold     float64  // maximum average score of a kept document
	TrimThreshold *float64 // trim edge sentences scoring above this
	MinTokens     int      // sentences shorter than this are trimmed and not averaged
	Encoding      string
}

// RunPerplexity filters documents whose lines carry a per-sentence score
// (typically language model perplexity). Edge sentences may be trimmed, and
// the remaining sentences of a document are written without their scores
// when the document's average score is at most the threshold.
func RunPerplexity(ctx context.Context, cfg PerplexityConfig, stdout, stderr io.Writer) (*filter.Stats, error) {
	if len(cfg.Sources) == 0 {
		return nil, ErrNoSources
	}

	out := document.NewWriter(stdout)
	criteria := []filter.Criterion{failEmptyAfterTrim, failPerplexity}
	totals := filter.NewStats(criteria)

	for _, source := range cfg.Sources {
		name := fetch.Name(source)
		rc, err := fetch.Open(ctx, source, fetch.Options{Encoding: cfg.Encoding})
		if err != nil {
			return totals, err
		}

		stats := filter.NewStats(criteria)
		err = perplexitySource(ctx, document.NewScoredReader(rc, name), cfg, out, stats)
		rc.Close()
		totals.Merge(stats)
		if err != nil {
			return totals, err
		}

		if err := out.Flush(); err != nil {
			return totals, fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprintf(stderr, "%s: output %d/%d documents (%s)\n",
			name, stats.Output, stats.Total, filter.Percent(stats.Output, stats.Total)); err != nil {
			return totals, err
		}
	}

	if len(cfg.Sources) > 1 {
		if err := totals.Report(stderr, "TOTAL"); err != nil {
			return totals, err
		}
	}
	return totals, nil
}

func perplexitySource(ctx context.Context, reader *document.ScoredReader, cfg PerplexityConfig, out *document.Writer, stats *filter.Stats) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		kept := trimScored(doc, cfg.TrimThreshold, cfg.MinTokens)
		if len(kept.Sentences) == 0 {
			stats.Record(failEmptyAfterTrim, true, false)
			continue
		}

		avg, ok := averageScore(kept, cfg.MinTokens)
		if !ok || avg > cfg.Threshold {
			slog.Debug("Dropping document", "average", avg, "sentences", len(kept.Sentences))
			stats.Record(failPerplexity, true, false)
			continue
		}

		stats.Record("", false, true)
		if err := out.Write(kept.Sentences); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
}

// trimScored drops leading and trailing sentences that score above trim
// (when set) or have fewer than minTokens tokens.
func trimScored(doc document.ScoredDocument, trim *float64, minTokens int) document.ScoredDocument {
	drop := func(i int) bool {
		if trim != nil && doc.Scores[i] > *trim {
			return true
		}
		return len(strings.Fields(doc.Sentences[i])) < minTokens
	}

	start, end := 0, len(doc.Sentences)
	for start < end && drop(start) {
		start++
	}
	for end > start && drop(end-1) {
		end--
	}
	return document.ScoredDocument{
		Scores:    doc.Scores[start:end],
		Sentences: doc.Sentences[start:end],
	}
}

// averageScore averages the scores of sentences with at least minTokens
// tokens. It reports false when no sentence qualifies.
func averageScore(doc document.ScoredDocument, minTokens int) (float64, bool) {
	var sum float64
	n := 0
	for i, s := range doc.Sentences {
		if len(strings.Fields(s)) < minTokens {
			continue
		}
		sum += doc.Scores[i]
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
