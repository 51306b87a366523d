// Package app contains the run drivers behind the docfilter commands. Each
// driver streams its sources one document at a time, strictly in order, and
// keeps diagnostics (reports, progress, logs) off the document output.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/chriscorrea/docfilter/internal/alphabet"
	"github.com/chriscorrea/docfilter/internal/document"
	"github.com/chriscorrea/docfilter/internal/fetch"
	"github.com/chriscorrea/docfilter/internal/filter"
	"github.com/chriscorrea/docfilter/internal/langdetect"
	"github.com/chriscorrea/docfilter/internal/spinner"
)

// ErrNoSources is returned when a run is started without inputs.
var ErrNoSources = errors.New("no sources provided")

// FilterConfig holds all configuration options for a filter run.
type FilterConfig struct {
	Sources  []string      // file paths, URLs, or "-" for stdin
	Filter   filter.Config // thresholds, invert, limit and alphabet selection
	Encoding string        // input encoding label, empty for UTF-8
	Quiet    bool          // suppress progress display
}

// RunFilter filters every source in order, writing surviving documents to
// stdout and a statistics report per source to stderr, followed by a TOTAL
// report when there is more than one source. The returned stats are the run
// totals.
func RunFilter(ctx context.Context, cfg FilterConfig, stdout, stderr io.Writer) (*filter.Stats, error) {
	if len(cfg.Sources) == 0 {
		return nil, ErrNoSources
	}

	alpha, err := alphabet.Compile(alphabet.Options{
		Language:  cfg.Filter.Language,
		WordChars: cfg.Filter.WordChars,
	})
	if err != nil {
		return nil, err
	}

	var detector langdetect.Detector
	if cfg.Filter.LangDetect != "" {
		detector, err = langdetect.New(cfg.Filter.LangDetect)
		if err != nil {
			slog.Warn("Language detection disabled", "target", cfg.Filter.LangDetect, "error", err)
		}
	}

	eval := filter.NewEvaluator(cfg.Filter, alpha, detector)
	criteria := eval.Config().Criteria()
	slog.Debug("Filter configured", "criteria", criteria, "invert", cfg.Filter.Invert)

	out := document.NewWriter(stdout)
	totals := filter.NewStats(criteria)

	for _, source := range cfg.Sources {
		stats, err := filterSource(ctx, source, eval, out, cfg, stderr)
		if stats != nil {
			totals.Merge(stats)
		}
		if err != nil {
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

// filterSource runs the evaluator over one source and reports its stats.
func filterSource(ctx context.Context, source string, eval *filter.Evaluator, out *document.Writer, cfg FilterConfig, stderr io.Writer) (*filter.Stats, error) {
	name := fetch.Name(source)
	slog.Info("Processing source", "source", name)

	rc, err := fetch.Open(ctx, source, fetch.Options{Encoding: cfg.Encoding})
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	stats, err := filterStream(ctx, name, rc, eval, out, cfg, stderr)
	if err != nil {
		return stats, err
	}
	if err := stats.Report(stderr, name); err != nil {
		return stats, err
	}
	slog.Info("Completed source", "source", name, "documents", stats.Total)
	return stats, nil
}

// filterStream evaluates the documents of one opened source. Every emitted
// document is flushed before the next one is read.
func filterStream(ctx context.Context, name string, r io.Reader, eval *filter.Evaluator, out *document.Writer, cfg FilterConfig, stderr io.Writer) (*filter.Stats, error) {
	progress := spinner.NewProgress(ctx, stderr, name, cfg.Quiet)
	defer progress.Done()

	stats := filter.NewStats(eval.Config().Criteria())
	limit := cfg.Filter.Limit
	reader := document.NewReader(r, name)

	for limit == nil || stats.Total < *limit {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		doc, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read %s: %w", name, err)
		}

		failed, fails := eval.Evaluate(doc)
		emit := filter.Decide(fails, cfg.Filter.Invert)
		stats.Record(failed, fails, emit)

		if emit {
			if err := out.Write(doc); err != nil {
				return stats, fmt.Errorf("failed to write output: %w", err)
			}
			if err := out.Flush(); err != nil {
				return stats, fmt.Errorf("failed to write output: %w", err)
			}
		}
		progress.Lines(reader.Line())
	}

	progress.Done()
	return stats, nil
}

// eachSource opens every source in order and hands it to fn.
func eachSource(ctx context.Context, sources []string, encoding string, fn func(name string, r io.Reader) error) error {
	if len(sources) == 0 {
		return ErrNoSources
	}
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		rc, err := fetch.Open(ctx, source, fetch.Options{Encoding: encoding})
		if err != nil {
			return err
		}
		err = fn(fetch.Name(source), rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
