package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chriscorrea/docfilter/internal/counter"
	"github.com/chriscorrea/docfilter/internal/document"
)

// StatsConfig holds options for corpus size statistics.
type StatsConfig struct {
	Sources  []string
	Method   counter.CountingMethod
	Encoding string
}

// CorpusStats holds the size counts of one source or of a whole run.
type CorpusStats struct {
	Documents int
	Sentences int
	Units     int // words, tokens or characters, per the counting method
}

func (s *CorpusStats) add(other CorpusStats) {
	s.Documents += other.Documents
	s.Sentences += other.Sentences
	s.Units += other.Units
}

// RunStats counts documents, sentences and units per source and writes one
// tab-separated line per source followed by a TOTAL line.
func RunStats(ctx context.Context, cfg StatsConfig, stdout io.Writer) (CorpusStats, error) {
	var totals CorpusStats

	c, err := counter.NewCounter(cfg.Method)
	if err != nil {
		return totals, err
	}
	unit := cfg.Method.String()

	err = eachSource(ctx, cfg.Sources, cfg.Encoding, func(name string, r io.Reader) error {
		var stats CorpusStats
		reader := document.NewReader(r, name)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			stats.Documents++
			stats.Sentences += len(doc)
			stats.Units += counter.Sum(c, doc)
		}
		totals.add(stats)
		return writeCorpusStats(stdout, name, unit, stats)
	})
	if err != nil {
		return totals, err
	}
	return totals, writeCorpusStats(stdout, "TOTAL", unit, totals)
}

func writeCorpusStats(w io.Writer, name, unit string, s CorpusStats) error {
	fields := map[string]int{
		"documents": s.Documents,
		"sentences": s.Sentences,
		unit:        s.Units,
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{name}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, fields[k]))
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, "\t"))
	return err
}
