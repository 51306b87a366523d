package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/chriscorrea/docfilter/internal/document"
)

// SampleConfig holds options for random document sampling.
type SampleConfig struct {
	Sources  []string
	Ratio    float64 // probability of keeping a document, in [0, 1]
	Seed     *uint64 // fixed seed for reproducible samples
	Encoding string
}

// SampleResult counts the documents seen and sampled.
type SampleResult struct {
	Sampled int
	Total   int
}

// RunSample writes each document to sampled with probability cfg.Ratio and
// to rest otherwise. rest may be nil to discard unsampled documents.
func RunSample(ctx context.Context, cfg SampleConfig, sampled, rest io.Writer) (SampleResult, error) {
	var res SampleResult
	if cfg.Ratio < 0 || cfg.Ratio > 1 {
		return res, fmt.Errorf("sample ratio %g out of range [0, 1]", cfg.Ratio)
	}
	if rest == nil {
		rest = io.Discard
	}

	var rng *rand.Rand
	if cfg.Seed != nil {
		rng = rand.New(rand.NewPCG(*cfg.Seed, *cfg.Seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	keep, drop := document.NewWriter(sampled), document.NewWriter(rest)
	err := eachSource(ctx, cfg.Sources, cfg.Encoding, func(name string, r io.Reader) error {
		reader := document.NewReader(r, name)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := reader.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}

			res.Total++
			w := drop
			if rng.Float64() < cfg.Ratio {
				res.Sampled++
				w = keep
			}
			if err := w.Write(doc); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	})
	if err != nil {
		return res, err
	}

	if err := keep.Flush(); err != nil {
		return res, fmt.Errorf("failed to write output: %w", err)
	}
	if err := drop.Flush(); err != nil {
		return res, fmt.Errorf("failed to write output: %w", err)
	}
	slog.Info("Sampled documents", "sampled", res.Sampled, "total", res.Total)
	return res, nil
}
