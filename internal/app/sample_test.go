package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunSample(t *testing.T) {
	input := strings.Repeat("first sentence\nsecond sentence\n\n", 50)

	tests := []struct {
		name            string
		ratio           float64
		expectedSampled int
	}{
		{"keep all", 1, 50},
		{"keep none", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sampled, rest bytes.Buffer
			cfg := SampleConfig{Sources: []string{writeSource(t, "c.txt", input)}, Ratio: tt.ratio}

			res, err := RunSample(context.Background(), cfg, &sampled, &rest)
			if err != nil {
				t.Fatalf("RunSample() unexpected error: %v", err)
			}
			if res.Total != 50 || res.Sampled != tt.expectedSampled {
				t.Errorf("RunSample() = %+v, want %d/50", res, tt.expectedSampled)
			}
			if got := sampled.Len() + rest.Len(); got != len(input) {
				t.Errorf("sampled+rest = %d bytes, want %d", got, len(input))
			}
		})
	}
}

func TestRunSampleSeed(t *testing.T) {
	input := strings.Repeat("a\n\nb\n\nc\n\nd\n\n", 25)
	source := writeSource(t, "c.txt", input)
	seed := uint64(42)

	run := func() string {
		var sampled bytes.Buffer
		cfg := SampleConfig{Sources: []string{source}, Ratio: 0.5, Seed: &seed}
		if _, err := RunSample(context.Background(), cfg, &sampled, nil); err != nil {
			t.Fatalf("RunSample() unexpected error: %v", err)
		}
		return sampled.String()
	}

	if first, second := run(), run(); first != second {
		t.Errorf("same seed produced different samples:\n%q\n%q", first, second)
	}
}

func TestRunSampleInvalidRatio(t *testing.T) {
	cfg := SampleConfig{Sources: []string{"unused"}, Ratio: 1.5}
	if _, err := RunSample(context.Background(), cfg, &bytes.Buffer{}, nil); err == nil {
		t.Error("RunSample() expected error for ratio > 1")
	}
}
