package app

import (
	"bytes"
	"context"
	"testing"
)

func TestRunLetters(t *testing.T) {
	source := writeSource(t, "l.txt", "Aab 123\n\nba ä!\n")

	tests := []struct {
		name     string
		cfg      LettersConfig
		expected string
	}{
		{
			name: "case sensitive",
			expected: "2\ta\t(33.33%)\n" +
				"2\tb\t(33.33%)\n" +
				"1\tA\t(16.67%)\n" +
				"1\tä\t(16.67%)\n",
		},
		{
			name: "lowercased",
			cfg:  LettersConfig{Lower: true},
			expected: "3\ta\t(50.00%)\n" +
				"2\tb\t(33.33%)\n" +
				"1\tä\t(16.67%)\n",
		},
		{
			name: "ignored letters",
			cfg:  LettersConfig{Lower: true, Ignore: "b"},
			expected: "3\ta\t(75.00%)\n" +
				"1\tä\t(25.00%)\n",
		},
		{
			name:     "alphabet above threshold",
			cfg:      LettersConfig{Alphabet: true, Threshold: 0.2},
			expected: "ab\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			cfg := tt.cfg
			cfg.Sources = []string{source}

			if _, err := RunLetters(context.Background(), cfg, &stdout); err != nil {
				t.Fatalf("RunLetters() unexpected error: %v", err)
			}
			if stdout.String() != tt.expected {
				t.Errorf("output = %q, want %q", stdout.String(), tt.expected)
			}
		})
	}
}
