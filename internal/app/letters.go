package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/chriscorrea/docfilter/internal/document"
)

// DefaultAlphabetThreshold is the relative frequency a letter must exceed to
// be included in a derived alphabet.
const DefaultAlphabetThreshold = 0.0001

// LettersConfig holds options for letter frequency counting.
type LettersConfig struct {
	Sources   []string
	Lower     bool    // lowercase text before counting
	Ignore    string  // letters excluded from the counts
	Alphabet  bool    // print the letters above Threshold as one string
	Threshold float64 // relative frequency cutoff for Alphabet
	Encoding  string
}

// LetterCount is the number of occurrences of one letter.
type LetterCount struct {
	Letter rune
	Count  int
}

// RunLetters counts letter characters over all sources and writes either a
// frequency table, most frequent first, or in alphabet mode a single line
// usable as a word character set. Alphabet mode always lowercases.
func RunLetters(ctx context.Context, cfg LettersConfig, stdout io.Writer) ([]LetterCount, error) {
	lower := cfg.Lower || cfg.Alphabet
	counts := make(map[rune]int)

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
			for _, line := range doc {
				if lower {
					line = strings.ToLower(line)
				}
				for _, r := range line {
					if unicode.IsLetter(r) && !strings.ContainsRune(cfg.Ignore, r) {
						counts[r]++
					}
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}

	freq := sortCounts(counts)
	total := 0
	for _, lc := range freq {
		total += lc.Count
	}

	if cfg.Alphabet {
		threshold := cfg.Threshold
		if threshold == 0 {
			threshold = DefaultAlphabetThreshold
		}
		var sb strings.Builder
		for _, lc := range freq {
			if float64(lc.Count)/float64(total) > threshold {
				sb.WriteRune(lc.Letter)
			}
		}
		_, err := fmt.Fprintln(stdout, sb.String())
		return freq, err
	}

	for _, lc := range freq {
		pct := 100 * float64(lc.Count) / float64(total)
		if _, err := fmt.Fprintf(stdout, "%d\t%c\t(%.2f%%)\n", lc.Count, lc.Letter, pct); err != nil {
			return freq, err
		}
	}
	return freq, nil
}

// sortCounts orders letters by descending count, then by code point.
func sortCounts(counts map[rune]int) []LetterCount {
	freq := make([]LetterCount, 0, len(counts))
	for r, n := range counts {
		freq = append(freq, LetterCount{Letter: r, Count: n})
	}
	sort.Slice(freq, func(i, j int) bool {
		if freq[i].Count != freq[j].Count {
			return freq[i].Count > freq[j].Count
		}
		return freq[i].Letter < freq[j].Letter
	})
	return freq
}
