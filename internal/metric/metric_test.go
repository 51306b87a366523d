package metric

import (
	"errors"
	"math"
	"testing"

	"github.com/chriscorrea/docfilter/internal/alphabet"
	"github.com/chriscorrea/docfilter/internal/classify"
	"github.com/chriscorrea/docfilter/internal/document"
)

func mustAlphabet(t *testing.T, opts alphabet.Options) *alphabet.Alphabet {
	t.Helper()
	alpha, err := alphabet.Compile(opts)
	if err != nil {
		t.Fatalf("Compile() unexpected error: %v", err)
	}
	return alpha
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCounts(t *testing.T) {
	alpha := mustAlphabet(t, alphabet.Options{WordChars: alphabet.ASCII})
	doc := document.Document{"Hello world today.", "This is fine."}

	if got := CharCount(doc); got != 31 {
		t.Errorf("CharCount() = %d, want 31", got)
	}
	if got := NumToks(doc); got != 6 {
		t.Errorf("NumToks() = %d, want 6", got)
	}
	if got := NumWords(doc, alpha); got != 6 {
		t.Errorf("NumWords() = %d, want 6", got)
	}
	if got := AvgLen(doc, alpha); got != 3 {
		t.Errorf("AvgLen() = %v, want 3", got)
	}
}

func TestNumWordsIsAlphabetAware(t *testing.T) {
	alpha := mustAlphabet(t, alphabet.Options{WordChars: alphabet.ASCII})
	doc := document.Document{"a 1984 -- ok", "xyz"}

	if got := NumToks(doc); got != 5 {
		t.Errorf("NumToks() = %d, want 5", got)
	}
	if got := NumWords(doc, alpha); got != 2 {
		t.Errorf("NumWords() = %d, want 2", got)
	}
}

func TestAvgLenEmptyPanics(t *testing.T) {
	alpha := mustAlphabet(t, alphabet.Options{WordChars: alphabet.ASCII})
	defer func() {
		if recover() == nil {
			t.Error("AvgLen() on empty document should panic")
		}
	}()
	AvgLen(document.Document{}, alpha)
}

func TestRatios(t *testing.T) {
	alpha := mustAlphabet(t, alphabet.Options{WordChars: alphabet.ASCII})

	tests := []struct {
		name     string
		metric   func(document.Document) float64
		doc      document.Document
		expected float64
	}{
		{"digits only", DigitRatio, document.Document{"1234567890"}, 1.0},
		{"half digits", DigitRatio, document.Document{"ab12"}, 0.5},
		{"no digits", DigitRatio, document.Document{"abc"}, 0},
		{"arabic-indic digits", DigitRatio, document.Document{"٣٤"}, 1.0},
		{"uppercase", UppercaseRatio, document.Document{"ABcd"}, 0.5},
		{"uppercase across sentences", UppercaseRatio, document.Document{"A", "bcd"}, 0.25},
		{"non-ascii uppercase", UppercaseRatio, document.Document{"ÄÖ"}, 1.0},
		{"punctuation", PunctuationRatio, document.Document{"a.b!"}, 0.5},
		{"non-ascii punctuation ignored", PunctuationRatio, document.Document{"«a»"}, 0},
		{"all punctuation", PunctuationRatio, document.Document{Punctuation}, 1.0},
		{
			"foreign letters",
			func(d document.Document) float64 { return ForeignRatio(d, alpha) },
			document.Document{"abcé"},
			0.25,
		},
		{
			"no word sentences",
			func(d document.Document) float64 { return NoWordRatio(d, alpha) },
			document.Document{"Hello world", "1234", "!!", "ok"},
			0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.metric(tt.doc)
			if !almostEqual(result, tt.expected) {
				t.Errorf("metric(%q) = %v, want %v", tt.doc, result, tt.expected)
			}
		})
	}
}

func TestBoilerplateRatio(t *testing.T) {
	doc := document.Document{"Copyright 2024. All rights reserved."}
	if got := BoilerplateRatio(doc, classify.NewClassifier()); got != 1 {
		t.Errorf("BoilerplateRatio() = %v, want 1", got)
	}
}

type stubDetector struct {
	code string
	err  error
	seen string
}

func (s *stubDetector) Detect(text string) (string, error) {
	s.seen = text
	return s.code, s.err
}

func TestDetectLang(t *testing.T) {
	d := &stubDetector{code: "en"}
	lang, ok := DetectLang(document.Document{"one", "two"}, d)
	if !ok || lang != "en" {
		t.Errorf("DetectLang() = %q, %v, want \"en\", true", lang, ok)
	}
	if d.seen != "one two" {
		t.Errorf("detector saw %q, want %q", d.seen, "one two")
	}

	failing := &stubDetector{err: errors.New("boom")}
	if lang, ok := DetectLang(document.Document{"x"}, failing); ok || lang != "" {
		t.Errorf("DetectLang() with failing detector = %q, %v, want \"\", false", lang, ok)
	}
}
