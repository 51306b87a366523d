// Package metric computes the per-document scalars that filter criteria are
// evaluated against. Every function is a pure function of a document and,
// where words or letters matter, an alphabet.
//
// Ratio metrics share char_count (code points over all sentences) as their
// denominator, except NoWordRatio and BoilerplateRatio which are fractions of
// sentences. Documents are non-empty by construction; AvgLen panics on an
// empty document because reaching it is a programming error.
package metric

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/chriscorrea/docfilter/internal/alphabet"
	"github.com/chriscorrea/docfilter/internal/classify"
	"github.com/chriscorrea/docfilter/internal/counter"
	"github.com/chriscorrea/docfilter/internal/document"
	"github.com/chriscorrea/docfilter/internal/langdetect"
)

// Punctuation is the fixed set of ASCII punctuation characters.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	tokens     = counter.NewWordCounter()
	characters = counter.NewCharCounter()
)

// CharCount returns the number of code points over all sentences.
func CharCount(doc document.Document) int {
	return counter.Sum(characters, doc)
}

// NumToks returns the number of whitespace separated tokens.
func NumToks(doc document.Document) int {
	return counter.Sum(tokens, doc)
}

// NumWords returns the number of regular words as defined by alpha.
func NumWords(doc document.Document, alpha *alphabet.Alphabet) int {
	n := 0
	for _, s := range doc {
		n += alpha.CountWords(s)
	}
	return n
}

// AvgLen returns the mean number of words per sentence.
func AvgLen(doc document.Document, alpha *alphabet.Alphabet) float64 {
	if len(doc) == 0 {
		panic("metric: AvgLen called on an empty document")
	}
	return float64(NumWords(doc, alpha)) / float64(len(doc))
}

// ForeignRatio returns the share of characters that are letters outside alpha.
func ForeignRatio(doc document.Document, alpha *alphabet.Alphabet) float64 {
	n := 0
	for _, s := range doc {
		n += alpha.CountForeign(s)
	}
	return ratio(n, CharCount(doc))
}

// UppercaseRatio returns the share of uppercase characters.
func UppercaseRatio(doc document.Document) float64 {
	return charRatio(doc, unicode.IsUpper)
}

// DigitRatio returns the share of decimal digit characters.
func DigitRatio(doc document.Document) float64 {
	return charRatio(doc, unicode.IsDigit)
}

// PunctuationRatio returns the share of ASCII punctuation characters.
func PunctuationRatio(doc document.Document) float64 {
	return charRatio(doc, func(r rune) bool {
		return r < unicode.MaxASCII && strings.ContainsRune(Punctuation, r)
	})
}

// NoWordRatio returns the share of sentences without a single regular word.
func NoWordRatio(doc document.Document, alpha *alphabet.Alphabet) float64 {
	n := 0
	for _, s := range doc {
		if !alpha.HasWord(s) {
			n++
		}
	}
	return ratio(n, len(doc))
}

// BoilerplateRatio returns the share of sentences the classifier flags as
// navigation, legal or cookie boilerplate.
func BoilerplateRatio(doc document.Document, c *classify.Classifier) float64 {
	return c.Ratio(doc)
}

// DetectLang returns the language of the document's text. Detector failures
// are advisory and reported as ok == false.
func DetectLang(doc document.Document, d langdetect.Detector) (lang string, ok bool) {
	code, err := d.Detect(doc.Text())
	if err != nil {
		slog.Debug("Language detection failed", "error", err)
		return "", false
	}
	return code, true
}

func charRatio(doc document.Document, pred func(rune) bool) float64 {
	n, total := 0, 0
	for _, s := range doc {
		for _, r := range s {
			total++
			if pred(r) {
				n++
			}
		}
	}
	return ratio(n, total)
}

// ratio divides n by d. Non-empty documents always have d > 0.
func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
