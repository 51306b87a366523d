// Package classify identifies boilerplate sentences in crawled documents.
//
// The classifier stems every word of a sentence and measures how many of the
// stems belong to a vocabulary typical of navigation, legal footers, cookie
// banners and publishing metadata. The acceptable share of such words depends
// on the sentence position: boilerplate concentrates at the start and the end
// of a page, so the threshold is lower there.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// boilerplateStems contains stemmed words that commonly appear in extraneous
// content such as headers, footers, navigation and cookie notices
var boilerplateStems = map[string]struct{}{
	// --- Publishing & Document Structure ---
	"author":    {},
	"appendix":  {},
	"chapter":   {},
	"content":   {}, // from "table of contents"
	"edit":      {}, // from "edition"
	"ebook":     {},
	"footer":    {},
	"gutenberg": {}, // from "Project Gutenberg"
	"navig":     {},
	"page":      {},
	"publish":   {},

	// --- Navigation & Interaction ---
	"about":     {},
	"advertis":  {},
	"click":     {},
	"comment":   {},
	"facebook":  {},
	"home":      {},
	"instagram": {},
	"login":     {},
	"menu":      {},
	"newslett":  {},
	"password":  {},
	"profil":    {},
	"regist":    {},
	"repli":     {}, // from "reply", "replies"
	"share":     {},
	"sign":      {},
	"subscrib":  {},
	"twitter":   {},
	"updat":     {},

	// --- Legal, Cookies & Footer Text ---
	"accept":     {},
	"browser":    {},
	"cooki":      {},
	"copyright":  {},
	"enabl":      {},
	"javascript": {},
	"permiss":    {},
	"polici":     {},
	"privaci":    {},
	"reproduc":   {},
	"reserv":     {},
	"right":      {},
	"term":       {},

	// --- Links & References ---
	"http":  {},
	"https": {},
	"isbn":  {},
	"www":   {},
}

// Classifier flags boilerplate sentences using stemmed-vocabulary analysis and
// position-based thresholding.
type Classifier struct {
	// tokenRegex extracts word tokens from text
	tokenRegex *regexp.Regexp
}

// NewClassifier creates and initializes a new Classifier instance
func NewClassifier() *Classifier {
	return &Classifier{
		tokenRegex: regexp.MustCompile(`[a-z]+`),
	}
}

// IsBoilerplate determines whether the sentence at index (of total sentences
// in its document) is boilerplate. Sentences without any latin word are not
// judged and report false.
func (c *Classifier) IsBoilerplate(sentence string, index, total int) bool {
	if total <= 0 || index < 0 || index >= total {
		return false
	}

	tokens := c.tokenRegex.FindAllString(strings.ToLower(sentence), -1)
	if len(tokens) == 0 {
		return false
	}

	hits := 0
	for _, token := range tokens {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil {
			// if stemming fails, use the original token
			stemmed = token
		}
		if _, ok := boilerplateStems[stemmed]; ok {
			hits++
		}
	}

	ratio := float64(hits) / float64(len(tokens))
	return ratio > c.threshold(index, total)
}

// Ratio returns the fraction of sentences classified as boilerplate.
func (c *Classifier) Ratio(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	n := 0
	for i, s := range sentences {
		if c.IsBoilerplate(s, i, len(sentences)) {
			n++
		}
	}
	return float64(n) / float64(len(sentences))
}

// threshold computes the allowed boilerplate-word ratio for a position:
// 0.1 at the document edges rising to 0.33 in the middle. Short documents
// use a flat 0.5 to avoid false positives.
func (c *Classifier) threshold(index, total int) float64 {
	if total <= 3 {
		return 0.5
	}

	relativePosition := float64(index) / float64(total-1)

	// inverted V over the document
	positionFactor := 1.0 - math.Abs(2.0*relativePosition-1.0)

	const (
		edgeThreshold   = 0.1
		middleThreshold = 0.33
	)
	return edgeThreshold + (middleThreshold-edgeThreshold)*positionFactor
}
