package filter

import (
	"github.com/chriscorrea/docfilter/internal/alphabet"
	"github.com/chriscorrea/docfilter/internal/classify"
	"github.com/chriscorrea/docfilter/internal/document"
	"github.com/chriscorrea/docfilter/internal/langdetect"
	"github.com/chriscorrea/docfilter/internal/metric"
)

// Criterion names a single filtering rule.
type Criterion string

const (
	AvgLen           Criterion = "avg-len"
	MinSents         Criterion = "min-sents"
	MaxSents         Criterion = "max-sents"
	MinToks          Criterion = "min-toks"
	MaxToks          Criterion = "max-toks"
	NoWordRatio      Criterion = "no-word-ratio"
	PunctRatio       Criterion = "punct-ratio"
	UpperRatio       Criterion = "upper-ratio"
	DigitRatio       Criterion = "digit-ratio"
	ForeignRatio     Criterion = "foreign-ratio"
	MinWords         Criterion = "min-words"
	BoilerplateRatio Criterion = "boilerplate-ratio"
	LangDetect       Criterion = "langdetect"
)

// Precedence is the fixed evaluation order. Language detection is the most
// expensive check and comes last.
var Precedence = []Criterion{
	AvgLen,
	MinSents,
	MaxSents,
	MinToks,
	MaxToks,
	NoWordRatio,
	PunctRatio,
	UpperRatio,
	DigitRatio,
	ForeignRatio,
	MinWords,
	BoilerplateRatio,
	LangDetect,
}

// Evaluator applies a Config to documents.
type Evaluator struct {
	cfg        Config
	alpha      *alphabet.Alphabet
	detector   langdetect.Detector
	classifier *classify.Classifier
}

// NewEvaluator creates an Evaluator. detector may be nil, in which case the
// language criterion is skipped even if configured.
func NewEvaluator(cfg Config, alpha *alphabet.Alphabet, detector langdetect.Detector) *Evaluator {
	if detector == nil {
		cfg.LangDetect = ""
	}
	return &Evaluator{
		cfg:        cfg,
		alpha:      alpha,
		detector:   detector,
		classifier: classify.NewClassifier(),
	}
}

// Config returns the effective configuration.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate returns the first violated criterion in precedence order, or
// ok == false when the document passes every configured criterion.
func (e *Evaluator) Evaluate(doc document.Document) (failed Criterion, ok bool) {
	c := e.cfg

	if c.AvgLen != nil && metric.AvgLen(doc, e.alpha) < float64(*c.AvgLen) {
		return AvgLen, true
	}
	if c.MinSents != nil && len(doc) < *c.MinSents {
		return MinSents, true
	}
	if c.MaxSents != nil && len(doc) > *c.MaxSents {
		return MaxSents, true
	}
	if c.MinToks != nil && metric.NumToks(doc) < *c.MinToks {
		return MinToks, true
	}
	if c.MaxToks != nil && metric.NumToks(doc) > *c.MaxToks {
		return MaxToks, true
	}
	if c.NoWordRatio != nil && metric.NoWordRatio(doc, e.alpha) > *c.NoWordRatio {
		return NoWordRatio, true
	}
	if c.PunctRatio != nil && metric.PunctuationRatio(doc) > *c.PunctRatio {
		return PunctRatio, true
	}
	if c.UpperRatio != nil && metric.UppercaseRatio(doc) > *c.UpperRatio {
		return UpperRatio, true
	}
	if c.DigitRatio != nil && metric.DigitRatio(doc) > *c.DigitRatio {
		return DigitRatio, true
	}
	if c.ForeignRatio != nil && metric.ForeignRatio(doc, e.alpha) > *c.ForeignRatio {
		return ForeignRatio, true
	}
	if c.MinWords != nil && metric.NumWords(doc, e.alpha) < *c.MinWords {
		return MinWords, true
	}
	if c.BoilerplateRatio != nil && metric.BoilerplateRatio(doc, e.classifier) > *c.BoilerplateRatio {
		return BoilerplateRatio, true
	}
	if c.LangDetect != "" {
		if lang, detected := metric.DetectLang(doc, e.detector); !detected || lang != c.LangDetect {
			return LangDetect, true
		}
	}
	return "", false
}

// Decide reports whether a document should be emitted given whether it
// failed a criterion. invert flips the decision so that only rejected
// documents are emitted.
func Decide(failed, invert bool) bool {
	return failed == invert
}
