// Package filter decides, document by document, whether a document passes a
// configured set of criteria, and keeps the per-criterion statistics.
package filter

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the optional thresholds of every criterion. A nil threshold
// means the criterion is never evaluated.
type Config struct {
	AvgLen           *int     `yaml:"avg-len"`
	MinSents         *int     `yaml:"min-sents"`
	MaxSents         *int     `yaml:"max-sents"`
	MinToks          *int     `yaml:"min-toks"`
	MaxToks          *int     `yaml:"max-toks"`
	NoWordRatio      *float64 `yaml:"no-word-ratio"`
	PunctRatio       *float64 `yaml:"punct-ratio"`
	UpperRatio       *float64 `yaml:"upper-ratio"`
	DigitRatio       *float64 `yaml:"digit-ratio"`
	ForeignRatio     *float64 `yaml:"foreign-ratio"`
	MinWords         *int     `yaml:"min-words"`
	BoilerplateRatio *float64 `yaml:"boilerplate-ratio"`
	LangDetect       string   `yaml:"langdetect"`

	Invert bool `yaml:"invert"`
	Limit  *int `yaml:"limit"`

	// alphabet selection, consumed by the caller when compiling the alphabet
	Language  string `yaml:"language"`
	WordChars string `yaml:"word-chars"`
}

// Int returns a pointer to v, for building configs in code.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for building configs in code.
func Float(v float64) *float64 { return &v }

// Criteria returns the configured criteria in precedence order.
func (c Config) Criteria() []Criterion {
	var out []Criterion
	for _, crit := range Precedence {
		if c.isSet(crit) {
			out = append(out, crit)
		}
	}
	return out
}

func (c Config) isSet(crit Criterion) bool {
	switch crit {
	case AvgLen:
		return c.AvgLen != nil
	case MinSents:
		return c.MinSents != nil
	case MaxSents:
		return c.MaxSents != nil
	case MinToks:
		return c.MinToks != nil
	case MaxToks:
		return c.MaxToks != nil
	case NoWordRatio:
		return c.NoWordRatio != nil
	case PunctRatio:
		return c.PunctRatio != nil
	case UpperRatio:
		return c.UpperRatio != nil
	case DigitRatio:
		return c.DigitRatio != nil
	case ForeignRatio:
		return c.ForeignRatio != nil
	case MinWords:
		return c.MinWords != nil
	case BoilerplateRatio:
		return c.BoilerplateRatio != nil
	case LangDetect:
		return c.LangDetect != ""
	}
	return false
}

// LoadConfig reads a YAML preset, e.g.
//
//	min-sents: 3
//	digit-ratio: 0.2
//	word-chars: abcdefghijklmnopqrstuvwxyzåäö
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config %q: %w", path, err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig parses a YAML preset. Unknown keys are rejected so that a
// misspelled threshold does not silently disable a criterion.
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
