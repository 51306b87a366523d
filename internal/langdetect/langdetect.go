// Package langdetect wraps an external language identification library
// behind a small interface so that the filter can compare a document's
// detected language against a target code.
package langdetect

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/abadojack/whatlanggo"
)

var (
	// ErrUnreliable is returned for target languages with a high detection error rate.
	ErrUnreliable = errors.New("language detection is unreliable for this language")
	// ErrUnsupported is returned for target languages the detector cannot produce.
	ErrUnsupported = errors.New("language is not supported by the detector")
	// ErrUndetermined is returned when no language could be identified.
	ErrUndetermined = errors.New("language could not be determined")
)

// unreliable lists languages that are unsupported or have a high error rate.
var unreliable = map[string]bool{
	"sr": true, "eu": true, "hy": true, "be": true, "ga": true, "gl": true,
	"la": true, "gd": true, "ug": true, "cu": true, "mt": true,
}

// Detector identifies the language of a text as an ISO 639-1 code.
type Detector interface {
	Detect(text string) (string, error)
}

// WhatLang is a Detector backed by whatlanggo. Detection is deterministic.
type WhatLang struct{}

// Detect returns the ISO 639-1 code of the most likely language of text.
// Panics inside the detector are recovered and returned as errors.
func (WhatLang) Detect(text string) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			code, err = "", fmt.Errorf("detector panic: %v", r)
		}
	}()

	info := whatlanggo.Detect(text)
	code = info.Lang.Iso6391()
	if code == "" {
		return "", ErrUndetermined
	}
	return code, nil
}

// supportedCodes collects the ISO 639-1 codes whatlanggo can return.
func supportedCodes() map[string]bool {
	codes := make(map[string]bool)
	for i := 0; i < 256; i++ {
		if c := whatlanggo.Lang(i).Iso6391(); c != "" {
			codes[c] = true
		}
	}
	return codes
}

// New returns a Detector for filtering towards target. An error means the
// caller should disable language filtering for the run.
func New(target string) (Detector, error) {
	if unreliable[target] {
		return nil, fmt.Errorf("%q: %w", target, ErrUnreliable)
	}
	if !supportedCodes()[target] {
		return nil, fmt.Errorf("%q: %w", target, ErrUnsupported)
	}
	slog.Debug("Language detector ready", "target", target)
	return WhatLang{}, nil
}
