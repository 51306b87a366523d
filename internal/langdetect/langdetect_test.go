package langdetect

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected error
	}{
		{"english", "en", nil},
		{"finnish", "fi", nil},
		{"unreliable serbian", "sr", ErrUnreliable},
		{"unreliable maltese", "mt", ErrUnreliable},
		{"unknown code", "zz", ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.target)
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("New(%q) unexpected error: %v", tt.target, err)
				}
				if d == nil {
					t.Fatalf("New(%q) returned nil detector", tt.target)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("New(%q) error = %v, want %v", tt.target, err, tt.expected)
			}
		})
	}
}

func TestWhatLangDetect(t *testing.T) {
	var d WhatLang

	code, err := d.Detect("The quick brown fox jumps over the lazy dog and keeps running through the forest until nightfall.")
	if err != nil {
		t.Fatalf("Detect() unexpected error: %v", err)
	}
	if code != "en" {
		t.Errorf("Detect() = %q, want %q", code, "en")
	}

	code, err = d.Detect("Tämä on suomenkielinen lause, jossa on riittävästi sanoja tunnistamista varten.")
	if err != nil {
		t.Fatalf("Detect() unexpected error: %v", err)
	}
	if code != "fi" {
		t.Errorf("Detect() = %q, want %q", code, "fi")
	}
}

func TestWhatLangUndetermined(t *testing.T) {
	var d WhatLang
	if _, err := d.Detect("1234 5678 ..."); err == nil {
		t.Error("Detect() on text without letters should fail")
	}
}
