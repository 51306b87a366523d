package classify_test

import (
	"testing"

	"github.com/chriscorrea/docfilter/internal/classify"
)

func TestNewClassifier(t *testing.T) {
	classifier := classify.NewClassifier()
	if classifier == nil {
		t.Fatal("NewClassifier() returned nil")
	}
}

func TestClassifier_IsBoilerplate(t *testing.T) {
	classifier := classify.NewClassifier()

	tests := []struct {
		name     string
		sentence string
		index    int
		total    int
		expected bool
	}{
		{
			name:     "copyright footer",
			sentence: "Copyright 2024. All rights reserved.",
			index:    0,
			total:    1,
			expected: true,
		},
		{
			name:     "regular prose",
			sentence: "The committee approved the budget for next year.",
			index:    0,
			total:    1,
			expected: false,
		},
		{
			name:     "cookie notice at document edge",
			sentence: "We use cookies to improve your experience.",
			index:    0,
			total:    5,
			expected: true,
		},
		{
			name:     "cookie mention in document middle",
			sentence: "We use cookies to improve your experience.",
			index:    2,
			total:    5,
			expected: false,
		},
		{
			name:     "no latin words",
			sentence: "1234 5678 !!",
			index:    0,
			total:    1,
			expected: false,
		},
		{
			name:     "index out of range",
			sentence: "Copyright 2024. All rights reserved.",
			index:    3,
			total:    2,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.IsBoilerplate(tt.sentence, tt.index, tt.total)
			if result != tt.expected {
				t.Errorf("IsBoilerplate(%q, %d, %d) = %v, want %v", tt.sentence, tt.index, tt.total, result, tt.expected)
			}
		})
	}
}

func TestClassifier_Ratio(t *testing.T) {
	classifier := classify.NewClassifier()

	sentences := []string{
		"Share on Facebook and Twitter.",
		"The river flooded the valley after three days of rain.",
		"Farmers moved their animals to higher ground.",
		"Copyright 2024. All rights reserved.",
	}

	if got := classifier.Ratio(sentences); got != 0.5 {
		t.Errorf("Ratio() = %v, want 0.5", got)
	}
	if got := classifier.Ratio(nil); got != 0 {
		t.Errorf("Ratio(nil) = %v, want 0", got)
	}
}
