// Package counter provides the text counting strategies used for corpus
// statistics and document metrics.
//
// Three strategies are available through the Counter interface: whitespace
// separated words (the "tokens" of a pre-tokenized corpus), subword tokens
// using tiktoken's cl100k_base encoding, and Unicode characters.
//
// Usage Example:
//
//	c, err := counter.NewCounter(counter.Words)
//	n := counter.Sum(c, []string{"first sentence", "second one"})
package counter

import "fmt"

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (words, tokens or characters) in text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Words counts whitespace separated tokens (default)
	Words CountingMethod = iota
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
	// Characters counts individual characters including whitespace
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// ParseCountingMethod maps a flag value to a CountingMethod.
func ParseCountingMethod(s string) (CountingMethod, error) {
	switch s {
	case "words", "":
		return Words, nil
	case "tokens":
		return Tokens, nil
	case "characters", "chars":
		return Characters, nil
	default:
		return Words, fmt.Errorf("unknown counting method %q (want words, tokens or characters)", s)
	}
}

// NewCounter creates a Counter for method. Only the token counter can fail,
// when its encoding cannot be loaded.
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return NewWordCounter(), nil
	case Tokens:
		return NewTokenCounter()
	case Characters:
		return NewCharCounter(), nil
	default:
		return nil, fmt.Errorf("unknown counting method %d", int(method))
	}
}

// Sum returns the total count over texts.
func Sum(c Counter, texts []string) int {
	total := 0
	for _, t := range texts {
		total += c.Count(t)
	}
	return total
}
