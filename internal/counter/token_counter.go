package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the tiktoken encoding used for subword counts.
const encodingName = "cl100k_base"

var (
	sharedEncoding *tiktoken.Tiktoken
	encodingErr    error
	encodingOnce   sync.Once
)

// TokenCounter counts subword tokens with tiktoken's cl100k_base encoding.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex // protects encoding access for thread safety
}

// NewTokenCounter creates a TokenCounter. The encoding is loaded once per
// process and shared between counters.
func NewTokenCounter() (Counter, error) {
	encodingOnce.Do(func() {
		slog.Debug("Loading tiktoken encoding", "encoding", encodingName)
		sharedEncoding, encodingErr = tiktoken.GetEncoding(encodingName)
	})
	if encodingErr != nil {
		return nil, fmt.Errorf("failed to initialize %s encoding: %w", encodingName, encodingErr)
	}
	return &TokenCounter{encoding: sharedEncoding}, nil
}

// Count returns the number of tokens in text. Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	// nil params mean no special tokens allowed/disallowed
	return len(tc.encoding.Encode(text, nil, nil))
}

// Name returns the name of this counting method (for logging and debugging).
func (tc *TokenCounter) Name() string {
	return "tokens (" + encodingName + ")"
}
