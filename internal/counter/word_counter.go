package counter

import "strings"

// WordCounter counts whitespace separated tokens. It is not alphabet aware:
// "1984" and "--" count the same as "word".
type WordCounter struct{}

// NewWordCounter creates a new WordCounter instance.
func NewWordCounter() Counter {
	return WordCounter{}
}

// Count splits on any Unicode whitespace and ignores empty fields.
func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// Name returns the name of this counting method for logging and debugging.
func (WordCounter) Name() string {
	return "words"
}
