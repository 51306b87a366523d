package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports a malformed line in score-prefixed input.
type ParseError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse line %d in %s: %q", e.Line, e.Source, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ScoredDocument pairs each sentence with the score that prefixed it.
type ScoredDocument struct {
	Scores    []float64
	Sentences Document
}

// ScoredReader reads documents whose lines have the form "score<TAB>sentence".
type ScoredReader struct {
	lines  *LineScanner
	source string
	done   bool
}

// NewScoredReader creates a ScoredReader; source names the stream in errors.
func NewScoredReader(r io.Reader, source string) *ScoredReader {
	return &ScoredReader{lines: NewLineScanner(r), source: source}
}

// Next returns the next scored document, or io.EOF. A malformed line is
// returned as a *ParseError and the stream should not be read further.
func (r *ScoredReader) Next() (ScoredDocument, error) {
	var doc ScoredDocument
	if r.done {
		return doc, io.EOF
	}

	for {
		line, err := r.lines.Next()
		if err == io.EOF {
			r.done = true
			if len(doc.Sentences) > 0 {
				return doc, nil
			}
			return doc, io.EOF
		}
		if err != nil {
			return doc, err
		}

		if isBoundary(line) {
			if len(doc.Sentences) > 0 {
				return doc, nil
			}
			continue
		}

		score, sentence, err := parseScored(line)
		if err != nil {
			r.done = true
			return ScoredDocument{}, &ParseError{Source: r.source, Line: r.lines.line, Text: line, Err: err}
		}
		doc.Scores = append(doc.Scores, score)
		doc.Sentences = append(doc.Sentences, sentence)
	}
}

func parseScored(line string) (float64, string, error) {
	field, sentence, ok := strings.Cut(line, "\t")
	if !ok {
		return 0, "", fmt.Errorf("missing tab separator")
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, "", err
	}
	return score, sentence, nil
}
