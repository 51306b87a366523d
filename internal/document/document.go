// Package document reads and writes sentence-per-line text in which blank
// lines separate documents.
package document

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Document is an ordered, non-empty sequence of sentences.
type Document []string

// Text joins the sentences with single spaces.
func (d Document) Text() string {
	return strings.Join(d, " ")
}

// LineScanner yields input lines with their 1-based line number.
// bufio.Reader is used instead of bufio.Scanner so that very long lines
// are not rejected.
type LineScanner struct {
	r    *bufio.Reader
	line int
}

// NewLineScanner creates a LineScanner over r.
func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{r: bufio.NewReaderSize(r, 64*1024)}
}

// Line returns the number of lines returned so far.
func (lr *LineScanner) Line() int {
	return lr.line
}

// Next returns the next line without its newline, or io.EOF.
func (lr *LineScanner) Next() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err == io.EOF && s == "" {
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	lr.line++
	return strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r"), nil
}

// isBoundary reports whether a line is blank or whitespace-only.
func isBoundary(line string) bool {
	return strings.TrimFunc(line, unicode.IsSpace) == ""
}

// Reader splits a line stream into documents.
type Reader struct {
	lines  *LineScanner
	source string
	done   bool
}

// NewReader creates a Reader; source names the stream in errors.
func NewReader(r io.Reader, source string) *Reader {
	return &Reader{lines: NewLineScanner(r), source: source}
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int {
	return r.lines.line
}

// Source returns the name given to NewReader.
func (r *Reader) Source() string {
	return r.source
}

// Next returns the next document, or io.EOF when the input is exhausted.
// Sentences have trailing whitespace removed; consecutive boundaries never
// produce empty documents.
func (r *Reader) Next() (Document, error) {
	if r.done {
		return nil, io.EOF
	}

	var doc Document
	for {
		line, err := r.lines.Next()
		if err == io.EOF {
			r.done = true
			if len(doc) > 0 {
				return doc, nil
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line != "" {
			doc = append(doc, line)
			continue
		}
		if len(doc) > 0 {
			return doc, nil
		}
	}
}

// Writer serializes documents in the same shape they are read in.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a buffered Writer; call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write prints every sentence on its own line followed by a blank line.
func (w *Writer) Write(doc Document) error {
	if len(doc) == 0 {
		return nil
	}
	for _, s := range doc {
		if _, err := w.w.WriteString(s); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// WriteLine writes a single raw line.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
