package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"

	"github.com/chriscorrea/docfilter/internal/document"
	"github.com/chriscorrea/docfilter/internal/extract"
)

var (
	docStartTag = regexp.MustCompile(`^<doc\s+id=.*>$`)
	docEndTag   = regexp.MustCompile(`^</doc>$`)
)

// SplitConfig holds options for converting paragraph-per-line text into
// sentence-per-line documents.
type SplitConfig struct {
	Sources      []string
	KeepBlank    bool   // copy blank input lines to the output
	DocumentTags bool   // copy <doc> and </doc> tags instead of replacing them
	NoSplit      bool   // keep each paragraph on one line
	HTML         bool   // treat each source as one HTML page
	Selector     string // CSS selector for HTML extraction
	SaveStats    string // write the run counts as JSON to this file
	Encoding     string
}

// SplitStats counts what a split run produced.
type SplitStats struct {
	Characters int `json:"characters"`
	Sentences  int `json:"sentences"`
	Tokens     int `json:"tokens"`
}

func (s *SplitStats) add(sentences []string) {
	for _, sent := range sentences {
		s.Sentences++
		s.Tokens += len(strings.Fields(sent))
		for _, r := range sent {
			if !unicode.IsSpace(r) {
				s.Characters++
			}
		}
	}
}

// splitter holds the state of one split run.
type splitter struct {
	cfg       SplitConfig
	tokenizer *sentences.DefaultSentenceTokenizer
	out       *document.Writer
	stats     SplitStats
}

// RunSplit segments paragraphs into sentences. In text mode every input line
// is a paragraph and WikiExtractor document tags delimit documents; an end
// tag becomes the blank line that separates documents. In HTML mode each
// source is a page whose extracted paragraphs form one document.
func RunSplit(ctx context.Context, cfg SplitConfig, stdout io.Writer) (SplitStats, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return SplitStats{}, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	s := &splitter{cfg: cfg, tokenizer: tokenizer, out: document.NewWriter(stdout)}

	err = eachSource(ctx, cfg.Sources, cfg.Encoding, func(name string, r io.Reader) error {
		if cfg.HTML {
			return s.page(name, r)
		}
		return s.text(ctx, name, r)
	})
	if err != nil {
		return s.stats, err
	}
	if err := s.out.Flush(); err != nil {
		return s.stats, fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.SaveStats != "" {
		if err := saveSplitStats(cfg.SaveStats, s.stats); err != nil {
			return s.stats, err
		}
	}
	return s.stats, nil
}

func (s *splitter) text(ctx context.Context, name string, r io.Reader) error {
	// Blank lines and tags are significant here, so read raw lines rather
	// than documents.
	lines := document.NewLineScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lines.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		if strings.ContainsRune(line, 0) {
			slog.Warn("Removing null bytes", "source", name, "line", lines.Line())
			line = strings.ReplaceAll(line, "\x00", "")
		}

		switch {
		case strings.TrimSpace(line) == "":
			if s.cfg.KeepBlank {
				err = s.out.WriteLine(line)
			}
		case docStartTag.MatchString(line) || docEndTag.MatchString(line):
			if s.cfg.DocumentTags {
				err = s.out.WriteLine(line)
			} else if docEndTag.MatchString(line) {
				err = s.out.WriteLine("")
			}
		default:
			err = s.paragraph(line)
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
}

func (s *splitter) page(name string, r io.Reader) error {
	text, err := extract.Page(r, extract.Options{Selector: s.cfg.Selector, Plain: true})
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", name, err)
	}

	var doc document.Document
	for _, p := range extract.Paragraphs(text) {
		sents := s.segment(p)
		s.stats.add(sents)
		if s.cfg.NoSplit {
			doc = append(doc, strings.Join(sents, " "))
		} else {
			doc = append(doc, sents...)
		}
	}
	if len(doc) == 0 {
		slog.Warn("No text extracted", "source", name)
		return nil
	}
	if err := s.out.Write(doc); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (s *splitter) paragraph(line string) error {
	sents := s.segment(line)
	s.stats.add(sents)
	if s.cfg.NoSplit {
		return s.out.WriteLine(strings.Join(sents, " "))
	}
	for _, sent := range sents {
		if err := s.out.WriteLine(sent); err != nil {
			return err
		}
	}
	return nil
}

// segment splits a paragraph into trimmed, non-empty sentences.
func (s *splitter) segment(text string) []string {
	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func saveSplitStats(path string, stats SplitStats) error {
	data, err := json.MarshalIndent(stats, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}
