// Package alphabet derives the per-language "word" and "foreign letter"
// patterns that the document metrics are computed with.
//
// An Alphabet is compiled once from configuration, either from an explicit
// set of word characters or from a built-in table of Unicode ranges for
// scripts that have no usable letter list (Japanese, Korean, Chinese). The
// compiled value is immutable and safe for concurrent use.
//
// Usage Example:
//
//	alpha, err := alphabet.Compile(alphabet.Options{WordChars: "abcdefghijklmnopqrstuvwxyzåäö"})
//	words := alpha.CountWords("Hyvää huomenta kaikille")
package alphabet

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// ASCII is the fallback alphabet used when nothing else is configured.
const ASCII = "abcdefghijklmnopqrstuvwxyz"

// ErrEmptyAlphabet is returned when no word characters remain after
// discarding whitespace.
var ErrEmptyAlphabet = errors.New("alphabet is empty")

// ConfigError reports an alphabet configuration that cannot be compiled.
type ConfigError struct {
	Language string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Language == "" {
		return fmt.Sprintf("alphabet config: %v", e.Err)
	}
	return fmt.Sprintf("alphabet config for %q: %v", e.Language, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// unicodeRange is an inclusive code point range.
type unicodeRange struct {
	lo, hi rune
}

// builtinRanges lists Unicode ranges for languages whose letters are not
// practical to pass on the command line.
var builtinRanges = map[string][]unicodeRange{
	"ja": {
		{0x3040, 0x309F}, // Hiragana
		{0x30A0, 0x30FF}, // Katakana
		{0x4E00, 0x9FAF}, // common and uncommon kanji
		{0x3400, 0x4DBF}, // rare kanji
	},
	"ko": {
		{0xAC00, 0xD7AF}, // Hangul syllables
	},
	"zh": {
		{0x4E00, 0x9FFF}, // CJK unified ideographs
		{0x3400, 0x4DBF}, // extension A
	},
}

// shortWordLanguages are segmented so aggressively by tokenizers that a
// single character counts as a word.
var shortWordLanguages = map[string]bool{
	"ja": true,
	"ko": true,
	"zh": true,
}

// Options selects the alphabet source. WordChars takes precedence over the
// built-in alphabet of Language.
type Options struct {
	Language  string
	WordChars string
}

// Alphabet is a compiled pair of word and foreign-letter patterns.
type Alphabet struct {
	letters    string
	upper      string
	minWordLen int
	word       *regexp2.Regexp
	foreign    *regexp.Regexp
}

// Supported reports whether language has a built-in alphabet.
func Supported(language string) bool {
	_, ok := builtinRanges[language]
	return ok
}

// Compile builds an Alphabet from opts. Configuration problems that still
// leave a usable alphabet are logged as warnings.
func Compile(opts Options) (*Alphabet, error) {
	letters, err := resolveLetters(opts)
	if err != nil {
		return nil, err
	}

	minLen := 2
	if shortWordLanguages[opts.Language] {
		minLen = 1
	}

	upper := upperVariants(letters)

	// an optional initial capital followed by at least minLen alphabet
	// characters, delimited by word boundaries
	var b strings.Builder
	b.WriteString(`\b`)
	if upper != "" {
		b.WriteString("[" + escapeClass(upper) + "]?")
	}
	b.WriteString("[" + escapeClass(letters) + "]{" + strconv.Itoa(minLen) + ",}")
	b.WriteString(`\b`)

	word, err := regexp2.Compile(b.String(), regexp2.None)
	if err != nil {
		return nil, &ConfigError{Language: opts.Language, Err: fmt.Errorf("word pattern: %w", err)}
	}

	foreign, err := regexp.Compile(`[^\P{L}` + escapeClass(letters+upper) + `]`)
	if err != nil {
		return nil, &ConfigError{Language: opts.Language, Err: fmt.Errorf("foreign letter pattern: %w", err)}
	}

	slog.Debug("Alphabet compiled", "language", opts.Language, "letters", len([]rune(letters)), "upper", len([]rune(upper)), "minWordLen", minLen)

	return &Alphabet{
		letters:    letters,
		upper:      upper,
		minWordLen: minLen,
		word:       word,
		foreign:    foreign,
	}, nil
}

// resolveLetters picks the alphabet source and strips whitespace from it.
func resolveLetters(opts Options) (string, error) {
	var letters string
	ranges, builtin := builtinRanges[opts.Language]

	switch {
	case opts.WordChars != "":
		if builtin {
			slog.Warn("Word characters override the built-in alphabet", "language", opts.Language)
		}
		letters = opts.WordChars
	case builtin:
		letters = lettersInRanges(ranges) + ASCII
	default:
		slog.Warn("No word characters given, using [a-z]", "language", opts.Language)
		letters = ASCII
	}

	if strings.IndexFunc(letters, unicode.IsSpace) >= 0 {
		slog.Warn("Discarding space characters from word characters")
		letters = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, letters)
	}

	if letters == "" {
		return "", &ConfigError{Language: opts.Language, Err: ErrEmptyAlphabet}
	}
	return letters, nil
}

// lettersInRanges returns the characters in ranges with a Letter category.
func lettersInRanges(ranges []unicodeRange) string {
	var b strings.Builder
	for _, r := range ranges {
		for c := r.lo; c <= r.hi; c++ {
			if unicode.IsLetter(c) {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

// upperVariants returns the uppercase forms of letters that are not
// already part of the alphabet. Caseless scripts yield nothing.
func upperVariants(letters string) string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, r := range letters {
		u := unicode.ToUpper(r)
		if u == r || seen[u] || strings.ContainsRune(letters, u) {
			continue
		}
		seen[u] = true
		b.WriteRune(u)
	}
	return b.String()
}

// escapeClass escapes characters that are special inside a bracket
// expression in both RE2 and .NET syntax.
func escapeClass(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', ']', '[', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Letters returns the lowercase (or caseless) alphabet characters.
func (a *Alphabet) Letters() string { return a.letters }

// Upper returns the derived uppercase variants.
func (a *Alphabet) Upper() string { return a.upper }

// MinWordLen returns the minimum number of alphabet characters in a word.
func (a *Alphabet) MinWordLen() int { return a.minWordLen }

// WordPattern returns the source of the word pattern.
func (a *Alphabet) WordPattern() string { return a.word.String() }

// ForeignPattern returns the source of the foreign letter pattern.
func (a *Alphabet) ForeignPattern() string { return a.foreign.String() }

// CountWords returns the number of regular words in s.
func (a *Alphabet) CountWords(s string) int {
	n := 0
	// no MatchTimeout is set, so matching cannot fail
	m, _ := a.word.FindStringMatch(s)
	for m != nil {
		n++
		m, _ = a.word.FindNextMatch(m)
	}
	return n
}

// HasWord reports whether s contains at least one regular word.
func (a *Alphabet) HasWord(s string) bool {
	ok, _ := a.word.MatchString(s)
	return ok
}

// CountForeign returns the number of letters in s that are outside the alphabet.
func (a *Alphabet) CountForeign(s string) int {
	return len(a.foreign.FindAllStringIndex(s, -1))
}
