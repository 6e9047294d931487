package textnorm

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// DefaultStopWords is the stop-word set removed during normalization. It is
// the common English function-word list plus a few domain words that carry no
// signal in university queries.
var DefaultStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "be": {}, "is": {}, "are": {},
	"was": {}, "to": {}, "of": {}, "and": {}, "in": {}, "that": {},
	"have": {}, "it": {}, "for": {}, "not": {}, "on": {}, "with": {},
	"as": {}, "you": {}, "do": {}, "at": {}, "this": {}, "but": {},
	"by": {}, "from": {}, "what": {}, "how": {}, "which": {}, "will": {},
	"university": {}, "please": {}, "can": {},
}

// Normalizer canonicalizes free text into a comparable token sequence.
// It is pure and safe for concurrent use.
type Normalizer struct {
	stopWords map[string]struct{}
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithStopWords replaces the default stop-word set.
func WithStopWords(words []string) Option {
	return func(n *Normalizer) {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[strings.ToLower(w)] = struct{}{}
		}
		n.stopWords = set
	}
}

// New creates a Normalizer with the default stop-word set.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{stopWords: DefaultStopWords}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Tokens lowercases the text, strips characters that are neither alphanumeric
// nor whitespace, removes stop words, and stems each surviving word.
// Empty input yields an empty slice; callers treat that as "no match".
func (n *Normalizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := stripNonAlnum(strings.ToLower(text))
	words := strings.Fields(cleaned)

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := n.stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, english.Stem(w, false))
	}
	return tokens
}

// Normalize returns the token sequence joined with single spaces.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// TokenSet returns the tokens as a membership set.
func (n *Normalizer) TokenSet(text string) map[string]struct{} {
	tokens := n.Tokens(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func stripNonAlnum(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FoldWhitespace lowercases the text and collapses runs of whitespace into
// single spaces without touching punctuation. Exact-match comparisons use
// this lighter canonical form.
func FoldWhitespace(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(text))), " ")
}
