package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CorpusRecord is a single question/answer pair loaded from a corpus source.
// Records are immutable once loaded; the corpus is rebuilt in full when the
// blocklist changes.
type CorpusRecord struct {
	Id         ID
	Question   string
	Answer     string
	Keywords   []string
	Variations []string // declared paraphrases of the question
	Department string   // disambiguation entity tag; empty means none
	Category   string
	// ConfidenceBias is a source-priority boost in [0,1]. It only raises a
	// match score, never lowers it.
	ConfidenceBias float64
	SourceID       string
	// LoadOrder records the position in the load sequence and breaks score
	// ties after ConfidenceBias (first loaded wins).
	LoadOrder int
}

// MatchType identifies which matching strategy produced a result.
type MatchType int

const (
	MatchNone MatchType = iota
	MatchExact
	MatchVariationExact
	MatchWordOverlap
	MatchTFIDF
)

func (t MatchType) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchVariationExact:
		return "variation_exact"
	case MatchWordOverlap:
		return "word_overlap"
	case MatchTFIDF:
		return "tfidf"
	default:
		return "no_match"
	}
}

// ScoreBreakdown holds the per-strategy sub-scores behind a combined score.
type ScoreBreakdown struct {
	TFIDF     float64
	Keyword   float64
	Variation float64
	Phrase    float64
	Entity    float64
}

// MatchResult is produced per query and references a corpus record together
// with its combined relevance score.
type MatchResult struct {
	Record    *CorpusRecord
	Score     float64
	Breakdown ScoreBreakdown
	Type      MatchType
}

// Verdict is the user's judgement of an answer.
type Verdict int

const (
	// VerdictLike marks an answer the user accepted.
	VerdictLike Verdict = iota + 1
	// VerdictDislike marks an answer the user rejected. Disliked answers are
	// blocked permanently.
	VerdictDislike
)

func (v Verdict) String() string {
	switch v {
	case VerdictLike:
		return "like"
	case VerdictDislike:
		return "dislike"
	default:
		return "unknown"
	}
}

// ParseVerdict converts the wire representation ("like"/"dislike") to a Verdict.
func ParseVerdict(s string) (Verdict, bool) {
	switch s {
	case "like":
		return VerdictLike, true
	case "dislike":
		return VerdictDislike, true
	default:
		return 0, false
	}
}

// FeedbackEntry is an append-only record of a like/dislike signal.
// Entries are never mutated after creation.
type FeedbackEntry struct {
	Id        ID
	Question  string
	Answer    string
	Verdict   Verdict
	Timestamp time.Time
}

// BlockedAnswer is derived from a dislike and retained permanently.
// Any corpus record whose answer equals Answer is excluded from future
// searches, and generated answers too similar to Answer are rejected.
type BlockedAnswer struct {
	Id        ID
	Answer    string
	Question  string
	Timestamp time.Time
}

// SourceRef points a response back at the corpus records that informed it.
type SourceRef struct {
	Question   string
	Source     string
	Confidence float64
}

// Response is the terminal answer returned for a query.
type Response struct {
	Answer     string
	Confidence float64
	Method     string
	Sources    []SourceRef
}

// FeedbackResult reports the outcome of recording a feedback signal.
type FeedbackResult struct {
	Status       string
	Action       string
	BlockedCount int
}
