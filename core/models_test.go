package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("What is the CSE fee?")
		id2 := IDFromContent("What is the CSE fee?")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content different IDs", func(t *testing.T) {
		id1 := IDFromContent("What is the CSE fee?")
		id2 := IDFromContent("What is the EEE fee?")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestMatchTypeString(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "variation_exact", MatchVariationExact.String())
	assert.Equal(t, "word_overlap", MatchWordOverlap.String())
	assert.Equal(t, "tfidf", MatchTFIDF.String())
	assert.Equal(t, "no_match", MatchNone.String())
}

func TestParseVerdict(t *testing.T) {
	v, ok := ParseVerdict("like")
	require.True(t, ok)
	assert.Equal(t, VerdictLike, v)

	v, ok = ParseVerdict("dislike")
	require.True(t, ok)
	assert.Equal(t, VerdictDislike, v)

	_, ok = ParseVerdict("meh")
	assert.False(t, ok)
}

func TestFeedbackEntryMUSRoundTrip(t *testing.T) {
	entry := FeedbackEntry{
		Id:        IDFromContent("q|a"),
		Question:  "What is the CSE fee?",
		Answer:    "BDT 70,000 per semester",
		Verdict:   VerdictDislike,
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, FeedbackEntryMUS.Size(entry))
	n := FeedbackEntryMUS.Marshal(entry, buf)
	require.Equal(t, len(buf), n)

	decoded, n, err := FeedbackEntryMUS.Unmarshal(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	assert.Equal(t, entry, decoded)
}

func TestBlockedAnswerMUSRoundTrip(t *testing.T) {
	blocked := BlockedAnswer{
		Id:        IDFromContent("BDT 75,000 per semester"),
		Answer:    "BDT 75,000 per semester",
		Question:  "What is the CSE fee?",
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, BlockedAnswerMUS.Size(blocked))
	n := BlockedAnswerMUS.Marshal(blocked, buf)
	require.Equal(t, len(buf), n)

	decoded, n, err := BlockedAnswerMUS.Unmarshal(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	assert.Equal(t, blocked, decoded)
}

func TestFeedbackEntryMUSTruncated(t *testing.T) {
	entry := FeedbackEntry{
		Id:        1,
		Question:  "q",
		Answer:    "a",
		Verdict:   VerdictLike,
		Timestamp: time.Now().UTC(),
	}
	buf := make([]byte, FeedbackEntryMUS.Size(entry))
	FeedbackEntryMUS.Marshal(entry, buf)

	_, _, err := FeedbackEntryMUS.Unmarshal(buf[:2])
	assert.Error(t, err)
}
