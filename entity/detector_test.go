package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		query string
		want  Tag
		found bool
	}{
		{"How much is the EEE program fee?", TagEEE, true},
		{"what is the electrical engineering tuition", TagEEE, true},
		{"What is the CSE fee?", TagCSE, true},
		{"tell me about computer science admission", TagCSE, true},
		{"BBA program details", TagBBA, true},
		{"textile engineering curriculum", TagTextile, true},
		{"LLB admission requirements", TagLaw, true},
		{"ba english literature courses", TagEnglish, true},
		{"journalism and media studies", TagJournalism, true},
		{"what are the library hours", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			tag, found := d.Detect(tt.query)
			require.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, tag)
		})
	}
}

func TestDetectOrderMatters(t *testing.T) {
	d := NewDetector()

	// "electrical" appears before any CSE pattern can match, so a query
	// mentioning both departments resolves to the first table row.
	tag, found := d.Detect("electrical vs computer science")
	require.True(t, found)
	assert.Equal(t, TagEEE, tag)
}

func TestMentionsOther(t *testing.T) {
	d := NewDetector()

	t.Run("different department detected", func(t *testing.T) {
		assert.True(t, d.MentionsOther(
			"What is the CSE fee?", "The CSE fee is BDT 70,000 per semester", TagEEE))
	})

	t.Run("same department is not flagged", func(t *testing.T) {
		assert.False(t, d.MentionsOther(
			"What is the EEE fee?", "The EEE fee is BDT 80,000 per semester", TagEEE))
	})

	t.Run("no target means no flag", func(t *testing.T) {
		assert.False(t, d.MentionsOther("What is the CSE fee?", "BDT 70,000", ""))
	})

	t.Run("neutral record is not flagged", func(t *testing.T) {
		assert.False(t, d.MentionsOther(
			"What are the library hours?", "The library is open 8am to 10pm", TagCSE))
	})
}

func TestMatches(t *testing.T) {
	d := NewDetector()

	assert.True(t, d.Matches("eee", "What is the fee?", TagEEE))
	assert.True(t, d.Matches("", "What is the EEE fee?", TagEEE))
	assert.False(t, d.Matches("cse", "What is the CSE fee?", TagEEE))
	assert.False(t, d.Matches("eee", "What is the EEE fee?", ""))
}

func TestWithPatterns(t *testing.T) {
	d := NewDetector(WithPatterns(Tag("pharmacy"), "pharmacy", "pharm"))
	tag, found := d.Detect("pharmacy admission")
	require.True(t, found)
	assert.Equal(t, Tag("pharmacy"), tag)
}
