package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDiscoverSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "cse.json", `[]`)
	writeSource(t, dir, "CSE_improved.json", `[]`)
	writeSource(t, dir, "Admissions.json", `[]`)
	writeSource(t, dir, "Fee_Summary_CRITICAL.json", `[]`)
	writeSource(t, dir, "notes.txt", `ignored`)

	sources, err := DiscoverSources(dir)
	require.NoError(t, err)
	require.Len(t, sources, 4)

	t.Run("priority files come first", func(t *testing.T) {
		assert.True(t, sources[0].Priority)
		assert.True(t, sources[1].Priority)
		names := []string{sources[0].ID, sources[1].ID}
		assert.Contains(t, names, "CSE_improved.json")
		assert.Contains(t, names, "Fee_Summary_CRITICAL.json")
	})

	t.Run("legacy file is marked superseded", func(t *testing.T) {
		var legacy *Source
		for i := range sources {
			if sources[i].ID == "cse.json" {
				legacy = &sources[i]
			}
		}
		require.NotNil(t, legacy)
		assert.True(t, legacy.Superseded)
		assert.False(t, legacy.Priority)
	})

	t.Run("legacy without replacement stays live", func(t *testing.T) {
		lone := t.TempDir()
		writeSource(t, lone, "cse.json", `[]`)
		got, err := DiscoverSources(lone)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.False(t, got[0].Superseded)
	})
}

func TestCorpusLoad(t *testing.T) {
	norm := textnorm.New()

	t.Run("superseded duplicates are skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeSource(t, dir, "CSE_improved.json", `[
			{"question": "What is the semester fee for CSE?", "answer": "The semester fee for CSE is BDT 70,000."}
		]`)
		writeSource(t, dir, "cse.json", `[
			{"question": "What is the semester fee for CSE?", "answer": "Old stale fee answer."},
			{"question": "Who chairs the CSE department?", "answer": "The CSE department is chaired by Dr. Rahman."}
		]`)

		sources, err := DiscoverSources(dir)
		require.NoError(t, err)

		c, err := New(norm)
		require.NoError(t, err)
		require.NoError(t, c.Load(sources))

		require.Equal(t, 2, c.Len())
		assert.Equal(t, "The semester fee for CSE is BDT 70,000.", c.Records()[0].Answer)
		assert.Equal(t, "Who chairs the CSE department?", c.Records()[1].Question)
	})

	t.Run("unreadable source is skipped not fatal", func(t *testing.T) {
		dir := t.TempDir()
		writeSource(t, dir, "broken.json", `{not json`)
		writeSource(t, dir, "good.json", `[
			{"question": "Where is the campus?", "answer": "The campus is in Dhaka."}
		]`)

		sources, err := DiscoverSources(dir)
		require.NoError(t, err)

		c, err := New(norm)
		require.NoError(t, err)
		require.NoError(t, c.Load(sources))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("invalid records are dropped individually", func(t *testing.T) {
		dir := t.TempDir()
		writeSource(t, dir, "mixed.json", `[
			{"question": "", "answer": "no question"},
			{"question": "Is there a library?", "answer": "Yes, open 8am to 10pm."}
		]`)

		sources, err := DiscoverSources(dir)
		require.NoError(t, err)

		c, err := New(norm)
		require.NoError(t, err)
		require.NoError(t, c.Load(sources))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("empty corpus is an error", func(t *testing.T) {
		c, err := New(norm)
		require.NoError(t, err)
		err = c.Load(nil)
		assert.ErrorIs(t, err, ErrEmptyCorpus)
	})

	t.Run("nil normalizer", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrNormalizerRequired)
	})
}

func TestRecordBias(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "Fee_Summary_CRITICAL.json", `[
		{"question": "How much is the CSE fee?", "answer": "BDT 70,000 per semester."}
	]`)
	writeSource(t, dir, "Clubs.json", `[
		{"question": "Are there student clubs?", "answer": "Yes, several.", "priority": "high"},
		{"question": "Is there a debate club?", "answer": "Yes.", "priority": "high", "confidence_score": 0.5},
		{"question": "Is there a chess club?", "answer": "Yes."}
	]`)

	sources, err := DiscoverSources(dir)
	require.NoError(t, err)

	c, err := New(textnorm.New())
	require.NoError(t, err)
	require.NoError(t, c.Load(sources))

	byQuestion := make(map[string]*core.CorpusRecord)
	for _, r := range c.Records() {
		byQuestion[r.Question] = r
	}

	assert.InDelta(t, 0.2, byQuestion["How much is the CSE fee?"].ConfidenceBias, 1e-9)
	assert.InDelta(t, 0.1, byQuestion["Are there student clubs?"].ConfidenceBias, 1e-9)
	assert.InDelta(t, 0.05, byQuestion["Is there a debate club?"].ConfidenceBias, 1e-9)
	assert.Zero(t, byQuestion["Is there a chess club?"].ConfidenceBias)
}

func TestCorpusExclude(t *testing.T) {
	c, err := New(textnorm.New())
	require.NoError(t, err)
	require.NoError(t, c.Add(
		&core.CorpusRecord{Question: "Q1?", Answer: "Answer one."},
		&core.CorpusRecord{Question: "Q2?", Answer: "Answer two."},
		&core.CorpusRecord{Question: "Q3?", Answer: "Answer three."},
	))

	t.Run("empty blocklist returns everything", func(t *testing.T) {
		assert.Len(t, c.Exclude(nil), 3)
	})

	t.Run("blocked answers are filtered", func(t *testing.T) {
		kept := c.Exclude(map[string]struct{}{"Answer two.": {}})
		require.Len(t, kept, 2)
		assert.Equal(t, "Answer one.", kept[0].Answer)
		assert.Equal(t, "Answer three.", kept[1].Answer)
	})

	t.Run("original collection untouched", func(t *testing.T) {
		c.Exclude(map[string]struct{}{"Answer one.": {}})
		assert.Equal(t, 3, c.Len())
	})
}
