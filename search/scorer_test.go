package search

import (
	"testing"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/entity"
	"github.com/poiesic/answerit/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, norm *textnorm.Normalizer) *corpus.Index {
	t.Helper()
	ix, err := corpus.BuildIndex([]*core.CorpusRecord{
		{
			Id:         1,
			Question:   "What is the semester fee for CSE?",
			Answer:     "The semester fee for CSE is BDT 70,000.",
			Keywords:   []string{"cse", "fee", "tuition"},
			Variations: []string{"How much does CSE cost per semester?"},
			Department: "cse",
			LoadOrder:  0,
		},
		{
			Id:         2,
			Question:   "What is the semester fee for EEE?",
			Answer:     "The semester fee for EEE is BDT 80,000.",
			Keywords:   []string{"eee", "fee", "tuition"},
			Variations: []string{"How much does EEE cost per semester?"},
			Department: "eee",
			LoadOrder:  1,
		},
		{
			Id:        3,
			Question:  "Where is the main library located?",
			Answer:    "The main library is on the third floor of Building A.",
			Keywords:  []string{"library", "location"},
			LoadOrder: 2,
		},
	}, norm)
	require.NoError(t, err)
	return ix
}

func newTestScorer(t *testing.T) (*Scorer, *corpus.Index) {
	t.Helper()
	norm := textnorm.New()
	scorer, err := NewScorer(norm, entity.NewDetector())
	require.NoError(t, err)
	return scorer, buildTestIndex(t, norm)
}

func TestNewScorer(t *testing.T) {
	norm := textnorm.New()

	t.Run("nil normalizer", func(t *testing.T) {
		_, err := NewScorer(nil, entity.NewDetector())
		assert.ErrorIs(t, err, ErrNormalizerRequired)
	})

	t.Run("nil detector", func(t *testing.T) {
		_, err := NewScorer(norm, nil)
		assert.ErrorIs(t, err, ErrDetectorRequired)
	})

	t.Run("rejects bad weights", func(t *testing.T) {
		w := DefaultWeights()
		w.EntityPenalty = 0.5
		_, err := NewScorer(norm, entity.NewDetector(), WithWeights(w))
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})
}

func TestScoreExactTiers(t *testing.T) {
	scorer, ix := newTestScorer(t)

	t.Run("exact question match is certainty", func(t *testing.T) {
		results := scorer.Score("What is the semester fee for CSE?", entity.TagCSE, ix)
		require.Len(t, results, 1)
		assert.Equal(t, core.ID(1), results[0].Record.Id)
		assert.Equal(t, 1.0, results[0].Score)
		assert.Equal(t, core.MatchExact, results[0].Type)
	})

	t.Run("case and whitespace are folded", func(t *testing.T) {
		results := scorer.Score("  what is THE semester   fee for cse?  ", entity.TagCSE, ix)
		require.Len(t, results, 1)
		assert.Equal(t, core.MatchExact, results[0].Type)
	})

	t.Run("exact variation match", func(t *testing.T) {
		results := scorer.Score("How much does EEE cost per semester?", entity.TagEEE, ix)
		require.Len(t, results, 1)
		assert.Equal(t, core.ID(2), results[0].Record.Id)
		assert.Equal(t, 0.98, results[0].Score)
		assert.Equal(t, core.MatchVariationExact, results[0].Type)
	})
}

func TestScoreWordOverlap(t *testing.T) {
	scorer, ix := newTestScorer(t)

	t.Run("near-verbatim paraphrase short-circuits", func(t *testing.T) {
		results := scorer.Score("what is the semester fee for the CSE", entity.TagCSE, ix)
		require.NotEmpty(t, results)
		assert.Equal(t, core.ID(1), results[0].Record.Id)
		assert.Equal(t, core.MatchWordOverlap, results[0].Type)
		assert.GreaterOrEqual(t, results[0].Score, 0.85)
		assert.LessOrEqual(t, results[0].Score, 0.98)
	})

	t.Run("entity conflict blocks the overlap tier", func(t *testing.T) {
		// Near-verbatim overlap with the CSE record, but the query asks
		// about EEE. The CSE record must never win.
		results := scorer.Score("what is the semester fee for electrical engineering", entity.TagEEE, ix)
		require.NotEmpty(t, results)
		assert.Equal(t, core.ID(2), results[0].Record.Id)
	})

	t.Run("single-word query skips the overlap tier", func(t *testing.T) {
		// "fees" appears in both fee questions, but one shared word is not
		// a paraphrase. The blended tier ranks it instead.
		results := scorer.Score("fees", "", ix)
		require.NotEmpty(t, results)
		assert.Equal(t, core.MatchTFIDF, results[0].Type)
		assert.Less(t, results[0].Score, 0.85)
	})

	t.Run("single-word question skips the overlap tier", func(t *testing.T) {
		norm := textnorm.New()
		short, err := NewScorer(norm, entity.NewDetector())
		require.NoError(t, err)
		shortIx, err := corpus.BuildIndex([]*core.CorpusRecord{
			{
				Id:       1,
				Question: "fees",
				Answer:   "See the fee schedule.",
				Keywords: []string{"fee"},
			},
		}, norm)
		require.NoError(t, err)

		results := short.Score("semester fees information", "", shortIx)
		for _, r := range results {
			assert.NotEqual(t, core.MatchWordOverlap, r.Type)
		}
	})

	t.Run("best overlap wins over the first above the floor", func(t *testing.T) {
		norm := textnorm.New()
		best, err := NewScorer(norm, entity.NewDetector())
		require.NoError(t, err)
		bestIx, err := corpus.BuildIndex([]*core.CorpusRecord{
			{
				Id:        1,
				Question:  "admission office hours and location",
				Answer:    "Room 101, weekdays.",
				LoadOrder: 0,
			},
			{
				Id:        2,
				Question:  "admission office hours today",
				Answer:    "Open until 4pm today.",
				LoadOrder: 1,
			},
		}, norm)
		require.NoError(t, err)

		// Both records clear the floor; the closer phrasing must win even
		// though it loads later.
		results := best.Score("admission office hours today please", "", bestIx)
		require.Len(t, results, 1)
		assert.Equal(t, core.ID(2), results[0].Record.Id)
		assert.Equal(t, core.MatchWordOverlap, results[0].Type)
	})
}

func TestScoreBlended(t *testing.T) {
	scorer, ix := newTestScorer(t)

	t.Run("entity tag separates departments", func(t *testing.T) {
		results := scorer.Score("tuition cost for cse program", entity.TagCSE, ix)
		require.NotEmpty(t, results)
		assert.Equal(t, core.ID(1), results[0].Record.Id)
		assert.Equal(t, core.MatchTFIDF, results[0].Type)
		assert.Positive(t, results[0].Breakdown.Entity)

		for _, r := range results[1:] {
			assert.NotEqual(t, core.ID(2), r.Record.Id, "penalized eee record should fall below the floor")
		}
	})

	t.Run("no tag leaves entity sub-score at zero", func(t *testing.T) {
		results := scorer.Score("library location building", "", ix)
		require.NotEmpty(t, results)
		assert.Equal(t, core.ID(3), results[0].Record.Id)
		assert.Zero(t, results[0].Breakdown.Entity)
	})

	t.Run("keyword sub-score is query coverage", func(t *testing.T) {
		norm := textnorm.New()
		kw, err := NewScorer(norm, entity.NewDetector())
		require.NoError(t, err)
		kwIx, err := corpus.BuildIndex([]*core.CorpusRecord{
			{
				Id:       1,
				Question: "Are there scholarships for international students?",
				Answer:   "Merit scholarships are awarded each semester.",
				Keywords: []string{"scholarship"},
			},
		}, norm)
		require.NoError(t, err)

		// One of five query tokens hits the keyword set. A single matching
		// keyword must not score the record as fully keyword-covered.
		results := kw.Score("scholarship deadline international students spring", "", kwIx)
		require.NotEmpty(t, results)
		assert.InDelta(t, 0.2, results[0].Breakdown.Keyword, 1e-9)
	})

	t.Run("irrelevant query yields nothing", func(t *testing.T) {
		results := scorer.Score("weather forecast for tomorrow afternoon", "", ix)
		assert.Empty(t, results)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Nil(t, scorer.Score("", "", ix))
		assert.Nil(t, scorer.Score("anything", "", nil))
	})
}

func TestConfidenceBias(t *testing.T) {
	norm := textnorm.New()
	scorer, err := NewScorer(norm, entity.NewDetector())
	require.NoError(t, err)

	base := core.CorpusRecord{
		Question: "When does the admission period open?",
		Answer:   "Admissions open in January.",
		Keywords: []string{"admission", "period"},
	}
	plain := base
	plain.Id = 1
	plain.LoadOrder = 0
	biased := base
	biased.Id = 2
	biased.ConfidenceBias = 0.2
	biased.LoadOrder = 1

	ix, err := corpus.BuildIndex([]*core.CorpusRecord{&plain, &biased}, norm)
	require.NoError(t, err)

	// The query shares tokens but is not an exact or overlap match, so the
	// blended tier scores both identical records. The bias must break the
	// tie upward.
	results := scorer.Score("admission period start date for new students", "", ix)
	require.Len(t, results, 2)
	assert.Equal(t, core.ID(2), results[0].Record.Id)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestExtractPhrases(t *testing.T) {
	t.Run("bigrams and trigrams in order", func(t *testing.T) {
		phrases := extractPhrases("semester fee for cse")
		assert.Equal(t, []string{
			"semester fee", "fee for", "for cse",
			"semester fee for", "fee for cse",
		}, phrases)
	})

	t.Run("single word has no phrases", func(t *testing.T) {
		assert.Nil(t, extractPhrases("fee"))
	})

	t.Run("phrase score", func(t *testing.T) {
		phrases := extractPhrases("semester fee for cse")
		score := phraseScore(phrases, "what is the semester fee for cse?")
		assert.Equal(t, 1.0, score)
		assert.Zero(t, phraseScore(phrases, "library opening hours"))
	})
}
