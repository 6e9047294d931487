package search

import (
	"log/slog"
	"sort"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/entity"
	"github.com/poiesic/answerit/textnorm"
)

// Weights configures the blended scoring formula and its thresholds.
type Weights struct {
	// TFIDF, Keyword, Variation, Phrase and Entity weight the sub-scores
	// of the blended strategy. They are weights over sub-scores, not a
	// probability distribution, and need not sum to 1.
	TFIDF     float64
	Keyword   float64
	Variation float64
	Phrase    float64
	Entity    float64

	// EntityBoost is the entity sub-score when a record belongs to the
	// query's detected entity; EntityPenalty applies when the record
	// clearly belongs to a different one. The penalty is deliberately
	// larger than the boost.
	EntityBoost   float64
	EntityPenalty float64

	// WordOverlapFloor is the minimum blended jaccard/coverage similarity
	// for the word-overlap short-circuit tier.
	WordOverlapFloor float64

	// MinScore is the relevance floor. Blended scores below it are treated
	// as no match at all.
	MinScore float64

	// BiasWeight scales a record's confidence bias before it is added to a
	// positive blended score.
	BiasWeight float64
}

// DefaultWeights are the tuned production values.
func DefaultWeights() Weights {
	return Weights{
		TFIDF:            0.4,
		Keyword:          0.2,
		Variation:        0.1,
		Phrase:           0.1,
		Entity:           0.2,
		EntityBoost:      0.4,
		EntityPenalty:    -0.5,
		WordOverlapFloor: 0.5,
		MinScore:         0.25,
		BiasWeight:       0.05,
	}
}

// Validate checks the configuration for values that would break scoring.
func (w Weights) Validate() error {
	if w.TFIDF < 0 || w.Keyword < 0 || w.Variation < 0 || w.Phrase < 0 || w.Entity < 0 {
		return ErrInvalidWeights
	}
	if w.MinScore < 0 || w.MinScore > 1 || w.WordOverlapFloor < 0 || w.WordOverlapFloor > 1 {
		return ErrInvalidWeights
	}
	if w.EntityPenalty > 0 || w.BiasWeight < 0 {
		return ErrInvalidWeights
	}
	return nil
}

// Scorer ranks indexed corpus records against a query using layered
// strategies: exact question match, exact variation match, word-overlap
// similarity, then the blended token-frequency formula. Earlier strategies
// short-circuit later ones. Safe for concurrent use.
type Scorer struct {
	norm     *textnorm.Normalizer
	detector *entity.Detector
	weights  Weights
	logger   *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithWeights overrides the default weight configuration.
func WithWeights(w Weights) Option {
	return func(s *Scorer) error {
		if err := w.Validate(); err != nil {
			return err
		}
		s.weights = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a new scorer.
func NewScorer(norm *textnorm.Normalizer, detector *entity.Detector, opts ...Option) (*Scorer, error) {
	if norm == nil {
		return nil, ErrNormalizerRequired
	}
	if detector == nil {
		return nil, ErrDetectorRequired
	}

	s := &Scorer{
		norm:     norm,
		detector: detector,
		weights:  DefaultWeights(),
		logger:   slog.Default().With("component", "scorer"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Weights returns the active weight configuration.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score ranks the index against query. The detected entity tag biases the
// blended strategy and guards the similarity tiers against cross-entity
// results. Returns matches above the relevance floor sorted best first, or
// an empty slice when nothing qualifies.
func (s *Scorer) Score(query string, tag entity.Tag, ix *corpus.Index) []*core.MatchResult {
	if ix == nil || ix.Len() == 0 || query == "" {
		return nil
	}

	folded := textnorm.FoldWhitespace(query)
	queryWords := fieldsSet(folded)
	queryTokens := s.norm.Tokens(query)
	queryTokenSet := make(map[string]struct{}, len(queryTokens))
	for _, tok := range queryTokens {
		queryTokenSet[tok] = struct{}{}
	}
	phrases := extractPhrases(folded)

	docs := ix.Docs()

	// Tier 1: exact question or variation text.
	for i := range docs {
		doc := &docs[i]
		if doc.FoldedQuestion == folded {
			return []*core.MatchResult{{
				Record: doc.Record,
				Score:  1.0,
				Type:   core.MatchExact,
			}}
		}
		for _, v := range doc.FoldedVariations {
			if v == folded {
				return []*core.MatchResult{{
					Record: doc.Record,
					Score:  0.98,
					Type:   core.MatchVariationExact,
				}}
			}
		}
	}

	// Tier 2: word-overlap similarity. Key for near-verbatim paraphrases
	// that tokenization would dilute.
	if best := s.wordOverlap(docs, queryWords, tag); best != nil {
		return []*core.MatchResult{best}
	}

	// Tier 3: blended token-frequency scoring over the whole index.
	sims := ix.Similarities(queryTokens)
	results := make([]*core.MatchResult, 0, 8)
	for i := range docs {
		doc := &docs[i]
		breakdown := core.ScoreBreakdown{
			TFIDF:     sims[i],
			Keyword:   keywordCoverage(queryTokenSet, doc.KeywordSet),
			Variation: bestVariationJaccard(queryTokenSet, doc.VariationTokenSets),
			Phrase:    phraseScore(phrases, doc.LowerQuestion),
			Entity:    s.entityScore(doc, tag),
		}

		score := breakdown.TFIDF*s.weights.TFIDF +
			breakdown.Keyword*s.weights.Keyword +
			breakdown.Variation*s.weights.Variation +
			breakdown.Phrase*s.weights.Phrase +
			breakdown.Entity*s.weights.Entity

		// The bias only ever raises a score that is already positive.
		if score > 0 && doc.Record.ConfidenceBias > 0 {
			score += doc.Record.ConfidenceBias * s.weights.BiasWeight
		}
		if score > 1 {
			score = 1
		}
		if score < s.weights.MinScore {
			continue
		}

		results = append(results, &core.MatchResult{
			Record:    doc.Record,
			Score:     score,
			Breakdown: breakdown,
			Type:      core.MatchTFIDF,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Record.ConfidenceBias != results[j].Record.ConfidenceBias {
			return results[i].Record.ConfidenceBias > results[j].Record.ConfidenceBias
		}
		return results[i].Record.LoadOrder < results[j].Record.LoadOrder
	})
	return results
}

// wordOverlap runs the second-tier similarity pass: the mean of jaccard
// similarity and query coverage over folded word sets, against the question
// and each variation. Only word sets of two or more on both sides
// participate; shorter texts are left to the blended tier. The best-scoring
// doc across the whole corpus wins if it reaches the floor.
func (s *Scorer) wordOverlap(docs []corpus.Doc, queryWords map[string]struct{}, tag entity.Tag) *core.MatchResult {
	if len(queryWords) < 2 {
		return nil
	}
	var (
		bestDoc *corpus.Doc
		bestSim float64
	)
	for i := range docs {
		doc := &docs[i]
		if s.conflictsWith(doc, tag) {
			continue
		}

		sim := 0.0
		if len(doc.QuestionWords) >= 2 {
			sim = overlapSimilarity(queryWords, doc.QuestionWords)
		}
		for _, vw := range doc.VariationWords {
			if len(vw) < 2 {
				continue
			}
			if v := overlapSimilarity(queryWords, vw); v > sim {
				sim = v
			}
		}
		if sim > bestSim {
			bestSim = sim
			bestDoc = doc
		}
	}
	if bestDoc == nil || bestSim < s.weights.WordOverlapFloor {
		return nil
	}

	confidence := 0.85 + 0.15*bestSim
	if confidence > 0.98 {
		confidence = 0.98
	}
	return &core.MatchResult{
		Record: bestDoc.Record,
		Score:  confidence,
		Type:   core.MatchWordOverlap,
	}
}

// conflictsWith reports whether doc clearly belongs to a different entity
// than the query's detected tag. Used to keep the similarity tiers from
// answering one department's question with another's record.
func (s *Scorer) conflictsWith(doc *corpus.Doc, tag entity.Tag) bool {
	if tag == "" {
		return false
	}
	if s.detector.Matches(doc.Record.Department, doc.Record.Question, tag) {
		return false
	}
	if doc.Record.Department != "" {
		return true
	}
	return s.detector.MentionsOther(doc.Record.Question, doc.Record.Answer, tag)
}

func (s *Scorer) entityScore(doc *corpus.Doc, tag entity.Tag) float64 {
	if tag == "" {
		return 0
	}
	if s.detector.Matches(doc.Record.Department, doc.Record.Question, tag) {
		return s.weights.EntityBoost
	}
	if doc.Record.Department != "" || s.detector.MentionsOther(doc.Record.Question, doc.Record.Answer, tag) {
		return s.weights.EntityPenalty
	}
	return 0
}

// overlapSimilarity blends jaccard similarity with query coverage, each
// weighted equally.
func overlapSimilarity(query, doc map[string]struct{}) float64 {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}
	inter := 0
	for w := range query {
		if _, ok := doc[w]; ok {
			inter++
		}
	}
	if inter == 0 {
		return 0
	}
	union := len(query) + len(doc) - inter
	jaccard := float64(inter) / float64(union)
	coverage := float64(inter) / float64(len(query))
	return jaccard*0.5 + coverage*0.5
}

// keywordCoverage is the fraction of query tokens present in the record's
// keyword set.
func keywordCoverage(query, keywords map[string]struct{}) float64 {
	if len(query) == 0 || len(keywords) == 0 {
		return 0
	}
	inter := 0
	for tok := range query {
		if _, ok := keywords[tok]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(query))
}

// bestVariationJaccard is the highest jaccard similarity between the query
// tokens and any variation's tokens.
func bestVariationJaccard(query map[string]struct{}, variations []map[string]struct{}) float64 {
	best := 0.0
	for _, varSet := range variations {
		if len(query) == 0 || len(varSet) == 0 {
			continue
		}
		inter := 0
		for tok := range query {
			if _, ok := varSet[tok]; ok {
				inter++
			}
		}
		union := len(query) + len(varSet) - inter
		if j := float64(inter) / float64(union); j > best {
			best = j
		}
	}
	return best
}

func fieldsSet(folded string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range splitFields(folded) {
		set[w] = struct{}{}
	}
	return set
}
