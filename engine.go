// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package answerit

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/entity"
	"github.com/poiesic/answerit/facts"
	"github.com/poiesic/answerit/feedback"
	"github.com/poiesic/answerit/router"
	"github.com/poiesic/answerit/search"
	"github.com/poiesic/answerit/storage"
	"github.com/poiesic/answerit/textnorm"
)

var (
	// ErrRepositoryRequired is returned when a feedback repository is not provided.
	ErrRepositoryRequired = errors.New("feedback repository required")

	// ErrNoCorpus is returned when neither a data directory, sources nor
	// records were provided.
	ErrNoCorpus = errors.New("no corpus configured")
)

// factDowngradeScore replaces the match score when the matched answer
// contradicts the fact table, pushing it out of the verbatim band.
const factDowngradeScore = 0.3

// maxContextMatches caps how many weak matches are injected into a
// generative prompt.
const maxContextMatches = 3

// Method tags reported in responses.
const (
	methodExactMatch     = "exact_question_match"
	methodVariationExact = "variation_exact_match"
	methodWordSimilarity = "high_word_similarity"
	methodDatasetHigh    = "dataset_match_high"
	methodDatasetMedium  = "dataset_match_medium"
	methodLLMEnhanced    = "llm_enhanced"
	methodLLMPrimary     = "llm_primary"
	methodRefusal        = "fallback_refusal"
)

// Engine answers questions by matching them against the corpus, routing on
// confidence and falling back to the generative backend. It owns the
// feedback loop: a dislike blocks the answer and rebuilds the index without
// it. Safe for concurrent use.
type Engine struct {
	// mu guards index. Feedback handling takes the write lock so a
	// record-plus-rebuild is atomic with respect to queries.
	mu    sync.RWMutex
	index *corpus.Index

	corpus     *corpus.Corpus
	store      *feedback.Store
	scorer     *search.Scorer
	detector   *entity.Detector
	validator  *facts.Validator
	norm       *textnorm.Normalizer
	thresholds router.Thresholds
	generator  ai.Generator
	retryTemp  float64
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	dataDir    string
	sources    []corpus.Source
	records    []*core.CorpusRecord
	generator  ai.Generator
	thresholds router.Thresholds
	weights    *search.Weights
	similarity *float64
	validator  *facts.Validator
	detector   *entity.Detector
	retryTemp  float64
	logger     *slog.Logger
}

// WithDataDir loads the corpus from the JSON files under dir.
func WithDataDir(dir string) EngineOption {
	return func(o *engineOptions) {
		o.dataDir = dir
	}
}

// WithSources loads the corpus from an explicit source list.
func WithSources(sources []corpus.Source) EngineOption {
	return func(o *engineOptions) {
		o.sources = sources
	}
}

// WithRecords seeds the corpus programmatically.
func WithRecords(records ...*core.CorpusRecord) EngineOption {
	return func(o *engineOptions) {
		o.records = records
	}
}

// WithGenerator sets the generative backend. Without one the engine serves
// corpus answers and refusals only.
func WithGenerator(generator ai.Generator) EngineOption {
	return func(o *engineOptions) {
		o.generator = generator
	}
}

// WithThresholds overrides the routing thresholds.
func WithThresholds(thresholds router.Thresholds) EngineOption {
	return func(o *engineOptions) {
		o.thresholds = thresholds
	}
}

// WithWeights overrides the scoring weights.
func WithWeights(weights search.Weights) EngineOption {
	return func(o *engineOptions) {
		o.weights = &weights
	}
}

// WithBlockSimilarity overrides the blocklist similarity threshold.
func WithBlockSimilarity(threshold float64) EngineOption {
	return func(o *engineOptions) {
		o.similarity = &threshold
	}
}

// WithValidator overrides the fact validator.
func WithValidator(validator *facts.Validator) EngineOption {
	return func(o *engineOptions) {
		o.validator = validator
	}
}

// WithDetector overrides the entity detector.
func WithDetector(detector *entity.Detector) EngineOption {
	return func(o *engineOptions) {
		o.detector = detector
	}
}

// WithRetryTemperature sets the temperature used when a generated answer
// collides with the blocklist and must be regenerated.
func WithRetryTemperature(temperature float64) EngineOption {
	return func(o *engineOptions) {
		o.retryTemp = temperature
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// NewEngine creates an engine over repo. The corpus is loaded, persisted
// feedback is replayed and the initial index is built before it returns.
func NewEngine(repo storage.FeedbackRepository, opts ...EngineOption) (*Engine, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	options := &engineOptions{
		thresholds: router.DefaultThresholds(),
		retryTemp:  0.9,
		logger:     slog.Default().With("component", "engine"),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.thresholds.Validate(); err != nil {
		return nil, err
	}
	if options.dataDir == "" && options.sources == nil && options.records == nil {
		return nil, ErrNoCorpus
	}

	norm := textnorm.New()
	detector := options.detector
	if detector == nil {
		detector = entity.NewDetector()
	}
	validator := options.validator
	if validator == nil {
		validator = facts.NewValidator()
	}

	scorerOpts := []search.Option{}
	if options.weights != nil {
		scorerOpts = append(scorerOpts, search.WithWeights(*options.weights))
	}
	scorer, err := search.NewScorer(norm, detector, scorerOpts...)
	if err != nil {
		return nil, err
	}

	c, err := corpus.New(norm, corpus.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	sources := options.sources
	if sources == nil && options.dataDir != "" {
		sources, err = corpus.DiscoverSources(options.dataDir)
		if err != nil {
			return nil, err
		}
	}
	if sources != nil {
		if err := c.Load(sources); err != nil {
			return nil, err
		}
	}
	if options.records != nil {
		if err := c.Add(options.records...); err != nil {
			return nil, err
		}
	}

	storeOpts := []feedback.Option{feedback.WithLogger(options.logger)}
	if options.similarity != nil {
		storeOpts = append(storeOpts, feedback.WithSimilarity(*options.similarity))
	}
	store, err := feedback.NewStore(repo, storeOpts...)
	if err != nil {
		return nil, err
	}
	if err := store.Restore(context.Background()); err != nil {
		return nil, err
	}

	e := &Engine{
		corpus:     c,
		store:      store,
		scorer:     scorer,
		detector:   detector,
		validator:  validator,
		norm:       norm,
		thresholds: options.thresholds,
		generator:  options.generator,
		retryTemp:  options.retryTemp,
		logger:     options.logger,
	}
	e.index = e.rebuildIndex()
	return e, nil
}

// rebuildIndex computes a fresh index over the corpus minus the blocked
// answers. Returns nil when nothing survives; queries then fall straight
// through to the generative path.
func (e *Engine) rebuildIndex() *corpus.Index {
	records := e.corpus.Exclude(e.store.BlockedAnswers())
	ix, err := corpus.BuildIndex(records, e.norm, corpus.WithIndexLogger(e.logger))
	if err != nil {
		if errors.Is(err, corpus.ErrEmptyCorpus) {
			e.logger.Warn("no records survive the blocklist, index disabled")
		} else {
			e.logger.Error("index rebuild failed", "err", err)
		}
		return nil
	}
	return ix
}

// Answer resolves question to a response. It never returns an error for a
// question the system merely cannot answer; those produce a refusal
// response instead.
func (e *Engine) Answer(ctx context.Context, question string) (*core.Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, core.ErrEmptyQuestion
	}

	tag, _ := e.detector.Detect(question)

	e.mu.RLock()
	ix := e.index
	e.mu.RUnlock()

	matches := e.scorer.Score(question, tag, ix)

	var (
		best  *core.MatchResult
		score float64
	)
	if len(matches) > 0 {
		best = matches[0]
		score = best.Score

		if !e.validator.Validate(question, best.Record.Answer) {
			e.logger.Warn("matched answer failed fact validation",
				"question", question,
				"source", best.Record.SourceID)
			score = factDowngradeScore
		}
	}

	strategy := router.Route(score, e.generator != nil, e.thresholds)
	e.logger.Debug("routed question",
		"strategy", strategy.String(),
		"score", score,
		"entity", string(tag))

	switch strategy {
	case router.StrategyCorpusExact:
		return &core.Response{
			Answer:     best.Record.Answer,
			Confidence: score,
			Method:     verbatimMethod(best.Type),
			Sources:    sourceRefs(matches),
		}, nil

	case router.StrategyCorpusCaveat:
		return &core.Response{
			Answer:     router.Caveat(best.Record.Answer),
			Confidence: score,
			Method:     methodDatasetMedium,
			Sources:    sourceRefs(matches),
		}, nil

	case router.StrategyGenerativeAugmented:
		hints := matches
		if len(hints) > maxContextMatches {
			hints = hints[:maxContextMatches]
		}
		return e.generate(ctx, question, hints, best)

	case router.StrategyGenerativePrimary:
		return e.generate(ctx, question, nil, nil)

	default:
		return refusalResponse(), nil
	}
}

// generate runs the generative path: one generation, at most one
// regeneration for a non-English response and at most one for a blocklist
// collision. When everything fails it degrades to the best corpus match
// behind a caveat, or to the refusal.
func (e *Engine) generate(ctx context.Context, question string, contextMatches []*core.MatchResult, best *core.MatchResult) (*core.Response, error) {
	prompt := buildPrompt(question, contextMatches)

	response, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		e.logger.Warn("generation failed, degrading", "err", err)
		return e.degrade(best), nil
	}

	if containsNonEnglishScript(response) {
		e.logger.Warn("non-English response, regenerating")
		retry, err := e.generator.Generate(ctx, buildRetryPrompt(prompt, englishReminder))
		if err != nil || containsNonEnglishScript(retry) {
			e.logger.Warn("regeneration still not English, degrading", "err", err)
			return e.degrade(best), nil
		}
		response = retry
	}

	if blocked, match := e.store.IsBlockedOrSimilar(response); blocked {
		e.logger.Warn("generated answer collides with blocklist", "blocked", match)
		retry, err := e.generator.Generate(ctx,
			buildRetryPrompt(prompt, avoidBlockedReminder),
			ai.WithCallTemperature(e.retryTemp))
		if err != nil {
			return e.degrade(best), nil
		}
		if containsNonEnglishScript(retry) {
			e.logger.Warn("regenerated answer not English, degrading")
			return e.degrade(best), nil
		}
		if stillBlocked, again := e.store.IsBlockedOrSimilar(retry); stillBlocked {
			// One retry only. A second collision is served with a warning
			// rather than looping forever.
			e.logger.Warn("regenerated answer still resembles a blocked one, serving anyway", "blocked", again)
		}
		response = retry
	}

	answer := strings.TrimSpace(response)
	method := methodLLMPrimary
	confidence := 0.3
	if len(contextMatches) > 0 {
		// Context-augmented answers rest on a weak match, so they carry
		// the same caveat as a medium-confidence corpus answer.
		answer = router.Caveat(answer)
		method = methodLLMEnhanced
		confidence = 0.5
	}
	return &core.Response{
		Answer:     answer,
		Confidence: confidence,
		Method:     method,
		Sources:    sourceRefs(contextMatches),
	}, nil
}

// degrade is the terminal fallback: the best corpus match behind a caveat
// when one exists, otherwise the refusal.
func (e *Engine) degrade(best *core.MatchResult) *core.Response {
	if best != nil {
		return &core.Response{
			Answer:     router.Caveat(best.Record.Answer),
			Confidence: best.Score,
			Method:     methodDatasetMedium,
			Sources:    sourceRefs([]*core.MatchResult{best}),
		}
	}
	return refusalResponse()
}

// Feedback records a like/dislike for a question/answer pair. A dislike
// that blocks a new answer also rebuilds the index without it before
// returning, so the blocked answer can never be served again.
func (e *Engine) Feedback(ctx context.Context, question, answer string, verdict core.Verdict) (*core.FeedbackResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.store.Record(ctx, question, answer, verdict)
	if err != nil {
		return nil, err
	}

	if result.Action == feedback.ActionAnswerBlocked {
		e.index = e.rebuildIndex()
		e.logger.Info("index rebuilt after dislike", "blocked", result.BlockedCount)
	}
	return result, nil
}

// Stats summarizes the engine state.
type Stats struct {
	CorpusSize     int
	IndexedRecords int
	Feedback       feedback.Stats
	Generative     bool
}

// Stats reports corpus, index and feedback counters.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	indexed := 0
	if e.index != nil {
		indexed = e.index.Len()
	}
	e.mu.RUnlock()

	return Stats{
		CorpusSize:     e.corpus.Len(),
		IndexedRecords: indexed,
		Feedback:       e.store.Stats(),
		Generative:     e.generator != nil,
	}
}

// Close releases the generative backend. The feedback repository is owned
// by the caller and closed separately.
func (e *Engine) Close() error {
	if e.generator != nil {
		return e.generator.Close()
	}
	return nil
}

func verbatimMethod(t core.MatchType) string {
	switch t {
	case core.MatchExact:
		return methodExactMatch
	case core.MatchVariationExact:
		return methodVariationExact
	case core.MatchWordOverlap:
		return methodWordSimilarity
	default:
		return methodDatasetHigh
	}
}

func refusalResponse() *core.Response {
	return &core.Response{
		Answer:     router.Refusal(),
		Confidence: 0,
		Method:     methodRefusal,
	}
}

func sourceRefs(matches []*core.MatchResult) []core.SourceRef {
	if len(matches) == 0 {
		return nil
	}
	refs := make([]core.SourceRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, core.SourceRef{
			Question:   m.Record.Question,
			Source:     m.Record.SourceID,
			Confidence: m.Score,
		})
	}
	return refs
}
