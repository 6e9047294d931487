package feedback

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/storage"
	"github.com/poiesic/answerit/textnorm"
)

// defaultSimilarity is the word-overlap threshold above which a candidate
// answer counts as a variant of a blocked one.
const defaultSimilarity = 0.7

// Actions reported in a FeedbackResult.
const (
	ActionNone           = "none"
	ActionAnswerBlocked  = "answer_blocked"
	ActionAlreadyBlocked = "already_blocked"
)

// Stats summarizes the accumulated feedback state.
type Stats struct {
	Total    int
	Likes    int
	Dislikes int
	Blocked  int
}

// Store accumulates like/dislike signals and maintains the permanent
// answer blocklist. In-memory state is authoritative for the life of the
// process; the repository makes it durable across restarts. Safe for
// concurrent use.
type Store struct {
	mu         sync.RWMutex
	repo       storage.FeedbackRepository
	entries    []*core.FeedbackEntry
	blocked    []*core.BlockedAnswer
	blockedSet map[string]struct{}
	similarity float64
	logger     *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithSimilarity overrides the blocklist similarity threshold.
func WithSimilarity(threshold float64) Option {
	return func(s *Store) error {
		if threshold <= 0 || threshold > 1 {
			return ErrInvalidSimilarity
		}
		s.similarity = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates an empty store backed by repo.
func NewStore(repo storage.FeedbackRepository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Store{
		repo:       repo,
		blockedSet: make(map[string]struct{}),
		similarity: defaultSimilarity,
		logger:     slog.Default().With("component", "feedback"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Restore replays the persisted feedback log and blocklist into memory.
// Called once at startup, before the store is shared.
func (s *Store) Restore(ctx context.Context) error {
	entries, err := s.repo.ListFeedback(ctx)
	if err != nil {
		return err
	}
	blocked, err := s.repo.ListBlocked(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.blocked = blocked
	s.blockedSet = make(map[string]struct{}, len(blocked))
	for _, b := range blocked {
		s.blockedSet[b.Answer] = struct{}{}
	}

	s.logger.Info("feedback state restored",
		"entries", len(entries),
		"blocked", len(blocked))
	return nil
}

// Record logs one feedback signal. A dislike also adds the answer to the
// permanent blocklist. Persistence failures are logged and swallowed: the
// in-memory state has already changed and the signal stays effective for
// the life of the process.
func (s *Store) Record(ctx context.Context, question, answer string, verdict core.Verdict) (*core.FeedbackResult, error) {
	entry := &core.FeedbackEntry{
		Question:  question,
		Answer:    answer,
		Verdict:   verdict,
		Timestamp: time.Now().UTC(),
	}
	if err := core.ValidateFeedbackEntry(entry); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)

	action := ActionNone
	if verdict == core.VerdictDislike {
		if _, already := s.blockedSet[answer]; !already {
			blocked := &core.BlockedAnswer{
				Id:        core.IDFromContent(answer),
				Answer:    answer,
				Question:  question,
				Timestamp: entry.Timestamp,
			}
			s.blocked = append(s.blocked, blocked)
			s.blockedSet[answer] = struct{}{}
			action = ActionAnswerBlocked

			if err := s.repo.AppendBlocked(ctx, blocked); err != nil {
				s.logger.Warn("failed to persist blocked answer", "err", err)
			}
		} else {
			action = ActionAlreadyBlocked
		}
	}
	blockedCount := len(s.blocked)
	s.mu.Unlock()

	if _, err := s.repo.AppendFeedback(ctx, entry); err != nil {
		s.logger.Warn("failed to persist feedback entry", "err", err)
	}

	s.logger.Info("feedback recorded",
		"verdict", verdict.String(),
		"action", action,
		"blocked", blockedCount)

	return &core.FeedbackResult{
		Status:       "recorded",
		Action:       action,
		BlockedCount: blockedCount,
	}, nil
}

// IsBlockedOrSimilar reports whether answer is blocked, either verbatim or
// as a near-variant of a blocked answer. Returns the blocked text it
// collided with.
func (s *Store) IsBlockedOrSimilar(answer string) (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.blockedSet[answer]; ok {
		return true, answer
	}

	candidate := answerWords(answer)
	if len(candidate) == 0 {
		return false, ""
	}
	for _, b := range s.blocked {
		if wordSimilarity(candidate, answerWords(b.Answer)) > s.similarity {
			return true, b.Answer
		}
	}
	return false, ""
}

// BlockedAnswers returns the blocked answer texts as a set, for corpus
// exclusion during index rebuilds.
func (s *Store) BlockedAnswers() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{}, len(s.blockedSet))
	for answer := range s.blockedSet {
		set[answer] = struct{}{}
	}
	return set
}

// Stats summarizes the store.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Total:   len(s.entries),
		Blocked: len(s.blocked),
	}
	for _, entry := range s.entries {
		switch entry.Verdict {
		case core.VerdictLike:
			stats.Likes++
		case core.VerdictDislike:
			stats.Dislikes++
		}
	}
	return stats
}

func answerWords(answer string) map[string]struct{} {
	words := strings.Fields(textnorm.FoldWhitespace(answer))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// wordSimilarity is the shared-word count over the size of the larger set.
// A short blocked answer contained in a much longer one scores low.
func wordSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(inter) / float64(larger)
}
