package feedback

import (
	"context"
	"testing"

	"github.com/poiesic/answerit/core"
	badgerstore "github.com/poiesic/answerit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	store, err := NewStore(repo, opts...)
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("nil repository", func(t *testing.T) {
		_, err := NewStore(nil)
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("invalid similarity", func(t *testing.T) {
		repo, backend, err := badgerstore.NewMemoryRepository()
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		_, err = NewStore(repo, WithSimilarity(1.5))
		assert.ErrorIs(t, err, ErrInvalidSimilarity)
	})
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("like leaves the blocklist alone", func(t *testing.T) {
		store := newTestStore(t)
		result, err := store.Record(ctx, "What is the fee?", "BDT 70,000.", core.VerdictLike)
		require.NoError(t, err)
		assert.Equal(t, "recorded", result.Status)
		assert.Equal(t, "none", result.Action)
		assert.Zero(t, result.BlockedCount)
	})

	t.Run("dislike blocks the answer", func(t *testing.T) {
		store := newTestStore(t)
		result, err := store.Record(ctx, "What is the fee?", "A wrong fee answer.", core.VerdictDislike)
		require.NoError(t, err)
		assert.Equal(t, "answer_blocked", result.Action)
		assert.Equal(t, 1, result.BlockedCount)

		blocked, match := store.IsBlockedOrSimilar("A wrong fee answer.")
		assert.True(t, blocked)
		assert.Equal(t, "A wrong fee answer.", match)
	})

	t.Run("second dislike of the same answer is idempotent", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Record(ctx, "Q", "A wrong fee answer.", core.VerdictDislike)
		require.NoError(t, err)
		result, err := store.Record(ctx, "Q again", "A wrong fee answer.", core.VerdictDislike)
		require.NoError(t, err)
		assert.Equal(t, "already_blocked", result.Action)
		assert.Equal(t, 1, result.BlockedCount)
	})

	t.Run("like after dislike does not unblock", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Record(ctx, "Q", "Blocked forever.", core.VerdictDislike)
		require.NoError(t, err)
		_, err = store.Record(ctx, "Q", "Blocked forever.", core.VerdictLike)
		require.NoError(t, err)

		blocked, _ := store.IsBlockedOrSimilar("Blocked forever.")
		assert.True(t, blocked)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Record(ctx, "", "answer", core.VerdictLike)
		assert.Error(t, err)
		_, err = store.Record(ctx, "question", "answer", core.Verdict(0))
		assert.Error(t, err)
	})
}

func TestIsBlockedOrSimilar(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Record(ctx, "fee question",
		"The semester fee for the CSE program is BDT 75,000 per semester.",
		core.VerdictDislike)
	require.NoError(t, err)

	t.Run("near-variant is caught", func(t *testing.T) {
		blocked, match := store.IsBlockedOrSimilar(
			"The semester fee for the CSE program is BDT 75,000 per semester!")
		assert.True(t, blocked)
		assert.NotEmpty(t, match)
	})

	t.Run("different answer passes", func(t *testing.T) {
		blocked, _ := store.IsBlockedOrSimilar(
			"The library is open from 8am to 10pm on weekdays.")
		assert.False(t, blocked)
	})

	t.Run("empty answer passes", func(t *testing.T) {
		blocked, _ := store.IsBlockedOrSimilar("")
		assert.False(t, blocked)
	})
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	first, err := NewStore(repo)
	require.NoError(t, err)
	_, err = first.Record(ctx, "Q1", "liked answer", core.VerdictLike)
	require.NoError(t, err)
	_, err = first.Record(ctx, "Q2", "disliked answer text here", core.VerdictDislike)
	require.NoError(t, err)

	// A fresh store over the same repository sees the persisted state.
	second, err := NewStore(repo)
	require.NoError(t, err)
	require.NoError(t, second.Restore(ctx))

	stats := second.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Likes)
	assert.Equal(t, 1, stats.Dislikes)
	assert.Equal(t, 1, stats.Blocked)

	blocked, _ := second.IsBlockedOrSimilar("disliked answer text here")
	assert.True(t, blocked)
}

func TestBlockedAnswers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Record(ctx, "Q", "first bad answer", core.VerdictDislike)
	require.NoError(t, err)
	_, err = store.Record(ctx, "Q", "second bad answer", core.VerdictDislike)
	require.NoError(t, err)

	set := store.BlockedAnswers()
	assert.Len(t, set, 2)
	assert.Contains(t, set, "first bad answer")
	assert.Contains(t, set, "second bad answer")
}
