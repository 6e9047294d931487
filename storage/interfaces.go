package storage

import (
	"context"

	"github.com/poiesic/answerit/core"
)

// FeedbackRepository persists the feedback log and the answer blocklist.
// The log is append-only; the blocklist only ever grows. Implementations
// must be thread-safe and support concurrent access.
type FeedbackRepository interface {
	// AppendFeedback appends one entry to the feedback log. Entries with
	// ID=0 get a sequence-generated ID. Sets the timestamp if unset.
	// Returns the entry with ID and timestamp populated.
	AppendFeedback(ctx context.Context, entry *core.FeedbackEntry) (*core.FeedbackEntry, error)

	// ListFeedback returns every logged entry in append order.
	ListFeedback(ctx context.Context) ([]*core.FeedbackEntry, error)

	// AppendBlocked adds an answer to the blocklist, keyed by the content
	// ID of its text. Re-blocking the same answer is a no-op.
	AppendBlocked(ctx context.Context, blocked *core.BlockedAnswer) error

	// ListBlocked returns every blocked answer.
	ListBlocked(ctx context.Context) ([]*core.BlockedAnswer, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
