package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/storage"
)

// FeedbackRepository implements storage.FeedbackRepository for BadgerDB.
type FeedbackRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(backend *Backend) (*FeedbackRepository, error) {
	if backend == nil {
		return nil, storage.ErrBackendRequired
	}
	idSeq, err := backend.GetSequence(feedbackIDSeq)
	if err != nil {
		return nil, err
	}

	return &FeedbackRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FeedbackRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *FeedbackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendFeedback appends one entry to the feedback log.
func (r *FeedbackRepository) AppendFeedback(ctx context.Context, entry *core.FeedbackEntry) (*core.FeedbackEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if entry.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			entry.Id = core.ID(nextID)
		}
		if entry.Timestamp.IsZero() {
			entry.Timestamp = time.Now().UTC()
		}

		key := makeFeedbackKey(entry.Id)
		value := storage.MarshalFeedbackEntry(entry)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListFeedback returns every logged entry in append order.
func (r *FeedbackRepository) ListFeedback(ctx context.Context) ([]*core.FeedbackEntry, error) {
	var entries []*core.FeedbackEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(feedbackPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Keys are BigEndian IDs, so iteration order is append order.
		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				entry, err := storage.UnmarshalFeedbackEntry(val)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendBlocked adds an answer to the blocklist. Keyed by the content ID of
// the answer text, so re-blocking the same answer overwrites in place.
func (r *FeedbackRepository) AppendBlocked(ctx context.Context, blocked *core.BlockedAnswer) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if blocked.Id == 0 {
			blocked.Id = core.IDFromContent(blocked.Answer)
		}
		if blocked.Timestamp.IsZero() {
			blocked.Timestamp = time.Now().UTC()
		}

		key := makeBlockedKey(blocked.Id)
		value := storage.MarshalBlockedAnswer(blocked)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListBlocked returns every blocked answer.
func (r *FeedbackRepository) ListBlocked(ctx context.Context) ([]*core.BlockedAnswer, error) {
	var blocked []*core.BlockedAnswer

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(blockedPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				entry, err := storage.UnmarshalBlockedAnswer(val)
				if err != nil {
					return err
				}
				blocked = append(blocked, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return blocked, nil
}
