package corpus

import (
	"log/slog"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/textnorm"
)

// Corpus is an ordered, deduplicated collection of question/answer records
// assembled from prioritized sources. Records are immutable once loaded;
// blocked answers are filtered out through Exclude views, never deleted.
type Corpus struct {
	norm    *textnorm.Normalizer
	logger  *slog.Logger
	records []*core.CorpusRecord
	// seen maps a normalized question to the index of the record that
	// claimed it first, for the supersession dedup rule.
	seen map[string]int
}

// Option configures a Corpus.
type Option func(*Corpus)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Corpus) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// New creates an empty Corpus.
func New(norm *textnorm.Normalizer, opts ...Option) (*Corpus, error) {
	if norm == nil {
		return nil, ErrNormalizerRequired
	}
	c := &Corpus{
		norm:   norm,
		logger: slog.Default().With("component", "corpus"),
		seen:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load parses each source in priority order and appends its records.
// A source that cannot be read or parsed is skipped with a logged count;
// load errors are never fatal. Records from a superseded source whose
// normalized question was already loaded are dropped.
func (c *Corpus) Load(sources []Source) error {
	var skippedSources int
	for _, src := range sources {
		records, dropped, err := parseSource(src)
		if err != nil {
			skippedSources++
			c.logger.Warn("skipping corpus source", "source", src.ID, "err", err)
			continue
		}

		added, superseded := 0, 0
		for _, record := range records {
			if src.Superseded {
				if _, dup := c.seen[c.norm.Normalize(record.Question)]; dup {
					superseded++
					continue
				}
			}
			c.add(record)
			added++
		}

		c.logger.Info("loaded corpus source",
			"source", src.ID,
			"records", added,
			"dropped", dropped,
			"superseded", superseded,
			"priority", src.Priority)
	}

	if skippedSources > 0 {
		c.logger.Warn("some corpus sources were skipped", "count", skippedSources)
	}
	if len(c.records) == 0 {
		return ErrEmptyCorpus
	}
	return nil
}

// Add validates and appends records directly, assigning load order and
// content IDs. Used by programmatic seeding and tests.
func (c *Corpus) Add(records ...*core.CorpusRecord) error {
	for _, record := range records {
		if err := core.ValidateCorpusRecord(record); err != nil {
			return err
		}
		if record.Id == 0 {
			record.Id = core.IDFromContent(record.Question + "|" + record.Answer)
		}
		c.add(record)
	}
	return nil
}

func (c *Corpus) add(record *core.CorpusRecord) {
	record.LoadOrder = len(c.records)
	c.records = append(c.records, record)
	key := c.norm.Normalize(record.Question)
	if _, ok := c.seen[key]; !ok {
		c.seen[key] = record.LoadOrder
	}
}

// Records returns the full loaded collection in load order.
func (c *Corpus) Records() []*core.CorpusRecord {
	return c.records
}

// Len returns the number of loaded records.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Exclude returns the filtered view used to rebuild the search index:
// every record whose exact answer text is blocked is left out. The
// underlying collection is not modified.
func (c *Corpus) Exclude(blocked map[string]struct{}) []*core.CorpusRecord {
	if len(blocked) == 0 {
		return c.records
	}
	kept := make([]*core.CorpusRecord, 0, len(c.records))
	for _, record := range c.records {
		if _, isBlocked := blocked[record.Answer]; isBlocked {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}
