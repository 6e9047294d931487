package corpus

import (
	"log/slog"
	"math"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/textnorm"
)

// Doc is the precomputed searchable form of one corpus record. All fields
// are derived once at index build time so query scoring stays read-only.
type Doc struct {
	Record *core.CorpusRecord

	// FoldedQuestion is the whitespace-folded lower-cased question used for
	// exact-match comparison, with FoldedVariations its paraphrase forms.
	FoldedQuestion   string
	FoldedVariations []string

	// QuestionWords and VariationWords are folded word sets for the
	// second-tier overlap short-circuit.
	QuestionWords  map[string]struct{}
	VariationWords []map[string]struct{}

	// KeywordSet and VariationTokenSets hold normalized tokens for the
	// keyword and variation strategies.
	KeywordSet         map[string]struct{}
	VariationTokenSets []map[string]struct{}

	// LowerQuestion backs substring phrase matching.
	LowerQuestion string

	// weights is the record's tf-idf vector over question + variations +
	// keywords, with vecNorm its Euclidean norm.
	weights map[string]float64
	vecNorm float64
}

// Index is the token-frequency vector space over the surviving corpus
// records. It is immutable after construction; rebuilds produce a fresh
// Index that callers swap in atomically.
type Index struct {
	docs []Doc
	idf  map[string]float64
	norm *textnorm.Normalizer
}

// IndexOption configures index construction.
type IndexOption func(*indexConfig)

type indexConfig struct {
	poolSize int
	logger   *slog.Logger
}

// WithPoolSize sets the worker pool size used to tokenize records during
// the build. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) IndexOption {
	return func(cfg *indexConfig) {
		if size < 1 {
			size = 1
		}
		cfg.poolSize = size
	}
}

// WithIndexLogger sets a custom logger for index construction.
func WithIndexLogger(logger *slog.Logger) IndexOption {
	return func(cfg *indexConfig) {
		if logger == nil {
			logger = slog.Default()
		}
		cfg.logger = logger
	}
}

// BuildIndex computes the search index over records. Returns ErrEmptyCorpus
// when there is nothing to index; callers leave the old index in place (or
// none at all) and degrade searches to "no match".
func BuildIndex(records []*core.CorpusRecord, norm *textnorm.Normalizer, opts ...IndexOption) (*Index, error) {
	if norm == nil {
		return nil, ErrNormalizerRequired
	}
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}

	cfg := &indexConfig{
		poolSize: max(runtime.NumCPU()/2, 1),
		logger:   slog.Default().With("component", "corpus-index"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ix := &Index{
		docs: make([]Doc, len(records)),
		idf:  make(map[string]float64),
		norm: norm,
	}

	// Tokenization dominates build time, so records are prepared
	// concurrently. Term frequencies are collected per doc and merged
	// single-threaded afterwards.
	tokenLists := make([][]string, len(records))

	pool, err := ants.NewPool(cfg.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, record := range records {
		i, record := i, record
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			ix.docs[i] = buildDoc(record, norm)
			tokenLists[i] = docTokens(record, norm)
		})
		if submitErr != nil {
			// Pool refused the task; do the work inline.
			ix.docs[i] = buildDoc(record, norm)
			tokenLists[i] = docTokens(record, norm)
			wg.Done()
		}
	}
	wg.Wait()

	// Document frequencies, then Lucene-style smoothed idf.
	df := make(map[string]int)
	for _, tokens := range tokenLists {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	n := float64(len(records))
	for term, count := range df {
		ix.idf[term] = math.Log((n+1)/(float64(count)+1)) + 1
	}

	// Weight vectors.
	for i, tokens := range tokenLists {
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		weights := make(map[string]float64, len(tf))
		var sumSq float64
		for term, count := range tf {
			w := float64(count) * ix.idf[term]
			weights[term] = w
			sumSq += w * w
		}
		ix.docs[i].weights = weights
		ix.docs[i].vecNorm = math.Sqrt(sumSq)
	}

	cfg.logger.Debug("index built", "records", len(records), "terms", len(ix.idf))
	return ix, nil
}

// docTokens is the record's indexable text: question, variations, keywords.
func docTokens(record *core.CorpusRecord, norm *textnorm.Normalizer) []string {
	tokens := norm.Tokens(record.Question)
	for _, v := range record.Variations {
		tokens = append(tokens, norm.Tokens(v)...)
	}
	for _, kw := range record.Keywords {
		tokens = append(tokens, norm.Tokens(kw)...)
	}
	return tokens
}

func buildDoc(record *core.CorpusRecord, norm *textnorm.Normalizer) Doc {
	doc := Doc{
		Record:         record,
		FoldedQuestion: textnorm.FoldWhitespace(record.Question),
		LowerQuestion:  strings.ToLower(record.Question),
	}
	doc.QuestionWords = wordSet(doc.FoldedQuestion)

	doc.FoldedVariations = make([]string, 0, len(record.Variations))
	doc.VariationWords = make([]map[string]struct{}, 0, len(record.Variations))
	doc.VariationTokenSets = make([]map[string]struct{}, 0, len(record.Variations))
	for _, v := range record.Variations {
		folded := textnorm.FoldWhitespace(v)
		doc.FoldedVariations = append(doc.FoldedVariations, folded)
		doc.VariationWords = append(doc.VariationWords, wordSet(folded))
		doc.VariationTokenSets = append(doc.VariationTokenSets, norm.TokenSet(v))
	}

	doc.KeywordSet = make(map[string]struct{})
	for _, kw := range record.Keywords {
		for _, tok := range norm.Tokens(kw) {
			doc.KeywordSet[tok] = struct{}{}
		}
	}
	return doc
}

func wordSet(folded string) map[string]struct{} {
	words := strings.Fields(folded)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Docs returns the indexed documents in load order.
func (ix *Index) Docs() []Doc {
	return ix.docs
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Similarities computes the tf-idf cosine similarity between the query
// tokens and every indexed record, in doc order. Safe for concurrent use.
func (ix *Index) Similarities(queryTokens []string) []float64 {
	sims := make([]float64, len(ix.docs))
	if len(queryTokens) == 0 {
		return sims
	}

	tf := make(map[string]int, len(queryTokens))
	for _, tok := range queryTokens {
		tf[tok]++
	}
	query := make(map[string]float64, len(tf))
	var sumSq float64
	for term, count := range tf {
		idf, ok := ix.idf[term]
		if !ok {
			continue
		}
		w := float64(count) * idf
		query[term] = w
		sumSq += w * w
	}
	if sumSq == 0 {
		return sims
	}
	queryNorm := math.Sqrt(sumSq)

	for i := range ix.docs {
		doc := &ix.docs[i]
		if doc.vecNorm == 0 {
			continue
		}
		var dot float64
		for term, qw := range query {
			if dw, ok := doc.weights[term]; ok {
				dot += qw * dw
			}
		}
		sims[i] = dot / (queryNorm * doc.vecNorm)
	}
	return sims
}
