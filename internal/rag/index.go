package rag

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peeranat/chedthan/internal/catalog"
	"github.com/peeranat/chedthan/internal/model"
)

// DefaultTopK and DefaultMinScore bound retrieval when the caller does not.
const (
	DefaultTopK     = 3
	DefaultMinScore = 0.5

	embedConcurrency = 4
)

// Document is one indexed interpretation text.
type Document struct {
	ID     string
	Text   string
	Source string
	vec    Vector
}

// Hit is a retrieved document with its similarity to the query.
type Hit struct {
	Doc   Document
	Score float64
}

// Index is an in-memory vector index over all catalogue interpretation
// texts. It is built lazily on first use and read-only afterwards, so
// concurrent searches need no locking beyond the build guard.
type Index struct {
	store    catalog.Store
	embedder Embedder
	minScore float64
	logger   *zap.Logger

	buildOnce sync.Once
	buildErr  error
	docs      []Document
}

// NewIndex builds an unpopulated index. minScore <= 0 uses DefaultMinScore.
func NewIndex(store catalog.Store, embedder Embedder, minScore float64, logger *zap.Logger) *Index {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{store: store, embedder: embedder, minScore: minScore, logger: logger}
}

// ensure embeds every reading and combination interpretation exactly once.
// A failed build is final for the process; rebuilding requires a new Index.
func (x *Index) ensure(ctx context.Context) error {
	x.buildOnce.Do(func() {
		start := time.Now()
		x.buildErr = x.build(ctx)
		if x.buildErr == nil {
			x.logger.Info("built interpretation index",
				zap.Int("documents", len(x.docs)),
				zap.Duration("elapsed", time.Since(start)))
		}
	})
	return x.buildErr
}

func (x *Index) build(ctx context.Context) error {
	if x.embedder == nil {
		return fmt.Errorf("no embedder configured")
	}

	readings, err := x.store.AllReadings(ctx)
	if err != nil {
		return err
	}
	combos, err := x.store.AllCombinations(ctx)
	if err != nil {
		return err
	}

	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	docs := make([]Document, 0, len(readings)+len(combos))
	for _, r := range readings {
		if r.Content == "" {
			continue
		}
		docs = append(docs, Document{
			ID:     ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
			Text:   r.Content,
			Source: fmt.Sprintf("reading:%d", r.ID),
		})
	}
	for _, c := range combos {
		if c.Content == "" {
			continue
		}
		docs = append(docs, Document{
			ID:     ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
			Text:   c.Content,
			Source: fmt.Sprintf("combination:%d", c.ID),
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i := range docs {
		i := i
		g.Go(func() error {
			vec, err := x.embedder.Embed(gctx, docs[i].Text)
			if err != nil {
				return fmt.Errorf("embed %s: %w", docs[i].Source, err)
			}
			docs[i].vec = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	x.docs = docs
	return nil
}

// Search embeds the query and returns up to k documents above the minimum
// similarity, best first. k <= 0 uses DefaultTopK.
func (x *Index) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if err := x.ensure(ctx); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultTopK
	}

	qvec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for _, d := range x.docs {
		score := CosineSimilarity(qvec, d.vec)
		if score >= x.minScore {
			hits = append(hits, Hit{Doc: d, Score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Enrich retrieves at most k supplementary interpretations for the strongest
// resolved meanings, optionally steered by the user's question. It never
// fails: any collaborator error degrades to an empty list.
func (x *Index) Enrich(ctx context.Context, col *model.MeaningCollection, question string, k int) []model.RAGInterpretation {
	if x == nil || x.embedder == nil || col == nil || len(col.Items) == 0 {
		return nil
	}
	if k <= 0 {
		k = DefaultTopK
	}

	// Strongest cells first; the scan order breaks value ties.
	ranked := make([]model.Meaning, len(col.Items))
	copy(ranked, col.Items)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	var out []model.RAGInterpretation
	seen := make(map[string]bool)
	for _, m := range ranked {
		query := m.Heading
		if question != "" {
			query = question + " " + query
		}
		hits, err := x.Search(ctx, query, 1)
		if err != nil {
			x.logger.Warn("enrichment search failed",
				zap.String("category", m.Category),
				zap.Error(err))
			continue
		}
		for _, h := range hits {
			if seen[h.Doc.Source] {
				continue
			}
			seen[h.Doc.Source] = true
			out = append(out, model.RAGInterpretation{
				Category:       m.Category,
				Value:          m.Value,
				Interpretation: h.Doc.Text,
				Source:         h.Doc.Source,
				Score:          h.Score,
			})
		}
	}
	return out
}
