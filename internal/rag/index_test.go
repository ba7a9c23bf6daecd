package rag

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/catalog"
	"github.com/peeranat/chedthan/internal/model"
)

// axisEmbedder maps texts onto fixed axes by marker word, making similarity
// fully predictable: same axis = 1.0, different axis = 0.0.
type axisEmbedder struct {
	calls int32
}

func (e *axisEmbedder) Embed(_ context.Context, text string) (Vector, error) {
	atomic.AddInt32(&e.calls, 1)
	switch {
	case strings.Contains(text, "การเงิน"):
		return Vector{1, 0, 0}, nil
	case strings.Contains(text, "สุขภาพ"):
		return Vector{0, 1, 0}, nil
	default:
		return Vector{0, 0, 1}, nil
	}
}

func (e *axisEmbedder) Dims() int { return 3 }

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) (Vector, error) {
	return nil, errors.New("embedding service down")
}

func (failingEmbedder) Dims() int { return 0 }

func newTestStore(t *testing.T) *catalog.SQLiteStore {
	t.Helper()
	store, err := catalog.NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedReadings(t *testing.T, store *catalog.SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	cat, err := store.CategoryByName(ctx, "โภคา")
	if err != nil || cat == nil {
		t.Fatalf("seed category missing: %v", err)
	}
	readings := []model.Reading{
		{Base: 1, Position: 6, CategoryID: cat.ID, Heading: "เรื่องการเงิน", Content: "การเงินของคุณกำลังรุ่งเรือง"},
		{Base: 1, Position: 2, CategoryID: cat.ID, Heading: "เรื่องสุขภาพ", Content: "สุขภาพต้องการการดูแลเป็นพิเศษ"},
	}
	for _, r := range readings {
		if _, err := store.PutReading(ctx, r); err != nil {
			t.Fatalf("put reading: %v", err)
		}
	}
}

func TestSearchThreshold(t *testing.T) {
	store := newTestStore(t)
	seedReadings(t, store)
	idx := NewIndex(store, &axisEmbedder{}, 0.5, zap.NewNop())

	hits, err := idx.Search(context.Background(), "การเงินเป็นอย่างไร", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1 (orthogonal doc dropped below threshold)", len(hits))
	}
	if !strings.Contains(hits[0].Doc.Text, "การเงิน") {
		t.Errorf("wrong document retrieved: %q", hits[0].Doc.Text)
	}
	if hits[0].Score < 0.99 {
		t.Errorf("score = %v, want ~1.0", hits[0].Score)
	}
	if hits[0].Doc.ID == "" || hits[0].Doc.Source == "" {
		t.Errorf("document missing id or source: %+v", hits[0].Doc)
	}
}

func TestIndexBuildsOnce(t *testing.T) {
	store := newTestStore(t)
	seedReadings(t, store)
	emb := &axisEmbedder{}
	idx := NewIndex(store, emb, 0.5, zap.NewNop())
	ctx := context.Background()

	if _, err := idx.Search(ctx, "การเงิน", 1); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, err := idx.Search(ctx, "สุขภาพ", 1); err != nil {
		t.Fatalf("Search: %v", err)
	}
	// 2 documents embedded once, plus one embed per query.
	if got := atomic.LoadInt32(&emb.calls); got != 4 {
		t.Errorf("embed calls = %d, want 4 (index built once)", got)
	}
}

func TestEnrichNeverFails(t *testing.T) {
	store := newTestStore(t)
	seedReadings(t, store)
	idx := NewIndex(store, failingEmbedder{}, 0.5, zap.NewNop())

	col := &model.MeaningCollection{Items: []model.Meaning{
		{Base: 1, Position: 6, Value: 7, Category: "โภคา - สหัชชะ", Heading: "เรื่องการเงิน"},
	}}
	got := idx.Enrich(context.Background(), col, "การเงินดีไหม", 3)
	if len(got) != 0 {
		t.Errorf("forced embedder failure yielded %d interpretations, want 0", len(got))
	}

	var nilIndex *Index
	if got := nilIndex.Enrich(context.Background(), col, "", 3); got != nil {
		t.Error("nil index must enrich to nothing")
	}
}

func TestEnrichAttachesMeaningContext(t *testing.T) {
	store := newTestStore(t)
	seedReadings(t, store)
	idx := NewIndex(store, &axisEmbedder{}, 0.5, zap.NewNop())

	col := &model.MeaningCollection{Items: []model.Meaning{
		{Base: 1, Position: 2, Value: 3, Category: "หินะ - กดุมภะ", Heading: "เรื่องสุขภาพ"},
		{Base: 1, Position: 6, Value: 7, Category: "โภคา - สหัชชะ", Heading: "เรื่องการเงิน"},
	}}
	got := idx.Enrich(context.Background(), col, "", 3)
	if len(got) != 2 {
		t.Fatalf("got %d interpretations, want 2", len(got))
	}

	// Highest-value meaning is enriched first.
	if got[0].Category != "โภคา - สหัชชะ" || got[0].Value != 7 {
		t.Errorf("first interpretation = %s/%d, want โภคา - สหัชชะ/7", got[0].Category, got[0].Value)
	}
	if !strings.Contains(got[0].Interpretation, "การเงิน") {
		t.Errorf("first interpretation text = %q, want the money reading", got[0].Interpretation)
	}
	if !strings.HasPrefix(got[0].Source, "reading:") {
		t.Errorf("source = %q, want reading:<id>", got[0].Source)
	}
}

func TestEnrichDeduplicatesSources(t *testing.T) {
	store := newTestStore(t)
	seedReadings(t, store)
	idx := NewIndex(store, &axisEmbedder{}, 0.5, zap.NewNop())

	// Both meanings retrieve the same money document.
	col := &model.MeaningCollection{Items: []model.Meaning{
		{Base: 1, Position: 6, Value: 7, Category: "โภคา - สหัชชะ", Heading: "เรื่องการเงิน"},
		{Base: 2, Position: 2, Value: 5, Category: "กดุมภะ - ธานัง", Heading: "การเงินและรายได้"},
	}}
	got := idx.Enrich(context.Background(), col, "", 3)
	if len(got) != 1 {
		t.Errorf("got %d interpretations, want 1 after source dedup", len(got))
	}
}
