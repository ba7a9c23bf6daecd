package fortune

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/astro"
	"github.com/peeranat/chedthan/internal/catalog"
	"github.com/peeranat/chedthan/internal/meaning"
	"github.com/peeranat/chedthan/internal/model"
	"github.com/peeranat/chedthan/internal/rag"
	"github.com/peeranat/chedthan/internal/ranker"
	"github.com/peeranat/chedthan/internal/topic"
)

func newTestService(t *testing.T) (*Service, *catalog.SQLiteStore) {
	t.Helper()
	store, err := catalog.NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	calc := astro.NewCalculator(astro.DefaultTables())
	tables := calc.Tables()
	resolver := meaning.NewResolver(store, tables.DayLabels, tables.MonthLabels, tables.YearLabels, zap.NewNop())
	rk := ranker.NewRanker(store, resolver, nil, zap.NewNop())
	classifier := topic.NewCached(topic.NewKeywordClassifier(zap.NewNop()), 0, zap.NewNop())

	return NewService(calc, resolver, rk, classifier, nil, 3, zap.NewNop()), store
}

func seedMoneyReading(t *testing.T, store *catalog.SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	cat, err := store.CategoryByName(ctx, "โภคา")
	if err != nil || cat == nil {
		t.Fatalf("seed category missing: %v", err)
	}
	if _, err := store.PutReading(ctx, model.Reading{
		Base:       1,
		Position:   6,
		CategoryID: cat.ID,
		Heading:    "สินทรัพย์ (โภคา) สัมพันธ์กับ เพื่อนฝูง การติดต่อ (สหัชชะ)",
		Content:    "มีโชคด้านการเงินและทรัพย์สินผ่านคนรอบตัว",
		Influence:  "ดี",
	}); err != nil {
		t.Fatalf("put reading: %v", err)
	}
}

func TestReadingEndToEnd(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Reading(context.Background(), Request{
		Date:    time.Date(1996, 2, 14, 0, 0, 0, 0, time.UTC),
		Weekday: "พุธ",
	})
	if err != nil {
		t.Fatalf("Reading: %v", err)
	}

	wantBase1 := []int{4, 5, 6, 7, 1, 2, 3}
	for i, v := range wantBase1 {
		if res.Bases.Base1[i] != v {
			t.Fatalf("base1 = %v, want %v", res.Bases.Base1, wantBase1)
		}
	}
	if res.Bases.Base2[0] != 2 {
		t.Errorf("base2 start = %d, want 2 (February)", res.Bases.Base2[0])
	}

	top := res.TopCategories["base1"]
	if top.Position != 3 || top.Value != 7 {
		t.Errorf("top_categories[base1] = position %d value %d, want 3/7", top.Position, top.Value)
	}

	if res.DetailLevel != model.DetailNormal {
		t.Errorf("detail level = %q, want normal default", res.DetailLevel)
	}
	if len(res.TopPairs) != 5 {
		t.Errorf("got %d pairs, want 5 at normal detail", len(res.TopPairs))
	}
	if res.Summary == "" || !strings.Contains(res.Summary, "ฐานหลักที่มีอิทธิพลสูงสุด") {
		t.Errorf("summary = %q", res.Summary)
	}
	if res.Topic != nil {
		t.Error("no question given, topic must be nil")
	}
	if res.EnrichedBases == nil || res.PositionsSummary == nil || res.GeneralMeanings == nil {
		t.Error("normal detail must include position views")
	}
}

func TestReadingDetailLevels(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	date := time.Date(1996, 2, 14, 0, 0, 0, 0, time.UTC)

	simple, err := svc.Reading(ctx, Request{Date: date, Weekday: "พุธ", DetailLevel: model.DetailSimple})
	if err != nil {
		t.Fatalf("Reading simple: %v", err)
	}
	if len(simple.TopPairs) != 3 {
		t.Errorf("simple pairs = %d, want 3", len(simple.TopPairs))
	}
	if simple.EnrichedBases != nil || simple.PositionsSummary != nil {
		t.Error("simple detail must omit position views")
	}

	detailed, err := svc.Reading(ctx, Request{Date: date, Weekday: "พุธ", DetailLevel: model.DetailDetailed})
	if err != nil {
		t.Fatalf("Reading detailed: %v", err)
	}
	if len(detailed.TopPairs) != 10 {
		t.Errorf("detailed pairs = %d, want 10", len(detailed.TopPairs))
	}
	if len(detailed.EnrichedBases["base4"]) != 7 {
		t.Errorf("base4 view has %d positions, want 7", len(detailed.EnrichedBases["base4"]))
	}
}

func TestReadingInvalidWeekday(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Reading(context.Background(), Request{
		Date:    time.Date(1996, 2, 14, 0, 0, 0, 0, time.UTC),
		Weekday: "Wednesday",
	})
	if !errors.Is(err, model.ErrCalculation) {
		t.Fatalf("err = %v, want ErrCalculation", err)
	}
}

func TestReadingWithQuestion(t *testing.T) {
	svc, store := newTestService(t)
	seedMoneyReading(t, store)

	res, err := svc.Reading(context.Background(), Request{
		Date:     time.Date(1996, 2, 14, 0, 0, 0, 0, time.UTC),
		Weekday:  "พุธ",
		Question: "ปีนี้การเงินของฉันจะเป็นอย่างไร",
	})
	if err != nil {
		t.Fatalf("Reading: %v", err)
	}
	if res.Topic == nil || res.Topic.PrimaryTopic != "การเงิน" {
		t.Fatalf("topic = %+v, want การเงิน", res.Topic)
	}

	if len(res.FocusMeanings) != 1 {
		t.Fatalf("got %d focus meanings, want 1", len(res.FocusMeanings))
	}
	fm := res.FocusMeanings[0]
	if fm.Base != 1 || fm.Position != 6 {
		t.Errorf("focus meaning at base %d position %d, want 1/6", fm.Base, fm.Position)
	}
	if fm.MatchScore != res.Topic.Confidence {
		t.Errorf("match score = %v, want topic confidence %v", fm.MatchScore, res.Topic.Confidence)
	}

	general := res.GeneralMeanings["base1"]
	if general.Name != "ฐานวันเกิด" || len(general.Meanings) != 1 {
		t.Errorf("general meanings base1 = %+v", general)
	}
}

func TestReadingEnrichmentDegrades(t *testing.T) {
	svc, store := newTestService(t)
	seedMoneyReading(t, store)

	idx := rag.NewIndex(store, brokenEmbedder{}, 0.5, zap.NewNop())
	svc.index = idx

	res, err := svc.Reading(context.Background(), Request{
		Date:     time.Date(1996, 2, 14, 0, 0, 0, 0, time.UTC),
		Weekday:  "พุธ",
		Question: "การเงินดีไหม",
	})
	if err != nil {
		t.Fatalf("Reading: %v", err)
	}
	if len(res.RAGInterpretations) != 0 {
		t.Errorf("broken embedder yielded %d interpretations, want 0", len(res.RAGInterpretations))
	}
}

type brokenEmbedder struct{}

func (brokenEmbedder) Embed(context.Context, string) (rag.Vector, error) {
	return nil, errors.New("unreachable")
}

func (brokenEmbedder) Dims() int { return 0 }

func TestSummaryDeterministic(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	req := Request{Date: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC), Weekday: "อังคาร"}

	first, err := svc.Reading(ctx, req)
	if err != nil {
		t.Fatalf("Reading: %v", err)
	}
	second, err := svc.Reading(ctx, req)
	if err != nil {
		t.Fatalf("Reading: %v", err)
	}
	if first.Summary != second.Summary {
		t.Errorf("summary not deterministic:\n%s\n%s", first.Summary, second.Summary)
	}
}
