package ranker

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/catalog"
	"github.com/peeranat/chedthan/internal/meaning"
	"github.com/peeranat/chedthan/internal/model"
)

// ScoreFunc combines two cell values into a pair's salience score.
type ScoreFunc func(v1, v2 int) int

// SumScore is the default: a pair is as strong as its summed cell values.
func SumScore(v1, v2 int) int { return v1 + v2 }

// Ranker derives top categories and ranked cross-base pairs from a chart.
type Ranker struct {
	store    catalog.Store
	resolver *meaning.Resolver
	score    ScoreFunc
	logger   *zap.Logger
}

// NewRanker builds a ranker. A nil score falls back to SumScore.
func NewRanker(store catalog.Store, resolver *meaning.Resolver, score ScoreFunc, logger *zap.Logger) *Ranker {
	if score == nil {
		score = SumScore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{store: store, resolver: resolver, score: score, logger: logger}
}

// TopCategories reports the strongest house of each base 1-3, keyed
// "base1".."base3". The maximum cell value wins; ties go to the lowest
// position index. A store fault on one base degrades that base to a
// label-only placeholder; the other bases still resolve.
func (r *Ranker) TopCategories(ctx context.Context, bases model.Bases) (map[string]model.TopCategory, error) {
	out := make(map[string]model.TopCategory, 3)
	for base := 1; base <= 3; base++ {
		seq := bases.Sequence(base)
		if len(seq) == 0 {
			return nil, fmt.Errorf("%w: base %d is empty", model.ErrCalculation, base)
		}
		best := 0
		for i := 1; i < len(seq); i++ {
			if seq[i] > seq[best] {
				best = i
			}
		}

		label := r.resolver.Label(base, best+1)
		cat, err := r.resolver.Category(ctx, label)
		if err != nil {
			r.logger.Warn("top category resolution failed",
				zap.Int("base", base),
				zap.String("element", label),
				zap.Error(err))
			cat = &model.Category{Name: label}
		}
		out[fmt.Sprintf("base%d", base)] = model.TopCategory{
			Base:     base,
			Position: best,
			Name:     cat.Name,
			ThaiName: cat.ThaiName,
			Meaning:  CategoryDetail(cat.Name, cat.ThaiName, seq[best]),
			Value:    seq[best],
		}
	}
	return out, nil
}

// pairCandidate is one cross-base position pair awaiting ranking.
type pairCandidate struct {
	base1, pos1, value1 int
	base2, pos2, value2 int
	score               int
}

// TopPairs ranks every cross-base position pair (bases 1-2, 1-3, 2-3, each
// 7x7) by score and resolves the top n against the combination catalogue.
// The sort is stable: equal scores keep base-then-position scan order.
// Store faults stay per-pair: a failed combination lookup degrades that
// pair to a synthesized reading, and a failed category resolution drops
// just that pair; the rest keep their ranks in order.
func (r *Ranker) TopPairs(ctx context.Context, bases model.Bases, n int) ([]model.TopPair, error) {
	var candidates []pairCandidate
	basePairs := [][2]int{{1, 2}, {1, 3}, {2, 3}}
	for _, bp := range basePairs {
		seq1, seq2 := bases.Sequence(bp[0]), bases.Sequence(bp[1])
		for i, v1 := range seq1 {
			for j, v2 := range seq2 {
				candidates = append(candidates, pairCandidate{
					base1: bp[0], pos1: i + 1, value1: v1,
					base2: bp[1], pos2: j + 1, value2: v2,
					score: r.score(v1, v2),
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if n > len(candidates) {
		n = len(candidates)
	}

	out := make([]model.TopPair, 0, n)
	for _, c := range candidates[:n] {
		pair, err := r.resolvePair(ctx, c)
		if err != nil {
			r.logger.Warn("pair resolution failed",
				zap.Int("base1", c.base1), zap.Int("position1", c.pos1),
				zap.Int("base2", c.base2), zap.Int("position2", c.pos2),
				zap.Error(err))
			continue
		}
		pair.Rank = len(out) + 1
		out = append(out, *pair)
	}
	return out, nil
}

// resolvePair looks the pair up in the combination catalogue and falls back
// to synthesis when no row exists or the lookup faults.
func (r *Ranker) resolvePair(ctx context.Context, c pairCandidate) (*model.TopPair, error) {
	label1 := r.resolver.Label(c.base1, c.pos1)
	label2 := r.resolver.Label(c.base2, c.pos2)

	cat1, err := r.resolver.Category(ctx, label1)
	if err != nil {
		return nil, err
	}
	cat2, err := r.resolver.Category(ctx, label2)
	if err != nil {
		return nil, err
	}

	pair := &model.TopPair{
		Category1: cat1.Name,
		Category2: cat2.Name,
		Value1:    c.value1,
		Value2:    c.value2,
		Score:     c.score,
	}

	if cat1.ID != 0 && cat2.ID != 0 {
		combo, err := r.store.Combination(ctx, cat1.ID, cat2.ID, nil)
		if err != nil {
			r.logger.Warn("combination lookup failed",
				zap.String("category1", cat1.Name),
				zap.String("category2", cat2.Name),
				zap.Error(err))
		} else if combo != nil {
			pair.Heading = combo.Heading
			pair.Meaning = combo.Content
			pair.Influence = combo.Influence
			return pair, nil
		}
	}

	pair.Heading = synthesizeHeading(cat1.Name, cat2.Name, c.value1, c.value2)
	pair.Meaning = synthesizeMeaning(cat1.Name, cat2.Name, cat1.ThaiName, cat2.ThaiName, c.value1, c.value2)
	pair.Influence = CombineInfluence(InfluenceOf(cat1.HouseType), InfluenceOf(cat2.HouseType))
	return pair, nil
}
