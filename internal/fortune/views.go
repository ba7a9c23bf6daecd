package fortune

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/model"
)

func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

// baseNames are the Thai display names of the three labeled bases.
var baseNames = map[string]string{
	"base1": "ฐานวันเกิด",
	"base2": "ฐานเดือนเกิด",
	"base3": "ฐานปีเกิด",
}

// enrichedBases expands every base into labeled position details. Bases 1-3
// carry house labels and Thai meanings; base 4 carries the auspicious sum
// names where they exist.
func (s *Service) enrichedBases(ctx context.Context, bases model.Bases) map[string][]model.PositionDetail {
	out := make(map[string][]model.PositionDetail, 4)
	for base := 1; base <= 3; base++ {
		seq := bases.Sequence(base)
		details := make([]model.PositionDetail, 0, len(seq))
		for i, value := range seq {
			details = append(details, s.positionDetail(ctx, base, i+1, value))
		}
		out[fmt.Sprintf("base%d", base)] = details
	}

	base4 := make([]model.PositionDetail, 0, len(bases.Base4))
	for i, value := range bases.Base4 {
		base4 = append(base4, model.PositionDetail{
			Position:  i + 1,
			Value:     value,
			ValueName: s.calc.Base4Name(value),
		})
	}
	out["base4"] = base4
	return out
}

// positionDetail resolves one cell of a labeled base. A category lookup
// fault leaves the Thai meaning empty rather than dropping the cell.
func (s *Service) positionDetail(ctx context.Context, base, position, value int) model.PositionDetail {
	label := s.resolver.Label(base, position)
	d := model.PositionDetail{Position: position, Label: label, Value: value}

	cat, err := s.resolver.Category(ctx, label)
	if err != nil {
		s.logger.Warn("position detail lookup failed",
			zap.String("label", label), zap.Error(err))
		return d
	}
	d.ThaiMeaning = cat.ThaiName
	d.HouseType = cat.HouseType
	return d
}

// positionsSummary lists all 21 labeled cells strongest first; equal values
// keep base-then-position order.
func (s *Service) positionsSummary(ctx context.Context, bases model.Bases) []model.PositionDetail {
	var cells []model.PositionDetail
	for base := 1; base <= 3; base++ {
		for i, value := range bases.Sequence(base) {
			cells = append(cells, s.positionDetail(ctx, base, i+1, value))
		}
	}
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].Value > cells[j].Value })
	return cells
}

// generalMeanings groups the resolved meanings by base under the Thai base
// names. Bases without meanings still appear, empty.
func (s *Service) generalMeanings(col *model.MeaningCollection) map[string]model.BaseMeanings {
	out := make(map[string]model.BaseMeanings, 3)
	for base := 1; base <= 3; base++ {
		key := fmt.Sprintf("base%d", base)
		out[key] = model.BaseMeanings{Name: baseNames[key], Meanings: []model.Meaning{}}
	}
	if col == nil {
		return out
	}
	for _, m := range col.Items {
		key := fmt.Sprintf("base%d", m.Base)
		group, ok := out[key]
		if !ok {
			continue
		}
		group.Meanings = append(group.Meanings, m)
		out[key] = group
	}
	return out
}

// summary phrases the three strongest houses across all labeled bases.
func (s *Service) summary(ctx context.Context, bases model.Bases) string {
	cells := s.positionsSummary(ctx, bases)
	if len(cells) < 3 {
		return "ไม่พบการตีความที่เฉพาะเจาะจง กรุณาปรึกษาโหราจารย์ผู้เชี่ยวชาญ"
	}
	top := cells[:3]
	return fmt.Sprintf(
		"จากวันเกิดของคุณ พบว่าฐานหลักที่มีอิทธิพลสูงสุดคือ %s (%d), %s (%d), และ %s (%d) ซึ่งเกี่ยวข้องกับ%s, %s, และ %s",
		top[0].Label, top[0].Value,
		top[1].Label, top[1].Value,
		top[2].Label, top[2].Value,
		top[0].ThaiMeaning, top[1].ThaiMeaning, top[2].ThaiMeaning)
}
