// Package meaning resolves computed birth bases into stored interpretations.
package meaning

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/catalog"
	"github.com/peeranat/chedthan/internal/model"
)

// baseCount: only bases 1-3 carry house labels and stored readings.
const (
	baseCount = 3
	positions = 7
)

// Resolver maps chart cells to categories and readings.
type Resolver struct {
	store  catalog.Store
	labels [baseCount][]string
	logger *zap.Logger
}

// NewResolver builds a resolver over the catalogue store and the three
// position label sets (day, month, year), index-aligned with the bases.
func NewResolver(store catalog.Store, dayLabels, monthLabels, yearLabels []string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		store:  store,
		labels: [baseCount][]string{dayLabels, monthLabels, yearLabels},
		logger: logger,
	}
}

// Label returns the house label for a base (1-3) and position (1-7).
func (r *Resolver) Label(base, position int) string {
	if base < 1 || base > baseCount || position < 1 || position > positions {
		return ""
	}
	return r.labels[base-1][position-1]
}

// Category resolves an element name to a catalogue category, trying the
// machine name first and the Thai display name second. A miss falls back
// to a placeholder with an empty Thai meaning; only store faults error.
func (r *Resolver) Category(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return &model.Category{Name: name}, nil
	}
	c, err := r.store.CategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = r.store.CategoryByThaiName(ctx, name)
		if err != nil {
			return nil, err
		}
	}
	if c == nil {
		r.logger.Warn("no category for element", zap.String("element", name))
		return &model.Category{Name: name}, nil
	}
	return c, nil
}

// Extract walks every (base 1-3, position 1-7) cell of the chart in scan
// order and collects one Meaning per stored reading. Cells without readings
// are omitted. A store fault on one cell is logged and skipped; siblings
// still resolve. The returned error is non-nil only when the whole
// collection failed to build.
func (r *Resolver) Extract(ctx context.Context, bases model.Bases) (*model.MeaningCollection, error) {
	var meanings []model.Meaning
	failed := 0

	for base := 1; base <= baseCount; base++ {
		seq := bases.Sequence(base)
		if len(seq) != positions {
			return nil, fmt.Errorf("%w: base %d has %d positions", model.ErrMeaningExtraction, base, len(seq))
		}
		for position := 1; position <= positions; position++ {
			cell, err := r.resolveCell(ctx, base, position, seq[position-1])
			if err != nil {
				failed++
				r.logger.Warn("cell resolution failed",
					zap.Int("base", base),
					zap.Int("position", position),
					zap.Error(err))
				continue
			}
			meanings = append(meanings, cell...)
		}
	}

	if failed > 0 && len(meanings) == 0 {
		return nil, fmt.Errorf("%w: all %d failing cells skipped, nothing resolved", model.ErrMeaningExtraction, failed)
	}
	return &model.MeaningCollection{Items: meanings}, nil
}

// resolveCell fetches the cell's readings and builds a Meaning for each,
// resolving the heading's element pair into the category label.
func (r *Resolver) resolveCell(ctx context.Context, base, position, value int) ([]model.Meaning, error) {
	readings, err := r.store.Readings(ctx, base, position)
	if err != nil {
		return nil, err
	}

	var out []model.Meaning
	for _, reading := range readings {
		element1, element2 := ParseHeading(reading.Heading)
		if element1 == "" && element2 == "" {
			r.logger.Debug("heading carries no element pair", zap.String("heading", reading.Heading))
		}

		cat1, err := r.Category(ctx, element1)
		if err != nil {
			return nil, err
		}
		cat2, err := r.Category(ctx, element2)
		if err != nil {
			return nil, err
		}

		label := ""
		if cat1.Name != "" && cat2.Name != "" {
			label = cat1.Name + " - " + cat2.Name
		}

		out = append(out, model.Meaning{
			Base:       base,
			Position:   position,
			Value:      value,
			Category:   label,
			Heading:    reading.Heading,
			Meaning:    reading.Content,
			MatchScore: 1,
		})
	}
	return out, nil
}
