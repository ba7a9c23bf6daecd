package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/peeranat/chedthan/internal/model"
)

// Snapshot is a portable dump of the catalogue.
type Snapshot struct {
	BatchID      string                      `json:"batch_id"`
	ExportedAt   time.Time                   `json:"exported_at"`
	Categories   []model.Category            `json:"categories"`
	Readings     []model.Reading             `json:"readings"`
	Combinations []model.CategoryCombination `json:"combinations"`
}

// ExportAll dumps the whole catalogue.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		BatchID:    ulid.MustNew(ulid.Timestamp(time.Now()), rand.New(rand.NewSource(time.Now().UnixNano()))).String(),
		ExportedAt: time.Now().UTC(),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, thai_name, COALESCE(house_number, 0), COALESCE(house_type, '')
		 FROM categories ORDER BY name`)
	if err != nil {
		return nil, repoErr("export categories", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ThaiName, &c.HouseNumber, &c.HouseType); err != nil {
			return nil, repoErr("export categories", err)
		}
		snap.Categories = append(snap.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("export categories", err)
	}

	if snap.Readings, err = s.AllReadings(ctx); err != nil {
		return nil, err
	}
	if snap.Combinations, err = s.AllCombinations(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// Import loads a snapshot into the catalogue. Categories are matched by
// name, and reading/combination category references are remapped to the
// local ids. Returns the number of rows written.
func (s *SQLiteStore) Import(ctx context.Context, snap *Snapshot) (int, error) {
	idMap := make(map[int64]int64, len(snap.Categories))
	written := 0

	for _, c := range snap.Categories {
		oldID := c.ID
		newID, err := s.PutCategory(ctx, c)
		if err != nil {
			return written, err
		}
		idMap[oldID] = newID
		written++
	}

	remap := func(id int64) (int64, error) {
		if mapped, ok := idMap[id]; ok {
			return mapped, nil
		}
		return 0, fmt.Errorf("%w: import references unknown category id %d", model.ErrRepository, id)
	}

	for _, r := range snap.Readings {
		mapped, err := remap(r.CategoryID)
		if err != nil {
			return written, err
		}
		r.CategoryID = mapped
		if _, err := s.PutReading(ctx, r); err != nil {
			return written, err
		}
		written++
	}

	for _, c := range snap.Combinations {
		c1, err := remap(c.Category1ID)
		if err != nil {
			return written, err
		}
		c2, err := remap(c.Category2ID)
		if err != nil {
			return written, err
		}
		c.Category1ID, c.Category2ID = c1, c2
		if c.Category3ID != nil {
			c3, err := remap(*c.Category3ID)
			if err != nil {
				return written, err
			}
			c.Category3ID = &c3
		}
		if _, err := s.PutCombination(ctx, c); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}
