package catalog

import (
	"context"
	"os"
)

// Stats holds catalogue statistics.
type Stats struct {
	DBPath       string      `json:"db_path"`
	DBSizeBytes  int64       `json:"db_size_bytes"`
	Categories   int         `json:"categories"`
	Readings     int         `json:"readings"`
	Combinations int         `json:"combinations"`
	Cells        []CellStats `json:"cells"`
}

// CellStats holds per-(base, position) reading counts.
type CellStats struct {
	Base     int `json:"base"`
	Position int `json:"position"`
	Count    int `json:"count"`
}

// Stats returns catalogue statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&st.Categories)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM readings`).Scan(&st.Readings)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM category_combinations`).Scan(&st.Combinations)

	rows, err := s.db.QueryContext(ctx, `
		SELECT base, position, COUNT(*) as cnt
		FROM readings GROUP BY base, position
		ORDER BY base, position`)
	if err != nil {
		return st, repoErr("stats query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c CellStats
		rows.Scan(&c.Base, &c.Position, &c.Count)
		st.Cells = append(st.Cells, c)
	}

	return st, nil
}
