package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/peeranat/chedthan/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens or creates a catalogue database at the given path.
// A fresh database is seeded with the 21 canonical house categories.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.seedCategories(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL UNIQUE,
		thai_name    TEXT NOT NULL,
		house_number INTEGER,
		house_type   TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_categories_thai ON categories(thai_name);
	CREATE INDEX IF NOT EXISTS idx_categories_house ON categories(house_number);

	CREATE TABLE IF NOT EXISTS readings (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		base        INTEGER NOT NULL,
		position    INTEGER NOT NULL,
		category_id INTEGER NOT NULL REFERENCES categories(id),
		heading     TEXT NOT NULL,
		content     TEXT NOT NULL,
		influence   TEXT NOT NULL DEFAULT 'กลาง'
	);
	CREATE INDEX IF NOT EXISTS idx_readings_cell ON readings(base, position);
	CREATE INDEX IF NOT EXISTS idx_readings_category ON readings(category_id);

	CREATE TABLE IF NOT EXISTS category_combinations (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		category1_id INTEGER NOT NULL REFERENCES categories(id),
		category2_id INTEGER NOT NULL REFERENCES categories(id),
		category3_id INTEGER REFERENCES categories(id),
		heading      TEXT NOT NULL,
		content      TEXT NOT NULL,
		influence    TEXT NOT NULL DEFAULT 'กลาง',
		UNIQUE(category1_id, category2_id, category3_id)
	);
	-- The table UNIQUE treats NULL category3_id rows as distinct; pair keys
	-- need their own index so OR REPLACE actually replaces.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_combinations_pair
		ON category_combinations(category1_id, category2_id)
		WHERE category3_id IS NULL;
	`
	_, err := s.db.Exec(schema)
	return err
}

// repoErr tags a storage fault with the repository sentinel.
func repoErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrRepository, op, err)
}

func (s *SQLiteStore) categoryBy(ctx context.Context, where string, arg interface{}) (*model.Category, error) {
	var c model.Category
	var houseNumber sql.NullInt64
	var houseType sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, thai_name, house_number, house_type FROM categories WHERE `+where+` LIMIT 1`,
		arg).Scan(&c.ID, &c.Name, &c.ThaiName, &houseNumber, &houseType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, repoErr("category lookup", err)
	}
	if houseNumber.Valid {
		c.HouseNumber = int(houseNumber.Int64)
	}
	if houseType.Valid {
		c.HouseType = houseType.String
	}
	return &c, nil
}

func (s *SQLiteStore) CategoryByName(ctx context.Context, name string) (*model.Category, error) {
	return s.categoryBy(ctx, "name = ?", name)
}

func (s *SQLiteStore) CategoryByThaiName(ctx context.Context, name string) (*model.Category, error) {
	return s.categoryBy(ctx, "thai_name = ?", name)
}

func (s *SQLiteStore) CategoryByHouseNumber(ctx context.Context, n int) (*model.Category, error) {
	return s.categoryBy(ctx, "house_number = ?", n)
}

func (s *SQLiteStore) Readings(ctx context.Context, base, position int) ([]model.Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, base, position, category_id, heading, content, influence
		 FROM readings WHERE base = ? AND position = ? ORDER BY id`,
		base, position)
	if err != nil {
		return nil, repoErr("readings query", err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

func (s *SQLiteStore) AllReadings(ctx context.Context) ([]model.Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, base, position, category_id, heading, content, influence
		 FROM readings ORDER BY base, position, id`)
	if err != nil {
		return nil, repoErr("readings query", err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

func scanReadings(rows *sql.Rows) ([]model.Reading, error) {
	var readings []model.Reading
	for rows.Next() {
		var r model.Reading
		if err := rows.Scan(&r.ID, &r.Base, &r.Position, &r.CategoryID, &r.Heading, &r.Content, &r.Influence); err != nil {
			return nil, repoErr("readings scan", err)
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func (s *SQLiteStore) Combination(ctx context.Context, cat1, cat2 int64, cat3 *int64) (*model.CategoryCombination, error) {
	var row *sql.Row
	if cat3 != nil {
		row = s.db.QueryRowContext(ctx,
			`SELECT id, category1_id, category2_id, category3_id, heading, content, influence
			 FROM category_combinations
			 WHERE category1_id = ? AND category2_id = ? AND category3_id = ? LIMIT 1`,
			cat1, cat2, *cat3)
	} else {
		row = s.db.QueryRowContext(ctx,
			`SELECT id, category1_id, category2_id, category3_id, heading, content, influence
			 FROM category_combinations
			 WHERE category1_id = ? AND category2_id = ? AND category3_id IS NULL LIMIT 1`,
			cat1, cat2)
	}

	c, err := scanCombination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, repoErr("combination lookup", err)
	}
	return c, nil
}

func (s *SQLiteStore) AllCombinations(ctx context.Context) ([]model.CategoryCombination, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category1_id, category2_id, category3_id, heading, content, influence
		 FROM category_combinations ORDER BY id`)
	if err != nil {
		return nil, repoErr("combinations query", err)
	}
	defer rows.Close()

	var combos []model.CategoryCombination
	for rows.Next() {
		c, err := scanCombination(rows)
		if err != nil {
			return nil, repoErr("combinations scan", err)
		}
		combos = append(combos, *c)
	}
	return combos, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCombination(row scanner) (*model.CategoryCombination, error) {
	var c model.CategoryCombination
	var cat3 sql.NullInt64
	err := row.Scan(&c.ID, &c.Category1ID, &c.Category2ID, &cat3, &c.Heading, &c.Content, &c.Influence)
	if err != nil {
		return nil, err
	}
	if cat3.Valid {
		v := cat3.Int64
		c.Category3ID = &v
	}
	return &c, nil
}

// PutCategory inserts or updates a category by machine name.
func (s *SQLiteStore) PutCategory(ctx context.Context, c model.Category) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, repoErr("put category", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO categories (name, thai_name, house_number, house_type)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   thai_name = excluded.thai_name,
		   house_number = excluded.house_number,
		   house_type = excluded.house_type`,
		c.Name, c.ThaiName, nullableInt(c.HouseNumber), nullableStr(c.HouseType))
	if err != nil {
		return 0, repoErr("put category", err)
	}
	// LastInsertId is unreliable on the upsert's update path; reread by name
	// inside the same transaction.
	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ?`, c.Name).Scan(&id); err != nil {
		return 0, repoErr("put category", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, repoErr("put category", err)
	}
	return id, nil
}

// PutReading inserts a reading row.
func (s *SQLiteStore) PutReading(ctx context.Context, r model.Reading) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO readings (base, position, category_id, heading, content, influence)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Base, r.Position, r.CategoryID, r.Heading, r.Content, r.Influence)
	if err != nil {
		return 0, repoErr("put reading", err)
	}
	return res.LastInsertId()
}

// PutCombination inserts or replaces a combination row for its category key.
func (s *SQLiteStore) PutCombination(ctx context.Context, c model.CategoryCombination) (int64, error) {
	var cat3 interface{}
	if c.Category3ID != nil {
		cat3 = *c.Category3ID
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO category_combinations
		 (category1_id, category2_id, category3_id, heading, content, influence)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Category1ID, c.Category2ID, cat3, c.Heading, c.Content, c.Influence)
	if err != nil {
		return 0, repoErr("put combination", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullableInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

func nullableStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
