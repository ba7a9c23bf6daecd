// Package catalog provides the meaning-catalogue storage interface and
// its SQLite implementation.
package catalog

import (
	"context"

	"github.com/peeranat/chedthan/internal/model"
)

// Store is the read surface the engine consumes. Lookups that find nothing
// return (nil, nil); transport or storage faults wrap model.ErrRepository.
type Store interface {
	// CategoryByName looks a category up by machine name.
	CategoryByName(ctx context.Context, name string) (*model.Category, error)

	// CategoryByThaiName looks a category up by Thai display name.
	CategoryByThaiName(ctx context.Context, name string) (*model.Category, error)

	// CategoryByHouseNumber looks a category up by house number.
	CategoryByHouseNumber(ctx context.Context, n int) (*model.Category, error)

	// Readings returns the stored readings for one (base, position) cell.
	Readings(ctx context.Context, base, position int) ([]model.Reading, error)

	// Combination returns the stored interpretation for an ordered pair
	// (or triple, when cat3 is non-nil) of category ids.
	Combination(ctx context.Context, cat1, cat2 int64, cat3 *int64) (*model.CategoryCombination, error)

	// AllReadings and AllCombinations feed the embedding index build.
	AllReadings(ctx context.Context) ([]model.Reading, error)
	AllCombinations(ctx context.Context) ([]model.CategoryCombination, error)

	// Close closes the store.
	Close() error
}
