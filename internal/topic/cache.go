package topic

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/peeranat/chedthan/internal/model"
)

// Cached memoizes another Classifier by exact, unnormalized input text.
// A hit returns the identical prior result with no inner call. Concurrent
// identical-text misses are collapsed into one inner call. With MaxEntries
// zero the cache grows for the process lifetime; a positive bound evicts
// the oldest fifth of entries when exceeded.
type Cached struct {
	inner      Classifier
	maxEntries int
	logger     *zap.Logger

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*model.TopicResult
	order   []string
}

// NewCached wraps inner with memoization. maxEntries <= 0 means unbounded.
func NewCached(inner Classifier, maxEntries int, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		inner:      inner,
		maxEntries: maxEntries,
		logger:     logger,
		entries:    make(map[string]*model.TopicResult),
	}
}

// Classify returns the cached result for text, calling the inner classifier
// only on a miss. Errors are passed through and never cached.
func (c *Cached) Classify(ctx context.Context, text string) (*model.TopicResult, error) {
	c.mu.RLock()
	cached, ok := c.entries[text]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(text, func() (interface{}, error) {
		// Another flight may have filled the entry while we queued.
		c.mu.RLock()
		cached, ok := c.entries[text]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		result, err := c.inner.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		c.put(text, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.TopicResult), nil
}

// Len reports the number of cached entries.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cached) put(text string, result *model.TopicResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[text]; !ok {
		c.order = append(c.order, text)
	}
	c.entries[text] = result

	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		evict := c.maxEntries / 5
		if evict < 1 {
			evict = 1
		}
		for _, key := range c.order[:evict] {
			delete(c.entries, key)
		}
		c.order = c.order[evict:]
		c.logger.Debug("evicted oldest classification entries", zap.Int("count", evict))
	}
}
