package textstats

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yaklabco/docinspect/pkg/document"
)

// DefaultCacheSize is the number of distinct texts a Counter remembers.
const DefaultCacheSize = 16

// Counter memoizes content-level counts by text digest so that
// selection-only changes do not re-segment the document. A Counter is safe
// for concurrent use.
type Counter struct {
	cache *lru.Cache[[sha256.Size]byte, Counts]
}

// NewCounter creates a Counter holding up to size entries. A size of zero
// or less uses DefaultCacheSize.
func NewCounter(size int) (*Counter, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[[sha256.Size]byte, Counts](size)
	if err != nil {
		return nil, fmt.Errorf("create count cache: %w", err)
	}
	return &Counter{cache: cache}, nil
}

// Counts returns the content-level metrics of text and whether they came
// from the cache.
func (c *Counter) Counts(text string) (Counts, bool) {
	key := sha256.Sum256([]byte(text))
	if counts, ok := c.cache.Get(key); ok {
		return counts, true
	}
	counts := Count(text)
	c.cache.Add(key, counts)
	return counts, false
}

// Compute is Compute backed by the cache.
func (c *Counter) Compute(text string, sel document.Selection) (Snapshot, error) {
	counts, _ := c.Counts(text)
	return computeWith(counts, text, sel)
}

// Len reports the number of cached entries.
func (c *Counter) Len() int {
	return c.cache.Len()
}
