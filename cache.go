package typeset

import (
	"hash/fnv"
	"sync"

	"golang.org/x/image/math/fixed"
)

// DefaultCacheSize is the target entry count of a Cache.
const DefaultCacheSize = 128

// Cache memoizes wrapped line boxes keyed by text and layout parameters.
// It may be shared between layouts and goroutines; a single mutex guards
// the map. Once the map grows past twice the configured size it is
// evicted, in arbitrary order, back down to the configured size.
//
// The key does not identify the face or shaper, so share a Cache only
// between layouts using the same ones.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[cacheKey][]LineBox
}

type cacheKey struct {
	textHash uint64
	textLen  int
	size     fixed.Int26_6
	maxWidth int
	wrap     WrapMode
	base     uint8
}

// NewCache returns a cache evicting down to max entries. A non positive
// max selects DefaultCacheSize.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{
		max:     max,
		entries: make(map[cacheKey][]LineBox),
	}
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey][]LineBox)
}

func (c *Cache) get(text string, opts Options) ([]LineBox, bool) {
	key := makeCacheKey(text, opts)
	c.mu.Lock()
	defer c.mu.Unlock()
	lines, ok := c.entries[key]
	return lines, ok
}

func (c *Cache) put(text string, opts Options, lines []LineBox) {
	key := makeCacheKey(text, opts)
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= 2*c.max {
		for k := range c.entries {
			if len(c.entries) <= c.max {
				break
			}
			delete(c.entries, k)
		}
	}
	c.entries[key] = lines
}

func makeCacheKey(text string, opts Options) cacheKey {
	h := fnv.New64a()
	h.Write([]byte(text))
	return cacheKey{
		textHash: h.Sum64(),
		textLen:  len(text),
		size:     opts.Size,
		maxWidth: opts.MaxWidth,
		wrap:     opts.Wrap,
		base:     uint8(opts.Base),
	}
}
