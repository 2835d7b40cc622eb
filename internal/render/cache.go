package render

import (
	"fmt"
	"sync"

	"github.com/diogo/chatwidget/internal/models"
)

// maxCacheEntries bounds the rendered-output cache
const maxCacheEntries = 512

// renderCache keeps rendered output for immutable messages so the viewport
// can be rebuilt on every resize without re-scanning each message.
type renderCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

var globalCache = &renderCache{
	entries: make(map[string]string),
}

// cacheKey generates a unique key based on options and the message.
func cacheKey(opts Options, msg models.Message) string {
	return fmt.Sprintf("%s:%s:%d:%d:%s",
		opts.Format,
		themeFor(opts).Name,
		opts.Width,
		msg.RenderedAs,
		msg.Text,
	)
}

// get returns cached output for key
func (c *renderCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out, ok := c.entries[key]
	return out, ok
}

// put stores output, dropping everything once the bound is reached
func (c *renderCache) put(key, out string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= maxCacheEntries {
		c.entries = make(map[string]string)
	}
	c.entries[key] = out
}

// ClearCache clears the rendered-output cache (useful for testing).
func ClearCache() {
	globalCache.mu.Lock()
	globalCache.entries = make(map[string]string)
	globalCache.mu.Unlock()
}

// CacheSize returns the number of cached entries.
func CacheSize() int {
	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()
	return len(globalCache.entries)
}
