package watcher

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/outline/internal/extraction"
)

// SummaryCache remembers summaries by content, so saving a file without
// changing it, or reverting it, does not reparse.
// Summaries are shared between callers and must not be modified.
type SummaryCache struct {
	cache otter.Cache[string, *extraction.Summary]
}

// NewSummaryCache creates a cache holding up to size summaries.
func NewSummaryCache(size int) (*SummaryCache, error) {
	if size < 1 {
		size = 1
	}
	cache, err := otter.MustBuilder[string, *extraction.Summary](size).Build()
	if err != nil {
		return nil, err
	}
	return &SummaryCache{cache: cache}, nil
}

// Get returns the summary cached under key.
func (c *SummaryCache) Get(key string) (*extraction.Summary, bool) {
	return c.cache.Get(key)
}

// Set stores s under key.
func (c *SummaryCache) Set(key string, s *extraction.Summary) {
	c.cache.Set(key, s)
}

// Close releases the cache's background resources.
func (c *SummaryCache) Close() {
	c.cache.Close()
}

// contentKey identifies a summary by language, cap, and source bytes.
func contentKey(language string, limit int, source []byte) string {
	h := sha256.New()
	h.Write([]byte(language))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(limit)))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}
