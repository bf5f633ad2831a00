package translate

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached memoizes translations by source text and decoding parameters.
// Auto-translate re-captures an unchanged screen every tick; the cache keeps
// those ticks off the model.
type Cached struct {
	next   Translator
	params *Params
	cache  *lru.Cache[string, string]
}

// NewCached wraps next with an LRU of the given size. params may be nil.
func NewCached(next Translator, params *Params, size int) (*Cached, error) {
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, params: params, cache: c}, nil
}

func (c *Cached) key(text string) string {
	text = strings.TrimSpace(text)
	if c.params == nil {
		return text
	}
	d := c.params.Get()
	return fmt.Sprintf("%s\x00%d\x00%d\x00%s", d.Marker, d.NumBeams, d.MaxLength, text)
}

// Translate returns the cached translation or asks the wrapped translator.
// Failures are not cached.
func (c *Cached) Translate(ctx context.Context, text string) (string, error) {
	key := c.key(text)
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	out, err := c.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, out)
	return out, nil
}

// Len reports the number of cached entries.
func (c *Cached) Len() int { return c.cache.Len() }
