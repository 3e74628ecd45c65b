package render

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hnimtadd/vtgrid/logger"
)

// DefaultGlyphExpiration is how long an unused lookup stays memoized.
const DefaultGlyphExpiration = 10 * time.Minute

// lookup is a memoized Atlas.Glyph result, misses included.
type lookup struct {
	glyph Glyph
	ok    bool
}

// CachedAtlas memoizes glyph lookups of another atlas, so a batch hits
// the backing atlas once per distinct glyph.
type CachedAtlas struct {
	atlas  Atlas
	cache  *gocache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
	logger logger.Logger
}

var _ Atlas = (*CachedAtlas)(nil)

// NewCachedAtlas wraps atlas. Entries unused for expiration are dropped;
// 0 keeps them forever.
func NewCachedAtlas(atlas Atlas, expiration time.Duration, log logger.Logger) *CachedAtlas {
	if log == nil {
		log = logger.Nop
	}
	cleanup := 2 * expiration
	if expiration <= 0 {
		expiration, cleanup = gocache.NoExpiration, 0
	}
	return &CachedAtlas{
		atlas:  atlas,
		cache:  gocache.New(expiration, cleanup),
		logger: log,
	}
}

func (c *CachedAtlas) Glyph(key GlyphKey) (Glyph, bool) {
	id := key.Hash()
	if v, found := c.cache.Get(id); found {
		if l, ok := v.(lookup); ok {
			c.hits.Add(1)
			return l.glyph, l.ok
		}
		c.logger.Error("wrong type in glyph cache", "key", id)
	}
	c.misses.Add(1)
	glyph, ok := c.atlas.Glyph(key)
	c.cache.SetDefault(id, lookup{glyph: glyph, ok: ok})
	return glyph, ok
}

func (c *CachedAtlas) Placeholder() (Glyph, bool) { return c.atlas.Placeholder() }

func (c *CachedAtlas) Utility(u Utility) Sprite { return c.atlas.Utility(u) }

// Flush forgets every memoized lookup, e.g. after the backing atlas was
// rebuilt.
func (c *CachedAtlas) Flush() {
	c.cache.Flush()
}

// Hits and Misses count lookups served from and past the memo.
func (c *CachedAtlas) Hits() uint64   { return c.hits.Load() }
func (c *CachedAtlas) Misses() uint64 { return c.misses.Load() }
