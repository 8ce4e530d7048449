package screen

import (
	"fmt"
	"sync"
)

// styleIntern caches the short attribute strings computed from a cell's
// colors and flags so repeated identical SGR states share one string
// instead of allocating a fresh one per cell. The cache is bounded so a
// session that cycles through arbitrary truecolor values can't grow it
// without limit; once full it stops interning new keys and just returns
// them uncached (still correct, just no longer deduplicated).
const styleInternCacheLimit = 1 << 20

type styleIntern struct {
	mu    sync.Mutex
	cache map[string]string
}

var globalStyleIntern = &styleIntern{cache: make(map[string]string)}

func (s *styleIntern) intern(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache[key]; ok {
		return v
	}
	if len(s.cache) >= styleInternCacheLimit {
		return key
	}
	s.cache[key] = key
	return key
}

// StyleKey returns a short interned string summarizing this cell's rendering
// attributes (colors and flags), suitable for cheap equality comparison
// between cells without comparing every field individually.
func (c *Cell) StyleKey() string {
	key := fmt.Sprintf("%v|%v|%v|%d", c.Fg, c.Bg, c.UnderlineColor, c.Flags)
	return globalStyleIntern.intern(key)
}

// SameStyle reports whether two cells share identical rendering attributes.
func (c *Cell) SameStyle(other *Cell) bool {
	return c.StyleKey() == other.StyleKey()
}
