package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github-wrapped/internal/wrapped"
)

// DefaultTTL is how long a computed snapshot stays fresh. A year in
// review moves slowly; an hour matches the product's refresh cadence.
const DefaultTTL = time.Hour

// Snapshots is an in-memory snapshot store keyed by (username, year).
// A cache hit short-circuits the whole orchestration run; snapshots are
// written whole once and replaced whole on refresh, never updated
// incrementally.
type Snapshots struct {
	cache   *gocache.Cache
	enabled bool
}

func New(enabled bool) *Snapshots {
	return &Snapshots{
		cache:   gocache.New(DefaultTTL, 2*DefaultTTL),
		enabled: enabled,
	}
}

func (c *Snapshots) Get(username string, year int) (*wrapped.Snapshot, bool) {
	if !c.enabled {
		return nil, false
	}
	value, found := c.cache.Get(key(username, year))
	if !found {
		return nil, false
	}
	snapshot, ok := value.(*wrapped.Snapshot)
	return snapshot, ok
}

func (c *Snapshots) Set(username string, year int, snapshot *wrapped.Snapshot) {
	if !c.enabled {
		return
	}
	c.cache.Set(key(username, year), snapshot, DefaultTTL)
}

func (c *Snapshots) Delete(username string, year int) {
	if !c.enabled {
		return
	}
	c.cache.Delete(key(username, year))
}

func (c *Snapshots) Clear() {
	if !c.enabled {
		return
	}
	c.cache.Flush()
}

func key(username string, year int) string {
	return fmt.Sprintf("%s_%d", username, year)
}
