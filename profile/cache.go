package profile

import (
	"container/list"
	"log"
	"sync"

	"github.com/kuonanhong/GalSim/logging"
)

// infoCache maps a (nu, *GSParams) key to the shared spergelInfo for
// that key, constructing entries on first request and evicting the least
// recently used entry once past capacity.
//
// Eviction only removes the entry from the lookup table. Profiles hold
// their *spergelInfo directly, so an evicted entry stays alive for as
// long as any profile references it; a later request for the same key
// builds a fresh entry with its own identity.
type infoCache struct {
	mu      sync.Mutex
	entries map[infoKey]*list.Element
	order   *list.List // front = most recently used
}

type infoKey struct {
	nu     float64
	params *GSParams
}

type infoEntry struct {
	key  infoKey
	info *spergelInfo
}

var spergelCache = &infoCache{
	entries: map[infoKey]*list.Element{},
	order:   list.New(),
}

// get returns the cached spergelInfo for key, constructing it if needed.
// Construction happens under the cache lock, so a key is never built
// twice and a partially built entry is never visible.
func (c *infoCache) get(key infoKey) (*spergelInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*infoEntry).info, nil
	}

	info, err := newSpergelInfo(key.nu, key.params)
	if err != nil {
		return nil, err
	}
	if logging.Mode == logging.Debug {
		log.Printf("cache: built info for nu = %g", key.nu)
	}

	c.entries[key] = c.order.PushFront(&infoEntry{key, info})

	capacity := key.params.MaxSpergelCache
	for len(c.entries) > capacity {
		oldest := c.order.Back()
		delete(c.entries, oldest.Value.(*infoEntry).key)
		c.order.Remove(oldest)
	}
	return info, nil
}

// len reports the number of cached entries; used by tests.
func (c *infoCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
