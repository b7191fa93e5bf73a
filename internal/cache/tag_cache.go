package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	value any
	tags  []string
}

type Stats struct {
	Hits          uint64
	Misses        uint64
	Invalidations uint64
	// DiscardedWrites counts computed values not stored because one of their
	// tags was invalidated while they were being computed.
	DiscardedWrites uint64
}

// TagCache is an in-process Store. Entries expire after ttl.
type TagCache struct {
	entries *gocache.Cache
	group   singleflight.Group

	mu    sync.Mutex
	index map[string]map[string]struct{} // tag -> keys
	// live is the entry each key is indexed under. go-cache hides expired
	// items from Get before its janitor evicts them, so unlinking relies on
	// this map instead.
	live map[string]*entry
	// seq increases on every Invalidate. tagSeq records the seq of the last
	// invalidation per tag while at least one load is running.
	seq      uint64
	tagSeq   map[string]uint64
	inflight int

	hits          atomic.Uint64
	misses        atomic.Uint64
	invalidations atomic.Uint64
	discarded     atomic.Uint64
}

func NewTagCache(ttl, cleanupInterval time.Duration) *TagCache {
	c := &TagCache{
		entries: gocache.New(ttl, cleanupInterval),
		index:   make(map[string]map[string]struct{}),
		live:    make(map[string]*entry),
		tagSeq:  make(map[string]uint64),
	}
	c.entries.OnEvicted(c.onEvicted)
	return c
}

func (c *TagCache) GetOrCompute(ctx context.Context, key Key, tags []string, load Loader) (any, error) {
	k := key.String()
	if v, ok := c.entries.Get(k); ok {
		c.hits.Add(1)
		return v.(*entry).value, nil
	}

	c.mu.Lock()
	generation := c.seq
	c.mu.Unlock()

	// Callers only share a load started at the same generation, so a read
	// issued after an invalidation never receives a value loaded before it.
	flightKey := k + "#" + strconv.FormatUint(generation, 10)
	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		if v, ok := c.entries.Get(k); ok {
			c.hits.Add(1)
			return v.(*entry).value, nil
		}
		c.misses.Add(1)
		return c.load(ctx, k, tags, load)
	})
	return v, err
}

func (c *TagCache) load(ctx context.Context, k string, tags []string, load Loader) (any, error) {
	c.mu.Lock()
	startSeq := c.seq
	c.inflight++
	c.mu.Unlock()

	value, derived, err := load(context.WithoutCancel(ctx))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	defer func() {
		if c.inflight == 0 && len(c.tagSeq) > 0 {
			c.tagSeq = make(map[string]uint64)
		}
	}()

	if err != nil {
		return nil, err
	}

	all := mergeTags(tags, derived)
	for _, tag := range all {
		if c.tagSeq[tag] > startSeq {
			c.discarded.Add(1)
			return value, nil
		}
	}

	if old, ok := c.live[k]; ok {
		c.unlink(k, old.tags)
	}
	e := &entry{value: value, tags: all}
	c.live[k] = e
	c.entries.Set(k, e, gocache.DefaultExpiration)
	for _, tag := range all {
		keys, ok := c.index[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.index[tag] = keys
		}
		keys[k] = struct{}{}
	}
	return value, nil
}

func (c *TagCache) Invalidate(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	c.invalidations.Add(1)

	c.mu.Lock()
	c.seq++
	var victims []string
	for _, tag := range tags {
		if c.inflight > 0 {
			c.tagSeq[tag] = c.seq
		}
		for k := range c.index[tag] {
			victims = append(victims, k)
		}
	}
	for _, k := range victims {
		if e, ok := c.live[k]; ok {
			c.unlink(k, e.tags)
			delete(c.live, k)
		}
	}
	c.mu.Unlock()

	// go-cache runs OnEvicted synchronously from Delete, which takes c.mu.
	for _, k := range victims {
		c.entries.Delete(k)
	}
}

func (c *TagCache) Stats() Stats {
	return Stats{
		Hits:            c.hits.Load(),
		Misses:          c.misses.Load(),
		Invalidations:   c.invalidations.Load(),
		DiscardedWrites: c.discarded.Load(),
	}
}

// Len reports the number of stored entries, expired ones included until the
// janitor runs.
func (c *TagCache) Len() int {
	return c.entries.ItemCount()
}

func (c *TagCache) onEvicted(k string, v interface{}) {
	e, ok := v.(*entry)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// The key may already hold a newer entry stored after this one expired.
	if c.live[k] != e {
		return
	}
	c.unlink(k, e.tags)
	delete(c.live, k)
}

// unlink must be called with c.mu held.
func (c *TagCache) unlink(k string, tags []string) {
	for _, tag := range tags {
		keys, ok := c.index[tag]
		if !ok {
			continue
		}
		delete(keys, k)
		if len(keys) == 0 {
			delete(c.index, tag)
		}
	}
}

func mergeTags(tags, derived []string) []string {
	all := make([]string, 0, len(tags)+len(derived))
	seen := make(map[string]struct{}, len(tags)+len(derived))
	for _, list := range [][]string{tags, derived} {
		for _, tag := range list {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			all = append(all, tag)
		}
	}
	return all
}
