// Package collection caches one fetched entity collection per screen and
// serializes asynchronous load results with generation tags.
package collection

import (
	"time"

	"github.com/storeops/storeops/internal/api"
)

// Status is the collection lifecycle state.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Collection owns the cached items for one screen. All writes flow through
// its methods from the screen's message handler, keeping a single writer;
// the UI reads Items but never mutates it directly.
//
// Each load is tagged with an incrementing generation. A response is
// applied only when its generation is still the latest issued, so a slow
// early response can never overwrite a faster later one.
type Collection[T api.Entity] struct {
	items       []T
	status      Status
	err         error
	meta        api.PageMeta
	lastFetched time.Time
	lastParams  api.ListParams
	gen         uint64

	now func() time.Time
}

// New builds an empty, Idle collection.
func New[T api.Entity]() *Collection[T] {
	return &Collection[T]{now: time.Now}
}

// BeginLoad records the fetch parameters, bumps the generation, and moves
// to Loading. The returned generation must accompany the eventual Resolve.
func (c *Collection[T]) BeginLoad(params api.ListParams) uint64 {
	c.gen++
	c.lastParams = params
	c.status = Loading
	return c.gen
}

// LastParams returns the parameters of the most recent load, for refetch.
func (c *Collection[T]) LastParams() api.ListParams { return c.lastParams }

// Resolve applies a load result. Stale generations are discarded and the
// method reports false. On success the items are replaced wholesale; on
// failure the previous items are retained but the collection is Failed.
func (c *Collection[T]) Resolve(gen uint64, items []T, meta api.PageMeta, err error) bool {
	if gen != c.gen {
		return false
	}
	if err != nil {
		c.status = Failed
		c.err = err
		return true
	}
	c.items = items
	c.meta = meta
	c.status = Loaded
	c.err = nil
	if c.now != nil {
		c.lastFetched = c.now()
	} else {
		c.lastFetched = time.Now()
	}
	return true
}

// Items returns the cached records. Callers must treat the slice as
// read-only; mutation goes through PatchOne or a full load.
func (c *Collection[T]) Items() []T { return c.items }

// Status returns the lifecycle state.
func (c *Collection[T]) Status() Status { return c.status }

// Err returns the error of the most recent failed load, if any.
func (c *Collection[T]) Err() error { return c.err }

// Meta returns the server pagination block captured with the last load.
func (c *Collection[T]) Meta() api.PageMeta { return c.meta }

// LastFetched returns when the collection last loaded successfully.
func (c *Collection[T]) LastFetched() time.Time { return c.lastFetched }

// PatchOne replaces the record with the given id in place. When the id is
// absent (a race with a concurrent delete) the patch is a no-op and the
// method reports false.
func (c *Collection[T]) PatchOne(id string, patch func(T) T) bool {
	for i, item := range c.items {
		if item.EntityID() == id {
			c.items[i] = patch(item)
			return true
		}
	}
	return false
}

// Replace swaps the record with the given id for the server-returned copy.
func (c *Collection[T]) Replace(id string, record T) bool {
	return c.PatchOne(id, func(T) T { return record })
}

// RemoveByID deletes the record with the given id, preserving order.
// Reports false when the id is absent.
func (c *Collection[T]) RemoveByID(id string) bool {
	for i, item := range c.items {
		if item.EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Renumber rewrites an ordinal display field contiguously from 1 after a
// removal. The assign callback returns the item with its ordinal set.
func (c *Collection[T]) Renumber(assign func(item T, ordinal int) T) {
	for i, item := range c.items {
		c.items[i] = assign(item, i+1)
	}
}
