package collection

import (
	"errors"
	"reflect"
	"testing"

	"github.com/storeops/storeops/internal/api"
)

func loadedProducts(t *testing.T, c *Collection[api.Product], items []api.Product) {
	t.Helper()
	gen := c.BeginLoad(api.ListParams{})
	if !c.Resolve(gen, items, api.PageMeta{}, nil) {
		t.Fatalf("Resolve rejected the current generation")
	}
}

func TestLifecycle(t *testing.T) {
	c := New[api.Product]()
	if c.Status() != Idle {
		t.Fatalf("Status = %v, want Idle", c.Status())
	}

	gen := c.BeginLoad(api.ListParams{Search: "lamp"})
	if c.Status() != Loading {
		t.Fatalf("Status = %v, want Loading", c.Status())
	}
	if got := c.LastParams().Search; got != "lamp" {
		t.Fatalf("LastParams().Search = %q, want lamp", got)
	}

	items := []api.Product{{ID: "p-1", Name: "Lamp"}}
	meta := api.PageMeta{CurrentPage: 1, Total: 1}
	if !c.Resolve(gen, items, meta, nil) {
		t.Fatalf("Resolve rejected the current generation")
	}
	if c.Status() != Loaded || len(c.Items()) != 1 {
		t.Fatalf("after Resolve: status=%v items=%d", c.Status(), len(c.Items()))
	}
	if c.Meta() != meta {
		t.Fatalf("Meta = %#v, want %#v", c.Meta(), meta)
	}
	if c.LastFetched().IsZero() {
		t.Fatalf("LastFetched not stamped")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	c := New[api.Product]()

	slow := c.BeginLoad(api.ListParams{Page: 1})
	fast := c.BeginLoad(api.ListParams{Page: 2})

	// The later load's response arrives first and wins.
	if !c.Resolve(fast, []api.Product{{ID: "fast"}}, api.PageMeta{}, nil) {
		t.Fatalf("latest generation rejected")
	}
	// The earlier, slower response must not overwrite it.
	if c.Resolve(slow, []api.Product{{ID: "slow"}}, api.PageMeta{}, nil) {
		t.Fatalf("stale generation applied")
	}
	if c.Items()[0].ID != "fast" {
		t.Fatalf("items = %#v, want the fast response retained", c.Items())
	}
	if c.Status() != Loaded {
		t.Fatalf("Status = %v, want Loaded", c.Status())
	}
}

func TestFailedLoadKeepsItems(t *testing.T) {
	c := New[api.Product]()
	loadedProducts(t, c, []api.Product{{ID: "p-1"}})

	gen := c.BeginLoad(api.ListParams{})
	if !c.Resolve(gen, nil, api.PageMeta{}, errors.New("boom")) {
		t.Fatalf("Resolve rejected the current generation")
	}
	if c.Status() != Failed || c.Err() == nil {
		t.Fatalf("status=%v err=%v, want Failed with error", c.Status(), c.Err())
	}
	if len(c.Items()) != 1 {
		t.Fatalf("failed load dropped the previous items")
	}
}

func TestPatchOnePreservesIdentityAndLength(t *testing.T) {
	c := New[api.Product]()
	loadedProducts(t, c, []api.Product{
		{ID: "p-1", No: 1, Name: "Lamp", Price: 10},
		{ID: "p-2", No: 2, Name: "Desk", Price: 250},
		{ID: "p-3", No: 3, Name: "Chair", Price: 90},
	})

	ok := c.PatchOne("p-2", func(p api.Product) api.Product {
		p.Price = 199
		return p
	})
	if !ok {
		t.Fatalf("PatchOne reported missing id")
	}
	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want unchanged 3", len(items))
	}
	matches := 0
	for _, p := range items {
		if p.ID == "p-2" {
			matches++
			if p.Price != 199 || p.Name != "Desk" || p.No != 2 {
				t.Fatalf("patched item = %#v, want only Price changed", p)
			}
		}
	}
	if matches != 1 {
		t.Fatalf("items with id p-2 = %d, want exactly 1", matches)
	}
}

func TestPatchMissingIDNoOps(t *testing.T) {
	c := New[api.Product]()
	loadedProducts(t, c, []api.Product{{ID: "p-1"}})
	before := append([]api.Product(nil), c.Items()...)

	if c.PatchOne("gone", func(p api.Product) api.Product { return p }) {
		t.Fatalf("PatchOne applied to a missing id")
	}
	if !reflect.DeepEqual(before, c.Items()) {
		t.Fatalf("no-op patch mutated items")
	}
}

func TestRemoveAndRenumber(t *testing.T) {
	c := New[api.Product]()
	loadedProducts(t, c, []api.Product{
		{ID: "p-1", No: 1},
		{ID: "p-2", No: 2},
		{ID: "p-3", No: 3},
	})

	if !c.RemoveByID("p-2") {
		t.Fatalf("RemoveByID reported missing id")
	}
	c.Renumber(func(p api.Product, ordinal int) api.Product {
		p.No = ordinal
		return p
	})

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "p-1" || items[0].No != 1 {
		t.Fatalf("items[0] = %#v, want p-1 ordinal 1", items[0])
	}
	if items[1].ID != "p-3" || items[1].No != 2 {
		t.Fatalf("items[1] = %#v, want p-3 ordinal 2", items[1])
	}

	if c.RemoveByID("p-2") {
		t.Fatalf("RemoveByID found an already-removed id")
	}
}
