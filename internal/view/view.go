// Package view derives the visible rows of a table screen from a fetched
// collection. Projection is a pure function of the inputs so recomputing on
// every render, or after an in-place patch, yields identical results.
package view

import "strings"

const defaultPageSize = 10

// State is the ephemeral search/filter/pagination selection for one screen.
// It is never persisted. Any change to the search text, status filter, or
// page size resets the page index, otherwise a stale index could point past
// the new result set.
type State struct {
	Search       string
	StatusFilter string
	PageIndex    int
	PageSize     int
}

// NewState builds a State with the given page size and no filtering.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return State{StatusFilter: "all", PageSize: pageSize}
}

// SetSearch replaces the search text and resets the page index.
func (s *State) SetSearch(q string) {
	s.Search = q
	s.PageIndex = 0
}

// SetFilter replaces the status filter and resets the page index.
func (s *State) SetFilter(filter string) {
	if filter == "" {
		filter = "all"
	}
	s.StatusFilter = filter
	s.PageIndex = 0
}

// SetPageSize replaces the page size and resets the page index.
func (s *State) SetPageSize(n int) {
	if n <= 0 {
		n = defaultPageSize
	}
	s.PageSize = n
	s.PageIndex = 0
}

// Page is the computed visible window plus its pagination metadata.
type Page[T any] struct {
	Visible    []T
	PageIndex  int
	TotalPages int
	TotalItems int
}

// Project applies search, status filter, and the page window.
//
// An item is kept when the search text is empty or matches any of its
// searchable fields case-insensitively, and the status filter is "all" or
// equals the item's status. The page index is clamped into
// [0, totalPages-1] so a shrinking result set never leaves an empty page
// showing.
func Project[T any](items []T, st State, fields func(T) []string, statusOf func(T) string) Page[T] {
	filtered := Filter(items, st.Search, st.StatusFilter, fields, statusOf)

	size := st.PageSize
	if size <= 0 {
		size = defaultPageSize
	}

	totalPages := (len(filtered) + size - 1) / size
	index := st.PageIndex
	if index > totalPages-1 {
		index = totalPages - 1
	}
	if index < 0 {
		index = 0
	}

	start := index * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page[T]{
		Visible:    filtered[start:end],
		PageIndex:  index,
		TotalPages: totalPages,
		TotalItems: len(filtered),
	}
}

// Filter keeps the items matching the search text and status filter,
// preserving server order.
func Filter[T any](items []T, search, statusFilter string, fields func(T) []string, statusOf func(T) string) []T {
	search = strings.ToLower(strings.TrimSpace(search))
	matchAll := statusFilter == "" || statusFilter == "all" || statusOf == nil

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchAll && statusOf(item) != statusFilter {
			continue
		}
		if search != "" && !matchesSearch(fields(item), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(fields []string, lowered string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowered) {
			return true
		}
	}
	return false
}

// CountByStatus tallies items per status, feeding the summary cards that
// accompany a listing screen.
func CountByStatus[T any](items []T, statusOf func(T) string) map[string]int {
	counts := make(map[string]int)
	if statusOf == nil {
		return counts
	}
	for _, item := range items {
		counts[statusOf(item)]++
	}
	return counts
}
