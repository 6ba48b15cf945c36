package ui

import (
	"context"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/collection"
)

// column describes one table column of a listing screen.
type column[T api.Entity] struct {
	title string
	width int
	cell  func(T) string
}

// formFieldKind selects how a modal field is edited.
type formFieldKind int

const (
	fieldText formFieldKind = iota
	fieldChoice
)

// formField is one editable field in a mutation modal. Text fields carry
// free input; choice fields cycle through options.
type formField struct {
	label   string
	value   string
	kind    formFieldKind
	options []string
	choice  int
}

// current returns the field's effective value.
func (f formField) current() string {
	if f.kind == fieldChoice {
		if f.choice >= 0 && f.choice < len(f.options) {
			return f.options[f.choice]
		}
		return ""
	}
	return f.value
}

// submitFunc performs the server call for a mutation and returns the
// echoed record when the backend provides one.
type submitFunc[T api.Entity] func(ctx context.Context) (*T, error)

// adapter parameterizes the shared table controller for one entity type.
// Screens differ only in what an adapter supplies: columns, searchable
// fields, status taxonomy, and mutation endpoints.
type adapter[T api.Entity] struct {
	route  Route
	entity string

	columns      []column[T]
	searchFields func(T) []string
	// statusOf is nil for entities without a status taxonomy; the status
	// filter is then inert.
	statusOf      func(T) string
	statusFilters []string

	fetch func(ctx context.Context, params api.ListParams) ([]T, api.PageMeta, error)

	// editFields is nil for read-only screens.
	editFields func(T) []formField
	// buildSubmit validates the form client-side and builds the server
	// call plus the local reconciliation applied when the backend does
	// not echo the record. A validation error blocks the network call.
	buildSubmit func(target T, fields []formField) (submitFunc[T], func(T) T, error)

	// deleteRecord is nil for entities that cannot be deleted.
	deleteRecord func(ctx context.Context, id string) error
	// afterRemove runs after a successful delete, e.g. ordinal
	// renumbering.
	afterRemove func(c *collection.Collection[T])

	deleteLabel func(T) string
}
