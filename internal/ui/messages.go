package ui

import (
	"github.com/storeops/storeops/internal/api"
)

// listResultMsg delivers a collection fetch outcome. gen is the collection
// generation issued when the load began; stale generations are discarded.
// Dispatch to the owning screen is by entity type parameter.
type listResultMsg[T api.Entity] struct {
	gen   uint64
	items []T
	meta  api.PageMeta
	err   error
}

// submitResultMsg delivers a mutation outcome. token identifies the
// workflow submission; a cancelled or superseded workflow ignores it.
type submitResultMsg[T api.Entity] struct {
	token uint64
	id    string
	// record is the server-echoed copy, nil when the backend only
	// acknowledges. apply reconciles the proposed change locally in
	// that case.
	record *T
	apply  func(T) T
	remove bool
	err    error
}

// loginResultMsg delivers the outcome of a credential exchange.
type loginResultMsg struct {
	token string
	err   error
}

// statsResultMsg delivers the dashboard statistics fetch outcome.
type statsResultMsg struct {
	gen   uint64
	stats *api.Statistics
	err   error
}

// notifyExpireMsg fires when a notification's display timer elapses. The
// id guards against a stale timer clearing a newer notification.
type notifyExpireMsg struct {
	id uint64
}
