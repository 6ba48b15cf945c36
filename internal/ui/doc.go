// Package ui implements the Bubble Tea terminal interface for storeops.
//
// The root Model owns routing between screens. Navigation is guarded by
// session state: the login screen is guest-only and every other screen
// requires a credential. Each listing screen is one instance of a shared
// generic table controller parameterized by an entity adapter supplying
// columns, searchable fields, and mutation endpoints.
//
// All asynchronous work (collection fetches, mutation submits) runs as
// tea.Cmd functions delivering typed messages back to the single update
// loop. Fetch results carry a collection generation and submit results a
// workflow token, so stale responses are discarded instead of overwriting
// newer state.
package ui
