// Package session persists the staff bearer credential and gates screen
// reachability on its presence.
package session
