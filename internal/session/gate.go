package session

// Authenticator reports credential presence. Implemented by *Store.
type Authenticator interface {
	Authenticated() bool
}

// Decision is the outcome of a navigation guard check.
type Decision int

const (
	// Proceed admits the navigation.
	Proceed Decision = iota
	// RedirectToLogin bounces an unauthenticated user to the login screen.
	RedirectToLogin
	// RedirectToHome bounces an authenticated user off a guest-only screen.
	RedirectToHome
)

// Gate evaluates route guards. Guards are pure predicates over the current
// credential state, re-evaluated on every navigation with no caching.
type Gate struct {
	auth Authenticator
}

// NewGate builds a Gate over the given credential source.
func NewGate(auth Authenticator) Gate {
	return Gate{auth: auth}
}

// Check applies the guard for a destination. guestOnly marks screens that
// only signed-out users may see (the login screen); every other screen
// requires a credential.
func (g Gate) Check(guestOnly bool) Decision {
	authed := g.auth != nil && g.auth.Authenticated()
	switch {
	case guestOnly && authed:
		return RedirectToHome
	case !guestOnly && !authed:
		return RedirectToLogin
	default:
		return Proceed
	}
}
