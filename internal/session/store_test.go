package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.toml")
	s, err := Open(path)
	require.NoError(t, err)
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := tempStore(t)

	_, ok := s.Token()
	assert.False(t, ok)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Save("tok-abc"))
	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
	assert.True(t, s.Authenticated())

	// A fresh Store over the same path sees the persisted credential.
	reopened, err := Open(s.path)
	require.NoError(t, err)
	token, ok = reopened.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
}

func TestClearRemovesCredential(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save("tok-abc"))

	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())

	reopened, err := Open(s.path)
	require.NoError(t, err)
	assert.False(t, reopened.Authenticated())

	// Clearing an already-clear store is fine.
	require.NoError(t, s.Clear())
}

func TestOpenMissingFileIsSignedOut(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nope", "session.toml"))
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
}

func TestExpiresAtPeeksJWT(t *testing.T) {
	s := tempStore(t)

	// Opaque tokens report no expiry.
	require.NoError(t, s.Save("opaque-token"))
	_, ok := s.ExpiresAt()
	assert.False(t, ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "staff-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	require.NoError(t, s.Save(signed))
	got, ok := s.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp), "ExpiresAt = %v, want %v", got, exp)
}

type stubAuth bool

func (a stubAuth) Authenticated() bool { return bool(a) }

func TestGateDecisions(t *testing.T) {
	cases := []struct {
		name      string
		authed    bool
		guestOnly bool
		want      Decision
	}{
		{"guest on login screen", false, true, Proceed},
		{"guest on protected screen", false, false, RedirectToLogin},
		{"staff on login screen", true, true, RedirectToHome},
		{"staff on protected screen", true, false, Proceed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGate(stubAuth(tc.authed))
			assert.Equal(t, tc.want, g.Check(tc.guestOnly))
		})
	}
}

func TestGateWithoutAuthenticatorRedirects(t *testing.T) {
	g := NewGate(nil)
	assert.Equal(t, RedirectToLogin, g.Check(false))
	assert.Equal(t, Proceed, g.Check(true))
}
