package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishcrate/storefront/client"
	"github.com/wishcrate/storefront/internal/credential"
)

func TestSession_LoginThenLogout(t *testing.T) {
	creds := credential.NewMemStore()
	s := NewSession(creds)

	require.False(t, s.Authenticated())

	err := s.Login(client.Profile{ID: 7, Role: client.RoleAdmin}, "abc")
	require.NoError(t, err)

	assert.True(t, s.Authenticated())
	assert.Equal(t, "abc", creds.Load())
	require.NotNil(t, s.Profile())
	assert.Equal(t, client.RoleAdmin, s.Profile().Role)

	require.NoError(t, s.Logout())

	assert.False(t, s.Authenticated())
	assert.Empty(t, creds.Load())
	assert.Nil(t, s.Profile())
}

func TestSession_LogoutIdempotent(t *testing.T) {
	creds := credential.NewMemStore()
	s := NewSession(creds)
	require.NoError(t, s.Login(client.Profile{ID: 1}, "tok"))

	require.NoError(t, s.Logout())
	first := s.Authenticated()

	require.NoError(t, s.Logout())

	assert.Equal(t, first, s.Authenticated())
	assert.Empty(t, creds.Load())
	assert.Nil(t, s.Profile())
}

func TestSession_RestoredFromStoredCredential(t *testing.T) {
	creds := credential.NewMemStore()
	require.NoError(t, creds.Save("persisted"))

	s := NewSession(creds)

	// Presence of a credential alone defines the authenticated state;
	// no profile exists until the next fetch.
	assert.True(t, s.Authenticated())
	assert.Equal(t, "persisted", s.Token())
	assert.Nil(t, s.Profile())
}

func TestSession_UpdateProfileKeepsCredential(t *testing.T) {
	creds := credential.NewMemStore()
	s := NewSession(creds)
	require.NoError(t, s.Login(client.Profile{ID: 1, FirstName: "Ada"}, "tok"))

	s.UpdateProfile(client.Profile{ID: 1, FirstName: "Grace"})

	assert.Equal(t, "Grace", s.Profile().FirstName)
	assert.Equal(t, "tok", creds.Load())
	assert.True(t, s.Authenticated())
}

func TestSession_ProfileReturnsCopy(t *testing.T) {
	s := NewSession(credential.NewMemStore())
	require.NoError(t, s.Login(client.Profile{FirstName: "Ada"}, "tok"))

	p := s.Profile()
	p.FirstName = "mutated"

	assert.Equal(t, "Ada", s.Profile().FirstName)
}

func TestSession_CanAccessAdmin(t *testing.T) {
	tests := []struct {
		role client.Role
		want bool
	}{
		{client.RoleUser, false},
		{client.RoleSeller, true},
		{client.RoleAdmin, true},
	}
	for _, tt := range tests {
		s := NewSession(credential.NewMemStore())
		require.NoError(t, s.Login(client.Profile{Role: tt.role}, "tok"))
		assert.Equal(t, tt.want, s.CanAccessAdmin(), "role %s", tt.role)
	}

	signedOut := NewSession(credential.NewMemStore())
	assert.False(t, signedOut.CanAccessAdmin())
}
