package store

import (
	"sync"

	"github.com/wishcrate/storefront/client"
	"github.com/wishcrate/storefront/internal/credential"
)

// Session holds the authentication credential and user profile.
//
// "Authenticated" means exactly "a credential string is present". No
// expiry or validity check happens here; an expired credential is
// discovered reactively when a request fails with 401/403.
type Session struct {
	mu sync.RWMutex

	creds         credential.Store
	token         string
	profile       *client.Profile
	authenticated bool
}

// NewSession creates a session restored synchronously from whatever
// credential the store holds.
func NewSession(creds credential.Store) *Session {
	token := creds.Load()
	return &Session{
		creds:         creds,
		token:         token,
		authenticated: token != "",
	}
}

// Login persists the credential and stores the profile. Any non-empty
// token is accepted; its shape is not validated.
func (s *Session) Login(profile client.Profile, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.creds.Save(token)

	p := profile
	s.token = token
	s.profile = &p
	s.authenticated = true
	return err
}

// Logout clears the credential and resets the session. It is a no-op
// when already logged out.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.creds.Clear()

	s.token = ""
	s.profile = nil
	s.authenticated = false
	return err
}

// UpdateProfile replaces the stored profile wholesale. The credential
// is untouched.
func (s *Session) UpdateProfile(profile client.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := profile
	s.profile = &p
}

// Authenticated reports whether a credential is present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Token returns the stored credential, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns a copy of the stored profile, or nil when signed out
// or when the session was restored from a bare credential.
func (s *Session) Profile() *client.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// CanAccessAdmin reports whether the profile's role opens the admin
// console. ADMIN and SELLER are treated identically on this side.
func (s *Session) CanAccessAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return false
	}
	return s.profile.Role == client.RoleAdmin || s.profile.Role == client.RoleSeller
}
