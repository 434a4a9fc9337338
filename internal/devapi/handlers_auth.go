package devapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wishcrate/storefront/client"
)

var (
	errMissingToken = errors.New("missing token")
	errBadSigning   = errors.New("unexpected signing method")
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req client.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(req.Email)
	if _, exists := s.emailIndex[email]; exists {
		jsonError(w, "email already registered", http.StatusConflict)
		return
	}

	id := s.allocID()
	u := &user{
		profile: client.Profile{
			ID:          id,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       email,
			PhoneNumber: req.PhoneNumber,
			Role:        client.RoleUser,
		},
		password: req.Password,
	}
	s.users[id] = u
	s.emailIndex[email] = id

	token, err := s.generateToken(id, u.profile.Role)
	if err != nil {
		jsonError(w, "token generation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, client.AuthResponse{
		Token:     token,
		Email:     u.profile.Email,
		FirstName: u.profile.FirstName,
		LastName:  u.profile.LastName,
		Role:      u.profile.Role,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow() {
		jsonError(w, "too many login attempts", http.StatusTooManyRequests)
		return
	}

	var req client.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emailIndex[strings.ToLower(req.Email)]
	if !ok {
		jsonError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	u := s.users[id]
	// Plain comparison: accounts here are seeded dev fixtures.
	if u.password != req.Password {
		jsonError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.generateToken(id, u.profile.Role)
	if err != nil {
		jsonError(w, "token generation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, client.AuthResponse{
		Token:     token,
		Email:     u.profile.Email,
		FirstName: u.profile.FirstName,
		LastName:  u.profile.LastName,
		Role:      u.profile.Role,
	})
}
