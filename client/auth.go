package client

import "context"

// AuthAPI covers session creation. The returned token is an opaque
// credential; no shape validation is performed on it here.
type AuthAPI struct {
	client *Client
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the profile plus credential.
func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.client.post(ctx, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login opens a session and returns the profile plus credential.
func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.client.post(ctx, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
