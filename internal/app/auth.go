package app

import (
	"context"
	"fmt"

	"github.com/wishcrate/storefront/client"
)

// SignIn opens a session and stores the profile plus credential.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	resp, err := a.api.Auth().Login(ctx, client.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	if err := a.session.Login(resp.Profile(), resp.Token); err != nil {
		// The session itself is established; only persistence failed,
		// so the user stays signed in for this process.
		a.log.Warnf("persist credential: %v", err)
	}
	return nil
}

// SignUp creates an account and opens the session it returns.
func (a *App) SignUp(ctx context.Context, req client.RegisterRequest) error {
	resp, err := a.api.Auth().Register(ctx, req)
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}

	if err := a.session.Login(resp.Profile(), resp.Token); err != nil {
		a.log.Warnf("persist credential: %v", err)
	}
	return nil
}

// SignOut ends the session locally. The backend keeps no session state
// to tear down, so no request is made.
func (a *App) SignOut() error {
	a.cart.Clear()
	if err := a.session.Logout(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// UpdateProfile replaces the stored profile wholesale. The credential
// is untouched.
func (a *App) UpdateProfile(profile client.Profile) {
	a.session.UpdateProfile(profile)
}
