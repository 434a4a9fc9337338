// Package app wires the gateway and the state containers into one
// application context that views receive explicitly. Nothing in here is
// a global: tests inject fake navigators and in-memory credential
// stores, and two Apps in one process stay fully independent.
package app

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/wishcrate/storefront/client"
	"github.com/wishcrate/storefront/internal/credential"
	"github.com/wishcrate/storefront/pkg/logger"
	"github.com/wishcrate/storefront/store"
)

// Navigator routes the user between views. The console frontend
// implements it over its screen loop.
type Navigator interface {
	// NavigateLogin sends the user to the login view. It must be
	// idempotent: concurrent in-flight 401s may trigger it repeatedly.
	NavigateLogin()
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func()

func (f NavigatorFunc) NavigateLogin() { f() }

// Config holds application wiring.
type Config struct {
	// BaseURL is the backend API root.
	BaseURL string

	// Credentials is the durable credential store. Required.
	Credentials credential.Store

	// Navigator receives forced navigation on auth failure. Optional.
	Navigator Navigator

	// HTTPClient defaults to a client with Timeout.
	HTTPClient *http.Client

	// Timeout applies when HTTPClient is nil. Zero means 30s.
	Timeout time.Duration

	// Logger defaults to a no-op logger.
	Logger *logger.Logger
}

// App is the application context.
type App struct {
	api       *client.Client
	session   *store.Session
	cart      *store.Cart
	catalog   *store.Catalog
	navigator Navigator
	log       *logger.Logger

	adminMu       sync.Mutex
	adminProducts []client.Product
}

// New builds an application context. The session restores itself from
// the credential store synchronously, so Authenticated() is meaningful
// immediately after New returns.
func New(cfg Config) (*App, error) {
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("Credentials is required")
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	a := &App{
		session:   store.NewSession(cfg.Credentials),
		cart:      store.NewCart(),
		catalog:   store.NewCatalog(),
		navigator: cfg.Navigator,
		log:       log,
	}

	api, err := client.New(client.Config{
		BaseURL:        cfg.BaseURL,
		HTTPClient:     httpClient,
		Credentials:    cfg.Credentials,
		OnUnauthorized: a.handleUnauthorized,
		Logger:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}
	a.api = api

	return a, nil
}

// handleUnauthorized is the top-level coordinator for auth failures.
// The gateway has already wiped the credential; this resets client-side
// state and routes to login. Running it twice is harmless.
func (a *App) handleUnauthorized() {
	if err := a.session.Logout(); err != nil {
		a.log.Warnf("reset session after auth failure: %v", err)
	}
	a.cart.Clear()
	if a.navigator != nil {
		a.navigator.NavigateLogin()
	}
}

// API returns the gateway client.
func (a *App) API() *client.Client { return a.api }

// Session returns the session state container.
func (a *App) Session() *store.Session { return a.session }

// CartState returns the cart state container.
func (a *App) CartState() *store.Cart { return a.cart }

// CatalogState returns the catalog state container.
func (a *App) CatalogState() *store.Catalog { return a.catalog }
