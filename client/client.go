// Package client is the storefront's gateway to the WishCrate REST API.
// It builds outgoing requests against a configured base URL, attaches the
// bearer credential when one is stored, and maps failures onto a small
// error taxonomy (transport, remote, unauthorized).
//
// The gateway performs no retries, no backoff and no caching: a failed
// call surfaces immediately to its caller. On a 401 or 403 response it
// clears the stored credential and invokes the configured OnUnauthorized
// hook; deciding where to navigate afterwards is the application's job,
// not the transport's.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wishcrate/storefront/internal/credential"
	"github.com/wishcrate/storefront/pkg/logger"
)

const maxErrorBody = 64 << 10

// Client is the WishCrate API gateway.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	credentials    credential.Store
	onUnauthorized func()
	log            *logger.Logger
}

// Config holds gateway configuration.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api".
	BaseURL string

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	// Credentials is the durable credential store. Defaults to an
	// in-memory store, which keeps the session for the process only.
	Credentials credential.Store

	// OnUnauthorized runs after a 401/403 response has cleared the
	// credential. Concurrent in-flight failures may invoke it more
	// than once; implementations must tolerate that.
	OnUnauthorized func()

	// Logger defaults to a no-op logger.
	Logger *logger.Logger
}

// New creates a gateway client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	creds := cfg.Credentials
	if creds == nil {
		creds = credential.NewMemStore()
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:     httpClient,
		credentials:    creds,
		onUnauthorized: cfg.OnUnauthorized,
		log:            log,
	}, nil
}

// Credentials exposes the credential store the gateway writes through.
func (c *Client) Credentials() credential.Store {
	return c.credentials
}

// =============================================================================
// Endpoint groups
// =============================================================================

// Auth returns the authentication endpoints.
func (c *Client) Auth() *AuthAPI { return &AuthAPI{client: c} }

// Products returns the product catalog endpoints.
func (c *Client) Products() *ProductAPI { return &ProductAPI{client: c} }

// Categories returns the category endpoints.
func (c *Client) Categories() *CategoryAPI { return &CategoryAPI{client: c} }

// Cart returns the cart endpoints.
func (c *Client) Cart() *CartAPI { return &CartAPI{client: c} }

// Addresses returns the address-book endpoints.
func (c *Client) Addresses() *AddressAPI { return &AddressAPI{client: c} }

// Orders returns the order lifecycle endpoints.
func (c *Client) Orders() *OrderAPI { return &OrderAPI{client: c} }

// Admin returns the admin dashboard endpoints.
func (c *Client) Admin() *AdminAPI { return &AdminAPI{client: c} }

// =============================================================================
// Request plumbing
// =============================================================================

// do executes one API call. The response body is decoded into out when
// out is non-nil; an empty body with a 2xx status is accepted either way.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The credential's presence is the sole determinant of whether the
	// request goes out authenticated; the backend decides whether the
	// resource needed it.
	if token := c.credentials.Load(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindTransport, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) handleErrorResponse(method, path string, resp *http.Response) error {
	message := readErrorMessage(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Global side effect: the credential is wiped no matter which
		// call observed the failure. The hook is invoked afterwards so
		// a coordinator can route the user back to login.
		if err := c.credentials.Clear(); err != nil {
			c.log.Warnf("clear credential after %d: %v", resp.StatusCode, err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{Kind: KindUnauthorized, Status: resp.StatusCode, Message: message}
	}

	c.log.WithFields(map[string]interface{}{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("request rejected")

	return &APIError{Kind: KindRemote, Status: resp.StatusCode, Message: message}
}

// readErrorMessage extracts the backend's message from an error body.
// Both {"message": ...} and {"error": ...} shapes are in use.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}
