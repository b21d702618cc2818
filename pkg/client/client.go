package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"
)

// ErrReauthRequired means every credential the client held has been
// discarded and the user must log in again. It is the single fatal path of
// the refresh protocol: no further retries happen behind it.
var ErrReauthRequired = errors.New("re-authentication required")

// APIError is a non-2xx response from either service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s (status %d)", e.Message, e.Status)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithCredentialStore(store CredentialStore) Option {
	return func(c *Client) { c.creds = store }
}

// Client talks to the auth and user services and transparently refreshes an
// expired access credential: a rejected request triggers at most one refresh
// exchange followed by exactly one replay. Concurrent rejections share a
// single exchange.
type Client struct {
	authBaseURL string
	userBaseURL string
	httpClient  *http.Client
	creds       CredentialStore

	refreshGroup singleflight.Group
}

func New(authBaseURL, userBaseURL string, opts ...Option) *Client {
	c := &Client{
		authBaseURL: authBaseURL,
		userBaseURL: userBaseURL,
		httpClient:  http.DefaultClient,
		creds:       NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Credentials exposes the underlying store.
func (c *Client) Credentials() CredentialStore { return c.creds }

// post issues an unauthenticated JSON request against the auth service.
func (c *Client) post(ctx context.Context, url string, payload, result any) error {
	req, err := newJSONRequest(ctx, http.MethodPost, url, payload)
	if err != nil {
		return err
	}
	return c.send(req, result)
}

// doAuthorized runs one protected request with the refresh protocol wrapped
// around it. The request is rebuilt from its payload for the replay so the
// body can be consumed twice.
func (c *Client) doAuthorized(ctx context.Context, method, url string, payload, result any) error {
	retried := false
	for {
		req, err := newJSONRequest(ctx, method, url, payload)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken())

		err = c.send(req, result)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !rejectedCredential(apiErr.Status) || retried {
			return err
		}

		if refreshErr := c.refreshExchange(ctx); refreshErr != nil {
			return refreshErr
		}
		retried = true
	}
}

// rejectedCredential reports whether status signals a missing or
// unverifiable access credential. The gate answers 401 for an absent token
// and 403 for a failed verification; both mean the stored access credential
// is no longer usable.
func rejectedCredential(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// refreshExchange trades the stored refresh credential for a fresh pair.
// Simultaneous callers are collapsed into one round trip. Any failure
// discards all local credentials.
func (c *Client) refreshExchange(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		refreshToken := c.creds.RefreshToken()
		if refreshToken == "" {
			c.creds.Clear()
			return nil, ErrReauthRequired
		}

		var out struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		err := c.post(ctx, c.authBaseURL+"/api/auth/refresh", map[string]string{
			"refreshToken": refreshToken,
		}, &out)
		if err != nil {
			c.creds.Clear()
			return nil, fmt.Errorf("%w: %v", ErrReauthRequired, err)
		}

		c.creds.SetPair(out.AccessToken, out.RefreshToken)
		return nil, nil
	})
	return err
}

func newJSONRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) send(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unreadable body"}
	}
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}
	return &APIError{Status: resp.StatusCode, Message: string(body)}
}
