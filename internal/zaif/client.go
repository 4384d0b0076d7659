// Package zaif implements the Zaif exchange REST client: nonce generation,
// HMAC-SHA512 request signing, envelope handling, and the four API
// namespaces (market, account, trade, chart) that the tool layer calls.
package zaif

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Client executes the HTTP calls for every namespace. One instance is shared
// by the whole facade; it holds the immutable credentials and serializes
// signed requests so nonces reach the exchange in generation order.
type Client struct {
	http  *http.Client
	creds *Credentials // nil when running unauthenticated
	nonce *NonceSource

	// mu serializes nonce-generation-plus-send for one credential set.
	// Without it, two concurrent signed requests could generate increasing
	// nonces but arrive reordered and be rejected.
	mu sync.Mutex
}

// NewClient builds a client. creds may be nil, in which case every signed
// call fails with ErrUnauthenticated before touching the network. httpClient
// may be nil to use http.DefaultClient; no timeout is imposed here beyond
// what the supplied client carries.
func NewClient(creds *Credentials, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:  httpClient,
		creds: creds,
		nonce: NewNonceSource(),
	}
}

// Authenticated reports whether credentials are configured.
func (c *Client) Authenticated() bool {
	return c.creds != nil
}

// Get executes an unauthenticated GET and returns the raw response body.
// Connection failures, timeouts, and non-2xx statuses all surface as
// ErrTransport; callers never see transport-specific distinctions.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return c.do(req)
}

// Post executes a signed POST and unwraps the exchange's success envelope.
//
// Fails with ErrUnauthenticated before any network call when no credentials
// are configured. The parameter map is form-encoded once; the signature
// covers exactly the bytes that become the request body. An envelope with
// success == 0 surfaces as *APIError carrying the upstream error message;
// otherwise the "return" sub-object is returned when present, else the whole
// decoded body.
func (c *Client) Post(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if c.creds == nil {
		return nil, ErrUnauthenticated
	}

	if params == nil {
		params = url.Values{}
	}

	body, err := c.postSigned(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}

	var env struct {
		Success json.RawMessage `json:"success"`
		Return  json.RawMessage `json:"return"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if failed(env.Success) {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &APIError{Message: msg}
	}
	if env.Return != nil {
		return env.Return, nil
	}
	return body, nil
}

// postSigned holds the nonce mutex from nonce generation through request
// completion, making the monotonic-nonce contract hold under concurrent
// invocations.
func (c *Client) postSigned(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	params.Set("nonce", c.nonce.Next().String())
	key, sign := c.creds.Sign(params)
	encoded := params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("key", key)
	req.Header.Set("sign", sign)
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status", resp.StatusCode).
			Msg("request failed")
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}
	return body, nil
}

// failed reports whether the envelope's boolean-like success flag is the
// failure value 0.
func failed(success json.RawMessage) bool {
	switch strings.TrimSpace(string(success)) {
	case "0", `"0"`, "false":
		return true
	}
	return false
}
