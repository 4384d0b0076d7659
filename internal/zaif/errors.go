package zaif

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the client and facade. Callers classify with
// errors.Is (sentinels) or errors.As (*APIError); the distinctions below are
// the only ones the tool layer ever sees.
var (
	// ErrUnauthenticated is returned before any network call when an
	// operation needs credentials and none are configured.
	ErrUnauthenticated = errors.New("credentials not configured: set ZAIF_API_KEY and ZAIF_API_SECRET")

	// ErrTransport covers connection failures, timeouts, and non-2xx
	// responses uniformly; the cause is carried in the wrapped message only.
	ErrTransport = errors.New("transport error")

	// ErrDecode means a response body (or a nested JSON-encoded body) was
	// not valid JSON.
	ErrDecode = errors.New("response decode error")

	// ErrValidation means a caller-supplied argument failed a local check,
	// such as an unsupported currency pair or an unparseable date.
	ErrValidation = errors.New("validation error")
)

// APIError is an application-level failure reported by the exchange through
// its success/error envelope.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zaif api error: %s", e.Message)
}
