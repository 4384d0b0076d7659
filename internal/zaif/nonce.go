package zaif

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NonceSource produces the authentication nonce for signed requests: the
// current Unix seconds with the zero-padded microsecond as the fractional
// part, e.g. 1700000000.123456.
//
// Values are strictly increasing as long as the wall clock does not step
// backwards and successive calls land on distinct microsecond ticks; the
// exchange rejects non-increasing nonces per API key. Clock rollback is a
// known constraint of this scheme, not handled here. The Client serializes
// nonce generation and transmission under one mutex so concurrent tool
// invocations cannot interleave nonces out of order.
type NonceSource struct {
	now func() time.Time
}

// NewNonceSource returns a NonceSource on the system clock.
func NewNonceSource() *NonceSource {
	return &NonceSource{now: time.Now}
}

// Next returns a fresh nonce. Call exactly once per signed request,
// immediately before signing.
func (n *NonceSource) Next() decimal.Decimal {
	t := n.now()
	return decimal.RequireFromString(fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000))
}
