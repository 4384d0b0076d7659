package zaif

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NonceSource_Format verifies the <seconds>.<6-digit-microseconds>
// layout, including zero padding of the fractional part.
func Test_NonceSource_Format(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "Plain microseconds",
			instant:  time.Unix(1700000000, 123456000),
			expected: "1700000000.123456",
		},
		{
			name:     "Microseconds need zero padding",
			instant:  time.Unix(1700000000, 42000),
			expected: "1700000000.000042",
		},
		{
			name:     "Exactly on the second",
			instant:  time.Unix(1700000000, 0),
			expected: "1700000000.000000",
		},
		{
			name:     "Sub-microsecond part is truncated",
			instant:  time.Unix(1700000000, 999999999),
			expected: "1700000000.999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &NonceSource{now: func() time.Time { return tt.instant }}
			assert.Equal(t, tt.expected, src.Next().String())
		})
	}
}

// Test_NonceSource_Monotonic verifies that nonces are strictly increasing
// for any non-decreasing clock with distinct microsecond ticks.
func Test_NonceSource_Monotonic(t *testing.T) {
	instants := []time.Time{
		time.Unix(1700000000, 1000),
		time.Unix(1700000000, 2000),
		time.Unix(1700000000, 999999000),
		time.Unix(1700000001, 0),
		time.Unix(1700000001, 1000),
		time.Unix(1800000000, 500000000),
	}

	i := 0
	src := &NonceSource{now: func() time.Time {
		instant := instants[i]
		i++
		return instant
	}}

	prev := src.Next()
	for range instants[1:] {
		next := src.Next()
		require.True(t, next.GreaterThan(prev),
			"nonce %s should be strictly greater than %s", next, prev)
		prev = next
	}
}
