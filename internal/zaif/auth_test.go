package zaif

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_Credentials_Sign_KnownVectors pins the signature to independently
// computed HMAC-SHA512 digests so any change to the encoding or hashing
// rules shows up as a vector mismatch.
func Test_Credentials_Sign_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		params   url.Values
		expected string
	}{
		{
			name:   "get_info with nonce",
			secret: "s3cret",
			params: url.Values{
				"method": {"get_info"},
				"nonce":  {"1700000000.123456"},
			},
			// hmac_sha512("s3cret", "method=get_info&nonce=1700000000.123456")
			expected: "ba1ca195c22c95f4c480e30e0903d8539567a5fa9f250b9aac5b5ebc59fabcdedad3eed20ea185a81e559776f3721edbeeb1fc18bc53600b3225d76a299ba89a",
		},
		{
			name:   "active_orders with pair",
			secret: "another-secret",
			params: url.Values{
				"currency_pair": {"btc_jpy"},
				"method":        {"active_orders"},
				"nonce":         {"1700000000.000001"},
			},
			// hmac_sha512("another-secret", "currency_pair=btc_jpy&method=active_orders&nonce=1700000000.000001")
			expected: "3344277abed3a5c6674afb33050eae7c791aaac9a9586e520d80142c167f5e1dd37e1280811e860db8c8d5fca46415133d9620c0c8672fe6bdf45b88943e2ac4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := Credentials{Key: "public-key", Secret: tt.secret}
			key, sign := creds.Sign(tt.params)
			assert.Equal(t, "public-key", key)
			assert.Equal(t, tt.expected, sign)
		})
	}
}

// Test_Credentials_Sign_Deterministic verifies byte-for-byte reproducibility
// for identical inputs and sensitivity to any parameter change.
func Test_Credentials_Sign_Deterministic(t *testing.T) {
	creds := Credentials{Key: "k", Secret: "s3cret"}
	params := url.Values{
		"method": {"get_info"},
		"nonce":  {"1700000000.123456"},
	}

	_, first := creds.Sign(params)
	_, second := creds.Sign(params)
	assert.Equal(t, first, second, "identical inputs must produce identical signatures")

	bumped := url.Values{
		"method": {"get_info"},
		"nonce":  {"1700000000.123457"},
	}
	_, third := creds.Sign(bumped)
	assert.NotEqual(t, first, third, "changing any parameter must change the signature")

	otherSecret := Credentials{Key: "k", Secret: "s3cret2"}
	_, fourth := otherSecret.Sign(params)
	assert.NotEqual(t, first, fourth, "changing the secret must change the signature")
}
