package zaif

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
)

// Credentials hold one API key pair. The secret is used only for signing and
// never transmitted. Immutable for the process lifetime.
type Credentials struct {
	Key    string
	Secret string
}

// Sign computes the authentication headers for a signed request. The caller
// must have already injected the nonce (and method) into params.
//
// The signature is HMAC-SHA512 over the url-encoded parameter string, keyed
// with the UTF-8 secret bytes, hex-encoded. url.Values.Encode sorts keys, so
// the encoding is deterministic; the transport must send the exact same
// encoded string as the request body, since the signature covers those bytes.
func (c Credentials) Sign(params url.Values) (key, sign string) {
	mac := hmac.New(sha512.New, []byte(c.Secret))
	mac.Write([]byte(params.Encode()))
	return c.Key, hex.EncodeToString(mac.Sum(nil))
}
