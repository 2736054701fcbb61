// Package common contains constants and helpers shared by the client
// packages.
package common

// RequestIDHeaderName is the HTTP header carrying a per-request identifier.
const RequestIDHeaderName = "X-Request-ID"

// WipeByteArray overwrites b with zeros. Used for password buffers read from
// the terminal. Nil-safe.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
