// Package auth owns the client's authentication state.
//
// A Resolver is built once per application load and passed to everything
// that needs to read the state. It is the only writer: the boot-time check,
// Login, Logout and Expire are the sole transitions.
package auth

// State is the tri-state authentication status.
type State int

const (
	// Unknown means the boot-time check has not finished. It is not
	// "logged out": callers must wait or render nothing.
	Unknown State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Resolved reports whether s is a final answer.
func (s State) Resolved() bool {
	return s != Unknown
}
