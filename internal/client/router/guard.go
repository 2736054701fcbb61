// Package router maps shell paths to views and gates them on the
// authentication state.
package router

import (
	"fmt"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
)

// Well-known paths.
const (
	PathHome  = "/"
	PathLogin = "/login"
)

// Kind is what the shell should do with a requested view.
type Kind int

const (
	// Render shows the requested view.
	Render Kind = iota
	// Redirect navigates to Decision.Target instead.
	Redirect
	// Wait shows nothing until the auth state is resolved, then asks again.
	Wait
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Wait:
		return "wait"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Decision is the outcome of Guard.
type Decision struct {
	Kind   Kind
	Target string
}

func (d Decision) String() string {
	if d.Kind == Redirect {
		return "redirect " + d.Target
	}
	return d.Kind.String()
}

// Guard decides whether a view with the given requirements may be shown in
// state. It is total: every combination of inputs has an answer.
//
// A view with no requirement always renders. Unknown never renders a gated
// view. A view that requires both (no such view exists) is treated as
// unreachable and sends the visitor to the page that matches their state.
func Guard(state auth.State, requiresAuth, requiresAnonymous bool) Decision {
	if !requiresAuth && !requiresAnonymous {
		return Decision{Kind: Render}
	}

	switch state {
	case auth.Authenticated:
		if requiresAnonymous {
			return Decision{Kind: Redirect, Target: PathHome}
		}
		return Decision{Kind: Render}
	case auth.Anonymous:
		if requiresAuth {
			return Decision{Kind: Redirect, Target: PathLogin}
		}
		return Decision{Kind: Render}
	default:
		return Decision{Kind: Wait}
	}
}
