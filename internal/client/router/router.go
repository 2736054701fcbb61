package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
)

var (
	ErrNotFound         = errors.New("page not found")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// maxHops bounds redirect chains. The table above needs at most one.
const maxHops = 5

// StateSource is the read side of auth.Resolver.
type StateSource interface {
	State() auth.State
	Wait(ctx context.Context) (auth.State, error)
}

// Match is a route matched against a concrete path.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
}

// Param returns the named path parameter.
func (m Match) Param(name string) string {
	return m.Params[name]
}

type compiled struct {
	route    Route
	segments []string
}

// Router resolves paths to routes under the current auth state.
type Router struct {
	routes []compiled
	auth   StateSource
}

func New(src StateSource, routes []Route) *Router {
	r := &Router{auth: src}
	for _, rt := range routes {
		r.routes = append(r.routes, compiled{route: rt, segments: split(rt.Pattern)})
	}
	return r
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Clean normalizes a user-typed path: leading slash, no trailing slash, no
// dot segments.
func Clean(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}

// Match finds the route for p, ignoring the auth state.
func (r *Router) Match(p string) (Match, bool) {
	p = Clean(p)
	segs := split(p)

outer:
	for _, c := range r.routes {
		if len(c.segments) != len(segs) {
			continue
		}
		var params map[string]string
		for i, s := range c.segments {
			if name, ok := param(s); ok {
				v, err := url.PathUnescape(segs[i])
				if err != nil || v == "" {
					continue outer
				}
				if params == nil {
					params = make(map[string]string)
				}
				params[name] = v
				continue
			}
			if s != segs[i] {
				continue outer
			}
		}
		return Match{Route: c.route, Path: p, Params: params}, true
	}
	return Match{}, false
}

func param(seg string) (string, bool) {
	if len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

// Check evaluates the guard for m in the current state.
func (r *Router) Check(m Match) Decision {
	return Guard(r.auth.State(), m.Route.RequiresAuth, m.Route.RequiresAnonymous)
}

// Navigate resolves p to the route that should be shown, following guard
// redirects. While the auth state is unknown it blocks until the state is
// resolved or ctx is done; it never renders a gated view in the meantime.
func (r *Router) Navigate(ctx context.Context, p string) (Match, error) {
	for hop := 0; hop <= maxHops; hop++ {
		m, ok := r.Match(p)
		if !ok {
			return Match{Path: Clean(p)}, fmt.Errorf("%w: %s", ErrNotFound, Clean(p))
		}

		d := r.Check(m)
		if d.Kind == Wait {
			if _, err := r.auth.Wait(ctx); err != nil {
				return Match{}, err
			}
			d = r.Check(m)
		}

		switch d.Kind {
		case Render:
			return m, nil
		case Redirect:
			p = d.Target
		default:
			// Wait returned but the state is still unknown.
			return Match{}, fmt.Errorf("auth state unresolved for %s", m.Path)
		}
	}
	return Match{}, fmt.Errorf("%w: %s", ErrTooManyRedirects, p)
}
