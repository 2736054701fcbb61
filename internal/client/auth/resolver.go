package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/session"
	"github.com/dmitrijs2005/teamfinder/internal/client/validation"
	"github.com/dmitrijs2005/teamfinder/internal/logging"
)

// flagValue is the stored value of session.FlagKey.
const flagValue = "true"

// API is the part of the backend the Resolver talks to.
type API interface {
	CheckAuth(ctx context.Context) (bool, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
}

// Resolver determines and tracks the authentication state.
type Resolver struct {
	store  *session.Store
	api    API
	jar    *session.CookieJar
	logger logging.Logger
	ttl    time.Duration
	reload func()

	once     sync.Once
	done     chan struct{}
	doneOnce sync.Once

	mu    sync.Mutex
	state State
	subs  map[chan State]struct{}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTTL sets how long the session flag is trusted without asking the
// backend.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) { r.ttl = ttl }
}

// WithCookieJar persists and clears the backend cookies together with the
// session flag.
func WithCookieJar(jar *session.CookieJar) Option {
	return func(r *Resolver) { r.jar = jar }
}

// WithReload sets the hook run after a successful logout. The shell uses it
// to discard every view and boot again.
func WithReload(fn func()) Option {
	return func(r *Resolver) { r.reload = fn }
}

func NewResolver(store *session.Store, api API, logger logging.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		api:    api,
		logger: logger.With("component", "auth"),
		ttl:    session.DefaultTTL,
		done:   make(chan struct{}),
		subs:   make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current state without blocking.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Done is closed once the state is no longer Unknown.
func (r *Resolver) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the state is resolved or ctx is done.
func (r *Resolver) Wait(ctx context.Context) (State, error) {
	select {
	case <-r.done:
		return r.State(), nil
	case <-ctx.Done():
		return Unknown, ctx.Err()
	}
}

// Subscribe returns a channel receiving the state after every change, and a
// function that stops the subscription. Only the latest state is buffered.
func (r *Resolver) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	return ch, func() {
		r.mu.Lock()
		delete(r.subs, ch)
		r.mu.Unlock()
	}
}

// setLocked changes the state and notifies subscribers. r.mu must be held.
func (r *Resolver) setLocked(s State) {
	if r.state == s {
		return
	}
	r.state = s
	if s.Resolved() {
		r.doneOnce.Do(func() { close(r.done) })
	}
	for ch := range r.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// Resolve runs the boot-time check once; later calls return the current
// state. A valid session flag is trusted without a network call. Otherwise
// the backend is asked, and any failure resolves to Anonymous.
func (r *Resolver) Resolve(ctx context.Context) State {
	r.once.Do(func() { r.resolve(ctx) })
	return r.State()
}

func (r *Resolver) resolve(ctx context.Context) {
	if v, ok := r.store.Get(ctx, session.FlagKey); ok && v == flagValue {
		r.mu.Lock()
		if r.state == Unknown {
			r.setLocked(Authenticated)
		}
		r.mu.Unlock()
		r.logger.Debug(ctx, "session flag found")
		return
	}

	authenticated, err := r.api.CheckAuth(ctx)
	if err != nil {
		r.logger.Warn(ctx, "check-auth failed", "error", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Login or Logout finished while the check was in flight.
	if r.state != Unknown {
		return
	}

	if err == nil && authenticated {
		r.persistLocked(ctx)
		r.setLocked(Authenticated)
		return
	}
	if errors.Is(err, client.ErrUnavailable) {
		// The cookie may still be valid once the backend is reachable.
		r.store.Delete(ctx, session.FlagKey)
	} else {
		r.clearLocked(ctx)
	}
	r.setLocked(Anonymous)
}

// Login validates the credentials locally, then signs in. A validation
// failure is returned as validation.Errors and nothing is sent.
func (r *Resolver) Login(ctx context.Context, email, password string) error {
	if err := validation.Login(email, password); err != nil {
		return err
	}
	if err := r.api.Login(ctx, email, password); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.persistLocked(ctx)
	r.setLocked(Authenticated)
	r.logger.Info(ctx, "logged in")
	return nil
}

// Logout signs out. On success the state becomes Anonymous, local session
// data is dropped and the reload hook runs. On failure nothing changes; the
// error is logged and returned for display, never retried.
//
// A 401 from the backend means the session is already gone and counts as
// success.
func (r *Resolver) Logout(ctx context.Context) error {
	err := r.api.Logout(ctx)
	if err != nil && !errors.Is(err, client.ErrUnauthorized) {
		r.logger.Warn(ctx, "logout failed", "error", err)
		return err
	}

	r.mu.Lock()
	r.clearLocked(ctx)
	r.setLocked(Anonymous)
	r.mu.Unlock()

	r.logger.Info(ctx, "logged out")
	if r.reload != nil {
		r.reload()
	}
	return nil
}

// Expire records that the backend rejected the session (a 401 on an
// authenticated request). The state becomes Anonymous without a reload.
func (r *Resolver) Expire(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Anonymous {
		return
	}
	r.clearLocked(ctx)
	r.setLocked(Anonymous)
	r.logger.Info(ctx, "session expired")
}

func (r *Resolver) persistLocked(ctx context.Context) {
	err := r.store.Update(ctx, func(ctx context.Context, tx *session.Tx) error {
		if err := tx.Set(ctx, session.FlagKey, flagValue, r.ttl); err != nil {
			return err
		}
		if r.jar != nil {
			return r.jar.SaveTx(ctx, tx, r.ttl)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn(ctx, "session not persisted", "error", err)
	}
}

func (r *Resolver) clearLocked(ctx context.Context) {
	err := r.store.Update(ctx, func(ctx context.Context, tx *session.Tx) error {
		if err := tx.Delete(ctx, session.FlagKey); err != nil {
			return err
		}
		return tx.Delete(ctx, session.CookiesKey)
	})
	if err != nil {
		r.logger.Warn(ctx, "session not cleared", "error", err)
	}
	if r.jar != nil {
		if err := r.jar.Clear(); err != nil {
			r.logger.Warn(ctx, "cookies not cleared", "error", err)
		}
	}
}
