package session

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestCookieJar_SaveLoadRoundTrip(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()
	api := "http://localhost:4000/v2"

	jar, err := NewCookieJar(s, api)
	require.NoError(t, err)

	jar.SetCookies(mustURL(t, api+"/users/login"), []*http.Cookie{{
		Name:     "jwt",
		Value:    "token-1",
		Path:     "/",
		Expires:  clock.Now().Add(24 * time.Hour),
		Secure:   true,
		HttpOnly: true,
	}})
	require.NoError(t, jar.Save(ctx, time.Hour))

	restored, err := NewCookieJar(s, api)
	require.NoError(t, err)
	restored.Load(ctx)

	got := restored.Cookies(mustURL(t, api+"/users/check-auth"))
	require.Len(t, got, 1, "secure cookie on http loopback must still be sent")
	assert.Equal(t, "jwt", got[0].Name)
	assert.Equal(t, "token-1", got[0].Value)
}

func TestCookieJar_SavedEntryExpiresWithCookie(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()
	api := "http://localhost:4000/v2"

	jar, err := NewCookieJar(s, api)
	require.NoError(t, err)
	jar.SetCookies(mustURL(t, api), []*http.Cookie{{Name: "jwt", Value: "v", Path: "/", Expires: clock.Now().Add(time.Hour)}})
	require.NoError(t, jar.Save(ctx, 100*time.Hour))

	clock.Advance(time.Hour)
	_, ok := s.Get(ctx, CookiesKey)
	assert.False(t, ok)
}

func TestCookieJar_SessionCookieUsesFallbackTTL(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()
	api := "http://127.0.0.1:4000/v2"

	jar, err := NewCookieJar(s, api)
	require.NoError(t, err)
	jar.SetCookies(mustURL(t, api), []*http.Cookie{{Name: "sid", Value: "v", Path: "/"}})
	require.NoError(t, jar.Save(ctx, 2*time.Hour))

	clock.Advance(2*time.Hour - time.Second)
	_, ok := s.Get(ctx, CookiesKey)
	assert.True(t, ok)
	clock.Advance(time.Second)
	_, ok = s.Get(ctx, CookiesKey)
	assert.False(t, ok)
}

func TestCookieJar_DeletedCookieIsNotSaved(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	api := "http://localhost:4000/v2"

	jar, err := NewCookieJar(s, api)
	require.NoError(t, err)
	u := mustURL(t, api)
	jar.SetCookies(u, []*http.Cookie{{Name: "jwt", Value: "v", Path: "/"}})
	jar.SetCookies(u, []*http.Cookie{{Name: "jwt", Value: "", Path: "/", MaxAge: -1}})

	require.NoError(t, s.Set(ctx, CookiesKey, `[]`, 0))
	require.NoError(t, jar.Save(ctx, time.Hour))

	_, ok := s.Get(ctx, CookiesKey)
	assert.False(t, ok, "nothing to save clears the persisted cookies")
}

func TestCookieJar_ClearAndMalformed(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	api := "http://localhost:4000/v2"

	jar, err := NewCookieJar(s, api)
	require.NoError(t, err)
	jar.SetCookies(mustURL(t, api), []*http.Cookie{{Name: "jwt", Value: "v", Path: "/"}})
	require.NoError(t, jar.Clear())
	assert.Empty(t, jar.Cookies(mustURL(t, api)))

	require.NoError(t, s.Set(ctx, CookiesKey, `{"broken"`, 0))
	assert.NotPanics(t, func() { jar.Load(ctx) })
	assert.Empty(t, jar.Cookies(mustURL(t, api)))
}

func TestCookieJar_SecureKeptOnRemoteHTTP(t *testing.T) {
	s, _, _ := newTestStore(t)
	api := "http://teamfinder.example/v2"

	jar, err := NewCookieJar(s, api)
	require.NoError(t, err)
	jar.SetCookies(mustURL(t, api), []*http.Cookie{{Name: "jwt", Value: "v", Path: "/", Secure: true}})

	assert.Empty(t, jar.Cookies(mustURL(t, api)), "secure cookies are not sent over plain http to remote hosts")
	assert.Len(t, jar.Cookies(mustURL(t, "https://teamfinder.example/v2")), 1)
}
