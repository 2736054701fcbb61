package session

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// storedCookie is the persisted form of an http.Cookie. The standard jar
// does not expose expiry on read, so CookieJar records cookies as they are
// set.
type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

// CookieJar is an http.CookieJar for a single API origin whose cookies can
// be saved to and restored from the Store. It carries the backend session
// ("transport credentials") across client restarts.
type CookieJar struct {
	store   *Store
	origin  *url.URL
	now     func() time.Time
	mu      sync.Mutex
	jar     *cookiejar.Jar
	records map[string]storedCookie
}

// NewCookieJar builds an empty jar for the API at baseURL.
func NewCookieJar(store *Store, baseURL string) (*CookieJar, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	c := &CookieJar{store: store, origin: u, now: store.now}
	if err := c.reset(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CookieJar) reset() error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return err
	}
	c.jar = jar
	c.records = make(map[string]storedCookie)
	return nil
}

// SetCookies implements http.CookieJar.
//
// On plain-http loopback origins the Secure attribute is dropped, matching
// browsers, which treat localhost as a secure context. Otherwise a backend
// on http://localhost that marks its session cookie Secure could never
// authenticate this client.
func (c *CookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	adjusted := make([]*http.Cookie, 0, len(cookies))
	for _, ck := range cookies {
		cp := *ck
		if u.Scheme == "http" && isLoopback(u.Hostname()) {
			cp.Secure = false
		}
		adjusted = append(adjusted, &cp)
		c.record(&cp)
	}
	c.jar.SetCookies(u, adjusted)
}

// Cookies implements http.CookieJar.
func (c *CookieJar) Cookies(u *url.URL) []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jar.Cookies(u)
}

func (c *CookieJar) record(ck *http.Cookie) {
	expires := ck.Expires
	if ck.MaxAge > 0 {
		expires = c.now().Add(time.Duration(ck.MaxAge) * time.Second)
	}
	if ck.MaxAge < 0 || (!expires.IsZero() && !expires.After(c.now())) {
		delete(c.records, ck.Name)
		return
	}
	c.records[ck.Name] = storedCookie{
		Name:     ck.Name,
		Value:    ck.Value,
		Path:     ck.Path,
		Domain:   ck.Domain,
		Expires:  expires,
		Secure:   ck.Secure,
		HttpOnly: ck.HttpOnly,
	}
}

// Save persists the live cookies. The entry expires with the longest-lived
// cookie; session cookies (no expiry) are kept for fallbackTTL.
func (c *CookieJar) Save(ctx context.Context, fallbackTTL time.Duration) error {
	return c.store.Update(ctx, func(ctx context.Context, tx *Tx) error {
		return c.SaveTx(ctx, tx, fallbackTTL)
	})
}

// SaveTx is Save as part of a larger Store.Update.
func (c *CookieJar) SaveTx(ctx context.Context, tx *Tx, fallbackTTL time.Duration) error {
	c.mu.Lock()
	live := make([]storedCookie, 0, len(c.records))
	var latest time.Time
	session := false
	now := c.now()
	for _, rec := range c.records {
		if !rec.Expires.IsZero() && !rec.Expires.After(now) {
			continue
		}
		live = append(live, rec)
		if rec.Expires.IsZero() {
			session = true
		} else if rec.Expires.After(latest) {
			latest = rec.Expires
		}
	}
	c.mu.Unlock()

	if len(live) == 0 {
		return tx.Delete(ctx, CookiesKey)
	}

	ttl := fallbackTTL
	if !session {
		ttl = latest.Sub(now)
	}

	b, err := json.Marshal(live)
	if err != nil {
		return err
	}
	return tx.Set(ctx, CookiesKey, string(b), ttl)
}

// Load restores cookies saved by Save. Missing, expired or malformed data
// leaves the jar empty.
func (c *CookieJar) Load(ctx context.Context) {
	raw, ok := c.store.Get(ctx, CookiesKey)
	if !ok {
		return
	}

	var saved []storedCookie
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		c.store.logger.Warn(ctx, "malformed saved cookies ignored", "error", err)
		return
	}

	cookies := make([]*http.Cookie, 0, len(saved))
	for _, s := range saved {
		cookies = append(cookies, &http.Cookie{
			Name:     s.Name,
			Value:    s.Value,
			Path:     s.Path,
			Domain:   s.Domain,
			Expires:  s.Expires,
			Secure:   s.Secure,
			HttpOnly: s.HttpOnly,
		})
	}
	c.SetCookies(c.origin, cookies)
}

// Clear drops every cookie in memory. Persisted cookies are removed by the
// caller inside the same Store.Update as the session flag.
func (c *CookieJar) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reset()
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
