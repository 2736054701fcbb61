package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/common"
	"github.com/dmitrijs2005/teamfinder/internal/logging"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient implements Client over the backend's REST API.
var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithTransport replaces the round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) HTTPOption {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

// NewHTTPClient returns a client for the API at baseURL, e.g.
// "http://localhost:4000/v2". jar carries the session cookie.
func NewHTTPClient(baseURL string, jar http.CookieJar, logger logging.Logger, opts ...HTTPOption) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
		logger:  logger.With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func jsonBody(v any) (io.Reader, string, error) {
	if v == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), "application/json", nil
}

// do sends a request and decodes a 2xx JSON body into out when out is not
// nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	body, ct, err := jsonBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, nil, body, ct, out)
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, "", nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}
	return c.doJSON(ctx, http.MethodPost, "/users/login", in, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/users/logout", nil, nil)
}

// CheckAuth asks the backend whether the session cookie is valid. A 401
// carrying {"authenticated": "false"} is a definite "no", not an error.
func (c *HTTPClient) CheckAuth(ctx context.Context) (bool, error) {
	var out struct {
		Authenticated any `json:"authenticated"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/users/check-auth", nil, &out)
	if errors.Is(err, ErrUnauthorized) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return truthy(out.Authenticated), nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	return false
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/users/registration", r, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) Activate(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodGet, "/users/activate/"+url.PathEscape(token), nil, nil)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	in := struct {
		Email string `json:"email"`
	}{email}
	return c.doJSON(ctx, http.MethodPost, "/users/forgot-password", in, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, r models.PasswordReset) error {
	return c.doJSON(ctx, http.MethodPost, "/users/reset-password", r, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, p models.PasswordChange) error {
	return c.doJSON(ctx, http.MethodPatch, "/users/password", p, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/my", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) User(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile sends the profile as multipart form data, attaching
// p.Image as profileImage when set.
func (c *HTTPClient) UpdateProfile(ctx context.Context, p models.ProfileUpdate) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"name", p.Name},
		{"surname", p.Surname},
		{"username", p.Username},
		{"telegram", p.Telegram},
		{"discord", p.Discord},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	for _, s := range p.Skills {
		if err := w.WriteField("skills", s); err != nil {
			return err
		}
	}

	if p.Image != "" {
		if err := attachFile(w, "profileImage", p.Image); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.do(ctx, http.MethodPatch, "/users/update", nil, &buf, w.FormDataContentType(), nil)
}

func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) ListPosts(ctx context.Context, query url.Values) (*models.PostPage, error) {
	var page models.PostPage
	if err := c.do(ctx, http.MethodGet, "/posts/", query, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) MyPosts(ctx context.Context, query url.Values) (*models.PostPage, error) {
	var page models.PostPage
	if err := c.do(ctx, http.MethodGet, "/posts/my", query, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) Post(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	if err := c.doJSON(ctx, http.MethodGet, "/posts/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, p models.PostInput) error {
	return c.doJSON(ctx, http.MethodPost, "/posts/", p, nil)
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id int64, p models.PostInput) error {
	return c.doJSON(ctx, http.MethodPatch, "/posts/"+strconv.FormatInt(id, 10), p, nil)
}

func (c *HTTPClient) DeletePost(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/posts/"+strconv.FormatInt(id, 10), nil, nil)
}
