package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
)

// fakeClient implements client.Client. Methods a test does not configure
// panic through the nil embedded interface.
type fakeClient struct {
	client.Client

	mu    sync.Mutex
	calls []string

	registerFn   func(models.Registration) (*models.User, error)
	activateErr  error
	forgotErr    error
	resetErr     error
	changeErr    error
	deleteErr    error
	healthErr    error
	meFn         func(ctx context.Context) (*models.User, error)
	userFn       func(ctx context.Context, id int64) (*models.User, error)
	updateErr    error
	listFn       func(ctx context.Context, q url.Values) (*models.PostPage, error)
	myPostsFn    func(ctx context.Context, q url.Values) (*models.PostPage, error)
	postFn       func(id int64) (*models.Post, error)
	createErr    error
	updatePosErr error
	deletePosErr error

	lastQuery url.Values
	lastPost  models.PostInput
	lastReset models.PasswordReset
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Health(ctx context.Context) error {
	f.record("Health")
	return f.healthErr
}

func (f *fakeClient) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	f.record("Register")
	if f.registerFn != nil {
		return f.registerFn(r)
	}
	return &models.User{Email: r.Email}, nil
}

func (f *fakeClient) Activate(ctx context.Context, token string) error {
	f.record("Activate")
	return f.activateErr
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) error {
	f.record("ForgotPassword")
	return f.forgotErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, r models.PasswordReset) error {
	f.record("ResetPassword")
	f.lastReset = r
	return f.resetErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, c models.PasswordChange) error {
	f.record("ChangePassword")
	return f.changeErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	f.record("DeleteUser")
	return f.deleteErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.record("Me")
	return f.meFn(ctx)
}

func (f *fakeClient) User(ctx context.Context, id int64) (*models.User, error) {
	f.record("User")
	return f.userFn(ctx, id)
}

func (f *fakeClient) UpdateProfile(ctx context.Context, p models.ProfileUpdate) error {
	f.record("UpdateProfile")
	return f.updateErr
}

func (f *fakeClient) ListPosts(ctx context.Context, q url.Values) (*models.PostPage, error) {
	f.record("ListPosts")
	f.mu.Lock()
	f.lastQuery = q
	f.mu.Unlock()
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return &models.PostPage{}, nil
}

func (f *fakeClient) MyPosts(ctx context.Context, q url.Values) (*models.PostPage, error) {
	f.record("MyPosts")
	f.mu.Lock()
	f.lastQuery = q
	f.mu.Unlock()
	if f.myPostsFn != nil {
		return f.myPostsFn(ctx, q)
	}
	return &models.PostPage{}, nil
}

func (f *fakeClient) Post(ctx context.Context, id int64) (*models.Post, error) {
	f.record("Post")
	return f.postFn(id)
}

func (f *fakeClient) CreatePost(ctx context.Context, p models.PostInput) error {
	f.record("CreatePost")
	f.lastPost = p
	return f.createErr
}

func (f *fakeClient) UpdatePost(ctx context.Context, id int64, p models.PostInput) error {
	f.record("UpdatePost")
	f.lastPost = p
	return f.updatePosErr
}

func (f *fakeClient) DeletePost(ctx context.Context, id int64) error {
	f.record("DeletePost")
	return f.deletePosErr
}
