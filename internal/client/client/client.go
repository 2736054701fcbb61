package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/teamfinder/internal/client/models"
)

// Client is the TeamFinder backend API as used by the CLI.
type Client interface {
	Health(ctx context.Context) error

	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (bool, error)

	Register(ctx context.Context, r models.Registration) (*models.User, error)
	Activate(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, r models.PasswordReset) error
	ChangePassword(ctx context.Context, c models.PasswordChange) error

	Me(ctx context.Context) (*models.User, error)
	User(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, p models.ProfileUpdate) error
	DeleteUser(ctx context.Context, id int64) error

	ListPosts(ctx context.Context, query url.Values) (*models.PostPage, error)
	MyPosts(ctx context.Context, query url.Values) (*models.PostPage, error)
	Post(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, p models.PostInput) error
	UpdatePost(ctx context.Context, id int64, p models.PostInput) error
	DeletePost(ctx context.Context, id int64) error
}
