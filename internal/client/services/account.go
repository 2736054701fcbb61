package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/client/validation"
)

// AccountService covers the account lifecycle outside of login and logout,
// which belong to auth.Resolver.
type AccountService interface {
	Register(ctx context.Context, r models.Registration) (*models.User, error)
	Activate(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, r models.PasswordReset) error
	ChangePassword(ctx context.Context, c models.PasswordChange) error
	DeleteAccount(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type accountService struct {
	client client.Client
}

func NewAccountService(c client.Client) AccountService {
	return &accountService{client: c}
}

func (a *accountService) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	r.Email = strings.TrimSpace(r.Email)
	if err := validation.Registration(r); err != nil {
		return nil, err
	}
	return a.client.Register(ctx, r)
}

func (a *accountService) Activate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return validation.Errors{"token": validation.MsgTokenRequired}
	}
	return a.client.Activate(ctx, token)
}

func (a *accountService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validation.ForgotPassword(email); err != nil {
		return err
	}
	return a.client.ForgotPassword(ctx, email)
}

func (a *accountService) ResetPassword(ctx context.Context, r models.PasswordReset) error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validation.ResetPassword(r); err != nil {
		return err
	}
	return a.client.ResetPassword(ctx, r)
}

func (a *accountService) ChangePassword(ctx context.Context, c models.PasswordChange) error {
	if err := validation.ChangePassword(c); err != nil {
		return err
	}
	return a.client.ChangePassword(ctx, c)
}

// DeleteAccount removes the account. The caller must then log out; the
// backend session is no longer valid.
func (a *accountService) DeleteAccount(ctx context.Context, id int64) error {
	return a.client.DeleteUser(ctx, id)
}

// Ping proxies a liveness check to the backend.
func (a *accountService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}
