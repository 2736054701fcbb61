package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/client/validation"
)

func TestAccount_ValidationBlocksNetwork(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAccountService(fc)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.Registration{Email: "ann@example.com", Name: "Ann", Username: "ann", Password: "short"})
	assert.EqualError(t, err, validation.MsgPasswordTooShort)

	err = svc.ResetPassword(ctx, models.PasswordReset{Email: "ann@example.com", Token: "T", Password: "12345678", ConfirmPassword: "87654321"})
	assert.EqualError(t, err, validation.MsgPasswordsMismatch)

	err = svc.ChangePassword(ctx, models.PasswordChange{CurrentPassword: "current1", NewPassword: "12345678", RepeatPassword: "1234567x"})
	assert.EqualError(t, err, validation.MsgNewPasswordMismatch)

	assert.EqualError(t, svc.ForgotPassword(ctx, "  "), validation.MsgEmailRequired)
	assert.EqualError(t, svc.Activate(ctx, ""), validation.MsgTokenRequired)

	assert.Empty(t, fc.called())
}

func TestAccount_HappyPaths(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAccountService(fc)
	ctx := context.Background()

	u, err := svc.Register(ctx, models.Registration{Email: " ann@example.com ", Name: "Ann", Username: "ann", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)

	require.NoError(t, svc.Activate(ctx, "TOKEN"))
	require.NoError(t, svc.ForgotPassword(ctx, "ann@example.com"))
	require.NoError(t, svc.ResetPassword(ctx, models.PasswordReset{Email: "ann@example.com ", Token: "T", Password: "12345678", ConfirmPassword: "12345678"}))
	assert.Equal(t, "ann@example.com", fc.lastReset.Email)
	require.NoError(t, svc.ChangePassword(ctx, models.PasswordChange{CurrentPassword: "current1", NewPassword: "12345678", RepeatPassword: "12345678"}))
	require.NoError(t, svc.DeleteAccount(ctx, 3))
	require.NoError(t, svc.Ping(ctx))

	assert.Equal(t, []string{"Register", "Activate", "ForgotPassword", "ResetPassword", "ChangePassword", "DeleteUser", "Health"}, fc.called())
}

func TestAccount_BackendErrorsPassThrough(t *testing.T) {
	taken := &client.APIError{Status: 400, Message: "a user with this email address already exists"}
	fc := &fakeClient{registerFn: func(models.Registration) (*models.User, error) { return nil, taken }, healthErr: client.ErrUnavailable}
	svc := NewAccountService(fc)

	_, err := svc.Register(context.Background(), models.Registration{Email: "ann@example.com", Name: "Ann", Username: "ann", Password: "12345678"})
	assert.True(t, errors.Is(err, taken))
	assert.True(t, client.IsValidation(err))

	assert.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}
