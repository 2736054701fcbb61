package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teamfinder/internal/client/models"
)

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	var e Errors
	require.True(t, errors.As(err, &e), "expected validation.Errors, got %v", err)
	return e
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     Errors
	}{
		{"ok", "ann@example.com", "12345678", nil},
		{"short password", "ann@example.com", "1234567", Errors{"password": MsgPasswordTooShort}},
		{"multibyte counts runes", "ann@example.com", "пароль12", nil},
		{"missing email", "", "12345678", Errors{"email": MsgEmailRequired}},
		{"bad email", "ann@", "12345678", Errors{"email": MsgEmailInvalid}},
		{"bad email and short password", "ann@", "123", Errors{"email": MsgEmailInvalid, "password": MsgPasswordTooShort}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Login(tt.email, tt.password)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, fieldErrors(t, err))
		})
	}
}

func TestResetPassword(t *testing.T) {
	err := ResetPassword(models.PasswordReset{
		Email: "ann@example.com", Token: "T", Password: "12345678", ConfirmPassword: "12345679",
	})
	assert.Equal(t, Errors{"confirmPassword": MsgPasswordsMismatch}, fieldErrors(t, err))

	require.NoError(t, ResetPassword(models.PasswordReset{
		Email: "ann@example.com", Token: "T", Password: "12345678", ConfirmPassword: "12345678",
	}))
}

func TestChangePassword(t *testing.T) {
	err := ChangePassword(models.PasswordChange{CurrentPassword: "old-pass", NewPassword: "short", RepeatPassword: "other"})
	e := fieldErrors(t, err)
	assert.Equal(t, MsgPasswordTooShort, e["newPassword"])
	assert.Equal(t, MsgNewPasswordMismatch, e["repeatNewPass"])
	assert.Equal(t, MsgPasswordTooShort+"; "+MsgNewPasswordMismatch, err.Error())
}

func TestPost(t *testing.T) {
	err := Post(models.PostInput{Name: " ", Description: "x", Type: models.PostTypeTeamFinding})
	assert.Equal(t, MsgPostRequired, err.Error())

	err = Post(models.PostInput{Name: "a", Description: "b", Type: "freelance", Skills: []string{"cobol"}})
	e := fieldErrors(t, err)
	assert.Equal(t, MsgPostType, e["type"])
	assert.Equal(t, MsgUnknownSkill, e["skills"])

	require.NoError(t, Post(models.PostInput{Name: "a", Description: "b", Type: models.PostTypeUserFinding, Skills: []string{"golang"}}))
}

func TestRegistrationAndProfile(t *testing.T) {
	err := Registration(models.Registration{Email: "ann@example.com", Password: "12345678"})
	e := fieldErrors(t, err)
	assert.Equal(t, MsgNameRequired, e["name"])
	assert.Equal(t, MsgUsernameRequired, e["username"])

	require.NoError(t, Profile(models.ProfileUpdate{Name: "Ann", Username: "ann", Skills: []string{"python"}}))
	require.Error(t, ForgotPassword(""))
}
