// Package models defines the TeamFinder resources as the client sees them.
// Values are transient copies fetched per view; nothing here is persisted.
package models

import "time"

// User is a TeamFinder account profile.
type User struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Username  string    `json:"username"`
	Telegram  string    `json:"telegram"`
	Discord   string    `json:"discord"`
	Email     string    `json:"email"`
	Skills    []string  `json:"skills"`
	Activated bool      `json:"activated"`

	// ProfileImage is a URL, empty when the user has not uploaded one.
	ProfileImage string `json:"profileImage"`
}

// DisplayName is "Name Surname", falling back to the username.
func (u User) DisplayName() string {
	switch {
	case u.Name != "" && u.Surname != "":
		return u.Name + " " + u.Surname
	case u.Name != "":
		return u.Name
	default:
		return u.Username
	}
}

// Registration is the sign-up form.
type Registration struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate is the editable part of a profile. Image, when set, is the
// path of a local file uploaded as the new profile image.
type ProfileUpdate struct {
	Name     string
	Surname  string
	Username string
	Telegram string
	Discord  string
	Skills   []string
	Image    string
}

// PasswordChange is the change-password form of a logged-in user.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	RepeatPassword  string `json:"repeatNewPass"`
}

// PasswordReset completes a forgotten-password flow with the emailed token.
type PasswordReset struct {
	Email           string `json:"email"`
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
