// Package validation checks forms on the client before anything is sent to
// the backend. Messages are shown to the user as is.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/teamfinder/internal/client/models"
)

const MinPasswordLength = 8

const (
	MsgPasswordTooShort    = "Password should be at least 8 characters long"
	MsgPasswordsMismatch   = "Passwords do not match"
	MsgNewPasswordMismatch = "New passwords do not match"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Email is invalid"
	MsgNameRequired        = "Name is required"
	MsgUsernameRequired    = "Username is required"
	MsgPasswordRequired    = "Current password is required"
	MsgTokenRequired       = "Token is required"
	MsgPostRequired        = "Name and description are required."
	MsgPostType            = "Type must be teamFinding or userFinding"
	MsgUnknownSkill        = "Unknown skill"
)

var emailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Errors maps a form field to the first problem found with it.
type Errors map[string]string

// Error lists the messages ordered by field name.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Check adds msg for field when ok is false.
func (e Errors) Check(ok bool, field, msg string) {
	if !ok {
		e.Add(field, msg)
	}
}

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func checkEmail(e Errors, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		e.Add("email", MsgEmailRequired)
		return
	}
	e.Check(emailRX.MatchString(email), "email", MsgEmailInvalid)
}

func checkPassword(e Errors, field, password string) {
	e.Check(utf8.RuneCountInString(password) >= MinPasswordLength, field, MsgPasswordTooShort)
}

// Login validates the login form: the email format and the password
// length, both checked before anything is sent.
func Login(email, password string) error {
	e := Errors{}
	checkEmail(e, email)
	checkPassword(e, "password", password)
	return e.Err()
}

func Registration(r models.Registration) error {
	e := Errors{}
	checkEmail(e, r.Email)
	e.Check(strings.TrimSpace(r.Name) != "", "name", MsgNameRequired)
	e.Check(strings.TrimSpace(r.Username) != "", "username", MsgUsernameRequired)
	checkPassword(e, "password", r.Password)
	return e.Err()
}

func ForgotPassword(email string) error {
	e := Errors{}
	checkEmail(e, email)
	return e.Err()
}

func ResetPassword(r models.PasswordReset) error {
	e := Errors{}
	checkEmail(e, r.Email)
	e.Check(strings.TrimSpace(r.Token) != "", "token", MsgTokenRequired)
	checkPassword(e, "password", r.Password)
	e.Check(r.Password == r.ConfirmPassword, "confirmPassword", MsgPasswordsMismatch)
	return e.Err()
}

func ChangePassword(c models.PasswordChange) error {
	e := Errors{}
	e.Check(c.CurrentPassword != "", "currentPassword", MsgPasswordRequired)
	checkPassword(e, "newPassword", c.NewPassword)
	e.Check(c.NewPassword == c.RepeatPassword, "repeatNewPass", MsgNewPasswordMismatch)
	return e.Err()
}

func Post(p models.PostInput) error {
	e := Errors{}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Description) == "" {
		e.Add("name", MsgPostRequired)
	}
	e.Check(p.Type == models.PostTypeTeamFinding || p.Type == models.PostTypeUserFinding, "type", MsgPostType)
	for _, s := range p.Skills {
		e.Check(models.IsSkill(s), "skills", MsgUnknownSkill)
	}
	return e.Err()
}

func Profile(p models.ProfileUpdate) error {
	e := Errors{}
	e.Check(strings.TrimSpace(p.Name) != "", "name", MsgNameRequired)
	e.Check(strings.TrimSpace(p.Username) != "", "username", MsgUsernameRequired)
	for _, s := range p.Skills {
		e.Check(models.IsSkill(s), "skills", MsgUnknownSkill)
	}
	return e.Err()
}
