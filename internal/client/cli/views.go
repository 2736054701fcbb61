package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/client/query"
	"github.com/dmitrijs2005/teamfinder/internal/client/router"
	"github.com/dmitrijs2005/teamfinder/internal/common"
)

const msgWrongCredentials = "The provided password or email are incorrect"

// View is what a route shows. Show runs on every visit and refresh; Close
// runs when the user leaves.
type View interface {
	Show(ctx context.Context) error
	Close()
}

// newView builds the view for a matched route.
func (sh *Shell) newView(m router.Match) View {
	p := page{sh: sh, match: m}
	switch m.Route.Name {
	case router.Home:
		return &listView{page: p, title: "Posts", state: query.NewState(0), fetch: sh.app.posts.List}
	case router.MyPosts:
		return &listView{page: p, title: "My Posts", state: query.NewState(0), fetch: sh.app.posts.My}
	case router.Login:
		return &loginView{p}
	case router.Register:
		return &registerView{p}
	case router.ForgotPassword:
		return &forgotPasswordView{p}
	case router.ResetPassword:
		return &resetPasswordView{p}
	case router.Activate:
		return &activateView{p}
	case router.CreatePost:
		return &createPostView{p}
	case router.ShowPost:
		return &postView{p}
	case router.EditPost:
		return &editPostView{p}
	case router.Profile:
		return &profileView{page: p}
	case router.ShowUser:
		return &profileView{page: p, byID: true}
	case router.ManageAccount:
		return &manageAccountView{p}
	case router.ChangePassword:
		return &changePasswordView{p}
	default:
		return &notFoundView{p}
	}
}

// page carries what every view needs.
type page struct {
	sh    *Shell
	match router.Match
}

func (p page) Close() {}

func (p page) println(a ...any) {
	fmt.Fprintln(p.sh.app.out, a...)
}

func (p page) ask(label string) (string, error) {
	return getSimpleText(p.sh.app.in, label, p.sh.app.out)
}

// askDefault keeps cur when the answer is empty.
func (p page) askDefault(label, cur string) (string, error) {
	if cur != "" {
		label = fmt.Sprintf("%s [%s]", label, cur)
	}
	v, err := p.ask(label)
	if err != nil || v == "" {
		return cur, err
	}
	return v, nil
}

// askPassword reads a password and wipes the buffer.
func (p page) askPassword(label string) (string, error) {
	pw, err := getPassword(p.sh.app.in, label, p.sh.app.out)
	defer common.WipeByteArray(pw)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (p page) askSkills(cur []string) ([]string, error) {
	label := "Skills (" + strings.Join(models.Skills, ", ") + ")"
	if len(cur) > 0 {
		label += " [" + strings.Join(cur, ",") + "]"
	}
	skills, err := getList(p.sh.app.in, label, p.sh.app.out)
	if err != nil || len(skills) == 0 {
		return cur, err
	}
	return skills, nil
}

func (p page) askType(cur models.PostType) (models.PostType, error) {
	label := "Type (teamFinding, userFinding)"
	v, err := p.askDefault(label, string(cur))
	if err != nil {
		return "", err
	}
	t, err := models.ParsePostType(v)
	if err != nil {
		return models.PostType(v), nil
	}
	return t, nil
}

func (p page) id() (int64, error) {
	id, err := strconv.ParseInt(p.match.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, client.ErrNotFound
	}
	return id, nil
}

// listView shows a filtered, paginated post list. Responses are applied
// only while they belong to the latest request of this view.
type listView struct {
	page
	title string
	state *query.State
	seq   query.Sequencer
	fetch func(ctx context.Context, f models.PostFilter) (*models.PostPage, error)
}

func (v *listView) Show(ctx context.Context) error {
	f := v.state.Filter()
	tok := v.seq.Begin()
	res, err := v.fetch(ctx, f)
	if err != nil {
		if !v.seq.Current(tok) {
			return nil
		}
		return err
	}
	var rerr error
	v.seq.Commit(tok, func() {
		v.state.SetMetadata(res.Metadata)
		rerr = renderPostList(v.sh.app.out, v.title, f, res)
	})
	return rerr
}

func (v *listView) Close() {
	v.seq.Invalidate()
}

type loginView struct{ page }

func (v *loginView) Show(ctx context.Context) error {
	v.println("== Login ==  (forgot your password? go /forgot-password)")
	email, err := v.ask("Email")
	if err != nil {
		return err
	}
	return v.login(ctx, email)
}

func (v *loginView) login(ctx context.Context, email string) error {
	password, err := v.askPassword("Password")
	if err != nil {
		return err
	}

	err = v.sh.resolver.Login(ctx, email, password)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
		return errors.New(msgWrongCredentials)
	}
	if err != nil {
		return err
	}
	v.println("Logged in.")
	return nil
}

type registerView struct{ page }

func (v *registerView) Show(ctx context.Context) error {
	v.println("== Register ==")
	var r models.Registration
	var err error
	if r.Email, err = v.ask("Email"); err != nil {
		return err
	}
	if r.Name, err = v.ask("Name"); err != nil {
		return err
	}
	if r.Username, err = v.ask("Username"); err != nil {
		return err
	}
	if r.Password, err = v.askPassword("Password"); err != nil {
		return err
	}

	u, err := v.sh.app.account.Register(ctx, r)
	if err != nil {
		return err
	}
	email := r.Email
	if u != nil && u.Email != "" {
		email = u.Email
	}
	v.println("Registration successful. An activation link was sent to " + email + ".")
	return nil
}

type forgotPasswordView struct{ page }

func (v *forgotPasswordView) Show(ctx context.Context) error {
	v.println("== Forgot password ==")
	email, err := v.ask("Email")
	if err != nil {
		return err
	}
	if err := v.sh.app.account.ForgotPassword(ctx, email); err != nil {
		return err
	}
	v.println("If the address is registered, a password reset link has been sent.")
	return nil
}

type resetPasswordView struct{ page }

func (v *resetPasswordView) Show(ctx context.Context) error {
	v.println("== Reset password ==")
	r := models.PasswordReset{Token: v.match.Param("token")}
	var err error
	if r.Email, err = v.ask("Email"); err != nil {
		return err
	}
	if r.Password, err = v.askPassword("New password"); err != nil {
		return err
	}
	if r.ConfirmPassword, err = v.askPassword("Repeat new password"); err != nil {
		return err
	}
	if err := v.sh.app.account.ResetPassword(ctx, r); err != nil {
		return err
	}
	v.println("Password has been reset.")
	return v.sh.Go(ctx, router.PathLogin)
}

type activateView struct{ page }

func (v *activateView) Show(ctx context.Context) error {
	if err := v.sh.app.account.Activate(ctx, v.match.Param("token")); err != nil {
		return err
	}
	v.println("Account activated. You can log in now.")
	return nil
}

type createPostView struct{ page }

func (v *createPostView) Show(ctx context.Context) error {
	v.println("== Create post ==")
	in, err := v.form(models.PostInput{})
	if err != nil {
		return err
	}
	if err := v.sh.app.posts.Create(ctx, in); err != nil {
		return err
	}
	v.println("Post created.")
	return v.sh.Go(ctx, "/posts/my")
}

// form asks for every post field, keeping the values of cur on empty input.
func (p page) form(cur models.PostInput) (models.PostInput, error) {
	var in models.PostInput
	var err error
	if in.Name, err = p.askDefault("Name", cur.Name); err != nil {
		return in, err
	}
	label := "Description"
	if cur.Description != "" {
		label += " (empty keeps the current one)"
	}
	if in.Description, err = getMultiline(p.sh.app.in, label, p.sh.app.out); err != nil {
		return in, err
	}
	if in.Description == "" {
		in.Description = cur.Description
	}
	if in.Type, err = p.askType(cur.Type); err != nil {
		return in, err
	}
	if in.Skills, err = p.askSkills(cur.Skills); err != nil {
		return in, err
	}
	return in, nil
}

type postView struct{ page }

func (v *postView) Show(ctx context.Context) error {
	id, err := v.id()
	if err != nil {
		return err
	}
	p, err := v.sh.app.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := renderPost(v.sh.app.out, p); err != nil {
		return err
	}
	if v.sh.resolver.State() == auth.Authenticated {
		v.println(fmt.Sprintf("(edit: go /posts/%d/edit)", p.ID))
	}
	return nil
}

type editPostView struct{ page }

func (v *editPostView) Show(ctx context.Context) error {
	id, err := v.id()
	if err != nil {
		return err
	}
	p, err := v.sh.app.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	v.println(fmt.Sprintf("== Edit post #%d ==", p.ID))

	del, err := confirm(v.sh.app.in, "Delete this post instead?", v.sh.app.out)
	if err != nil {
		return err
	}
	if del {
		if err := v.sh.app.posts.Delete(ctx, id); err != nil {
			return err
		}
		v.println("Post deleted.")
		return v.sh.Go(ctx, "/posts/my")
	}

	in, err := v.form(models.PostInput{Name: p.Name, Description: p.Description, Type: p.Type, Skills: p.Skills})
	if err != nil {
		return err
	}
	if err := v.sh.app.posts.Update(ctx, id, in); err != nil {
		return err
	}
	v.println("Post updated.")
	return v.sh.Go(ctx, fmt.Sprintf("/posts/%d", id))
}

// profileView shows the own profile, or another user's when byID is set,
// with the first page of their posts.
type profileView struct {
	page
	byID bool
}

func (v *profileView) Show(ctx context.Context) error {
	var id int64
	if v.byID {
		var err error
		if id, err = v.id(); err != nil {
			return err
		}
	}
	ov, err := v.sh.app.profile.Overview(ctx, id)
	if err != nil {
		return err
	}
	if err := renderUser(v.sh.app.out, ov.User); err != nil {
		return err
	}
	v.println()
	return renderPostList(v.sh.app.out, "Posts by "+ov.User.DisplayName(), models.PostFilter{}, ov.Posts)
}

type manageAccountView struct{ page }

func (v *manageAccountView) Show(ctx context.Context) error {
	me, err := v.sh.app.profile.My(ctx)
	if err != nil {
		return err
	}
	v.println("== Manage account ==  (empty answers keep the current value)")

	del, err := confirm(v.sh.app.in, "Delete your account?", v.sh.app.out)
	if err != nil {
		return err
	}
	if del {
		return v.deleteAccount(ctx, me)
	}

	u := models.ProfileUpdate{}
	if u.Name, err = v.askDefault("Name", me.Name); err != nil {
		return err
	}
	if u.Surname, err = v.askDefault("Surname", me.Surname); err != nil {
		return err
	}
	if u.Username, err = v.askDefault("Username", me.Username); err != nil {
		return err
	}
	if u.Telegram, err = v.askDefault("Telegram", me.Telegram); err != nil {
		return err
	}
	if u.Discord, err = v.askDefault("Discord", me.Discord); err != nil {
		return err
	}
	if u.Skills, err = v.askSkills(me.Skills); err != nil {
		return err
	}
	if u.Image, err = v.ask("Profile image file (empty keeps the current one)"); err != nil {
		return err
	}

	if err := v.sh.app.profile.Update(ctx, u); err != nil {
		return err
	}
	v.println("Profile updated.")
	return v.sh.Go(ctx, "/profile")
}

func (v *manageAccountView) deleteAccount(ctx context.Context, me *models.User) error {
	sure, err := confirm(v.sh.app.in, "This cannot be undone. Are you sure?", v.sh.app.out)
	if err != nil || !sure {
		return err
	}
	if err := v.sh.app.account.DeleteAccount(ctx, me.ID); err != nil {
		return err
	}
	v.println("Account deleted.")
	return v.sh.resolver.Logout(ctx)
}

type changePasswordView struct{ page }

func (v *changePasswordView) Show(ctx context.Context) error {
	v.println("== Change password ==")
	var c models.PasswordChange
	var err error
	if c.CurrentPassword, err = v.askPassword("Current password"); err != nil {
		return err
	}
	if c.NewPassword, err = v.askPassword("New password"); err != nil {
		return err
	}
	if c.RepeatPassword, err = v.askPassword("Repeat new password"); err != nil {
		return err
	}
	if err := v.sh.app.account.ChangePassword(ctx, c); err != nil {
		return err
	}
	v.println("Password changed.")
	return v.sh.Go(ctx, router.PathHome)
}

type notFoundView struct{ page }

func (v *notFoundView) Show(context.Context) error {
	v.println("Page not found: " + v.match.Path)
	return nil
}
