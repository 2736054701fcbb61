package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/client/navmenu"
	"github.com/dmitrijs2005/teamfinder/internal/client/query"
	"github.com/dmitrijs2005/teamfinder/internal/client/router"
)

// Shell is one application load: the authentication state, the router and
// the view on screen.
type Shell struct {
	app *App

	resolver    *auth.Resolver
	router      *router.Router
	states      <-chan auth.State
	unsubscribe func()
	bootDone    chan struct{}

	current router.Match
	view    View
	history []string
	navs    int

	reload atomic.Bool
}

var _ execIface = (*Shell)(nil)

func (sh *Shell) requestReload() {
	sh.reload.Store(true)
}

// Reloading reports whether the load has ended and a new one is due.
func (sh *Shell) Reloading() bool {
	return sh.reload.Load()
}

// Boot starts the authentication check in the background.
func (sh *Shell) Boot(ctx context.Context) {
	sh.bootDone = make(chan struct{})
	go func() {
		defer close(sh.bootDone)
		sh.resolver.Resolve(ctx)
	}()
}

// Close stops listening for state changes and waits for the boot check.
func (sh *Shell) Close() {
	sh.closeView()
	sh.unsubscribe()
	if sh.bootDone != nil {
		<-sh.bootDone
	}
}

// Run boots the load, shows the home view and reads commands until the
// user exits or a reload is requested. It reports whether to reload.
func (sh *Shell) Run(ctx context.Context) bool {
	sh.Boot(ctx)
	sh.report(ctx, sh.Go(ctx, router.PathHome))
	return runREPL(ctx, sh, sh.app.in, sh.app.out)
}

// Prompt shows the auth state, the current path and the backend mode when
// it is offline.
func (sh *Shell) Prompt() string {
	var b strings.Builder
	b.WriteString("teamfinder")
	if sh.resolver.State() == auth.Authenticated {
		b.WriteString("*")
	}
	if sh.current.Path != "" {
		b.WriteString(" " + sh.current.Path)
	}
	if sh.app.Mode() == ModeOffline {
		b.WriteString(" (offline)")
	}
	b.WriteString("> ")
	return b.String()
}

// Sync applies a pending authentication change: the menu is shown again
// and the current view is re-checked against its guard.
func (sh *Shell) Sync(ctx context.Context) {
	select {
	case s := <-sh.states:
		sh.app.logger.Debug(ctx, "auth state changed", "state", s.String())
		sh.Menu()
		if sh.view == nil {
			return
		}
		if d := sh.router.Check(sh.current); d.Kind == router.Redirect {
			sh.report(ctx, sh.open(ctx, d.Target, false))
		}
	default:
	}
}

// Go navigates to path.
func (sh *Shell) Go(ctx context.Context, path string) error {
	return sh.open(ctx, path, true)
}

// Back returns to the previous path.
func (sh *Shell) Back(ctx context.Context) error {
	if len(sh.history) == 0 {
		fmt.Fprintln(sh.app.out, "Nothing to go back to.")
		return nil
	}
	prev := sh.history[len(sh.history)-1]
	sh.history = sh.history[:len(sh.history)-1]
	return sh.open(ctx, prev, false)
}

// Refresh shows the current view again.
func (sh *Shell) Refresh(ctx context.Context) error {
	if sh.view == nil {
		return sh.Go(ctx, router.PathHome)
	}
	return sh.view.Show(ctx)
}

func (sh *Shell) open(ctx context.Context, path string, push bool) error {
	target := router.Clean(path)

	if !sh.resolver.State().Resolved() {
		if m, ok := sh.router.Match(target); ok && (m.Route.RequiresAuth || m.Route.RequiresAnonymous) {
			fmt.Fprintln(sh.app.out, "Checking session...")
		}
	}

	m, err := sh.router.Navigate(ctx, target)
	if errors.Is(err, router.ErrNotFound) {
		fmt.Fprintf(sh.app.out, "Page not found: %s\n", target)
		return nil
	}
	if err != nil {
		return err
	}
	if m.Path != target {
		sh.app.logger.Debug(ctx, "navigation redirected", "from", target, "to", m.Path)
	}

	// A view may navigate from inside Show; that inner navigation is the
	// one that sticks.
	seq := sh.navs
	v := sh.newView(m)
	if err := v.Show(ctx); err != nil {
		v.Close()
		if sh.navs == seq {
			sh.dropForbiddenView()
		}
		return err
	}
	if sh.navs != seq {
		v.Close()
		return nil
	}

	if push && sh.view != nil && sh.current.Path != m.Path {
		sh.history = append(sh.history, sh.current.Path)
	}
	sh.closeView()
	sh.navs++
	sh.current = m
	sh.view = v
	return nil
}

// dropForbiddenView forgets the current view once its guard no longer lets
// it render, so a failed redirect never leaves a gated page on screen.
func (sh *Shell) dropForbiddenView() {
	if sh.view == nil || sh.router.Check(sh.current).Kind == router.Render {
		return
	}
	sh.closeView()
	sh.view = nil
	sh.current = router.Match{}
}

func (sh *Shell) closeView() {
	if sh.view != nil {
		sh.view.Close()
	}
}

// Menu prints the navigation menu for the current state.
func (sh *Shell) Menu() {
	state := sh.resolver.State()
	if !state.Resolved() {
		fmt.Fprintln(sh.app.out, "Checking session...")
		return
	}
	fmt.Fprintln(sh.app.out, "----")
	if err := navmenu.Render(sh.app.out, state); err != nil {
		sh.app.logger.Warn(context.Background(), "menu not rendered", "error", err)
	}
	fmt.Fprintln(sh.app.out, "----")
}

// Logout signs out when the menu offers it.
func (sh *Shell) Logout(ctx context.Context) error {
	if !navmenu.Has(sh.resolver.State(), navmenu.ActionLogout) {
		fmt.Fprintln(sh.app.out, "You are not logged in.")
		return nil
	}
	if err := sh.resolver.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(sh.app.out, "Logged out.")
	return nil
}

func (sh *Shell) lister() (*listView, error) {
	lv, ok := sh.view.(*listView)
	if !ok {
		return nil, errNoList
	}
	return lv, nil
}

// Filter changes the filter of the list on screen and shows it again.
//
//	filter type teamFinding|userFinding|any
//	filter skill <name>        toggles one skill
//	filter skills a,b          replaces the skill set
//	filter sort name|-created_at|...
//	filter clear
func (sh *Shell) Filter(ctx context.Context, args []string) error {
	lv, err := sh.lister()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errUsage("filter type|skill|skills|sort|clear [value]")
	}

	st := lv.state
	switch args[0] {
	case "type":
		if len(args) != 2 {
			return errUsage("filter type teamFinding|userFinding|any")
		}
		t, err := models.ParsePostType(args[1])
		if err != nil {
			return err
		}
		st.SetType(t)
	case "skill":
		if len(args) != 2 {
			return errUsage("filter skill <name>")
		}
		skill := strings.ToLower(args[1])
		if !models.IsSkill(skill) {
			return fmt.Errorf("%w: %s (choose from %s)", errUnknownSkill, skill, strings.Join(models.Skills, ", "))
		}
		st.ToggleSkill(skill)
	case "skills":
		skills := splitList(strings.ToLower(strings.Join(args[1:], ",")))
		for _, s := range skills {
			if !models.IsSkill(s) {
				return fmt.Errorf("%w: %s (choose from %s)", errUnknownSkill, s, strings.Join(models.Skills, ", "))
			}
		}
		st.SetSkills(skills)
	case "sort":
		if len(args) != 2 || !query.ValidSort(args[1]) {
			return errUsage("filter sort " + strings.Join(query.SortFields, "|"))
		}
		st.SetSort(args[1])
	case "clear":
		st.SetType(models.PostTypeAny)
		st.SetSkills(nil)
		st.SetSort("")
	default:
		return errUsage("filter type|skill|skills|sort|clear [value]")
	}
	return lv.Show(ctx)
}

// Page moves the list on screen to another page.
func (sh *Shell) Page(ctx context.Context, arg string) error {
	lv, err := sh.lister()
	if err != nil {
		return err
	}
	switch arg {
	case "next":
		lv.state.Next()
	case "prev":
		lv.state.Prev()
	default:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return errUsage("page <n>|next|prev")
		}
		lv.state.SetPage(n)
	}
	return lv.Show(ctx)
}
