// Package navmenu holds the navigation menu: a fixed link table keyed on
// the authentication state.
package navmenu

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
)

// Action is what choosing a link does.
type Action int

const (
	// ActionNavigate goes to Link.Path.
	ActionNavigate Action = iota
	// ActionLogout signs out through auth.Resolver.Logout.
	ActionLogout
)

// Link is a menu entry. A link with Children is a submenu header.
type Link struct {
	Label    string
	Path     string
	Action   Action
	Children []Link
}

// Command is the shell command that follows the link.
func (l Link) Command() string {
	switch {
	case len(l.Children) > 0:
		return ""
	case l.Action == ActionLogout:
		return "logout"
	default:
		return "go " + l.Path
	}
}

var (
	home = Link{Label: "Home", Path: "/"}

	anonymous = []Link{
		home,
		{Label: "Login", Path: "/login"},
		{Label: "Register", Path: "/register"},
	}

	authenticated = []Link{
		home,
		{Label: "My Posts", Path: "/posts/my"},
		{Label: "Create Post", Path: "/posts/create"},
		{Label: "Profile", Children: []Link{
			{Label: "My Profile", Path: "/profile"},
			{Label: "Manage Account", Path: "/profile/settings"},
			{Label: "Change Password", Path: "/profile/password"},
			{Label: "Logout", Action: ActionLogout},
		}},
	}
)

// Links returns the menu for state. Unknown gets no links at all so that a
// pending check never shows the logged-out menu.
func Links(state auth.State) []Link {
	switch state {
	case auth.Authenticated:
		return clone(authenticated)
	case auth.Anonymous:
		return clone(anonymous)
	default:
		return nil
	}
}

func clone(links []Link) []Link {
	out := make([]Link, len(links))
	for i, l := range links {
		out[i] = l
		if l.Children != nil {
			out[i].Children = clone(l.Children)
		}
	}
	return out
}

// Has reports whether the menu for state offers action.
func Has(state auth.State, action Action) bool {
	var walk func([]Link) bool
	walk = func(links []Link) bool {
		for _, l := range links {
			if len(l.Children) == 0 && l.Action == action {
				return true
			}
			if walk(l.Children) {
				return true
			}
		}
		return false
	}
	return walk(Links(state))
}

// Render writes the menu for state, one link per line with the command
// that follows it.
func Render(w io.Writer, state auth.State) error {
	for _, l := range Links(state) {
		if len(l.Children) == 0 {
			if _, err := fmt.Fprintf(w, "%-18s%s\n", l.Label, l.Command()); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", l.Label); err != nil {
			return err
		}
		for _, c := range l.Children {
			if _, err := fmt.Fprintf(w, "  %-16s%s\n", c.Label, c.Command()); err != nil {
				return err
			}
		}
	}
	return nil
}
