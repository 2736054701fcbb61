package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/client/query"
)

// withShell runs fn against a resolved application load and releases it.
func withShell(ctx context.Context, opts *RootOptions, fn func(*Shell, auth.State) error) error {
	a, err := opts.app(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sh := a.newShell()
	defer sh.Close()
	return fn(sh, sh.resolver.Resolve(ctx))
}

// NewLoginCommand signs in without entering the shell.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withShell(cmd.Context(), opts, func(sh *Shell, state auth.State) error {
				if state == auth.Authenticated {
					fmt.Fprintln(opts.Out, "Already logged in.")
					return nil
				}
				v := &loginView{page{sh: sh}}
				if email != "" {
					return v.login(cmd.Context(), email)
				}
				return v.Show(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email; prompted when empty")
	return cmd
}

// NewLogoutCommand signs out and clears the local session.
func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withShell(cmd.Context(), opts, func(sh *Shell, _ auth.State) error {
				return sh.Logout(cmd.Context())
			})
		},
	}
}

// NewStatusCommand prints the session state and backend reachability.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether you are logged in and the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withShell(cmd.Context(), opts, func(sh *Shell, state auth.State) error {
				sh.app.checkHealth(cmd.Context())
				fmt.Fprintf(opts.Out, "API:     %s (%s)\n", opts.config.APIBaseURL, sh.app.Mode())
				fmt.Fprintf(opts.Out, "Session: %s\n", state)
				return nil
			})
		},
	}
}

// NewPostsCommand lists posts once, with the same filters as the shell.
func NewPostsCommand(opts *RootOptions) *cobra.Command {
	var (
		typ    string
		skills []string
		sort   string
		pg     int
		size   int
		mine   bool
	)

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParsePostType(typ)
			if err != nil {
				return fmt.Errorf("%w: %q", err, typ)
			}
			if sort != "" && !query.ValidSort(sort) {
				return fmt.Errorf("invalid sort %q: must be one of %s", sort, strings.Join(query.SortFields, ", "))
			}

			st := query.NewState(size)
			st.SetType(t)
			st.SetSkills(skills)
			st.SetSort(sort)
			st.SetPage(pg)

			return withShell(cmd.Context(), opts, func(sh *Shell, state auth.State) error {
				v := &listView{page: page{sh: sh}, title: "Posts", state: st, fetch: sh.app.posts.List}
				if mine {
					if state != auth.Authenticated {
						return errors.New("log in first: teamfinder login")
					}
					v.title, v.fetch = "My Posts", sh.app.posts.My
				}
				return v.Show(cmd.Context())
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&typ, "type", "t", "", "post type: teamFinding, userFinding or any")
	f.StringSliceVarP(&skills, "skills", "s", nil, "skills, comma separated")
	f.StringVar(&sort, "sort", "", "sort field: "+strings.Join(query.SortFields, ", "))
	f.IntVarP(&pg, "page", "p", 1, "page number")
	f.IntVar(&size, "page-size", 0, "posts per page, 0 for the server default")
	f.BoolVar(&mine, "mine", false, "list only your own posts")
	return cmd
}
