package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const helpText = `Commands:
  menu                     show the navigation menu
  go <path>                open a page, e.g. go /posts/12
  back                     return to the previous page
  refresh                  reload the current page
  filter type <t>          teamFinding | userFinding | any
  filter skill <s>         add or remove one skill
  filter skills <a,b>      replace the skill filter
  filter sort <field>      name | created_at | -name | -created_at
  filter clear             drop all filters
  page <n>|next|prev       move through the list
  logout                   sign out
  help                     show this help
  exit | quit              leave the program`

// execIface is the command surface the REPL drives. *Shell satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	Prompt() string
	Sync(ctx context.Context)
	Menu()
	Go(ctx context.Context, path string) error
	Back(ctx context.Context) error
	Refresh(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	Page(ctx context.Context, arg string) error
	Logout(ctx context.Context) error
	Reloading() bool
	report(ctx context.Context, err error)
}

// runREPL reads commands from in and dispatches them to sh until input ends,
// the user exits, ctx is done or a reload is requested. It returns true in
// the last case.
//
// Errors returned by commands are reported inline through sh and never end
// the loop.
func runREPL(ctx context.Context, sh execIface, in *bufio.Reader, out io.Writer) bool {
	for {
		if ctx.Err() != nil {
			return false
		}
		sh.Sync(ctx)
		if sh.Reloading() {
			return true
		}

		fmt.Fprint(out, sh.Prompt())
		line, err := ReadLine(in)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				sh.report(ctx, err)
			}
			fmt.Fprintln(out)
			return false
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprintln(out, helpText)
		case "menu", "m":
			sh.Menu()
		case "go", "cd":
			if len(args) != 1 {
				sh.report(ctx, errUsage("go <path>"))
				continue
			}
			sh.report(ctx, sh.Go(ctx, args[0]))
		case "back":
			sh.report(ctx, sh.Back(ctx))
		case "refresh", "r":
			sh.report(ctx, sh.Refresh(ctx))
		case "filter", "f":
			sh.report(ctx, sh.Filter(ctx, args))
		case "page", "p":
			if len(args) != 1 {
				sh.report(ctx, errUsage("page <n>|next|prev"))
				continue
			}
			sh.report(ctx, sh.Page(ctx, args[0]))
		case "next", "prev":
			sh.report(ctx, sh.Page(ctx, cmd))
		case "logout":
			sh.report(ctx, sh.Logout(ctx))
		case "exit", "quit", "q":
			fmt.Fprintln(out, "Bye!")
			return false
		default:
			if strings.HasPrefix(cmd, "/") {
				sh.report(ctx, sh.Go(ctx, cmd))
				continue
			}
			sh.report(ctx, fmt.Errorf("%w %q, type 'help'", errUnknownCmd, cmd))
		}

		if sh.Reloading() {
			return true
		}
	}
}
