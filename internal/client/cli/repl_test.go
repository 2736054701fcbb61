package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls    []string
	reported []error
	reloadOn string
	reload   bool
	syncs    int
}

func (f *fakeExec) Prompt() string { return "tf> " }
func (f *fakeExec) Sync(ctx context.Context) {
	f.syncs++
}
func (f *fakeExec) Menu() { f.calls = append(f.calls, "menu") }
func (f *fakeExec) Go(ctx context.Context, path string) error {
	f.calls = append(f.calls, "go "+path)
	return nil
}
func (f *fakeExec) Back(ctx context.Context) error {
	f.calls = append(f.calls, "back")
	return nil
}
func (f *fakeExec) Refresh(ctx context.Context) error {
	f.calls = append(f.calls, "refresh")
	return errors.New("refresh failed")
}
func (f *fakeExec) Filter(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "filter "+strings.Join(args, " "))
	return nil
}
func (f *fakeExec) Page(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "page "+arg)
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	if f.reloadOn == "logout" {
		f.reload = true
	}
	return nil
}
func (f *fakeExec) Reloading() bool { return f.reload }
func (f *fakeExec) report(ctx context.Context, err error) {
	if err != nil {
		f.reported = append(f.reported, err)
	}
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := lines(
		"help",
		"",
		"menu",
		"go /posts/12",
		"/profile",
		"back",
		"filter type userFinding",
		"page 3",
		"next",
		"refresh",
		"go",
		"foobar",
		"exit",
		"menu",
	)

	ex := &fakeExec{}
	var out bytes.Buffer
	reload := runREPL(context.Background(), ex, rdr(input), &out)

	assert.False(t, reload)
	assert.Equal(t, []string{
		"menu",
		"go /posts/12",
		"go /profile",
		"back",
		"filter type userFinding",
		"page 3",
		"page next",
		"refresh",
	}, ex.calls)

	assert.Len(t, ex.reported, 3)
	assert.EqualError(t, ex.reported[0], "refresh failed")
	var uerr usageError
	assert.ErrorAs(t, ex.reported[1], &uerr)
	assert.ErrorIs(t, ex.reported[2], errUnknownCmd)

	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "Bye!")
	assert.GreaterOrEqual(t, ex.syncs, len(ex.calls))
}

func TestRunREPL_ReloadEndsLoop(t *testing.T) {
	ex := &fakeExec{reloadOn: "logout"}
	var out bytes.Buffer

	reload := runREPL(context.Background(), ex, rdr(lines("logout", "menu")), &out)

	assert.True(t, reload)
	assert.Equal(t, []string{"logout"}, ex.calls)
}

func TestRunREPL_EOFAndCancelledContext(t *testing.T) {
	ex := &fakeExec{}
	var out bytes.Buffer
	assert.False(t, runREPL(context.Background(), ex, rdr("menu"), &out))
	assert.Equal(t, []string{"menu"}, ex.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ex = &fakeExec{}
	assert.False(t, runREPL(ctx, ex, rdr(lines("menu")), &out))
	assert.Empty(t, ex.calls)
}
