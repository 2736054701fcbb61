package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/validation"
)

var (
	errNoList       = errors.New("this page has no list; try 'go /' or 'go /posts/my'")
	errUnknownSkill = errors.New("unknown skill")
	errUnknownCmd   = errors.New("unknown command")
)

type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

func errUsage(s string) error { return usageError(s) }

// userMessage turns err into the text shown inline in the current view.
func userMessage(err error) string {
	var verr validation.Errors
	var apiErr *client.APIError
	var uerr usageError

	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &uerr):
		return uerr.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled."
	case errors.Is(err, io.EOF):
		return "Input closed."
	case errors.Is(err, client.ErrUnavailable):
		return "The server is unavailable. Try again later."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case client.IsValidation(err) && errors.As(err, &apiErr):
		if apiErr.Message == "" {
			return "The form was rejected. Check your input and try again."
		}
		return apiErr.Error()
	case errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, client.ErrForbidden):
		return "You are not allowed to do that."
	case errors.Is(err, client.ErrNotFound):
		return "Not found."
	case errors.As(err, &apiErr):
		return "An error occurred."
	default:
		return err.Error()
	}
}

// report shows err in the current view. A 401 on an authenticated request
// means the session is gone; the state drops to anonymous and the next
// Sync moves the user off any view that requires login.
func (sh *Shell) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, client.ErrUnauthorized) && sh.resolver.State() == auth.Authenticated {
		sh.resolver.Expire(ctx)
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError {
		sh.app.logger.Error(ctx, "backend error", "status", apiErr.Status, "error", err)
	} else {
		sh.app.logger.Debug(ctx, "command failed", "error", err)
	}
	fmt.Fprintln(sh.app.out, "Error: "+userMessage(err))
}
