package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx response. Field is set when the backend names the
// offending form field.
type APIError struct {
	Status  int
	Field   string
	Message string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Is matches the sentinel that corresponds to the status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnavailable:
		return e.Status == http.StatusBadGateway ||
			e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	}
	return false
}

// IsValidation reports whether err is a 4xx the user can fix by changing
// their input.
func IsValidation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}
	return false
}

// decodeError builds an APIError from a response body. The backend answers
// with {"error": msg}, {"message": msg}, a bare JSON string, or a
// field-to-message object from its validator.
func decodeError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		e.Message = s
		return e.withDefault()
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"error", "message"} {
			if msg, ok := obj[key].(string); ok {
				e.Message = msg
				return e.withDefault()
			}
		}
		fields := make([]string, 0, len(obj))
		for k, v := range obj {
			if _, ok := v.(string); ok {
				fields = append(fields, k)
			}
		}
		if len(fields) > 0 {
			sort.Strings(fields)
			e.Field = fields[0]
			e.Message = obj[fields[0]].(string)
			return e
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") && len(text) < 200 {
		e.Message = text
	}
	return e.withDefault()
}

func (e *APIError) withDefault() *APIError {
	if e.Message == "" {
		e.Message = strings.ToLower(http.StatusText(e.Status))
	}
	return e
}
