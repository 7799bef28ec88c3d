package restclient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// InvalidURLError is returned when the project endpoint cannot be used as a base URL.
type InvalidURLError string

func (e InvalidURLError) Error() string {
	return "invalid URL " + strconv.Quote(string(e)) + " in endpoint"
}

// HTTPError wraps transport failures (DNS, connection reset, timeouts).
type HTTPError string

func (e HTTPError) Error() string {
	return "http error " + strconv.Quote(string(e))
}

// APIError is the error body returned by the data API (PostgREST).
//
// Example body:
//
//	{"code":"42501","details":null,"hint":null,"message":"permission denied for table activity_logs"}
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %d: %s [code=%s]", e.Status, msg, e.Code)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

// AuthError is the error body returned by the auth server. Older servers use
// error/error_description, newer ones error_code/msg.
type AuthError struct {
	Status      int    `json:"-"`
	Code        string `json:"error_code"`
	Msg         string `json:"msg"`
	LegacyError string `json:"error"`
	Description string `json:"error_description"`
}

func (e *AuthError) Error() string {
	code := e.Code
	if code == "" {
		code = e.LegacyError
	}
	msg := e.Msg
	if msg == "" {
		msg = e.Description
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if code != "" {
		return fmt.Sprintf("auth error %d: %s [code=%s]", e.Status, msg, code)
	}
	return fmt.Sprintf("auth error %d: %s", e.Status, msg)
}

// IsPermissionError reports whether err was caused by the backend refusing
// access: missing grants, a row-level security policy, or a rejected JWT.
func IsPermissionError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "42501", "PGRST301", "PGRST302":
			return true
		}
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Status == http.StatusUnauthorized || authErr.Status == http.StatusForbidden
	}
	return false
}

// IsNotFoundError reports whether err says the requested table does not exist.
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "42P01", "PGRST205", "PGRST200":
			return true
		}
		return apiErr.Status == http.StatusNotFound
	}
	return false
}
