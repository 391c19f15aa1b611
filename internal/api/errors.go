package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated maps the server's 401 responses: the user must go
// through the login redirect before the call can succeed.
var ErrUnauthenticated = errors.New("not authenticated")

// Error carries a non-success response that is not an authentication
// problem. No retry is attempted for these.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}
