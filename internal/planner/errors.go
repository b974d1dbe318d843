package planner

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrBaseURLRequired = errors.New("planner: base url is required")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("planner: %s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}
