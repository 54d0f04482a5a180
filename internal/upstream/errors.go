package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned when an upstream catalog API responds with a non-2xx
// status. It carries the upstream status and body so callers can surface
// them without retrying here.
type Error struct {
	Source string
	Status int
	Body   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s request failed: HTTP %d: %s", e.Source, e.Status, e.Body)
}

// IsNotFound reports whether the error represents an upstream 404, which is
// signalled distinctly from generic upstream failure so callers can render a
// not-found response.
func IsNotFound(err error) bool {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Status == http.StatusNotFound
	}
	return false
}
