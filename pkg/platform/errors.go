package platform

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError carries the HTTP status of a failed platform call so callers can
// tell "no such cart" apart from a genuine failure.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("platform returned %d for %s", e.Status, e.Path)
	}
	return fmt.Sprintf("platform returned %d for %s: %s", e.Status, e.Path, e.Body)
}

// IsNotFound reports whether err is a platform 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsAuthError reports whether err is a platform 401 or 403.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}
