package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is a non-2xx reply from the service.
type RemoteError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// IsNotFound reports whether err is a 404 reply from the service.
func IsNotFound(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Status == http.StatusNotFound
}
