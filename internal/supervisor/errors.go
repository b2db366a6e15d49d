package supervisor

import (
	"errors"
	"fmt"
)

// ErrSpawnFailure classifies every failure to bring the service up.
var ErrSpawnFailure = errors.New("service failed to start")

// SpawnError describes why the service could not be made reachable.
type SpawnError struct {
	Addr    string
	Timeout bool
	Err     error
}

func (e *SpawnError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("bilrost service at %s did not become reachable: %v", e.Addr, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("start bilrost service at %s: %v", e.Addr, e.Err)
	default:
		return fmt.Sprintf("start bilrost service at %s", e.Addr)
	}
}

func (e *SpawnError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSpawnFailure}
	}
	return []error{ErrSpawnFailure, e.Err}
}
