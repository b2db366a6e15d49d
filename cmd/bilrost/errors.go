package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// UnknownCommandError is returned when the first argument names no command.
type UnknownCommandError struct {
	Args []string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command: " + strings.Join(e.Args, " ")
}

// reportError prints err for the user and returns the process exit code.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 1
	}
	var unknown *UnknownCommandError
	if errors.As(err, &unknown) {
		fmt.Fprintln(w, unknown.Error())
		fmt.Fprintln(w, "Use `bilrost help`")
		return 1
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
