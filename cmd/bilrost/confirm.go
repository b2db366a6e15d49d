package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const destructivePrompt = "This will remove resources and subscription/stage lists.\n Are you sure this is what you want?\n input y/n to answer"

// confirm prints prompt and reads a single answer line. Only a literal "y"
// proceeds; end of input counts as "no".
func (c *commandContext) confirm(ctx context.Context, prompt string) (bool, error) {
	fmt.Fprintf(c.stdout, "? %s ", prompt)

	type answer struct {
		line string
		err  error
	}
	read := make(chan answer, 1)
	// On cancellation this reader stays blocked on stdin until the process exits.
	go func() {
		line, err := bufio.NewReader(c.stdin).ReadString('\n')
		read <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.stdout)
		return false, ctx.Err()
	case got := <-read:
		if got.err != nil && !errors.Is(got.err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", got.err)
		}
		if strings.TrimRight(got.line, "\r\n") != "y" {
			c.console.Info("Aborted")
			return false, nil
		}
		return true, nil
	}
}
