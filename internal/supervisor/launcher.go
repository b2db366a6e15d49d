package supervisor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

// ExecLauncher starts the service command in its own session and releases it.
type ExecLauncher struct {
	Command string
	Args    []string
	// LogPath receives the service output. Empty means the terminal.
	LogPath string
	Stdout  io.Writer
	Stderr  io.Writer
}

func (l *ExecLauncher) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	command := strings.TrimSpace(l.Command)
	if command == "" {
		return fmt.Errorf("resolve service command: command is empty")
	}
	executable, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("resolve service command %q: %w", command, err)
	}

	// The service must outlive this invocation, so the command is not bound
	// to the caller's context.
	proc := exec.Command(executable, l.Args...)
	proc.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if l.LogPath != "" {
		logFile, err := openServiceLog(l.LogPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		proc.Stdout = logFile
		proc.Stderr = logFile
	} else {
		proc.Stdout = writerOr(l.Stdout, os.Stdout)
		proc.Stderr = writerOr(l.Stderr, os.Stderr)
	}

	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch service: %w", err)
	}
	return proc.Process.Release()
}

func openServiceLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create service log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open service log %s: %w", path, err)
	}
	return file, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
