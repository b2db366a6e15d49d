package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
)

// Console is the user facing output of a CLI invocation. Info lines go to
// stdout and warnings/errors to stderr, unless the console was redirected to
// a log file, in which case every line becomes a JSON log record there.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	colorize bool

	file   io.Closer
	logger *slog.Logger
	path   string
}

// NewConsole writes to the provided terminal streams.
func NewConsole(out, errOut io.Writer, colorize bool) *Console {
	return &Console{out: out, errOut: errOut, colorize: colorize}
}

// RedirectToFile sends all further console output to "<output>.log".
func (c *Console) RedirectToFile(output string) error {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}
	path := output + ".log"
	file, err := openLogFile(path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file != nil {
		_ = c.file.Close()
	}
	c.file = file
	c.path = path
	c.logger = slog.New(newJSONHandler(file, slog.LevelDebug, false))
	return nil
}

// Path returns the redirect file, or "" when writing to the terminal.
func (c *Console) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Out returns the writer for info-level output. When redirected, writes are
// logged line by line.
func (c *Console) Out() io.Writer {
	return consoleWriter{console: c, level: slog.LevelInfo}
}

// Info prints an informational line.
func (c *Console) Info(format string, args ...any) {
	c.emit(slog.LevelInfo, fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (c *Console) Warn(format string, args ...any) {
	c.emit(slog.LevelWarn, fmt.Sprintf(format, args...))
}

// Error prints an error line.
func (c *Console) Error(format string, args ...any) {
	c.emit(slog.LevelError, fmt.Sprintf(format, args...))
}

// Close releases the redirect file, if any.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	c.logger = nil
	return err
}

func (c *Console) emit(level slog.Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg = strings.TrimRight(msg, "\n")
	if c.logger != nil {
		c.logger.Log(context.Background(), level, msg)
		return
	}
	w := c.out
	color := ""
	switch {
	case level >= slog.LevelError:
		w, color = c.errOut, ansiRed
	case level >= slog.LevelWarn:
		w, color = c.errOut, ansiYellow
	}
	if c.colorize && color != "" {
		fmt.Fprintln(w, color+msg+ansiReset)
		return
	}
	fmt.Fprintln(w, msg)
}

type consoleWriter struct {
	console *Console
	level   slog.Level
}

func (w consoleWriter) Write(p []byte) (int, error) {
	w.console.emit(w.level, string(p))
	return len(p), nil
}
