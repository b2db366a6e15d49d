package logging_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bilrost/internal/logging"
)

func TestConsoleRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	console := logging.NewConsole(&out, &errOut, false)

	console.Info("listed %d workspaces", 2)
	console.Warn("careful")
	console.Error("failed: %s", "nope")

	if out.String() != "listed 2 workspaces\n" {
		t.Fatalf("unexpected stdout %q", out.String())
	}
	if errOut.String() != "careful\nfailed: nope\n" {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestConsoleColorizesErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	console := logging.NewConsole(&out, &errOut, true)
	console.Error("bad")
	console.Info("plain")
	if !strings.Contains(errOut.String(), "\x1b[31mbad") {
		t.Fatalf("expected red error, got %q", errOut.String())
	}
	if out.String() != "plain\n" {
		t.Fatalf("info should not be colorized, got %q", out.String())
	}
}

func TestConsoleRedirectToFile(t *testing.T) {
	var out, errOut bytes.Buffer
	console := logging.NewConsole(&out, &errOut, false)
	base := filepath.Join(t.TempDir(), "run")

	if err := console.RedirectToFile(base); err != nil {
		t.Fatalf("RedirectToFile: %v", err)
	}
	if console.Path() != base+".log" {
		t.Fatalf("unexpected path %q", console.Path())
	}
	console.Info("hello")
	fmt.Fprint(console.Out(), "{\"ok\":true}\n")
	console.Error("oops")
	if err := console.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if out.Len() != 0 || errOut.Len() != 0 {
		t.Fatalf("terminal should stay silent, got %q / %q", out.String(), errOut.String())
	}
	data, err := os.ReadFile(base + ".log")
	if err != nil {
		t.Fatalf("read redirect file: %v", err)
	}
	content := string(data)
	for _, want := range []string{`"msg":"hello"`, `"level":"error"`, `"msg":"oops"`, `{\"ok\":true}`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestConsoleRedirectEmptyIsNoop(t *testing.T) {
	var out bytes.Buffer
	console := logging.NewConsole(&out, &out, false)
	if err := console.RedirectToFile("  "); err != nil {
		t.Fatalf("RedirectToFile: %v", err)
	}
	console.Info("x")
	if out.String() != "x\n" || console.Path() != "" {
		t.Fatalf("unexpected state %q %q", out.String(), console.Path())
	}
}
