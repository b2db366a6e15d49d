package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"bilrost/internal/backend"
	"bilrost/internal/supervisor"
)

func TestNoCommandPrintsHelp(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, code := runCLI(t, env, "")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	requireContains(t, stdout, "Bilrost CLI v")
	requireContains(t, stdout, "Version Control Commands:")
	if env.sup.calls != 0 {
		t.Fatal("help must not supervise the service")
	}
}

func TestUnknownCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	_, stderr, code := runCLI(t, env, "", "bogus-cmd", "x")
	if code == 0 {
		t.Fatal("expected non-zero exit for unknown command")
	}
	requireContains(t, stderr, "Unknown command: bogus-cmd x")
	requireContains(t, stderr, "Use `bilrost help`")
	if env.sup.calls != 0 || len(env.actions.Calls) != 0 {
		t.Fatal("unknown command must not reach the service")
	}
}

func TestHelpCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, code := runCLI(t, env, "", "help", "push")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	requireContains(t, stdout, "push <commit_comment>")

	_, stderr, code := runCLI(t, env, "", "help", "nope")
	if code != 1 {
		t.Fatalf("expected exit 1 for unknown help topic, got %d", code)
	}
	requireContains(t, stderr, "Unknown command: nope")
	if env.sup.calls != 0 {
		t.Fatal("help must not supervise the service")
	}
}

func TestAliasDispatch(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, stderr, code := runCLI(t, env, "", "ls-stage"); code != 0 {
		t.Fatalf("ls-stage failed: %s", stderr)
	}
	requireCall(t, env.actions, "ListStage", "game")
}

func TestActionRunsUnderSupervisor(t *testing.T) {
	env := setupCLITestEnv(t)
	env.actions.Results["Whoami"] = map[string]any{"user": "ada"}

	stdout, stderr, code := runCLI(t, env, "", "whoami")
	if code != 0 {
		t.Fatalf("whoami failed: %s", stderr)
	}
	if env.sup.calls != 1 {
		t.Fatalf("expected one supervision, got %d", env.sup.calls)
	}
	requireContains(t, stdout, `"user": "ada"`)
}

func TestSpawnFailureSkipsAction(t *testing.T) {
	env := setupCLITestEnv(t)
	env.sup.err = &supervisor.SpawnError{Addr: "127.0.0.1:9224", Err: errors.New("exec: not found")}

	_, stderr, code := runCLI(t, env, "", "whoami")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	requireContains(t, stderr, "error: start bilrost service at 127.0.0.1:9224")
	if len(env.actions.Calls) != 0 {
		t.Fatalf("action must not run, got %v", env.actions.Methods())
	}
}

func TestWorkspaceResolution(t *testing.T) {
	tests := []struct {
		name   string
		cwd    func(env *cliTestEnv) string
		args   []string
		wantID string
	}{
		{
			name:   "located from working directory",
			cwd:    func(env *cliTestEnv) string { return filepath.Join(env.workspaceDir, "assets", "props") },
			args:   []string{"subscribe", "props/chair"},
			wantID: "game",
		},
		{
			name:   "explicit identifier bypasses locator",
			cwd:    func(env *cliTestEnv) string { return env.baseDir },
			args:   []string{"subscribe", "props/chair", "-i", "other"},
			wantID: "other",
		},
		{
			name:   "pwd flag resolved against cwd",
			cwd:    func(env *cliTestEnv) string { return env.baseDir },
			args:   []string{"-P", "game/assets", "subscribe", "props/chair"},
			wantID: "game",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := setupCLITestEnv(t)
			env.cwd = tc.cwd(env)
			if _, stderr, code := runCLI(t, env, "", tc.args...); code != 0 {
				t.Fatalf("exit %d: %s", code, stderr)
			}
			requireCall(t, env.actions, "Subscribe", tc.wantID, backend.SubscriptionAsset, "/assets/props/chair")
		})
	}
}

func TestWorkspaceNotFound(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cwd = env.baseDir
	_, stderr, code := runCLI(t, env, "", "list-stage")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	requireContains(t, stderr, "error: no registered workspace contains")
	if len(env.actions.Calls) != 0 {
		t.Fatalf("backend must not be called, got %v", env.actions.Methods())
	}
}

func TestDestructiveConfirmation(t *testing.T) {
	tests := []struct {
		name   string
		stdin  string
		args   []string
		method string
		called bool
	}{
		{"reset accepted", "y\n", []string{"reset-workspace"}, "ResetWorkspace", true},
		{"reset declined", "n\n", []string{"reset-workspace"}, "ResetWorkspace", false},
		{"reset yes is not y", "yes\n", []string{"reset-workspace"}, "ResetWorkspace", false},
		{"reset forced", "", []string{"reset-workspace", "--force"}, "ResetWorkspace", true},
		{"change branch declined on eof", "", []string{"change-branch", "dev"}, "ChangeBranch", false},
		{"change branch accepted", "y\n", []string{"change-branch", "dev"}, "ChangeBranch", true},
		{"change branch forced", "", []string{"change-branch", "dev", "-f"}, "ChangeBranch", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := setupCLITestEnv(t)
			stdout, stderr, code := runCLI(t, env, tc.stdin, tc.args...)
			if code != 0 {
				t.Fatalf("expected exit 0, got %d: %s", code, stderr)
			}
			_, called := env.actions.Last(tc.method)
			if called != tc.called {
				t.Fatalf("%s called = %v, want %v (calls %v)", tc.method, called, tc.called, env.actions.Methods())
			}
			prompted := strings.Contains(stdout, "Are you sure")
			forced := tc.stdin == "" && tc.called
			if prompted == forced {
				t.Fatalf("prompted = %v for args %v", prompted, tc.args)
			}
		})
	}
}

func TestResetWorkspaceSilent(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cwd = env.baseDir
	_, stderr, code := runCLI(t, env, "", "reset-workspace", "elsewhere", "--force", "--silent")
	if code != 0 {
		t.Fatalf("silent reset outside a workspace should succeed, got %d: %s", code, stderr)
	}
	if len(env.actions.Calls) != 0 {
		t.Fatalf("no backend call expected, got %v", env.actions.Methods())
	}

	_, _, code = runCLI(t, env, "", "reset-workspace", "elsewhere", "--force")
	if code != 1 {
		t.Fatalf("expected failure without --silent, got %d", code)
	}
}

func TestUpdateAssetResolvesReferences(t *testing.T) {
	env := setupCLITestEnv(t)
	_, stderr, code := runCLI(t, env, "", "update-asset", "duck",
		"--main", "duck/duck.fbx", "--add", `duck\a.png,/resources/b.png`, "--comment", "hi")
	if code != 0 {
		t.Fatalf("update-asset failed: %s", stderr)
	}
	call, _ := env.actions.Last("UpdateAsset")
	got := call.Args[2].(backend.AssetUpdate)
	want := backend.AssetUpdate{
		Main:    "/resources/duck/duck.fbx",
		Add:     []string{"/resources/duck/a.png", "/resources/b.png"},
		Comment: "hi",
	}
	if call.Args[1] != "/assets/duck" || !reflect.DeepEqual(got, want) {
		t.Fatalf("UpdateAsset(%v, %#v), want %#v", call.Args[1], got, want)
	}
}

func TestStatusReferenceIsResource(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, stderr, code := runCLI(t, env, "", "status", "-r", "tex.png"); code != 0 {
		t.Fatalf("status failed: %s", stderr)
	}
	requireCall(t, env.actions, "Status", "game", "/resources/tex.png")
}

func TestCreateAssetWithDefinition(t *testing.T) {
	env := setupCLITestEnv(t)
	defPath := filepath.Join(env.workspaceDir, "duck.yaml")
	if err := os.WriteFile(defPath, []byte("main: duck.fbx\ndependencies: [a.png]\n"), 0o644); err != nil {
		t.Fatalf("write definition: %v", err)
	}
	if _, stderr, code := runCLI(t, env, "", "create-asset", "duck", "-p", "duck.yaml"); code != 0 {
		t.Fatalf("create-asset failed: %s", stderr)
	}
	call, _ := env.actions.Last("CreateAsset")
	def := call.Args[2].(backend.AssetDefinition)
	if def.Main != "/resources/duck.fbx" || !reflect.DeepEqual(def.Dependencies, []string{"/resources/a.png"}) {
		t.Fatalf("unexpected definition %#v", def)
	}
}

func TestRemoteErrorPassThrough(t *testing.T) {
	env := setupCLITestEnv(t)
	env.actions.Errors["Push"] = &backend.RemoteError{Method: "POST", Path: "/vcs/workspaces/game/commits", Status: http.StatusConflict, Message: "nothing staged"}
	_, stderr, code := runCLI(t, env, "", "push", "first commit")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	requireContains(t, stderr, "error: POST /vcs/workspaces/game/commits: 409 nothing staged")
	requireCall(t, env.actions, "Push", "game", "first commit")
}

func TestOutputRedirect(t *testing.T) {
	env := setupCLITestEnv(t)
	env.actions.Results["GetConfigs"] = map[string]any{"editor": "vim"}
	base := filepath.Join(env.baseDir, "run")

	stdout, _, code := runCLI(t, env, "", "-O", base, "get-configs")
	if code != 0 {
		t.Fatalf("get-configs failed with %d", code)
	}
	if stdout != "" {
		t.Fatalf("stdout should be empty when redirected, got %q", stdout)
	}
	data, err := os.ReadFile(base + ".log")
	if err != nil {
		t.Fatalf("read redirect log: %v", err)
	}
	requireContains(t, string(data), `\"editor\": \"vim\"`)
}

func TestFavoritesCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cwd = env.baseDir
	if err := os.MkdirAll(filepath.Join(env.baseDir, "tools"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if _, stderr, code := runCLI(t, env, "", "bookmark", "tools", "tools"); code != 0 {
		t.Fatalf("add-workspace failed: %s", stderr)
	}
	stdout, _, code := runCLI(t, env, "", "list-workspaces")
	if code != 0 {
		t.Fatalf("list-workspaces failed with %d", code)
	}
	requireContains(t, stdout, "tools")
	requireContains(t, stdout, "game")

	if _, stderr, code := runCLI(t, env, "", "forget-workspace", "tools"); code != 0 {
		t.Fatalf("forget-workspace failed: %s", stderr)
	}
	stdout, _, _ = runCLI(t, env, "", "forget-workspaces")
	requireContains(t, stdout, "1 workspace(s) forgotten")
}

func TestCommandTableIsValid(t *testing.T) {
	if err := validateSpecs(commandTable()); err != nil {
		t.Fatalf("command table invalid: %v", err)
	}
}

func TestEveryCommandMergesGlobalFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	app := newCommandContext(env.deps(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	root, err := newRootCommand(app)
	if err != nil {
		t.Fatalf("newRootCommand: %v", err)
	}
	root.InitDefaultHelpCmd()
	for _, cmd := range root.Commands() {
		t.Run(cmd.Name(), func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("merging flags panicked: %v", r)
				}
			}()
			// InheritedFlags merges the root persistent flags into cmd.Flags().
			_ = cmd.InheritedFlags()
			if cmd.Flags().Lookup("config") == nil {
				t.Fatal("expected --config to be inherited")
			}
		})
	}
}

func TestEveryCommandHelp(t *testing.T) {
	for _, spec := range commandTable() {
		t.Run(spec.name, func(t *testing.T) {
			env := setupCLITestEnv(t)
			stdout, stderr, code := runCLI(t, env, "", spec.name, "--help")
			if code != 0 {
				t.Fatalf("%s --help exit %d: %s", spec.name, code, stderr)
			}
			requireContains(t, stdout, spec.name)
			if len(env.actions.Calls) != 0 {
				t.Fatalf("--help must not call the service, got %v", env.actions.Methods())
			}
		})
	}
}

func TestUpdateAssetComment(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, stderr, code := runCLI(t, env, "", "update-asset", "duck", "-c", "hi"); code != 0 {
		t.Fatalf("update-asset -c failed: %s", stderr)
	}
	call, _ := env.actions.Last("UpdateAsset")
	if got := call.Args[2].(backend.AssetUpdate); got.Comment != "hi" {
		t.Fatalf("expected comment from -c, got %#v", got)
	}
}

func TestValidateSpecsRejectsDuplicates(t *testing.T) {
	noop := func() commandSpec { return helpCommand() }
	tests := []struct {
		name  string
		specs []commandSpec
	}{
		{"duplicate name", []commandSpec{
			{name: "stage", run: noop().run},
			{name: "stage", run: noop().run},
		}},
		{"alias collides with name", []commandSpec{
			{name: "list-stage", run: noop().run},
			{name: "ls-stage", aliases: []string{"list-stage"}, run: noop().run},
		}},
		{"duplicate alias", []commandSpec{
			{name: "a", aliases: []string{"x"}, run: noop().run},
			{name: "b", aliases: []string{"x"}, run: noop().run},
		}},
		{"duplicate option shorthand", []commandSpec{
			{name: "a", run: noop().run, options: []optionSpec{identifierOption, {name: "ident", short: "i"}}},
		}},
		{"option reuses a global shorthand", []commandSpec{
			{name: "a", run: noop().run, options: []optionSpec{{name: "pattern", short: "P"}}},
		}},
		{"option reuses a global name", []commandSpec{
			{name: "a", run: noop().run, options: []optionSpec{{name: "output", short: "o"}}},
		}},
		{"option reuses the help shorthand", []commandSpec{
			{name: "a", run: noop().run, options: []optionSpec{{name: "hidden", short: "h"}}},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateSpecs(tc.specs); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCommandDispatch(t *testing.T) {
	tests := []struct {
		args   []string
		method string
		want   []any
	}{
		{[]string{"login"}, "Login", nil},
		{[]string{"session", "tok"}, "Session", []any{"tok"}},
		{[]string{"list-assets", "levels"}, "ListAssets", []any{"game", "/assets/levels", false}},
		{[]string{"ls-assets", "-v", "-i", "other"}, "ListAssets", []any{"other", "", true}},
		{[]string{"rename-asset", "a", "b"}, "RenameAsset", []any{"game", "/assets/a", "/assets/b"}},
		{[]string{"delete-asset", "/assets/a"}, "DeleteAsset", []any{"game", "/assets/a"}},
		{[]string{"list-resources", "tex", "-q", "png"}, "ListResources", []any{"game", "/resources/tex", "png"}},
		{[]string{"list-subscriptions"}, "ListSubscriptions", []any{"game"}},
		{[]string{"subscribe", "duck"}, "Subscribe", []any{"game", backend.SubscriptionAsset, "/assets/duck"}},
		{[]string{"unsubscribe", "duck"}, "Unsubscribe", []any{"game", "/assets/duck"}},
		{[]string{"reset-subscriptions"}, "ResetSubscriptions", []any{"game"}},
		{[]string{"stage", "duck"}, "Stage", []any{"game", "/assets/duck"}},
		{[]string{"unstage", "duck"}, "Unstage", []any{"game", "/assets/duck"}},
		{[]string{"reset-stage"}, "ResetStage", []any{"game"}},
		{[]string{"ls-branches", "-v"}, "ListBranches", []any{"game", true}},
		{[]string{"current-branch"}, "CurrentBranch", []any{"game"}},
		{[]string{"create-branch", "feature"}, "CreateBranch", []any{"game", "feature"}},
		{[]string{"remove-branch", "feature"}, "RemoveBranch", []any{"game", "feature"}},
		{[]string{"get-config", "editor"}, "GetConfig", []any{"editor"}},
		{[]string{"set-config", "editor", "vim"}, "SetConfig", []any{"editor", "vim"}},
		{[]string{"del-config", "editor"}, "DelConfig", []any{"editor"}},
		{[]string{"logout"}, "Logout", nil},
	}
	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			env := setupCLITestEnv(t)
			if _, stderr, code := runCLI(t, env, "", tc.args...); code != 0 {
				t.Fatalf("exit %d: %s", code, stderr)
			}
			requireCall(t, env.actions, tc.method, tc.want...)
			if env.sup.calls != 1 {
				t.Fatalf("expected one supervision, got %d", env.sup.calls)
			}
		})
	}
}

func TestServiceOutputFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, stderr, code := runCLI(t, env, "", "-B", "current-branch"); code != 0 {
		t.Fatalf("current-branch failed: %s", stderr)
	}
	if !env.launch.Terminal {
		t.Fatal("expected -B to request terminal service output")
	}
}
