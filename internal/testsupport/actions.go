package testsupport

import (
	"context"
	"sync"

	"bilrost/internal/backend"
)

// Call is one recorded FakeActions invocation.
type Call struct {
	Method string
	Args   []any
}

// FakeActions records every call and answers from Results/Errors keyed by
// method name.
type FakeActions struct {
	mu      sync.Mutex
	Calls   []Call
	Results map[string]any
	Errors  map[string]error
}

var _ backend.Actions = (*FakeActions)(nil)

// NewFakeActions returns an empty fake.
func NewFakeActions() *FakeActions {
	return &FakeActions{Results: map[string]any{}, Errors: map[string]error{}}
}

// Methods lists the recorded method names in call order.
func (f *FakeActions) Methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.Calls))
	for i, call := range f.Calls {
		names[i] = call.Method
	}
	return names
}

// Last returns the most recent call to method.
func (f *FakeActions) Last(method string) (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Calls) - 1; i >= 0; i-- {
		if f.Calls[i].Method == method {
			return f.Calls[i], true
		}
	}
	return Call{}, false
}

func (f *FakeActions) record(method string, args ...any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Method: method, Args: args})
	return f.Results[method], f.Errors[method]
}

func (f *FakeActions) Whoami(context.Context) (any, error) { return f.record("Whoami") }
func (f *FakeActions) Login(context.Context) (any, error)  { return f.record("Login") }
func (f *FakeActions) Logout(context.Context) (any, error) { return f.record("Logout") }
func (f *FakeActions) Session(_ context.Context, token string) (any, error) {
	return f.record("Session", token)
}

func (f *FakeActions) ListWorkspaces(_ context.Context, identifier string, verbose bool) (any, error) {
	return f.record("ListWorkspaces", identifier, verbose)
}

func (f *FakeActions) CreateWorkspace(_ context.Context, input backend.WorkspaceInput) (any, error) {
	return f.record("CreateWorkspace", input)
}

func (f *FakeActions) ResetWorkspace(_ context.Context, identifier string) (any, error) {
	return f.record("ResetWorkspace", identifier)
}

func (f *FakeActions) DeleteWorkspace(_ context.Context, identifier string) (any, error) {
	return f.record("DeleteWorkspace", identifier)
}

func (f *FakeActions) ListAssets(_ context.Context, identifier, ref string, verbose bool) (any, error) {
	return f.record("ListAssets", identifier, ref, verbose)
}

func (f *FakeActions) GetAsset(_ context.Context, identifier, ref string) (any, error) {
	return f.record("GetAsset", identifier, ref)
}

func (f *FakeActions) CreateAsset(_ context.Context, identifier, ref string, def backend.AssetDefinition) (any, error) {
	return f.record("CreateAsset", identifier, ref, def)
}

func (f *FakeActions) RenameAsset(_ context.Context, identifier, ref, newRef string) (any, error) {
	return f.record("RenameAsset", identifier, ref, newRef)
}

func (f *FakeActions) UpdateAsset(_ context.Context, identifier, ref string, update backend.AssetUpdate) (any, error) {
	return f.record("UpdateAsset", identifier, ref, update)
}

func (f *FakeActions) DeleteAsset(_ context.Context, identifier, ref string) (any, error) {
	return f.record("DeleteAsset", identifier, ref)
}

func (f *FakeActions) ListResources(_ context.Context, identifier, ref, query string) (any, error) {
	return f.record("ListResources", identifier, ref, query)
}

func (f *FakeActions) ListSubscriptions(_ context.Context, identifier string) (any, error) {
	return f.record("ListSubscriptions", identifier)
}

func (f *FakeActions) Subscribe(_ context.Context, identifier, kind, ref string) (any, error) {
	return f.record("Subscribe", identifier, kind, ref)
}

func (f *FakeActions) Unsubscribe(_ context.Context, identifier, ref string) (any, error) {
	return f.record("Unsubscribe", identifier, ref)
}

func (f *FakeActions) ResetSubscriptions(_ context.Context, identifier string) (any, error) {
	return f.record("ResetSubscriptions", identifier)
}

func (f *FakeActions) ListStage(_ context.Context, identifier string) (any, error) {
	return f.record("ListStage", identifier)
}

func (f *FakeActions) Stage(_ context.Context, identifier, ref string) (any, error) {
	return f.record("Stage", identifier, ref)
}

func (f *FakeActions) Unstage(_ context.Context, identifier, ref string) (any, error) {
	return f.record("Unstage", identifier, ref)
}

func (f *FakeActions) ResetStage(_ context.Context, identifier string) (any, error) {
	return f.record("ResetStage", identifier)
}

func (f *FakeActions) Status(_ context.Context, identifier, ref string) (any, error) {
	return f.record("Status", identifier, ref)
}

func (f *FakeActions) Push(_ context.Context, identifier, comment string) (any, error) {
	return f.record("Push", identifier, comment)
}

func (f *FakeActions) ListBranches(_ context.Context, identifier string, verbose bool) (any, error) {
	return f.record("ListBranches", identifier, verbose)
}

func (f *FakeActions) CurrentBranch(_ context.Context, identifier string) (any, error) {
	return f.record("CurrentBranch", identifier)
}

func (f *FakeActions) CreateBranch(_ context.Context, identifier, name string) (any, error) {
	return f.record("CreateBranch", identifier, name)
}

func (f *FakeActions) ChangeBranch(_ context.Context, identifier, name string) (any, error) {
	return f.record("ChangeBranch", identifier, name)
}

func (f *FakeActions) RemoveBranch(_ context.Context, identifier, name string) (any, error) {
	return f.record("RemoveBranch", identifier, name)
}

func (f *FakeActions) GetConfig(_ context.Context, name string) (any, error) {
	return f.record("GetConfig", name)
}

func (f *FakeActions) GetConfigs(context.Context) (any, error) { return f.record("GetConfigs") }

func (f *FakeActions) SetConfig(_ context.Context, name, value string) (any, error) {
	return f.record("SetConfig", name, value)
}

func (f *FakeActions) DelConfig(_ context.Context, name string) (any, error) {
	return f.record("DelConfig", name)
}
