package backend

import "context"

// WorkspaceInput is the create-workspace payload.
type WorkspaceInput struct {
	Path         string `json:"path"`
	Organization string `json:"organization"`
	ProjectName  string `json:"project_name"`
	Branch       string `json:"branch"`
	Description  string `json:"description,omitempty"`
	FromRepo     bool   `json:"from_repo"`
}

// AssetDefinition is the body of a newly created asset.
type AssetDefinition struct {
	Main         string   `json:"main,omitempty" yaml:"main"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies"`
	Tags         []string `json:"tags,omitempty" yaml:"tags"`
	Comment      string   `json:"comment,omitempty" yaml:"comment"`
	Semantics    []string `json:"semantics,omitempty" yaml:"semantics"`
}

// AssetUpdate describes an update-asset request. Empty fields are left
// untouched by the service.
type AssetUpdate struct {
	Main    string   `json:"main,omitempty"`
	Add     []string `json:"add,omitempty"`
	Remove  []string `json:"remove,omitempty"`
	Comment string   `json:"comment,omitempty"`
}

// SubscriptionAsset is the only subscription kind the CLI creates.
const SubscriptionAsset = "ASSET"

// Actions is every remote operation the CLI can dispatch. Results are
// decoded JSON values (nil when the service returns no body).
type Actions interface {
	Whoami(ctx context.Context) (any, error)
	Login(ctx context.Context) (any, error)
	Session(ctx context.Context, token string) (any, error)
	Logout(ctx context.Context) (any, error)

	ListWorkspaces(ctx context.Context, identifier string, verbose bool) (any, error)
	CreateWorkspace(ctx context.Context, input WorkspaceInput) (any, error)
	ResetWorkspace(ctx context.Context, identifier string) (any, error)
	DeleteWorkspace(ctx context.Context, identifier string) (any, error)

	ListAssets(ctx context.Context, identifier, ref string, verbose bool) (any, error)
	GetAsset(ctx context.Context, identifier, ref string) (any, error)
	CreateAsset(ctx context.Context, identifier, ref string, def AssetDefinition) (any, error)
	RenameAsset(ctx context.Context, identifier, ref, newRef string) (any, error)
	UpdateAsset(ctx context.Context, identifier, ref string, update AssetUpdate) (any, error)
	DeleteAsset(ctx context.Context, identifier, ref string) (any, error)
	ListResources(ctx context.Context, identifier, ref, query string) (any, error)

	ListSubscriptions(ctx context.Context, identifier string) (any, error)
	Subscribe(ctx context.Context, identifier, kind, ref string) (any, error)
	Unsubscribe(ctx context.Context, identifier, ref string) (any, error)
	ResetSubscriptions(ctx context.Context, identifier string) (any, error)

	ListStage(ctx context.Context, identifier string) (any, error)
	Stage(ctx context.Context, identifier, ref string) (any, error)
	Unstage(ctx context.Context, identifier, ref string) (any, error)
	ResetStage(ctx context.Context, identifier string) (any, error)
	Status(ctx context.Context, identifier, ref string) (any, error)
	Push(ctx context.Context, identifier, comment string) (any, error)

	ListBranches(ctx context.Context, identifier string, verbose bool) (any, error)
	CurrentBranch(ctx context.Context, identifier string) (any, error)
	CreateBranch(ctx context.Context, identifier, name string) (any, error)
	ChangeBranch(ctx context.Context, identifier, name string) (any, error)
	RemoveBranch(ctx context.Context, identifier, name string) (any, error)

	GetConfig(ctx context.Context, name string) (any, error)
	GetConfigs(ctx context.Context) (any, error)
	SetConfig(ctx context.Context, name, value string) (any, error)
	DelConfig(ctx context.Context, name string) (any, error)
}
