package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"bilrost/internal/config"
	"bilrost/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 * 1024
)

// Client implements Actions against the service HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Actions = (*Client)(nil)

// NewClient creates a client for baseURL (for example http://127.0.0.1:9224).
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger(logger, "backend"),
	}
}

// NewFromConfig creates a client for the configured service address.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	return NewClient(cfg.BackendURL(), cfg.RequestTimeout(), logger)
}

func (c *Client) Whoami(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodGet, "/auth/whoami", nil, nil)
}

func (c *Client) Login(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodPost, "/auth/login", nil, nil)
}

func (c *Client) Session(ctx context.Context, token string) (any, error) {
	return c.do(ctx, http.MethodPost, "/auth/session", nil, map[string]string{"token": token})
}

func (c *Client) Logout(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) ListWorkspaces(ctx context.Context, identifier string, verbose bool) (any, error) {
	p := "/contentbrowser/workspaces/"
	if identifier != "" {
		p += url.PathEscape(identifier)
	}
	return c.do(ctx, http.MethodGet, p, verboseQuery(verbose), nil)
}

func (c *Client) CreateWorkspace(ctx context.Context, input WorkspaceInput) (any, error) {
	return c.do(ctx, http.MethodPost, "/assetmanager/workspaces", nil, input)
}

func (c *Client) ResetWorkspace(ctx context.Context, identifier string) (any, error) {
	return c.do(ctx, http.MethodPost, amWorkspace(identifier)+"/reset", nil, nil)
}

func (c *Client) DeleteWorkspace(ctx context.Context, identifier string) (any, error) {
	return c.do(ctx, http.MethodDelete, amWorkspace(identifier), nil, nil)
}

func (c *Client) ListAssets(ctx context.Context, identifier, ref string, verbose bool) (any, error) {
	if ref == "" {
		ref = "/assets/"
	}
	return c.do(ctx, http.MethodGet, cbWorkspace(identifier)+escapeRef(ref), verboseQuery(verbose), nil)
}

func (c *Client) GetAsset(ctx context.Context, identifier, ref string) (any, error) {
	return c.do(ctx, http.MethodGet, cbWorkspace(identifier)+escapeRef(ref), nil, nil)
}

func (c *Client) CreateAsset(ctx context.Context, identifier, ref string, def AssetDefinition) (any, error) {
	return c.do(ctx, http.MethodPut, amWorkspace(identifier)+escapeRef(ref), nil, def)
}

func (c *Client) RenameAsset(ctx context.Context, identifier, ref, newRef string) (any, error) {
	return c.do(ctx, http.MethodPost, amWorkspace(identifier)+"/rename"+escapeRef(ref), nil, map[string]string{"new": newRef})
}

func (c *Client) UpdateAsset(ctx context.Context, identifier, ref string, update AssetUpdate) (any, error) {
	return c.do(ctx, http.MethodPatch, amWorkspace(identifier)+escapeRef(ref), nil, update)
}

func (c *Client) DeleteAsset(ctx context.Context, identifier, ref string) (any, error) {
	return c.do(ctx, http.MethodDelete, amWorkspace(identifier)+escapeRef(ref), nil, nil)
}

func (c *Client) ListResources(ctx context.Context, identifier, ref, query string) (any, error) {
	if ref == "" {
		ref = "/resources/"
	}
	var q url.Values
	if query != "" {
		q = url.Values{"q": {query}}
	}
	return c.do(ctx, http.MethodGet, cbWorkspace(identifier)+escapeRef(ref), q, nil)
}

func (c *Client) ListSubscriptions(ctx context.Context, identifier string) (any, error) {
	return c.do(ctx, http.MethodGet, vcsWorkspace(identifier)+"/subscriptions", nil, nil)
}

func (c *Client) Subscribe(ctx context.Context, identifier, kind, ref string) (any, error) {
	body := map[string]string{"type": kind, "descriptor": ref}
	return c.do(ctx, http.MethodPost, vcsWorkspace(identifier)+"/subscriptions", nil, body)
}

func (c *Client) Unsubscribe(ctx context.Context, identifier, ref string) (any, error) {
	return c.do(ctx, http.MethodDelete, vcsWorkspace(identifier)+"/subscriptions"+escapeRef(ref), nil, nil)
}

func (c *Client) ResetSubscriptions(ctx context.Context, identifier string) (any, error) {
	return c.do(ctx, http.MethodDelete, vcsWorkspace(identifier)+"/subscriptions", nil, nil)
}

func (c *Client) ListStage(ctx context.Context, identifier string) (any, error) {
	return c.do(ctx, http.MethodGet, vcsWorkspace(identifier)+"/stage", nil, nil)
}

func (c *Client) Stage(ctx context.Context, identifier, ref string) (any, error) {
	return c.do(ctx, http.MethodPost, vcsWorkspace(identifier)+"/stage"+escapeRef(ref), nil, nil)
}

func (c *Client) Unstage(ctx context.Context, identifier, ref string) (any, error) {
	return c.do(ctx, http.MethodDelete, vcsWorkspace(identifier)+"/stage"+escapeRef(ref), nil, nil)
}

func (c *Client) ResetStage(ctx context.Context, identifier string) (any, error) {
	return c.do(ctx, http.MethodDelete, vcsWorkspace(identifier)+"/stage", nil, nil)
}

func (c *Client) Status(ctx context.Context, identifier, ref string) (any, error) {
	p := vcsWorkspace(identifier) + "/status"
	if ref != "" {
		p += escapeRef(ref)
	}
	return c.do(ctx, http.MethodGet, p, nil, nil)
}

func (c *Client) Push(ctx context.Context, identifier, comment string) (any, error) {
	return c.do(ctx, http.MethodPost, vcsWorkspace(identifier)+"/commits", nil, map[string]string{"message": comment})
}

func (c *Client) ListBranches(ctx context.Context, identifier string, verbose bool) (any, error) {
	return c.do(ctx, http.MethodGet, amWorkspace(identifier)+"/branches", verboseQuery(verbose), nil)
}

func (c *Client) CurrentBranch(ctx context.Context, identifier string) (any, error) {
	return c.do(ctx, http.MethodGet, amWorkspace(identifier)+"/branch", nil, nil)
}

func (c *Client) CreateBranch(ctx context.Context, identifier, name string) (any, error) {
	return c.do(ctx, http.MethodPut, amWorkspace(identifier)+"/branches/"+url.PathEscape(name), nil, nil)
}

func (c *Client) ChangeBranch(ctx context.Context, identifier, name string) (any, error) {
	return c.do(ctx, http.MethodPost, amWorkspace(identifier)+"/branch", nil, map[string]string{"name": name})
}

func (c *Client) RemoveBranch(ctx context.Context, identifier, name string) (any, error) {
	return c.do(ctx, http.MethodDelete, amWorkspace(identifier)+"/branches/"+url.PathEscape(name), nil, nil)
}

func (c *Client) GetConfig(ctx context.Context, name string) (any, error) {
	return c.do(ctx, http.MethodGet, "/config/"+url.PathEscape(name), nil, nil)
}

func (c *Client) GetConfigs(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodGet, "/config/", nil, nil)
}

func (c *Client) SetConfig(ctx context.Context, name, value string) (any, error) {
	return c.do(ctx, http.MethodPut, "/config/"+url.PathEscape(name), nil, map[string]string{"value": value})
}

func (c *Client) DelConfig(ctx context.Context, name string) (any, error) {
	return c.do(ctx, http.MethodDelete, "/config/"+url.PathEscape(name), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := logging.WithContext(logging.WithRequestID(ctx, requestID), c.logger)
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("backend request failed",
			logging.String("method", method),
			logging.String("path", path),
			logging.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	logger.Debug("backend request",
		logging.String("method", method),
		logging.String("path", path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RemoteError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		// Plain text replies are returned as-is.
		return string(data), nil
	}
	return result, nil
}

func errorMessage(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if v, ok := payload[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return string(data)
}

func verboseQuery(verbose bool) url.Values {
	if !verbose {
		return nil
	}
	return url.Values{"verbose": {strconv.FormatBool(verbose)}}
}

func amWorkspace(identifier string) string {
	return "/assetmanager/workspaces/" + url.PathEscape(identifier)
}

func cbWorkspace(identifier string) string {
	return "/contentbrowser/workspaces/" + url.PathEscape(identifier)
}

func vcsWorkspace(identifier string) string {
	return "/vcs/workspaces/" + url.PathEscape(identifier)
}

// escapeRef escapes each segment of a reference, keeping its slashes.
func escapeRef(ref string) string {
	segments := strings.Split(ref, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
