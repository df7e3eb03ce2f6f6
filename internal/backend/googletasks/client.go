// Package googletasks implements the service.Service interface using Google Tasks API.
// All operations act on the user's default task list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks fetched per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes the access token as needed
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// OAuthConfig loads the OAuth client credentials from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(endpoint))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// ListTasks returns all tasks in the default list, completed ones included,
// in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	result := []service.Task{}
	err := c.svc.Tasks.List(DefaultListID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, toTask(t))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError("list", err)
	}
	return result, nil
}

// CreateTask creates a new task in the default list.
func (c *Client) CreateTask(ctx context.Context, title string) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t, err := c.svc.Tasks.Insert(DefaultListID, &tasks.Task{Title: title}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError("create", err)
	}
	return toTask(t), nil
}

// UpdateTask patches the title and status of a task.
func (c *Client) UpdateTask(ctx context.Context, id, title string, completed bool) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	patch := &tasks.Task{
		Title:  title,
		Status: statusNeedsAction,
		// Title may legitimately be empty
		ForceSendFields: []string{"Title"},
	}
	if completed {
		patch.Status = statusCompleted
	} else {
		// Reopening requires clearing the completion timestamp
		patch.NullFields = []string{"Completed"}
	}

	t, err := c.svc.Tasks.Patch(DefaultListID, id, patch).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError("update", err)
	}
	return toTask(t), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(DefaultListID, id).Context(ctx).Do(); err != nil {
		return wrapError("delete", err)
	}
	return nil
}

func toTask(t *tasks.Task) service.Task {
	return service.Task{
		ID:        t.Id,
		Title:     t.Title,
		Completed: t.Status == statusCompleted,
	}
}

// wrapError maps API errors onto service.Error kinds.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &service.Error{Op: op, Kind: service.KindStatus, StatusCode: apiErr.Code, Err: apiErr}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &service.Error{Op: op, Kind: service.KindNetwork, Err: fmt.Errorf("request timed out")}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &service.Error{Op: op, Kind: service.KindDecode, Err: err}
	}

	return &service.Error{Op: op, Kind: service.KindNetwork, Err: err}
}
