// Package rest implements the service.Service interface against the task JSON API.
//
// The API exposes a collection endpoint and a singular-resource endpoint:
//
//	GET    {base}/tasks  -> [Task]
//	POST   {base}/task   {title}              -> Task
//	PUT    {base}/task   {id,title,completed} -> Task
//	DELETE {base}/task   {id}                 -> (status only)
package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"

	"todo/internal/service"
)

const (
	tasksPath = "/tasks"
	taskPath  = "/task"

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Config is the immutable connection configuration of a Client.
type Config struct {
	// BaseURL is the API root; all paths are appended to it.
	BaseURL string

	// Token, if set, is sent as a bearer token on every request.
	Token string

	// BreakerFailures enables the circuit breaker when > 0: after this many
	// consecutive failures, calls fail fast for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger for request and breaker diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// Client implements service.Service over HTTP.
// It is safe for concurrent use.
type Client struct {
	base    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     logrus.FieldLogger
}

// New creates a client for the API at cfg.BaseURL.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: http.DefaultClient,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Token != "" {
		hc := *c.http
		hc.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}),
			Base:   c.http.Transport,
		}
		c.http = &hc
	}

	if cfg.BreakerFailures > 0 {
		c.breaker = newBreaker(cfg.BreakerFailures, cfg.BreakerTimeout, c.log)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.base }

type createRequest struct {
	Title string `json:"title"`
}

type updateRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type deleteRequest struct {
	ID string `json:"id"`
}

// ListTasks fetches the whole task collection.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, "list", http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask creates a task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, "create", http.MethodPost, taskPath, createRequest{Title: title}, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask sends the full new state of a task.
func (c *Client) UpdateTask(ctx context.Context, id, title string, completed bool) (service.Task, error) {
	var task service.Task
	body := updateRequest{ID: id, Title: title, Completed: completed}
	if err := c.do(ctx, "update", http.MethodPut, taskPath, body, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, taskPath, deleteRequest{ID: id}, nil)
}

// do performs one request. body is JSON-encoded when non-nil; out receives
// the decoded response when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.ConfigStd.Marshal(body)
		if err != nil {
			return &service.Error{Op: op, Kind: service.KindUnknown, Err: fmt.Errorf("encode request: %w", err)}
		}
	}

	call := func() (any, error) {
		return nil, c.roundTrip(ctx, op, method, path, payload, out)
	}

	if c.breaker == nil {
		_, err := call()
		return err
	}

	_, err := c.breaker.Execute(call)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &service.Error{Op: op, Kind: service.KindUnavailable, Err: err}
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, payload []byte, out any) error {
	url := c.base + path

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &service.Error{Op: op, Kind: service.KindNetwork, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &service.Error{Op: op, Kind: service.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"op":       op,
		"method":   method,
		"url":      url,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// The body must be exactly one JSON value; trailing bytes are malformed.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &service.Error{Op: op, Kind: service.KindNetwork, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := sonic.ConfigStd.Unmarshal(raw, out); err != nil {
		return &service.Error{Op: op, Kind: service.KindDecode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError builds a KindStatus error, keeping a short excerpt of the body.
func statusError(op string, resp *http.Response) error {
	e := &service.Error{Op: op, Kind: service.KindStatus, StatusCode: resp.StatusCode}
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if msg := strings.TrimSpace(string(excerpt)); msg != "" {
		e.Err = errors.New(msg)
	}
	return e
}
