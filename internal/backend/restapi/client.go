// Package restapi implements the service.Service interface against the
// task server's REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"taskmaster/internal/config"
	"taskmaster/internal/service"
)

// Endpoint paths relative to the base URL. The server dispatches by path,
// not by method, so these must match it exactly.
const (
	PathList   = "/tasks"
	PathSave   = "/tasks/save"
	PathEdit   = "/tasks/edit"
	PathUpdate = "/tasks/update"
	PathDelete = "/tasks/delete"
)

// UserAgent is sent with every request.
const UserAgent = "taskmaster-cli"

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	timeout time.Duration
}

var _ service.Service = (*Client)(nil)

// New creates a client for the API URL in cfg.
// There is no fallback address; an empty URL is an error.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.APIURL)
	if err != nil {
		return nil, err
	}

	httpClient, _, err := htransport.NewClient(ctx,
		option.WithoutAuthentication(),
		option.WithUserAgent(UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}

	c := NewWithHTTPClient(baseURL, httpClient, logger)
	c.timeout = cfg.Timeout
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid api url: %s", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// ListTasks fetches all tasks.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	const op = "list tasks"

	data, err := c.do(ctx, op, http.MethodGet, PathList, nil)
	if err != nil {
		return nil, err
	}

	tasks, err := DecodeTasks(data)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return tasks, nil
}

// CreateTask saves a new task. The server assigns the ID.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	const op = "create task"

	payload := toPayload(task.WithID(0))
	data, err := c.do(ctx, op, http.MethodPost, PathSave, payload)
	if err != nil {
		return service.Task{}, err
	}

	created, err := DecodeTask(data)
	if err != nil {
		return service.Task{}, &DecodeError{Op: op, Err: err}
	}
	return created, nil
}

// UpdateTask sends the full record to the edit endpoint.
func (c *Client) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	const op = "update task"

	if task.ID == 0 {
		return service.Task{}, fmt.Errorf("%s: task has no id", op)
	}

	data, err := c.do(ctx, op, http.MethodPost, PathEdit, toPayload(task))
	if err != nil {
		return service.Task{}, err
	}

	updated, err := DecodeTask(data)
	if err != nil {
		return service.Task{}, &DecodeError{Op: op, Err: err}
	}
	return updated, nil
}

// SetCompletion updates only the completion flag.
// It does not touch any local copy of the task.
func (c *Client) SetCompletion(ctx context.Context, id int64, completed bool) (bool, error) {
	const op = "set completion"

	data, err := c.do(ctx, op, http.MethodPost, PathUpdate, statusPayload{ID: id, IsCompleted: completed})
	if err != nil {
		return false, err
	}

	ok, err := decodeSuccess(data)
	if err != nil {
		return false, &DecodeError{Op: op, Err: err}
	}
	return ok, nil
}

// DeleteTask deletes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id int64) (bool, error) {
	const op = "delete task"

	data, err := c.do(ctx, op, http.MethodPost, PathDelete, idPayload{ID: id})
	if err != nil {
		return false, err
	}

	ok, err := decodeSuccess(data)
	if err != nil {
		return false, &DecodeError{Op: op, Err: err}
	}
	return ok, nil
}

// do performs one round trip and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	c.logger.Debug("request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if err := googleapi.CheckResponse(res); err != nil {
		return nil, &RequestError{Op: op, StatusCode: res.StatusCode, Err: err}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	return data, nil
}
