// Package resthttp implements the service.Gateway interface against the
// task manager's REST API.
package resthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"taskdeck/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second
)

// TokenFunc returns the current bearer token, or "" when anonymous.
// The session owner supplies it so the client never caches a credential.
type TokenFunc func() string

// Client implements service.Gateway over HTTP.
type Client struct {
	base  string
	http  *http.Client
	token TokenFunc
	debug io.Writer
}

// New creates a new gateway client for the given base URL.
// token may be nil for a client that only ever calls Signup/Login.
func New(baseURL string, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		base:  baseURL,
		http:  http.DefaultClient,
		token: token,
	}
}

// SetHTTPClient replaces the underlying HTTP client (for testing).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// SetDebug directs a request/response trace line per call to w.
func (c *Client) SetDebug(w io.Writer) {
	c.debug = w
}

// Signup implements service.Gateway.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/signup", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &service.NetworkError{Err: err}
	}
	defer resp.Body.Close()
	text, _ := io.ReadAll(resp.Body)
	c.trace(http.MethodPost, "/auth/signup", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Signup rejections (duplicate email, invalid input) surface verbatim.
		return &service.AuthError{Message: bodyText(resp.StatusCode, text)}
	}
	return nil
}

// Login implements service.Gateway. The gateway's /auth/login endpoint is
// the OAuth2 resource-owner password grant: form-encoded username/password
// in, JSON access_token out.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.base + "/auth/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	tok, err := conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			c.trace(http.MethodPost, "/auth/login", rerr.Response.StatusCode)
			return "", &service.AuthError{Message: bodyText(rerr.Response.StatusCode, rerr.Body)}
		}
		return "", &service.NetworkError{Err: err}
	}
	c.trace(http.MethodPost, "/auth/login", http.StatusOK)
	return tok.AccessToken, nil
}

// ListProjects implements service.Gateway.
func (c *Client) ListProjects(ctx context.Context) ([]service.Project, error) {
	var projects []service.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject implements service.Gateway.
func (c *Client) CreateProject(ctx context.Context, name string) (service.Project, error) {
	q := url.Values{}
	q.Set("name", name)
	var p service.Project
	if err := c.do(ctx, http.MethodPost, "/projects?"+q.Encode(), nil, &p); err != nil {
		return service.Project{}, err
	}
	return p, nil
}

// DeleteProject implements service.Gateway.
func (c *Client) DeleteProject(ctx context.Context, projectID int) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+strconv.Itoa(projectID), nil, nil)
}

// ListTasks implements service.Gateway.
func (c *Client) ListTasks(ctx context.Context, projectID int) ([]service.Task, error) {
	q := url.Values{}
	q.Set("project_id", strconv.Itoa(projectID))
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks?"+q.Encode(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Gateway.
func (c *Client) CreateTask(ctx context.Context, projectID int, title string) (service.Task, error) {
	q := url.Values{}
	q.Set("project_id", strconv.Itoa(projectID))
	q.Set("title", title)
	var t service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks?"+q.Encode(), nil, &t); err != nil {
		return service.Task{}, err
	}
	return t, nil
}

// SetTaskDone implements service.Gateway.
func (c *Client) SetTaskDone(ctx context.Context, taskID int, done bool) error {
	q := url.Values{}
	q.Set("is_done", strconv.FormatBool(done))
	return c.do(ctx, http.MethodPatch, "/tasks/"+strconv.Itoa(taskID)+"?"+q.Encode(), nil, nil)
}

// RenameTask implements service.Gateway.
func (c *Client) RenameTask(ctx context.Context, taskID int, title string) error {
	q := url.Values{}
	q.Set("title", title)
	return c.do(ctx, http.MethodPatch, "/tasks/"+strconv.Itoa(taskID)+"?"+q.Encode(), nil, nil)
}

// DeleteTask implements service.Gateway.
func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+strconv.Itoa(taskID), nil, nil)
}

// do issues an authenticated request and decodes a JSON response into out.
// A 204 yields no body; any non-2xx body text is the error message.
func (c *Client) do(ctx context.Context, method, pathAndQuery string, body io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.base+pathAndQuery, body)
	if err != nil {
		return err
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &service.NetworkError{Err: err}
	}
	defer resp.Body.Close()
	c.trace(method, pathAndQuery, resp.StatusCode)

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return &service.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(resp.StatusCode, text)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil || len(text) == 0 {
		return nil
	}
	if err := json.Unmarshal(text, out); err != nil {
		return fmt.Errorf("invalid response body: %w", err)
	}
	return nil
}

// classify maps a non-2xx response to the error taxonomy. The response
// body is the human-readable message, carried verbatim.
func classify(status int, body []byte) error {
	text := bodyText(status, body)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &service.AuthError{Message: text}
	case http.StatusNotFound:
		return &service.NotFoundError{Message: text}
	}
	return errors.New(text)
}

// bodyText returns the body as the error message, falling back to the
// status code when the body is empty.
func bodyText(status int, body []byte) string {
	if len(body) == 0 {
		return fmt.Sprintf("HTTP %d", status)
	}
	return string(body)
}

func (c *Client) trace(method, path string, status int) {
	if c.debug != nil {
		fmt.Fprintf(c.debug, "debug: %s %s -> %d\n", method, path, status)
	}
}
