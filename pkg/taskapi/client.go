package taskapi

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

	"tableflip.dev/kiosk/pkg/task"
)

// Client is the HTTP implementation of Service and PowerHooks.
type Client struct {
	base *url.URL
	http *http.Client
}

var (
	_ Service    = (*Client)(nil)
	_ PowerHooks = (*Client)(nil)
)

// NewClient returns a Client for the API rooted at baseURL. A zero
// timeout leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("taskapi: base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("taskapi: base url %q: scheme must be http or https", baseURL)
	}
	return &Client{base: u, http: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) Today(ctx context.Context) ([]task.Task, error) {
	var out []task.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks/today", nil, &out); err != nil {
		return nil, fmt.Errorf("taskapi: today: %w", err)
	}
	return out, nil
}

func (c *Client) All(ctx context.Context) ([]task.Task, error) {
	var out []task.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, fmt.Errorf("taskapi: list: %w", err)
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, t task.Task) (task.Task, error) {
	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	body := t.Normalized()
	body.ID = ""
	var created task.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", body, &created); err != nil {
		return task.Task{}, fmt.Errorf("taskapi: create: %w", err)
	}
	// The API may answer with just {"status":"ok","id":N}.
	if created.Title == "" {
		id := created.ID
		created = body
		created.ID = id
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, t task.Task) error {
	if t.ID == "" {
		return fmt.Errorf("taskapi: update: %w: missing id", ErrNotFound)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(string(t.ID)), t.Normalized(), nil); err != nil {
		return fmt.Errorf("taskapi: update %s: %w", t.ID, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, id task.ID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(string(id)), nil, nil); err != nil {
		return fmt.Errorf("taskapi: delete %s: %w", id, err)
	}
	return nil
}

func (c *Client) Complete(ctx context.Context, id task.ID) error {
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(string(id))+"/complete", nil, nil); err != nil {
		return fmt.Errorf("taskapi: complete %s: %w", id, err)
	}
	return nil
}

func (c *Client) SetPosition(ctx context.Context, id task.ID, position int) error {
	if position < 1 {
		return fmt.Errorf("%w: %d", ErrPositionOutOfRange, position)
	}
	body := map[string]int{"position": position}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(string(id))+"/position", body, nil); err != nil {
		return fmt.Errorf("taskapi: position %s: %w", id, err)
	}
	return nil
}

func (c *Client) Reorder(ctx context.Context, ids []task.ID) error {
	if err := CheckOrder(ids); err != nil {
		return err
	}
	body := struct {
		TaskIDs []task.ID `json:"taskIds"`
	}{TaskIDs: ids}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/reorder", body, nil); err != nil {
		return fmt.Errorf("taskapi: reorder: %w", err)
	}
	return nil
}

func (c *Client) ScreenOn(ctx context.Context) error     { return c.power(ctx, "screen", "on") }
func (c *Client) ScreenOff(ctx context.Context) error    { return c.power(ctx, "screen", "off") }
func (c *Client) BacklightOn(ctx context.Context) error  { return c.power(ctx, "backlight", "on") }
func (c *Client) BacklightOff(ctx context.Context) error { return c.power(ctx, "backlight", "off") }

func (c *Client) power(ctx context.Context, device, state string) error {
	if err := c.do(ctx, http.MethodPost, "/api/"+device+"/"+state, nil, nil); err != nil {
		return fmt.Errorf("taskapi: %s %s: %w", device, state, err)
	}
	return nil
}

// apiStatus is the {"status": ..., "message": ...} envelope used for
// mutations and errors.
type apiStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var st apiStatus
		_ = json.Unmarshal(data, &st)
		return &StatusError{Code: resp.StatusCode, Message: st.Message}
	}

	if len(bytes.TrimSpace(data)) > 0 {
		var st apiStatus
		if json.Unmarshal(data, &st) == nil && st.Status == "error" {
			return &StatusError{Code: resp.StatusCode, Message: st.Message}
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
