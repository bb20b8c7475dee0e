// Package httpviews implements the ViewService interface over the remote
// views API: named-view CRUD plus the live-state upsert.
package httpviews

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

	"github.com/mesh-intelligence/tableview/pkg/types"
)

var _ types.ViewService = (*Client)(nil)

// defaultTimeout bounds requests that carry no deadline of their own.
const defaultTimeout = 30 * time.Second

// Client talks to the views API. Endpoint paths are configurable; the
// defaults match the server's conventional mount points.
type Client struct {
	baseURL    string
	viewsPath  string
	statesPath string
	hc         *http.Client
}

// NewClient creates a views API client from the config. The config must
// have been validated with the http backend selected.
func NewClient(cfg types.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		viewsPath:  cfg.ViewsEndpoint(),
		statesPath: cfg.StatesEndpoint(),
		hc:         &http.Client{Timeout: defaultTimeout},
	}
}

// ListViews fetches all named views for the slug.
func (c *Client) ListViews(ctx context.Context, tableSlug string) ([]types.NamedView, error) {
	endpoint := fmt.Sprintf("%s/%s?tableSlug=%s", c.baseURL, c.viewsPath, url.QueryEscape(tableSlug))
	var out []types.NamedView
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.NamedView{}
	}
	return out, nil
}

// CreateView posts a new named view and returns the created record.
func (c *Client) CreateView(ctx context.Context, view types.NewView) (types.NamedView, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, c.viewsPath)
	var out types.NamedView
	if err := c.do(ctx, http.MethodPost, endpoint, view, &out); err != nil {
		return types.NamedView{}, err
	}
	return out, nil
}

// UpdateView patches the view with the given ID.
func (c *Client) UpdateView(ctx context.Context, id string, patch types.ViewPatch) (types.NamedView, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.viewsPath, url.PathEscape(id))
	var out types.NamedView
	if err := c.do(ctx, http.MethodPatch, endpoint, patch, &out); err != nil {
		return types.NamedView{}, err
	}
	return out, nil
}

// DeleteView removes the view with the given ID.
func (c *Client) DeleteView(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.viewsPath, url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// liveStatePayload is the body of the live-state upsert.
type liveStatePayload struct {
	TableSlug string               `json:"tableSlug"`
	State     types.TableViewState `json:"state"`
}

// SaveLiveState upserts the slug's live snapshot.
func (c *Client) SaveLiveState(ctx context.Context, tableSlug string, state types.TableViewState) error {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, c.statesPath)
	return c.do(ctx, http.MethodPost, endpoint, liveStatePayload{TableSlug: tableSlug, State: state}, nil)
}

// LoadLiveState fetches the slug's live snapshot. A 404 means no snapshot
// has been saved yet, which is not an error.
func (c *Client) LoadLiveState(ctx context.Context, tableSlug string) (types.TableViewState, bool, error) {
	endpoint := fmt.Sprintf("%s/%s?tableSlug=%s", c.baseURL, c.statesPath, url.QueryEscape(tableSlug))
	var payload liveStatePayload
	err := c.do(ctx, http.MethodGet, endpoint, nil, &payload)
	if err != nil {
		if err == types.ErrViewNotFound {
			return types.TableViewState{}, false, nil
		}
		return types.TableViewState{}, false, err
	}
	return payload.State, true, nil
}

// do issues one JSON request. A non-nil body is encoded as the request
// payload; a non-nil out receives the decoded response. 404 maps to
// ErrViewNotFound; other non-2xx statuses become generic errors carrying
// the status code.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return types.ErrViewNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%s %s: unexpected status %d", method, endpoint, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
