// Package client maps the four equipment REST operations to typed calls.
// It holds no state beyond the connection settings.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"equipment-tracker/internal/model"
)

// Operation names a client call; it selects the fixed failure message.
type Operation string

const (
	OpFetch  Operation = "fetch"
	OpAdd    Operation = "add"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Error reports a failed call. Its message is fixed per operation; server
// detail is kept in Err and StatusCode for callers that want it.
type Error struct {
	Op         Operation
	StatusCode int // 0 when no response arrived
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Failed to %s equipment", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// EquipmentData is the body sent on create and update.
type EquipmentData struct {
	Name        string                `json:"name"`
	Type        model.EquipmentType   `json:"type"`
	Status      model.EquipmentStatus `json:"status"`
	LastCleaned *model.Date           `json:"last_cleaned,omitempty"`
}

// Client calls the equipment API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient swaps the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) collectionURL() string {
	return c.baseURL + "/api/equipment"
}

func (c *Client) itemURL(id int64) string {
	return fmt.Sprintf("%s/api/equipment/%d", c.baseURL, id)
}

// List fetches every record, newest first.
func (c *Client) List(ctx context.Context) ([]model.Equipment, error) {
	var out []model.Equipment
	if err := c.do(ctx, OpFetch, http.MethodGet, c.collectionURL(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Equipment{}
	}
	return out, nil
}

// Create adds a record and returns it as persisted.
func (c *Client) Create(ctx context.Context, data EquipmentData) (model.Equipment, error) {
	var out model.Equipment
	err := c.do(ctx, OpAdd, http.MethodPost, c.collectionURL(), data, &out)
	return out, err
}

// Update replaces the editable fields of record id.
func (c *Client) Update(ctx context.Context, id int64, data EquipmentData) (model.Equipment, error) {
	var out model.Equipment
	err := c.do(ctx, OpUpdate, http.MethodPut, c.itemURL(id), data, &out)
	return out, err
}

// Delete removes record id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, OpDelete, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op Operation, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(detail)),
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
