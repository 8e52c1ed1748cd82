// Package inventory holds the client-side list of equipment and keeps it in
// step with the API after each call.
package inventory

import (
	"context"
	"sync"

	"equipment-tracker/internal/client"
	"equipment-tracker/internal/logging"
	"equipment-tracker/internal/model"
)

// API is the subset of client.Client the container drives.
type API interface {
	List(ctx context.Context) ([]model.Equipment, error)
	Create(ctx context.Context, data client.EquipmentData) (model.Equipment, error)
	Update(ctx context.Context, id int64, data client.EquipmentData) (model.Equipment, error)
	Delete(ctx context.Context, id int64) error
}

// State is a point-in-time copy of the container.
type State struct {
	Items   []model.Equipment
	Loading bool
	Err     string // empty when there is no error to show
}

// Container owns the in-memory equipment list plus the loading and error
// flags. Local state changes only after the API call succeeds, so a failure
// never leaves the list half-applied.
type Container struct {
	api API

	mu      sync.RWMutex
	items   []model.Equipment
	pending int
	err     string
}

// New returns an empty container bound to api.
func New(api API) *Container {
	return &Container{api: api}
}

// Snapshot returns a copy of the current state.
func (c *Container) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]model.Equipment, len(c.items))
	copy(items, c.items)
	return State{Items: items, Loading: c.pending > 0, Err: c.err}
}

// Busy reports whether a call is outstanding; callers disable their controls
// while it is true.
func (c *Container) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending > 0
}

// DismissError clears the error banner.
func (c *Container) DismissError() {
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()
}

// Load replaces the local list with the server's.
func (c *Container) Load(ctx context.Context) error {
	done := c.begin()
	defer done()

	items, err := c.api.List(ctx)
	if err != nil {
		return c.fail("load", err)
	}

	c.mu.Lock()
	c.items = items
	c.err = ""
	c.mu.Unlock()
	return nil
}

// Create adds a record and prepends the server's copy to the local list.
func (c *Container) Create(ctx context.Context, data client.EquipmentData) (model.Equipment, error) {
	done := c.begin()
	defer done()

	created, err := c.api.Create(ctx, data)
	if err != nil {
		return model.Equipment{}, c.fail("create", err)
	}

	c.mu.Lock()
	c.items = append([]model.Equipment{created}, c.items...)
	c.mu.Unlock()
	return created, nil
}

// Update replaces the matching local record with the server's copy.
func (c *Container) Update(ctx context.Context, id int64, data client.EquipmentData) (model.Equipment, error) {
	done := c.begin()
	defer done()

	updated, err := c.api.Update(ctx, id, data)
	if err != nil {
		return model.Equipment{}, c.fail("update", err)
	}

	c.mu.Lock()
	next := make([]model.Equipment, len(c.items))
	for i, item := range c.items {
		if item.ID == id {
			item = updated
		}
		next[i] = item
	}
	c.items = next
	c.mu.Unlock()
	return updated, nil
}

// Delete removes the matching local record once the server confirms.
func (c *Container) Delete(ctx context.Context, id int64) error {
	done := c.begin()
	defer done()

	if err := c.api.Delete(ctx, id); err != nil {
		return c.fail("delete", err)
	}

	c.mu.Lock()
	next := make([]model.Equipment, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	c.items = next
	c.mu.Unlock()
	return nil
}

func (c *Container) begin() func() {
	c.mu.Lock()
	c.pending++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.pending--
		c.mu.Unlock()
	}
}

// fail records err as the banner message and hands it back to the caller.
func (c *Container) fail(op string, err error) error {
	logging.Warn("equipment call failed", "operation", op, "error", err)
	c.mu.Lock()
	c.err = err.Error()
	c.mu.Unlock()
	return err
}
