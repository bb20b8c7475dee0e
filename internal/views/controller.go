package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mesh-intelligence/tableview/pkg/types"
)

// Protocol errors returned by the Controller.
var (
	// ErrNoActiveView signals that Save was called with no named view
	// active; the caller should open the create flow instead.
	ErrNoActiveView = errors.New("no active view to save")
)

// Controller realizes the named-view lifecycle over a ViewService and a
// Store: activation, create, save, rename, delete, share, and the live
// state snapshot. Local store mutations happen only after a backend call
// succeeds, so a failed request leaves local state exactly as it was.
//
// The controller keeps a per-slug cache of the view list. Every mutation
// invalidates the cache before updating local pointers, so a stale list is
// never paired with a pointer to a view the backend no longer has.
type Controller struct {
	svc   types.ViewService
	store *Store

	mu    sync.Mutex
	lists map[string][]types.NamedView
}

// NewController creates a controller over the given service and store.
func NewController(svc types.ViewService, store *Store) *Controller {
	return &Controller{
		svc:   svc,
		store: store,
		lists: make(map[string][]types.NamedView),
	}
}

// Views returns the named views for the slug, fetching from the backend
// on a cache miss.
func (c *Controller) Views(ctx context.Context, slug string) ([]types.NamedView, error) {
	c.mu.Lock()
	cached, ok := c.lists[slug]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	list, err := c.svc.ListViews(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	c.mu.Lock()
	c.lists[slug] = list
	c.mu.Unlock()
	return list, nil
}

// Invalidate drops the cached view list for the slug so the next Views
// call refetches.
func (c *Controller) Invalidate(slug string) {
	c.mu.Lock()
	delete(c.lists, slug)
	c.mu.Unlock()
}

// Activate loads the named view's state into the store and records it as
// the active view.
func (c *Controller) Activate(ctx context.Context, slug, viewID string) error {
	view, err := c.findView(ctx, slug, viewID)
	if err != nil {
		return err
	}
	c.store.LoadViewState(slug, view.State, view.ID)
	return nil
}

// Toggle activates the view, or deactivates it when it is already the
// active one. Clicking the active tab returns the table to the blank
// ad-hoc configuration.
func (c *Controller) Toggle(ctx context.Context, slug, viewID string) error {
	if slice, ok := c.store.Get(slug); ok && slice.ActiveViewID == viewID {
		c.Deactivate(slug)
		return nil
	}
	return c.Activate(ctx, slug, viewID)
}

// Deactivate returns the slug to the blank unsaved configuration.
func (c *Controller) Deactivate(slug string) {
	c.store.LoadViewState(slug, types.EmptyTableViewState(), "")
}

// Create persists the current active state (or the zero state when the
// slug is untracked) as a new named view and activates it. The name must
// be non-blank.
func (c *Controller) Create(ctx context.Context, slug, name string, shared bool) (types.NamedView, error) {
	if strings.TrimSpace(name) == "" {
		return types.NamedView{}, types.ErrInvalidName
	}

	state := types.EmptyTableViewState()
	if slice, ok := c.store.Get(slug); ok {
		state = slice.ActiveState
	}

	created, err := c.svc.CreateView(ctx, types.NewView{
		Name:      name,
		TableSlug: slug,
		State:     state,
		IsShared:  shared,
	})
	if err != nil {
		return types.NamedView{}, fmt.Errorf("create view: %w", err)
	}

	c.Invalidate(slug)
	c.store.LoadViewState(slug, created.State, created.ID)
	return created, nil
}

// CanSave reports whether the save action is enabled: either a named view
// is active and has diverged, or no view is active but ad-hoc filters
// exist worth capturing.
func (c *Controller) CanSave(slug string) bool {
	slice, ok := c.store.Get(slug)
	if !ok {
		return false
	}
	if slice.ActiveViewID != "" {
		return slice.ViewDirty
	}
	return len(slice.ActiveState.Filters) > 0
}

// Save patches the active view's state to the current active state and
// marks the slug clean. Returns ErrNoActiveView when no view is active;
// there is nothing to patch and the caller should open the create flow.
// A clean active view saves as a no-op.
func (c *Controller) Save(ctx context.Context, slug string) error {
	slice, ok := c.store.Get(slug)
	if !ok || slice.ActiveViewID == "" {
		return ErrNoActiveView
	}
	if !slice.ViewDirty {
		return nil
	}

	state := slice.ActiveState
	if _, err := c.svc.UpdateView(ctx, slice.ActiveViewID, types.ViewPatch{State: &state}); err != nil {
		return fmt.Errorf("save view: %w", err)
	}

	c.Invalidate(slug)
	c.store.MarkClean(slug)
	return nil
}

// Rename patches the view's name. The active state and dirty flag are
// untouched.
func (c *Controller) Rename(ctx context.Context, slug, viewID, name string) error {
	if strings.TrimSpace(name) == "" {
		return types.ErrInvalidName
	}
	if _, err := c.svc.UpdateView(ctx, viewID, types.ViewPatch{Name: &name}); err != nil {
		return fmt.Errorf("rename view: %w", err)
	}
	c.Invalidate(slug)
	return nil
}

// Delete removes the view. When the deleted view was the active one the
// slug falls back to the blank configuration; the active pointer never
// outlives its view.
func (c *Controller) Delete(ctx context.Context, slug, viewID string) error {
	if err := c.svc.DeleteView(ctx, viewID); err != nil {
		return fmt.Errorf("delete view: %w", err)
	}

	c.Invalidate(slug)
	if slice, ok := c.store.Get(slug); ok && slice.ActiveViewID == viewID {
		c.Deactivate(slug)
	}
	return nil
}

// SetShared patches the view's shared flag. Sharing is a backend-side
// visibility attribute and does not touch the view state.
func (c *Controller) SetShared(ctx context.Context, slug, viewID string, shared bool) error {
	if _, err := c.svc.UpdateView(ctx, viewID, types.ViewPatch{IsShared: &shared}); err != nil {
		return fmt.Errorf("share view: %w", err)
	}
	c.Invalidate(slug)
	return nil
}

// SaveLiveState upserts the slug's current active state as the unnamed
// live snapshot.
func (c *Controller) SaveLiveState(ctx context.Context, slug string) error {
	state := types.EmptyTableViewState()
	if slice, ok := c.store.Get(slug); ok {
		state = slice.ActiveState
	}
	if err := c.svc.SaveLiveState(ctx, slug, state); err != nil {
		return fmt.Errorf("save live state: %w", err)
	}
	return nil
}

// RestoreLiveState loads the slug's live snapshot, if one exists, into
// the store as an ad-hoc configuration.
func (c *Controller) RestoreLiveState(ctx context.Context, slug string) error {
	state, ok, err := c.svc.LoadLiveState(ctx, slug)
	if err != nil {
		return fmt.Errorf("load live state: %w", err)
	}
	if !ok {
		return nil
	}
	c.store.LoadViewState(slug, state, "")
	return nil
}

// findView resolves a view from the cached list, refetching once when the
// ID is absent so a freshly created view on another surface is found.
func (c *Controller) findView(ctx context.Context, slug, viewID string) (types.NamedView, error) {
	list, err := c.Views(ctx, slug)
	if err != nil {
		return types.NamedView{}, err
	}
	for _, v := range list {
		if v.ID == viewID {
			return v, nil
		}
	}

	c.Invalidate(slug)
	list, err = c.Views(ctx, slug)
	if err != nil {
		return types.NamedView{}, err
	}
	for _, v := range list {
		if v.ID == viewID {
			return v, nil
		}
	}
	return types.NamedView{}, types.ErrViewNotFound
}
