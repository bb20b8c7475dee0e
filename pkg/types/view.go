package types

import (
	"context"
	"errors"
	"time"
)

// NamedView is a server-persisted, user-named snapshot of a TableViewState.
// The backend owns the record; the client caches query results and issues
// mutations through a ViewService.
type NamedView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	TableSlug string         `json:"tableSlug"`
	State     TableViewState `json:"state"`
	IsShared  bool           `json:"isShared"`
	IsOwn     bool           `json:"isOwn"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewView is the payload for creating a named view.
type NewView struct {
	Name      string         `json:"name"`
	TableSlug string         `json:"tableSlug"`
	State     TableViewState `json:"state"`
	IsShared  bool           `json:"isShared,omitempty"`
}

// ViewPatch is a partial update of a named view. Nil fields are left
// unchanged by the backend.
type ViewPatch struct {
	Name     *string         `json:"name,omitempty"`
	State    *TableViewState `json:"state,omitempty"`
	IsShared *bool           `json:"isShared,omitempty"`
}

// ViewService is the persistence collaborator for named views and live
// state snapshots. Implementations are the HTTP views API client and the
// local SQLite backend.
type ViewService interface {
	// ListViews returns all named views for the given table slug.
	ListViews(ctx context.Context, tableSlug string) ([]NamedView, error)

	// CreateView persists a new named view and returns the created record
	// with its generated ID and timestamps.
	CreateView(ctx context.Context, view NewView) (NamedView, error)

	// UpdateView applies a partial update to the view with the given ID.
	// Returns ErrViewNotFound if no such view exists.
	UpdateView(ctx context.Context, id string, patch ViewPatch) (NamedView, error)

	// DeleteView removes the view with the given ID.
	// Returns ErrViewNotFound if no such view exists.
	DeleteView(ctx context.Context, id string) error

	// SaveLiveState upserts the unnamed live snapshot for the slug.
	SaveLiveState(ctx context.Context, tableSlug string, state TableViewState) error

	// LoadLiveState returns the live snapshot for the slug. The boolean is
	// false when no snapshot has been saved; that is not an error.
	LoadLiveState(ctx context.Context, tableSlug string) (TableViewState, bool, error)
}

// ViewBackend is a ViewService with an explicit attach/detach lifecycle,
// implemented by local storage backends that hold resources (a database
// handle) between calls.
type ViewBackend interface {
	ViewService

	// Attach validates the configuration and opens backend resources.
	// Returns ErrAlreadyAttached if called twice without a Detach.
	Attach(config Config) error

	// Detach releases backend resources. Detaching a backend that is not
	// attached is a no-op.
	Detach() error
}

// View operation errors.
var (
	ErrViewNotFound  = errors.New("view not found")
	ErrInvalidName   = errors.New("invalid name")
	ErrInvalidSlug   = errors.New("table slug must not be empty")
	ErrDuplicateName = errors.New("a view with that name already exists")
)
