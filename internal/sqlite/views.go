// Named-view CRUD and live-state persistence for the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/tableview/pkg/types"
)

var _ types.ViewService = (*Backend)(nil)

// ListViews returns all named views for the slug, oldest first.
func (b *Backend) ListViews(ctx context.Context, tableSlug string) ([]types.NamedView, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT view_id, name, table_slug, state, is_shared, created_at, updated_at FROM views WHERE table_slug = ? ORDER BY created_at",
		tableSlug,
	)
	if err != nil {
		return nil, fmt.Errorf("querying views: %w", err)
	}
	defer rows.Close()

	out := []types.NamedView{}
	for rows.Next() {
		v, err := hydrateView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CreateView persists a new named view with a generated UUID v7 ID.
// The name must be non-blank and unique within the slug.
func (b *Backend) CreateView(ctx context.Context, view types.NewView) (types.NamedView, error) {
	db, err := b.handle()
	if err != nil {
		return types.NamedView{}, err
	}

	if strings.TrimSpace(view.Name) == "" {
		return types.NamedView{}, types.ErrInvalidName
	}
	if view.TableSlug == "" {
		return types.NamedView{}, types.ErrInvalidSlug
	}
	if err := b.checkDuplicateName(ctx, db, view.TableSlug, view.Name, ""); err != nil {
		return types.NamedView{}, err
	}

	state := types.WithDefaults(view.State)
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return types.NamedView{}, fmt.Errorf("marshaling view state: %w", err)
	}

	now := time.Now().UTC()
	created := types.NamedView{
		ID:        generateUUID(),
		Name:      view.Name,
		TableSlug: view.TableSlug,
		State:     state,
		IsShared:  view.IsShared,
		IsOwn:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO views (view_id, name, table_slug, state, is_shared, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		created.ID, created.Name, created.TableSlug, string(stateJSON),
		boolToInt(created.IsShared), now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.NamedView{}, fmt.Errorf("persisting view: %w", err)
	}
	return created, nil
}

// UpdateView applies the patch's non-nil fields to the stored view and
// bumps its updated timestamp. Returns ErrViewNotFound if no such view
// exists.
func (b *Backend) UpdateView(ctx context.Context, id string, patch types.ViewPatch) (types.NamedView, error) {
	db, err := b.handle()
	if err != nil {
		return types.NamedView{}, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT view_id, name, table_slug, state, is_shared, created_at, updated_at FROM views WHERE view_id = ?",
		id,
	)
	current, err := hydrateView(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.NamedView{}, types.ErrViewNotFound
		}
		return types.NamedView{}, fmt.Errorf("getting view %s: %w", id, err)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return types.NamedView{}, types.ErrInvalidName
		}
		if err := b.checkDuplicateName(ctx, db, current.TableSlug, *patch.Name, id); err != nil {
			return types.NamedView{}, err
		}
		current.Name = *patch.Name
	}
	if patch.State != nil {
		current.State = types.WithDefaults(*patch.State)
	}
	if patch.IsShared != nil {
		current.IsShared = *patch.IsShared
	}
	current.UpdatedAt = time.Now().UTC()

	stateJSON, err := json.Marshal(current.State)
	if err != nil {
		return types.NamedView{}, fmt.Errorf("marshaling view state: %w", err)
	}

	_, err = db.ExecContext(ctx,
		"UPDATE views SET name = ?, state = ?, is_shared = ?, updated_at = ? WHERE view_id = ?",
		current.Name, string(stateJSON), boolToInt(current.IsShared),
		current.UpdatedAt.Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return types.NamedView{}, fmt.Errorf("updating view %s: %w", id, err)
	}
	return current, nil
}

// DeleteView removes the view. Returns ErrViewNotFound if no such view
// exists.
func (b *Backend) DeleteView(ctx context.Context, id string) error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM views WHERE view_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting view %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting view %s: %w", id, err)
	}
	if affected == 0 {
		return types.ErrViewNotFound
	}
	return nil
}

// SaveLiveState upserts the slug's live snapshot.
func (b *Backend) SaveLiveState(ctx context.Context, tableSlug string, state types.TableViewState) error {
	db, err := b.handle()
	if err != nil {
		return err
	}
	if tableSlug == "" {
		return types.ErrInvalidSlug
	}

	stateJSON, err := json.Marshal(types.WithDefaults(state))
	if err != nil {
		return fmt.Errorf("marshaling live state: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO live_states (table_slug, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(table_slug) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		tableSlug, string(stateJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting live state: %w", err)
	}
	return nil
}

// LoadLiveState returns the slug's live snapshot, reporting false when
// none has been saved.
func (b *Backend) LoadLiveState(ctx context.Context, tableSlug string) (types.TableViewState, bool, error) {
	db, err := b.handle()
	if err != nil {
		return types.TableViewState{}, false, err
	}

	var stateJSON string
	err = db.QueryRowContext(ctx,
		"SELECT state FROM live_states WHERE table_slug = ?", tableSlug,
	).Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return types.TableViewState{}, false, nil
	}
	if err != nil {
		return types.TableViewState{}, false, fmt.Errorf("querying live state: %w", err)
	}

	var state types.TableViewState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return types.TableViewState{}, false, fmt.Errorf("unmarshaling live state: %w", err)
	}
	return types.WithDefaults(state), true, nil
}

// checkDuplicateName returns ErrDuplicateName when another view in the
// slug already carries the name.
func (b *Backend) checkDuplicateName(ctx context.Context, db *sql.DB, tableSlug, name, excludeID string) error {
	var dupID string
	err := db.QueryRowContext(ctx,
		"SELECT view_id FROM views WHERE table_slug = ? AND name = ? AND view_id != ?",
		tableSlug, name, excludeID,
	).Scan(&dupID)
	if err == nil {
		return types.ErrDuplicateName
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking view name uniqueness: %w", err)
	}
	return nil
}

// scanner covers sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateView builds a NamedView from a row. Stored states are merged
// onto the zero value so payloads written by older schema revisions stay
// complete.
func hydrateView(row scanner) (types.NamedView, error) {
	var v types.NamedView
	var stateJSON string
	var isShared int
	var createdAt, updatedAt string

	if err := row.Scan(&v.ID, &v.Name, &v.TableSlug, &stateJSON, &isShared, &createdAt, &updatedAt); err != nil {
		return types.NamedView{}, err
	}

	var state types.TableViewState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return types.NamedView{}, fmt.Errorf("unmarshaling state for view %s: %w", v.ID, err)
	}
	v.State = types.WithDefaults(state)
	v.IsShared = isShared != 0
	v.IsOwn = true

	var err error
	if v.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return types.NamedView{}, fmt.Errorf("parsing created_at for view %s: %w", v.ID, err)
	}
	if v.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return types.NamedView{}, fmt.Errorf("parsing updated_at for view %s: %w", v.ID, err)
	}
	return v, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
