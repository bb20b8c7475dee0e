// Package views implements the per-table view and filter state layer: a
// capacity-bounded keyed store of active view configurations, the filter
// ordering and visibility bookkeeping, and the synchronization protocol
// between local state and a ViewService backend.
package views

import (
	"sync"
	"time"

	"github.com/mesh-intelligence/tableview/pkg/types"
)

// MaxTrackedTables bounds the number of table slugs the store tracks at
// once. Initializing one more evicts the least recently written entry.
const MaxTrackedTables = 20

// entry is the tracked state for one table slug.
type entry struct {
	activeState    types.TableViewState
	viewDirty      bool
	activeViewID   string
	pendingFilters []types.FilterCondition
	lastAccessed   time.Time
}

// Slice is a read-only snapshot of one table's tracked state. ActiveViewID
// is empty when no named view is active.
type Slice struct {
	ActiveState    types.TableViewState
	ViewDirty      bool
	ActiveViewID   string
	PendingFilters []types.FilterCondition
}

// InitOptions configures a fresh store entry.
type InitOptions struct {
	// PinSelectColumn seeds the initial state with the row-selection
	// column pinned to the left edge.
	PinSelectColumn bool
}

// Store tracks the active view configuration for each table slug. All
// methods are safe for concurrent use. Mutating methods silently no-op
// when the slug has no entry; callers must InitTable first. That is a
// contract violation by the caller, not a reported error.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry

	// now is replaceable in tests to control eviction order.
	now func() time.Time
}

// NewStore creates an empty view/filter store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// InitTable creates a fresh entry for the slug. No-op if the slug is
// already tracked. When the store is at capacity the entry with the oldest
// lastAccessed is evicted first, ties broken by map iteration order.
func (s *Store) InitTable(slug string, opts InitOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[slug]; ok {
		return
	}
	if len(s.entries) >= MaxTrackedTables {
		s.evictOldestLocked()
	}

	state := types.EmptyTableViewState()
	if opts.PinSelectColumn {
		state.ColumnPinning.Left = []string{"select"}
	}
	s.entries[slug] = &entry{
		activeState:    state,
		pendingFilters: []types.FilterCondition{},
		lastAccessed:   s.now(),
	}
}

// evictOldestLocked removes the entry with the smallest lastAccessed.
// The caller must hold s.mu.
func (s *Store) evictOldestLocked() {
	var victim string
	var oldest time.Time
	first := true
	for slug, e := range s.entries {
		if first || e.lastAccessed.Before(oldest) {
			victim = slug
			oldest = e.lastAccessed
			first = false
		}
	}
	if !first {
		delete(s.entries, victim)
	}
}

// Get returns a snapshot of the slug's tracked state. The boolean is false
// when the slug is not tracked. Reading does not refresh the entry's
// eviction timestamp; only writes do.
func (s *Store) Get(slug string) (Slice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return Slice{}, false
	}
	return Slice{
		ActiveState:    e.activeState.Clone(),
		ViewDirty:      e.viewDirty,
		ActiveViewID:   e.activeViewID,
		PendingFilters: append([]types.FilterCondition{}, e.pendingFilters...),
	}, true
}

// Len returns the number of tracked slugs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// LoadViewState replaces the slug's active state with the given state
// merged onto the canonical zero value, mirrors its filters into the
// pending list so the filter editor starts synchronized, records the
// active view, and clears the dirty flag. Loading the zero state with an
// empty viewID is the canonical deactivate operation.
func (s *Store) LoadViewState(slug string, state types.TableViewState, viewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return
	}
	merged := types.WithDefaults(state).Clone()
	e.activeState = merged
	e.pendingFilters = append([]types.FilterCondition{}, merged.Filters...)
	e.activeViewID = viewID
	e.viewDirty = false
	e.lastAccessed = s.now()
}

// UpdateActiveState applies the updater to the active state. The entry
// turns dirty only when a named view is active; an ad-hoc configuration
// has nothing to diverge from. Used for non-filter mutations: sort,
// column visibility, order, sizing, pinning, density.
func (s *Store) UpdateActiveState(slug string, update func(types.TableViewState) types.TableViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return
	}
	e.activeState = update(e.activeState.Clone())
	if e.activeViewID != "" {
		e.viewDirty = true
	}
	e.lastAccessed = s.now()
}

// UpdatePendingFilter stages a filter condition for the field without
// touching the active state or the dirty flag. A nil condition clears the
// field's pending filter. Staging is side-effect-free until ApplyFilters.
func (s *Store) UpdatePendingFilter(slug, field string, condition *types.FilterCondition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return
	}
	kept := e.pendingFilters[:0]
	for _, f := range e.pendingFilters {
		if f.Field != field {
			kept = append(kept, f)
		}
	}
	e.pendingFilters = kept
	if condition != nil {
		e.pendingFilters = append(e.pendingFilters, *condition)
	}
	e.lastAccessed = s.now()
}

// ApplyFilters commits the pending filters into the active state. This is
// the single point where staged edits become live.
func (s *Store) ApplyFilters(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return
	}
	e.activeState.Filters = append([]types.FilterCondition{}, e.pendingFilters...)
	if e.activeViewID != "" {
		e.viewDirty = true
	}
	e.lastAccessed = s.now()
}

// ResetFilters clears both the pending list and the active state's
// filters.
func (s *Store) ResetFilters(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return
	}
	e.pendingFilters = []types.FilterCondition{}
	e.activeState.Filters = []types.FilterCondition{}
	if e.activeViewID != "" {
		e.viewDirty = true
	}
	e.lastAccessed = s.now()
}

// MarkClean clears the dirty flag. Called after a successful save confirms
// the active state matches the persisted view. Note the save-in-flight
// race: edits made between issuing a save and its completion are also
// marked clean. See DESIGN.md.
func (s *Store) MarkClean(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return
	}
	e.viewDirty = false
	e.lastAccessed = s.now()
}
