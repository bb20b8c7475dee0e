// Package state implements the grid-engine-facing table state layer: a
// keyed registry of per-table state slices with value-or-updater setters,
// and the binding adapter that wires a slice into a grid engine's
// state/callback contract.
package state

import (
	"sync"

	"github.com/mesh-intelligence/tableview/pkg/types"
)

// Store holds one TableState per slug. Entries are created by InitTable
// and live until an explicit ResetTable; the store has no eviction policy.
// Cleanup is the caller's responsibility by contract, typically when a
// table surface is permanently torn down.
//
// Setters resolve their Update against the value stored at call time, not
// a captured snapshot. Grid engines batch transitions and each updater in
// the batch must observe the previous one's result.
type Store struct {
	mu     sync.Mutex
	tables map[string]*types.TableState
}

// NewStore creates an empty table state store.
func NewStore() *Store {
	return &Store{tables: make(map[string]*types.TableState)}
}

// Defaults is the partial initial state merged onto the hardcoded zero
// state by InitTable. Zero-valued fields fall back.
type Defaults struct {
	Sorting         []types.SortCondition
	PageSize        int
	PinSelectColumn bool
}

// InitTable creates the slug's state slice. No-op when the slice already
// exists; the first caller's defaults win.
func (s *Store) InitTable(slug string, defaults Defaults) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[slug]; ok {
		return
	}
	st := types.EmptyTableState()
	if defaults.Sorting != nil {
		st.Sorting = append([]types.SortCondition{}, defaults.Sorting...)
	}
	if defaults.PageSize > 0 {
		st.Pagination.PageSize = defaults.PageSize
	}
	if defaults.PinSelectColumn {
		st.ColumnPinning.Left = []string{"select"}
	}
	s.tables[slug] = &st
}

// ResetTable removes the slug's state slice entirely.
func (s *Store) ResetTable(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, slug)
}

// Get returns a copy of the slug's state slice. The boolean is false when
// the slug has no slice.
func (s *Store) Get(slug string) (types.TableState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tables[slug]
	if !ok {
		return types.TableState{}, false
	}
	return st.Clone(), true
}

// Len returns the number of tracked slices.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables)
}

// Per-field setters. Each is a no-op when the slug has no slice.

// SetSorting updates the sort criteria.
func (s *Store) SetSorting(slug string, u types.Update[[]types.SortCondition]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.tables[slug]; ok {
		st.Sorting = u.Resolve(st.Sorting)
	}
}

// SetColumnFilters updates the engine-level column filters.
func (s *Store) SetColumnFilters(slug string, u types.Update[[]types.FilterCondition]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.tables[slug]; ok {
		st.ColumnFilters = u.Resolve(st.ColumnFilters)
	}
}

// SetGlobalFilter updates the global search term.
func (s *Store) SetGlobalFilter(slug string, u types.Update[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.tables[slug]; ok {
		st.GlobalFilter = u.Resolve(st.GlobalFilter)
	}
}

// SetPagination updates the page index and size.
func (s *Store) SetPagination(slug string, u types.Update[types.Pagination]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.tables[slug]; ok {
		st.Pagination = u.Resolve(st.Pagination)
	}
}

// SetColumnVisibility updates the column visibility map.
func (s *Store) SetColumnVisibility(slug string, u types.Update[map[string]bool]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.tables[slug]; ok {
		st.ColumnVisibility = u.Resolve(st.ColumnVisibility)
	}
}

// SetColumnPinning updates the pinned column lists.
func (s *Store) SetColumnPinning(slug string, u types.Update[types.ColumnPinning]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.tables[slug]; ok {
		st.ColumnPinning = u.Resolve(st.ColumnPinning)
	}
}

// SetRowSelection updates the selected row map.
func (s *Store) SetRowSelection(slug string, u types.Update[map[string]bool]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.tables[slug]; ok {
		st.RowSelection = u.Resolve(st.RowSelection)
	}
}
