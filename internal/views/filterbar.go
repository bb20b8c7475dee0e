package views

import "github.com/mesh-intelligence/tableview/pkg/types"

// FilterBar coordinates the filter-bar surface for one table: merged
// display order, show/hide flags, and reorder commits. The live filter
// set (fields declared by the table's filterable columns) is supplied per
// call because it belongs to the column configuration, not the store.
type FilterBar struct {
	store *Store
	slug  string

	// ClearCondition, when set, is invoked with a field whose filter was
	// hidden while carrying a condition, so the caller can drop the grid
	// engine's column filter as well. A hidden filter must not silently
	// keep affecting results.
	ClearCondition func(field string)
}

// NewFilterBar creates a filter bar for the slug backed by the store.
func NewFilterBar(store *Store, slug string) *FilterBar {
	return &FilterBar{store: store, slug: slug}
}

// Order returns the effective display order for the live filter set:
// stored customization first, newly introduced fields appended.
func (b *FilterBar) Order(live []string) []string {
	slice, ok := b.store.Get(b.slug)
	if !ok {
		return EffectiveOrder(nil, live)
	}
	return EffectiveOrder(slice.ActiveState.FilterOrder, live)
}

// Visible returns the effective order restricted to visible fields.
func (b *FilterBar) Visible(live []string) []string {
	slice, ok := b.store.Get(b.slug)
	if !ok {
		return EffectiveOrder(nil, live)
	}
	order := EffectiveOrder(slice.ActiveState.FilterOrder, live)
	return VisibleFields(order, slice.ActiveState.FilterVisibility)
}

// Reorder commits a drag-reorder of the visible subset, reconstructing
// the full order so hidden fields keep their slots, and persists it as
// the new stored order.
func (b *FilterBar) Reorder(live, reorderedVisible []string) {
	slice, ok := b.store.Get(b.slug)
	if !ok {
		return
	}
	effective := EffectiveOrder(slice.ActiveState.FilterOrder, live)
	next := CommitReorder(effective, reorderedVisible)
	b.store.UpdateActiveState(b.slug, func(s types.TableViewState) types.TableViewState {
		s.FilterOrder = next
		return s
	})
}

// SetVisible flips a filter's visibility flag. Hiding a filter also
// clears its staged and applied condition and notifies ClearCondition.
func (b *FilterBar) SetVisible(field string, visible bool) {
	cleared := b.store.setFilterVisibility(b.slug, field, visible)
	if cleared && b.ClearCondition != nil {
		b.ClearCondition(field)
	}
}

// setFilterVisibility records the flag on the active state. When hiding,
// any pending or applied condition for the field is removed; the return
// reports whether an applied condition was dropped.
func (s *Store) setFilterVisibility(slug, field string, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[slug]
	if !ok {
		return false
	}
	if e.activeState.FilterVisibility == nil {
		e.activeState.FilterVisibility = map[string]bool{}
	}
	e.activeState.FilterVisibility[field] = visible

	cleared := false
	if !visible {
		kept := e.pendingFilters[:0]
		for _, f := range e.pendingFilters {
			if f.Field != field {
				kept = append(kept, f)
			}
		}
		e.pendingFilters = kept

		filters := make([]types.FilterCondition, 0, len(e.activeState.Filters))
		for _, f := range e.activeState.Filters {
			if f.Field == field {
				cleared = true
				continue
			}
			filters = append(filters, f)
		}
		e.activeState.Filters = filters
	}
	if e.activeViewID != "" {
		e.viewDirty = true
	}
	e.lastAccessed = s.now()
	return cleared
}
