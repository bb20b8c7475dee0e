package state

import "github.com/mesh-intelligence/tableview/pkg/types"

// BindOptions selects the grid features a table enables and the defaults
// resolved once at bind time.
type BindOptions struct {
	DefaultSorting   []types.SortCondition
	DefaultPageSize  int
	PinSelectColumn  bool
	EnableSorting    bool
	EnableFiltering  bool
	EnablePagination bool
}

// RowModels lists which row models the grid engine should compute for the
// bound table. The core model is always requested; the rest follow the
// enabled features.
type RowModels struct {
	Core      bool
	Sorted    bool
	Filtered  bool
	Paginated bool
}

// Binding is the contract handed to the grid engine for one table: a live
// state accessor, one change callback per mutable field, and the row
// models to compute. The engine invokes each callback with either a
// literal next value or an updater of the previous value.
type Binding struct {
	Slug      string
	State     func() types.TableState
	RowModels RowModels

	OnSortingChange          func(types.Update[[]types.SortCondition])
	OnColumnFiltersChange    func(types.Update[[]types.FilterCondition])
	OnGlobalFilterChange     func(types.Update[string])
	OnColumnVisibilityChange func(types.Update[map[string]bool])
	OnRowSelectionChange     func(types.Update[map[string]bool])
	OnPaginationChange       func(types.Update[types.Pagination])
	OnColumnPinningChange    func(types.Update[types.ColumnPinning])
}

// Bind initializes the slug's state slice from the options and returns
// the engine-facing binding. Defaults are resolved here once; binding the
// same slug again reuses the existing slice (first caller wins).
func Bind(store *Store, slug string, opts BindOptions) Binding {
	store.InitTable(slug, Defaults{
		Sorting:         opts.DefaultSorting,
		PageSize:        opts.DefaultPageSize,
		PinSelectColumn: opts.PinSelectColumn,
	})

	return Binding{
		Slug: slug,
		State: func() types.TableState {
			st, _ := store.Get(slug)
			return st
		},
		RowModels: RowModels{
			Core:      true,
			Sorted:    opts.EnableSorting,
			Filtered:  opts.EnableFiltering,
			Paginated: opts.EnablePagination,
		},
		OnSortingChange: func(u types.Update[[]types.SortCondition]) {
			store.SetSorting(slug, u)
		},
		OnColumnFiltersChange: func(u types.Update[[]types.FilterCondition]) {
			store.SetColumnFilters(slug, u)
		},
		OnGlobalFilterChange: func(u types.Update[string]) {
			store.SetGlobalFilter(slug, u)
		},
		OnColumnVisibilityChange: func(u types.Update[map[string]bool]) {
			store.SetColumnVisibility(slug, u)
		},
		OnRowSelectionChange: func(u types.Update[map[string]bool]) {
			store.SetRowSelection(slug, u)
		},
		OnPaginationChange: func(u types.Update[types.Pagination]) {
			store.SetPagination(slug, u)
		},
		OnColumnPinningChange: func(u types.Update[types.ColumnPinning]) {
			store.SetColumnPinning(slug, u)
		},
	}
}
