package types

// Pagination is the grid engine's page position and size.
type Pagination struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// DefaultPageSize is the page size used when a table declares none.
const DefaultPageSize = 10

// TableState is the ephemeral, grid-engine-facing state slice for one
// table. It is what the engine reads through the binding and writes back
// through the per-field change callbacks. Unlike TableViewState it is
// never persisted.
type TableState struct {
	Sorting          []SortCondition   `json:"sorting"`
	ColumnFilters    []FilterCondition `json:"columnFilters"`
	GlobalFilter     string            `json:"globalFilter"`
	Pagination       Pagination        `json:"pagination"`
	ColumnVisibility map[string]bool   `json:"columnVisibility"`
	ColumnPinning    ColumnPinning     `json:"columnPinning"`
	RowSelection     map[string]bool   `json:"rowSelection"`
}

// EmptyTableState returns the hardcoded zero state a table slice starts
// from before per-table defaults are merged in.
func EmptyTableState() TableState {
	return TableState{
		Sorting:          []SortCondition{},
		ColumnFilters:    []FilterCondition{},
		GlobalFilter:     "",
		Pagination:       Pagination{PageIndex: 0, PageSize: DefaultPageSize},
		ColumnVisibility: map[string]bool{},
		ColumnPinning:    ColumnPinning{Left: []string{}, Right: []string{}},
		RowSelection:     map[string]bool{},
	}
}

// Clone returns a deep copy of the table state.
func (s TableState) Clone() TableState {
	out := s
	out.Sorting = cloneSlice(s.Sorting)
	out.ColumnFilters = cloneSlice(s.ColumnFilters)
	out.ColumnPinning.Left = cloneSlice(s.ColumnPinning.Left)
	out.ColumnPinning.Right = cloneSlice(s.ColumnPinning.Right)
	out.ColumnVisibility = cloneMap(s.ColumnVisibility)
	out.RowSelection = cloneMap(s.RowSelection)
	return out
}
