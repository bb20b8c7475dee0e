package types

import "errors"

// Row density presets for table rendering.
const (
	DensityCompact     = "compact"
	DensityNormal      = "normal"
	DensityComfortable = "comfortable"
)

// validDensities is the set of recognized density values.
var validDensities = map[string]bool{
	DensityCompact:     true,
	DensityNormal:      true,
	DensityComfortable: true,
}

// ValidDensity reports whether d is a recognized density value.
func ValidDensity(d string) bool {
	return validDensities[d]
}

// Filter operators. The operator vocabulary is shared with the backing
// grid engine; the store treats operators as opaque beyond validation.
const (
	OpEquals      = "eq"
	OpNotEquals   = "neq"
	OpContains    = "contains"
	OpGreaterThan = "gt"
	OpLessThan    = "lt"
	OpIn          = "in"
)

// validOperators is the set of recognized filter operators.
var validOperators = map[string]bool{
	OpEquals:      true,
	OpNotEquals:   true,
	OpContains:    true,
	OpGreaterThan: true,
	OpLessThan:    true,
	OpIn:          true,
}

// ValidOperator reports whether op is a recognized filter operator.
func ValidOperator(op string) bool {
	return validOperators[op]
}

// Sort directions.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// View state validation errors.
var (
	ErrInvalidDensity   = errors.New("invalid density value")
	ErrInvalidOperator  = errors.New("invalid filter operator")
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// FilterCondition is one filter applied to a single column field.
// Duplicate fields within a filter list are disallowed by convention;
// callers enforce uniqueness, the type does not.
type FilterCondition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Validate checks that the condition names a field and a known operator.
func (f FilterCondition) Validate() error {
	if f.Field == "" {
		return ErrInvalidName
	}
	if !ValidOperator(f.Operator) {
		return ErrInvalidOperator
	}
	return nil
}

// SortCondition is one sort criterion applied to a single column field.
type SortCondition struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Validate checks that the condition names a field and a known direction.
func (s SortCondition) Validate() error {
	if s.Field == "" {
		return ErrInvalidName
	}
	if s.Direction != DirectionAsc && s.Direction != DirectionDesc {
		return ErrInvalidDirection
	}
	return nil
}

// ColumnPinning holds the ordered column ids pinned to each table edge.
type ColumnPinning struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// TableViewState is the serializable, per-table view configuration. It is
// the wire format for both named-view payloads and live-state snapshots.
// Older persisted payloads may lack newer fields; every ingress point must
// pass incoming payloads through WithDefaults so missing fields fall back
// to the canonical zero value.
type TableViewState struct {
	Filters            []FilterCondition  `json:"filters"`
	Sort               []SortCondition    `json:"sort"`
	ColumnVisibility   map[string]bool    `json:"columnVisibility"`
	ColumnOrder        []string           `json:"columnOrder"`
	ColumnSizing       map[string]float64 `json:"columnSizing"`
	ColumnPinning      ColumnPinning      `json:"columnPinning"`
	LockedColumnSizing bool               `json:"lockedColumnSizing"`
	Density            string             `json:"density"`
	FilterOrder        []string           `json:"filterOrder"`
	FilterVisibility   map[string]bool    `json:"filterVisibility"`
}

// EmptyTableViewState returns the canonical zero view state: empty non-nil
// collections and normal density. Every stored or loaded state is produced
// by merging onto this value.
func EmptyTableViewState() TableViewState {
	return TableViewState{
		Filters:          []FilterCondition{},
		Sort:             []SortCondition{},
		ColumnVisibility: map[string]bool{},
		ColumnOrder:      []string{},
		ColumnSizing:     map[string]float64{},
		ColumnPinning:    ColumnPinning{Left: []string{}, Right: []string{}},
		Density:          DensityNormal,
		FilterOrder:      []string{},
		FilterVisibility: map[string]bool{},
	}
}

// WithDefaults merges a possibly partial view state onto the canonical zero
// value. Fields present in partial override the defaults; nil collections
// and an empty density fall back. This is the single default+override site
// for every ingress point (view load, live-state load).
func WithDefaults(partial TableViewState) TableViewState {
	out := EmptyTableViewState()
	if partial.Filters != nil {
		out.Filters = partial.Filters
	}
	if partial.Sort != nil {
		out.Sort = partial.Sort
	}
	if partial.ColumnVisibility != nil {
		out.ColumnVisibility = partial.ColumnVisibility
	}
	if partial.ColumnOrder != nil {
		out.ColumnOrder = partial.ColumnOrder
	}
	if partial.ColumnSizing != nil {
		out.ColumnSizing = partial.ColumnSizing
	}
	if partial.ColumnPinning.Left != nil {
		out.ColumnPinning.Left = partial.ColumnPinning.Left
	}
	if partial.ColumnPinning.Right != nil {
		out.ColumnPinning.Right = partial.ColumnPinning.Right
	}
	out.LockedColumnSizing = partial.LockedColumnSizing
	if partial.Density != "" {
		out.Density = partial.Density
	}
	if partial.FilterOrder != nil {
		out.FilterOrder = partial.FilterOrder
	}
	if partial.FilterVisibility != nil {
		out.FilterVisibility = partial.FilterVisibility
	}
	return out
}

// Clone returns a deep copy of the view state. Stores hand out clones so
// callers cannot mutate shared slices and maps behind the store's back.
// Nil-ness of each collection is preserved so cloning does not change how
// the state serializes.
func (s TableViewState) Clone() TableViewState {
	out := s
	out.Filters = cloneSlice(s.Filters)
	out.Sort = cloneSlice(s.Sort)
	out.ColumnOrder = cloneSlice(s.ColumnOrder)
	out.FilterOrder = cloneSlice(s.FilterOrder)
	out.ColumnPinning.Left = cloneSlice(s.ColumnPinning.Left)
	out.ColumnPinning.Right = cloneSlice(s.ColumnPinning.Right)
	out.ColumnVisibility = cloneMap(s.ColumnVisibility)
	out.FilterVisibility = cloneMap(s.FilterVisibility)
	out.ColumnSizing = cloneMap(s.ColumnSizing)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
