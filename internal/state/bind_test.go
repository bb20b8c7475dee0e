package state

import (
	"testing"

	"github.com/mesh-intelligence/tableview/pkg/types"
)

func TestBind(t *testing.T) {
	t.Run("row models follow enabled features", func(t *testing.T) {
		s := NewStore()
		b := Bind(s, "t1", BindOptions{EnableSorting: true, EnablePagination: true})
		if !b.RowModels.Core {
			t.Fatal("core row model is always requested")
		}
		if !b.RowModels.Sorted || b.RowModels.Filtered || !b.RowModels.Paginated {
			t.Fatalf("expected sorted+paginated only, got %+v", b.RowModels)
		}
	})

	t.Run("callbacks write through to the store", func(t *testing.T) {
		s := NewStore()
		b := Bind(s, "t1", BindOptions{})

		b.OnGlobalFilterChange(types.Value("needle"))
		b.OnPaginationChange(types.Updater(func(p types.Pagination) types.Pagination {
			p.PageIndex = 3
			return p
		}))

		st := b.State()
		if st.GlobalFilter != "needle" {
			t.Fatalf("expected global filter set, got %q", st.GlobalFilter)
		}
		if st.Pagination.PageIndex != 3 {
			t.Fatalf("expected page 3, got %d", st.Pagination.PageIndex)
		}
	})

	t.Run("rebinding a slug keeps the live slice", func(t *testing.T) {
		s := NewStore()
		b1 := Bind(s, "t1", BindOptions{DefaultPageSize: 25})
		b1.OnGlobalFilterChange(types.Value("kept"))

		b2 := Bind(s, "t1", BindOptions{DefaultPageSize: 50})
		st := b2.State()
		if st.GlobalFilter != "kept" {
			t.Fatal("rebinding must not reset the slice")
		}
		if st.Pagination.PageSize != 25 {
			t.Fatalf("first bind's defaults stick, got %d", st.Pagination.PageSize)
		}
	})

	t.Run("bind defaults resolve once", func(t *testing.T) {
		s := NewStore()
		b := Bind(s, "t1", BindOptions{
			DefaultSorting:  []types.SortCondition{{Field: "createdAt", Direction: types.DirectionDesc}},
			PinSelectColumn: true,
		})
		st := b.State()
		if len(st.Sorting) != 1 || st.Sorting[0].Field != "createdAt" {
			t.Fatalf("expected default sorting, got %+v", st.Sorting)
		}
		if len(st.ColumnPinning.Left) != 1 || st.ColumnPinning.Left[0] != "select" {
			t.Fatalf("expected select pinned, got %+v", st.ColumnPinning)
		}
	})
}
