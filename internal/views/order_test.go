package views

import (
	"reflect"
	"testing"
)

func TestEffectiveOrder(t *testing.T) {
	tests := []struct {
		name   string
		stored []string
		live   []string
		want   []string
	}{
		{
			name:   "stale dropped and new appended",
			stored: []string{"a", "b", "c"},
			live:   []string{"b", "c", "d"},
			want:   []string{"b", "c", "d"},
		},
		{
			name:   "empty stored order yields live order",
			stored: nil,
			live:   []string{"x", "y"},
			want:   []string{"x", "y"},
		},
		{
			name:   "customization preserved for surviving fields",
			stored: []string{"c", "a"},
			live:   []string{"a", "b", "c"},
			want:   []string{"c", "a", "b"},
		},
		{
			name:   "empty live set yields empty order",
			stored: []string{"a", "b"},
			live:   nil,
			want:   []string{},
		},
		{
			name:   "duplicate stored identifiers collapse",
			stored: []string{"a", "a", "b"},
			live:   []string{"a", "b"},
			want:   []string{"a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveOrder(tt.stored, tt.live)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVisibleFields(t *testing.T) {
	t.Run("absence defaults to visible", func(t *testing.T) {
		got := VisibleFields([]string{"a", "b", "c"}, map[string]bool{"b": false})
		if !reflect.DeepEqual(got, []string{"a", "c"}) {
			t.Fatalf("expected [a c], got %v", got)
		}
	})

	t.Run("explicit true stays visible", func(t *testing.T) {
		got := VisibleFields([]string{"a", "b"}, map[string]bool{"a": true, "b": false})
		if !reflect.DeepEqual(got, []string{"a"}) {
			t.Fatalf("expected [a], got %v", got)
		}
	})

	t.Run("nil visibility shows everything", func(t *testing.T) {
		got := VisibleFields([]string{"a", "b"}, nil)
		if !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Fatalf("expected [a b], got %v", got)
		}
	})
}

func TestCommitReorder(t *testing.T) {
	t.Run("moved identifier lands after the ones it passed", func(t *testing.T) {
		effective := []string{"a", "b", "c"}
		// Visible item at position 0 dragged to position 2.
		got := CommitReorder(effective, []string{"b", "c", "a"})
		if !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
			t.Fatalf("expected [b c a], got %v", got)
		}
	})

	t.Run("hidden identifiers keep their slots", func(t *testing.T) {
		// h1 and h2 are hidden, so only a, b, c were reordered.
		effective := []string{"a", "h1", "b", "h2", "c"}
		got := CommitReorder(effective, []string{"c", "a", "b"})
		if !reflect.DeepEqual(got, []string{"c", "h1", "a", "h2", "b"}) {
			t.Fatalf("expected hidden slots preserved, got %v", got)
		}
	})

	t.Run("reorder of the full set is a plain replacement", func(t *testing.T) {
		effective := []string{"a", "b"}
		got := CommitReorder(effective, []string{"b", "a"})
		if !reflect.DeepEqual(got, []string{"b", "a"}) {
			t.Fatalf("expected [b a], got %v", got)
		}
	})
}
