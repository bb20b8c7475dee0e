package types

import (
	"reflect"
	"testing"
)

func TestUpdateResolve(t *testing.T) {
	t.Run("literal value replaces previous", func(t *testing.T) {
		u := Value([]string{"b"})
		got := u.Resolve([]string{"a"})
		if !reflect.DeepEqual(got, []string{"b"}) {
			t.Fatalf("expected [b], got %v", got)
		}
	})

	t.Run("updater transforms previous", func(t *testing.T) {
		u := Updater(func(prev int) int { return prev + 1 })
		if got := u.Resolve(41); got != 42 {
			t.Fatalf("expected 42, got %d", got)
		}
	})

	t.Run("zero literal is a valid next value", func(t *testing.T) {
		u := Value("")
		if got := u.Resolve("stale"); got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}
