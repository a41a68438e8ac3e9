package registry

import (
	"errors"
	"slices"
	"testing"

	"tally/internal/core"
)

func TestAllOrder(t *testing.T) {
	r := New()
	want := []string{"groceries", "transportation", "entertainment", "utilities"}
	if got := r.All(); !slices.Equal(got, want) {
		t.Fatalf("expected defaults %v, got %v", want, got)
	}

	if err := r.AddCustom("rent"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := r.AddCustom("books"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want = append(want, "rent", "books")
	if got := r.All(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddCustomDuplicate(t *testing.T) {
	r := New()
	cases := []string{"groceries", "Groceries", "GROCERIES", " groceries "}
	for _, name := range cases {
		if err := r.AddCustom(name); !errors.Is(err, core.ErrDuplicateCategory) {
			t.Fatalf("%q: expected ErrDuplicateCategory, got %v", name, err)
		}
	}
	if len(r.Custom()) != 0 {
		t.Fatalf("registry changed on failed add: %v", r.Custom())
	}

	if err := r.AddCustom("rent"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := r.AddCustom("Rent"); !errors.Is(err, core.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory for custom collision, got %v", err)
	}
}

func TestAddCustomNormalizes(t *testing.T) {
	r := New()
	if err := r.AddCustom("  Pet Care  "); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !r.Contains("pet care") || !r.Contains("PET CARE") {
		t.Fatalf("expected case-insensitive membership")
	}
	if err := r.AddCustom("   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestRenameCustom(t *testing.T) {
	r := New()
	_ = r.AddCustom("rent")
	_ = r.AddCustom("books")

	if err := r.RenameCustom("rent", "housing"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	// Position preserved.
	if got := r.Custom(); !slices.Equal(got, []string{"housing", "books"}) {
		t.Fatalf("unexpected custom set %v", got)
	}

	if err := r.RenameCustom("missing", "x"); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	// Defaults are not renameable.
	if err := r.RenameCustom("groceries", "x"); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for default, got %v", err)
	}
	if err := r.RenameCustom("books", "groceries"); !errors.Is(err, core.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestRemoveCustom(t *testing.T) {
	r := New()
	_ = r.AddCustom("rent")

	if err := r.RemoveCustom("RENT"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if r.Contains("rent") {
		t.Fatalf("rent still present after removal")
	}
	if err := r.RemoveCustom("rent"); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	// Defaults are not removable.
	if err := r.RemoveCustom("utilities"); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for default, got %v", err)
	}
	if !r.Contains("utilities") {
		t.Fatalf("default removed")
	}
}

func TestByIndex(t *testing.T) {
	r := New()
	_ = r.AddCustom("rent")

	name, err := r.ByIndex(0)
	if err != nil || name != "groceries" {
		t.Fatalf("expected groceries, got %q (err=%v)", name, err)
	}
	name, err = r.ByIndex(4)
	if err != nil || name != "rent" {
		t.Fatalf("expected rent, got %q (err=%v)", name, err)
	}
	for _, i := range []int{-1, 5, 100} {
		if _, err := r.ByIndex(i); !errors.Is(err, core.ErrInvalidSelection) {
			t.Fatalf("index %d: expected ErrInvalidSelection, got %v", i, err)
		}
	}
}

func TestNewWithCustomDropsCollisions(t *testing.T) {
	r := NewWithCustom([]string{"rent", "Rent", "groceries", "books"})
	if got := r.Custom(); !slices.Equal(got, []string{"rent", "books"}) {
		t.Fatalf("unexpected custom set %v", got)
	}
}
