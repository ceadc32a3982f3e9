package payload

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/profileforge/pkg/types"
)

func TestDictSetGetDelete(t *testing.T) {
	d := NewDict(types.TypeString)
	if err := d.Set("en", "Hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := d.Set("de", "Hallo"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if v, ok := d.Get("en"); !ok || v != "Hello" {
		t.Errorf("Get(en) = %v, %v", v, ok)
	}

	// Keyed overwrite is permitted, unlike arrays.
	if err := d.Set("en", "Hi"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _ := d.Get("en"); v != "Hi" {
		t.Errorf("Get(en) after overwrite = %v", v)
	}
	keys := d.Keys()
	if len(keys) != 2 || keys[0] != "en" || keys[1] != "de" {
		t.Errorf("Keys() = %v, want [en de]", keys)
	}

	d.Delete("en")
	if _, ok := d.Get("en"); ok {
		t.Error("Get(en) found a deleted key")
	}
	d.Delete("never-existed")
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestDictRejectsBadValues(t *testing.T) {
	d := NewDict(types.TypeInteger)
	if err := d.Set("n", "abc"); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("Set error = %v, want ErrInvalidValue", err)
	}
	if err := d.Set("", 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("empty key error = %v, want ErrInvalidValue", err)
	}
	if d.Len() != 0 {
		t.Errorf("failed Set mutated the dict: Len() = %d", d.Len())
	}
}

func TestDictClear(t *testing.T) {
	d := NewDict(types.TypeString)
	d.Set("a", "x")
	d.Set("b", "y")
	d.Clear()
	if d.Len() != 0 || len(d.Keys()) != 0 {
		t.Errorf("Clear left entries behind")
	}
}
