package payload

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/profileforge/pkg/types"
)

func testTargets() map[types.Target]string {
	return map[types.Target]string{types.TargetIOS: "5.0", types.TargetMacOS: "10.7"}
}

// noteFamily is a small nested family: a required Text, an optional Label.
var noteFamily = &Family{
	Name: "test-note",
	Schema: types.NewSchema(
		types.Field{Name: "Text", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: testTargets()}},
		types.Field{Name: "Label", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: testTargets()}},
	),
}

// newBundleFamily exercises every composite shape: a Class field with a
// factory, collections of Class elements, a fixed field, and identity
// fields for PopulateIDs.
func newBundleFamily() *Family {
	f := &Family{
		Name: "test-bundle",
		Schema: types.NewSchema(
			types.Field{Name: "Kind", Desc: types.FieldDescriptor{Type: types.TypeString, FixedValue: "bundle", Targets: testTargets()}},
			types.Field{Name: "BundleID", Desc: types.FieldDescriptor{Type: types.TypeIdentifier, Targets: testTargets()}},
			types.Field{Name: "BundleUUID", Desc: types.FieldDescriptor{Type: types.TypeUUID, Targets: testTargets()}},
			types.Field{Name: "Cover", Desc: types.FieldDescriptor{Type: types.TypeClass, Optional: true, Targets: testTargets()}},
			types.Field{Name: "Notes", Desc: types.FieldDescriptor{Type: types.TypeArray, Subtype: types.TypeClass, Targets: testTargets()}},
			types.Field{Name: "Named", Desc: types.FieldDescriptor{Type: types.TypeDict, Subtype: types.TypeClass, Optional: true, Targets: testTargets()}},
			types.Field{Name: "Tags", Desc: types.FieldDescriptor{Type: types.TypeArray, Subtype: types.TypeString, Optional: true, Targets: testTargets()}},
		),
	}
	f.Factories = map[string]Factory{"Cover": noteFamily.New}
	return f
}

func newNote(t *testing.T, text string) *Payload {
	t.Helper()
	n := noteFamily.New()
	if err := n.Set("Text", text); err != nil {
		t.Fatalf("Set(Text): %v", err)
	}
	return n
}

func TestContainerUnknownField(t *testing.T) {
	p := noteFamily.New()
	if _, err := p.Get("Nope"); !errors.Is(err, types.ErrUnknownField) {
		t.Errorf("Get error = %v, want ErrUnknownField", err)
	}
	if err := p.Set("Nope", "x"); !errors.Is(err, types.ErrUnknownField) {
		t.Errorf("Set error = %v, want ErrUnknownField", err)
	}
}

func TestContainerSetValidatesBeforeMutation(t *testing.T) {
	p := noteFamily.New()
	if err := p.Set("Text", ""); !errors.Is(err, types.ErrInvalidValue) {
		t.Fatalf("Set error = %v, want ErrInvalidValue", err)
	}
	if p.Fields().IsSet("Text") {
		t.Error("failed Set materialized the field")
	}
	if err := p.Set("Text", "hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := p.Get("Text"); v != "hello" {
		t.Errorf("Get(Text) = %v", v)
	}
}

func TestLazyMaterialization(t *testing.T) {
	p := newBundleFamily().New()
	c := p.Fields()

	if c.IsSet("Notes") {
		t.Fatal("Notes set before first access")
	}
	v, err := c.Get("Notes")
	if err != nil {
		t.Fatalf("Get(Notes): %v", err)
	}
	arr, ok := v.(*Array)
	if !ok || arr.Len() != 0 {
		t.Fatalf("Get(Notes) = %T len %v, want empty *Array", v, arr.Len())
	}
	if !c.IsSet("Notes") {
		t.Error("Notes not set after first access")
	}

	// In-place mutation through the materialized handle is visible on the
	// next read.
	if err := arr.Append(newNote(t, "a")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	again, _ := c.Get("Notes")
	if again.(*Array).Len() != 1 {
		t.Error("mutation through the handle was lost")
	}

	// Class fields with a factory materialize a fresh nested payload.
	cv, err := c.Get("Cover")
	if err != nil {
		t.Fatalf("Get(Cover): %v", err)
	}
	if _, ok := cv.(*Payload); !ok {
		t.Fatalf("Get(Cover) = %T, want *Payload", cv)
	}

	// A plain scalar stays absent.
	if v, err := c.Get("BundleID"); err != nil || v != nil {
		t.Errorf("Get(BundleID) = %v, %v, want nil, nil", v, err)
	}
	if c.IsSet("BundleID") {
		t.Error("scalar Get materialized a value")
	}
}

func TestFixedFieldImmutable(t *testing.T) {
	p := newBundleFamily().New()
	v, err := p.Get("Kind")
	if err != nil || v != "bundle" {
		t.Errorf("Get(Kind) = %v, %v, want bundle", v, err)
	}
	if !p.Fields().IsSet("Kind") {
		t.Error("fixed field reads as unset")
	}
	if err := p.Set("Kind", "other"); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("Set error = %v, want ErrInvalidValue", err)
	}
}

func TestContainerBulkCollectionSet(t *testing.T) {
	p := newBundleFamily().New()
	if err := p.Set("Tags", []any{"a", "b"}); err != nil {
		t.Fatalf("Set(Tags): %v", err)
	}
	v, _ := p.Get("Tags")
	if v.(*Array).Len() != 2 {
		t.Errorf("Tags len = %d, want 2", v.(*Array).Len())
	}

	// One bad element rejects the whole replacement.
	if err := p.Set("Tags", []any{"ok", 7}); !errors.Is(err, types.ErrInvalidValue) {
		t.Fatalf("Set error = %v, want ErrInvalidValue", err)
	}
	v, _ = p.Get("Tags")
	if v.(*Array).Len() != 2 {
		t.Error("failed bulk Set replaced the stored array")
	}

	if err := p.Set("Named", map[string]any{"one": newNote(t, "x")}); err != nil {
		t.Fatalf("Set(Named): %v", err)
	}
}

func TestClassIdentityCheck(t *testing.T) {
	p := newBundleFamily().New()
	if err := p.Set("Cover", "not a payload"); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("Set error = %v, want ErrInvalidValue", err)
	}
	// The Cover factory constructs test-note payloads; another family is
	// rejected.
	if err := p.Set("Cover", newBundleFamily().New()); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("Set error = %v, want ErrInvalidValue", err)
	}
	if err := p.Set("Cover", newNote(t, "front")); err != nil {
		t.Errorf("Set(Cover): %v", err)
	}
}

func TestContainerEnumeration(t *testing.T) {
	p := noteFamily.New()
	p.Set("Label", "l")
	p.Set("Text", "t")
	got := p.Fields().Fields()
	if len(got) != 2 || got[0] != "Label" || got[1] != "Text" {
		t.Errorf("Fields() = %v, want insertion order [Label Text]", got)
	}

	p.Fields().Delete("Label")
	if got := p.Fields().Fields(); len(got) != 1 || got[0] != "Text" {
		t.Errorf("Fields() after delete = %v", got)
	}

	p.Fields().Clear()
	if p.Fields().Len() != 0 {
		t.Error("Clear left values behind")
	}
}

func TestPopulateIDs(t *testing.T) {
	f := newBundleFamily()
	p := f.New()

	notes, _ := p.Get("Notes")
	notes.(*Array).Append(newNote(t, "n1"))
	p.Set("Cover", newNote(t, "front"))

	if err := p.PopulateIDs(); err != nil {
		t.Fatalf("PopulateIDs: %v", err)
	}
	if !p.Fields().IsSet("BundleID") || !p.Fields().IsSet("BundleUUID") {
		t.Fatal("identity fields left unset")
	}
	id1, _ := p.Get("BundleID")
	uuid1, _ := p.Get("BundleUUID")
	if _, ok := uuid1.(uuid.UUID); !ok {
		t.Fatalf("BundleUUID = %T, want uuid.UUID", uuid1)
	}

	// Second call never overwrites.
	if err := p.PopulateIDs(); err != nil {
		t.Fatalf("PopulateIDs: %v", err)
	}
	id2, _ := p.Get("BundleID")
	uuid2, _ := p.Get("BundleUUID")
	if id1 != id2 || uuid1 != uuid2 {
		t.Error("PopulateIDs overwrote an already-set identity")
	}
}

func TestExportable(t *testing.T) {
	t.Run("required scalar", func(t *testing.T) {
		p := noteFamily.New()
		if p.Exportable() {
			t.Error("exportable with required Text unset")
		}
		p.Set("Text", "hello")
		if !p.Exportable() {
			t.Error("not exportable with required Text set")
		}
	})

	t.Run("required array must be non-empty", func(t *testing.T) {
		f := newBundleFamily()
		p := f.New()
		p.Set("BundleID", "com.example.bundle")
		p.Set("BundleUUID", uuid.New())

		// Unset required array.
		if p.Exportable() {
			t.Error("exportable with required Notes unset")
		}
		// Materialized but empty.
		notes, _ := p.Get("Notes")
		if p.Exportable() {
			t.Error("exportable with required Notes empty")
		}
		notes.(*Array).Append(newNote(t, "n"))
		if !p.Exportable() {
			t.Error("not exportable with one note appended")
		}
	})

	t.Run("nested payloads must themselves be exportable", func(t *testing.T) {
		f := newBundleFamily()
		p := f.New()
		p.Set("BundleID", "com.example.bundle")
		p.Set("BundleUUID", uuid.New())

		incomplete := noteFamily.New() // Text unset
		notes, _ := p.Get("Notes")
		notes.(*Array).Append(incomplete)
		if p.Exportable() {
			t.Error("exportable with an incomplete nested payload")
		}
		incomplete.Set("Text", "done")
		if !p.Exportable() {
			t.Error("not exportable after completing the nested payload")
		}
	})
}

func TestValidationChain(t *testing.T) {
	// A family check that claims one field with an enum, and rejects
	// another outright, leaving the rest to the defaults.
	f := &Family{
		Name: "test-checked",
		Schema: types.NewSchema(
			types.Field{Name: "Mode", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: testTargets()}},
			types.Field{Name: "Free", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: testTargets()}},
		),
		Checks: []Check{
			func(p *Payload, field string, raw any) (any, bool, error) {
				if field != "Mode" {
					return nil, false, nil
				}
				s, ok := raw.(string)
				if !ok || (s != "on" && s != "off") {
					return nil, false, fmt.Errorf("%w: Mode must be on or off", types.ErrInvalidValue)
				}
				return s, true, nil
			},
		},
	}
	p := f.New()
	if err := p.Set("Mode", "sideways"); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("Set error = %v, want ErrInvalidValue", err)
	}
	if err := p.Set("Mode", "on"); err != nil {
		t.Errorf("Set(Mode, on): %v", err)
	}
	// Unclaimed field falls through to the generic string validator.
	if err := p.Set("Free", "anything at all"); err != nil {
		t.Errorf("Set(Free): %v", err)
	}
	if err := p.Set("Free", ""); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("Set(Free, empty) error = %v, want ErrInvalidValue", err)
	}
}

func TestRegistry(t *testing.T) {
	f := &Family{Name: "test-registry-entry", Schema: types.NewSchema()}
	Register(f)
	got, ok := Lookup("test-registry-entry")
	if !ok || got != f {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}
	if _, ok := Lookup("test-registry-missing"); ok {
		t.Error("Lookup found an unregistered family")
	}
	found := false
	for _, name := range Families() {
		if name == "test-registry-entry" {
			found = true
		}
	}
	if !found {
		t.Error("Families() missing registered name")
	}
}
