package formstate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func itemSchema() FormSchema {
	return FormSchema{
		Fields: map[string]FieldSchema{
			"sku": {Default: DefaultOf("")},
			"qty": {
				Default: DefaultOf(1),
				Validate: func(value any, _ FieldSchema, _ *Form) string {
					if v, ok := value.(int); ok && v < 1 {
						return "quantity must be positive"
					}
					return ""
				},
			},
		},
	}
}

func TestCollection_AddAttachesToParent(t *testing.T) {
	root := New(itemSchema(), nil)
	collection := NewCollection(itemSchema(), root)

	member := collection.Add()
	if member.Parent() != root {
		t.Fatal("member must attach to the collection's parent form")
	}
	if got := collection.Len(); got != 1 {
		t.Fatalf("expected 1 member, got %d", got)
	}
	if got := len(root.Children()); got != 1 {
		t.Fatalf("expected member registered as root child, got %d children", got)
	}
}

func TestCollection_AddWithSchemaOverride(t *testing.T) {
	collection := NewCollection(itemSchema(), nil)
	override := FormSchema{
		Fields: map[string]FieldSchema{
			"sku": {Default: DefaultOf("custom")},
		},
	}
	member := collection.AddWithSchema(override)

	field, err := member.Get("sku")
	if err != nil {
		t.Fatal(err)
	}
	if field.Value != "custom" {
		t.Fatalf("expected override default, got %v", field.Value)
	}
}

func TestCollection_LifecycleForwarding(t *testing.T) {
	collection := NewCollection(itemSchema(), nil)
	a := collection.Add()
	b := collection.Add()
	if err := a.Set("qty", 0); err != nil {
		t.Fatal(err)
	}

	collection.Validate()
	if !collection.Validated() {
		t.Fatal("collection must report validated after forwarding validate")
	}
	if collection.Valid() {
		t.Fatal("collection with a failing member must not be valid")
	}

	field, _ := a.Get("qty")
	if field.ValidationMessage != "quantity must be positive" {
		t.Fatalf("unexpected message %q", field.ValidationMessage)
	}

	collection.ClearValidations()
	if collection.Validated() {
		t.Fatal("clear validations must drop every member's flag")
	}
	field, _ = a.Get("qty")
	if field.ValidationMessage != "" {
		t.Fatalf("expected cleared message, got %q", field.ValidationMessage)
	}

	if err := b.Set("sku", "abc"); err != nil {
		t.Fatal(err)
	}
	collection.ClearFields()
	field, _ = b.Get("sku")
	if field.Value != "" {
		t.Fatalf("expected default after ClearFields, got %v", field.Value)
	}
}

func TestCollection_EmptyIsVacuouslyTrue(t *testing.T) {
	collection := NewCollection(itemSchema(), nil)
	if !collection.Validated() || !collection.Valid() {
		t.Fatal("empty collection must be vacuously validated and valid")
	}
}

func TestCollection_RemoveKeepsParentRegistration(t *testing.T) {
	root := New(itemSchema(), nil)
	collection := NewCollection(itemSchema(), root)
	member := collection.Add()

	collection.Remove(member)
	if collection.Len() != 0 {
		t.Fatalf("expected empty member list, got %d", collection.Len())
	}
	// Removal is list-only: the parent still owns the member and keeps
	// visiting it during fan-outs.
	if got := len(root.Children()); got != 1 {
		t.Fatalf("expected member still registered on parent, got %d children", got)
	}
	root.Validate()
	if !member.Validated() {
		t.Fatal("removed member must still be visited by the parent fan-out")
	}
}

func TestCollection_RemoveMissIsNoOp(t *testing.T) {
	collection := NewCollection(itemSchema(), nil)
	collection.Add()
	stranger := New(itemSchema(), nil)

	collection.Remove(stranger)
	if collection.Len() != 1 {
		t.Fatalf("expected 1 member after no-op remove, got %d", collection.Len())
	}
}

func TestCollection_DetachSeversParentLink(t *testing.T) {
	root := New(itemSchema(), nil)
	collection := NewCollection(itemSchema(), root)
	member := collection.Add()

	collection.Detach(member)
	if collection.Len() != 0 {
		t.Fatalf("expected empty member list, got %d", collection.Len())
	}
	if got := len(root.Children()); got != 0 {
		t.Fatalf("expected member detached from parent, got %d children", got)
	}
}

func TestCollection_BulkReplace(t *testing.T) {
	collection := NewCollection(itemSchema(), nil)
	collection.Add()
	collection.Add()

	sets := []map[string]any{
		{"sku": "a", "qty": 1},
		{"sku": "b", "qty": 2},
		{"sku": "c", "qty": 3},
	}
	if err := collection.SetFields(sets); err != nil {
		t.Fatal(err)
	}

	members := collection.Forms()
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	for i, want := range sets {
		if diff := cmp.Diff(want, members[i].Fields()); diff != "" {
			t.Fatalf("member %d fields mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestCollection_SetReadOnlyForwards(t *testing.T) {
	collection := NewCollection(itemSchema(), nil)
	a := collection.Add()
	b := collection.Add()

	collection.SetReadOnly(true)
	for _, member := range []*Form{a, b} {
		got, err := member.IsFieldReadOnly("sku")
		if err != nil {
			t.Fatal(err)
		}
		if !got {
			t.Fatal("expected every member read-only")
		}
	}
}
