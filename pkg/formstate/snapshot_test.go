package formstate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalFields_RoundTrip(t *testing.T) {
	schema := FormSchema{
		Fields: map[string]FieldSchema{
			"name": {Default: DefaultOf("ada")},
			"age":  {Default: DefaultOf(float64(36))},
		},
	}
	form := New(schema, nil)

	data, err := form.MarshalFields()
	if err != nil {
		t.Fatal(err)
	}

	other := New(schema, nil)
	if err := other.Set("name", "grace"); err != nil {
		t.Fatal(err)
	}
	if err := other.ApplyFields(data); err != nil {
		t.Fatal(err)
	}

	want := map[string]any{"name": "ada", "age": float64(36)}
	if diff := cmp.Diff(want, other.Fields()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFields_NullMeansNoChange(t *testing.T) {
	schema := FormSchema{
		Fields: map[string]FieldSchema{
			"name": {Default: DefaultOf("ada")},
		},
	}
	form := New(schema, nil)

	if err := form.ApplyFields([]byte(`{"name": null}`)); err != nil {
		t.Fatal(err)
	}
	field, _ := form.Get("name")
	if field.Value != "ada" {
		t.Fatalf("null must leave the value untouched, got %v", field.Value)
	}
}

func TestCollectionMarshalFields_RoundTrip(t *testing.T) {
	collection := NewCollection(itemSchema(), nil)
	if err := collection.SetFields([]map[string]any{
		{"sku": "a", "qty": float64(1)},
		{"sku": "b", "qty": float64(2)},
	}); err != nil {
		t.Fatal(err)
	}

	data, err := collection.MarshalFields()
	if err != nil {
		t.Fatal(err)
	}

	restored := NewCollection(itemSchema(), nil)
	if err := restored.ApplyFields(data); err != nil {
		t.Fatal(err)
	}

	members := restored.Forms()
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	want := map[string]any{"sku": "b", "qty": float64(2)}
	if diff := cmp.Diff(want, members[1].Fields()); diff != "" {
		t.Fatalf("second member mismatch (-want +got):\n%s", diff)
	}
}
