package schemadef_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formstate/pkg/schemadef"
)

const orderYAML = `
forms:
  order:
    fields:
      customer_name:
        placeholder: "Jane Doe"
        default: ""
        required: true
        rules:
          - rule: required
            message: "customer name is required"
      age:
        title: Age
        default: 0
        rules:
          - rule: min=18
            message: "too young"
      reference:
        title: Reference
        readOnly: true
        default: "auto"
        hint: '<em>internal</em><script>alert(1)</script>'
    collections:
      items:
        fields:
          sku:
            default: ""
          qty:
            default: 1
`

func loadStore(t *testing.T, files map[string]string) *schemadef.Store {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	store, err := schemadef.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	return store
}

func TestLoadFS_YAML(t *testing.T) {
	store := loadStore(t, map[string]string{"order.yaml": orderYAML})

	def, ok := store.Definition("order")
	if !ok {
		t.Fatal("form order not found")
	}
	if got := len(def.Fields); got != 3 {
		t.Fatalf("expected 3 fields, got %d", got)
	}
	if _, ok := def.Collections["items"]; !ok {
		t.Fatal("items collection missing")
	}
}

func TestLoadFS_JSON(t *testing.T) {
	store := loadStore(t, map[string]string{
		"forms.json": `{"forms":{"login":{"fields":{"email":{"rules":[{"rule":"email","message":"bad email"}]}}}}}`,
	})
	if _, ok := store.Definition("login"); !ok {
		t.Fatal("form login not found")
	}
}

func TestParse_Inline(t *testing.T) {
	store, err := schemadef.Parse([]byte(orderYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := store.Definition("order"); !ok {
		t.Fatal("form order not found")
	}
}

func TestLoadFS_RejectsUnknownRule(t *testing.T) {
	const doc = `
forms:
  order:
    fields:
      customer_name:
        rules:
          - rule: requird
            message: "customer name is required"
`
	fsys := fstest.MapFS{"order.yaml": &fstest.MapFile{Data: []byte(doc)}}
	_, err := schemadef.LoadFS(fsys)
	if err == nil {
		t.Fatal("expected unknown rule to be rejected at load")
	}
	if !strings.Contains(err.Error(), "requird") {
		t.Fatalf("error must name the bad rule, got %v", err)
	}
}

func TestLoadFS_RejectsUnknownRuleInNestedCollection(t *testing.T) {
	const doc = `
forms:
  order:
    fields: {}
    collections:
      items:
        fields:
          qty:
            rules:
              - rule: mn=1
                message: "at least one"
`
	fsys := fstest.MapFS{"order.yaml": &fstest.MapFile{Data: []byte(doc)}}
	if _, err := schemadef.LoadFS(fsys); err == nil {
		t.Fatal("expected nested unknown rule to be rejected at load")
	}
}

func TestParse_RejectsInvalidPattern(t *testing.T) {
	const doc = `
forms:
  order:
    fields:
      sku:
        rules:
          - rule: pattern=[A-
            message: "bad sku"
`
	if _, err := schemadef.Parse([]byte(doc)); err == nil {
		t.Fatal("expected invalid pattern to be rejected at load")
	}
}

func TestLoadFS_DuplicateFormName(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte("forms:\n  order:\n    fields: {}\n")},
		"b.yaml": &fstest.MapFile{Data: []byte("forms:\n  order:\n    fields: {}\n")},
	}
	if _, err := schemadef.LoadFS(fsys); err == nil {
		t.Fatal("expected duplicate form error")
	}
}

func TestSchema_CompilesFields(t *testing.T) {
	store := loadStore(t, map[string]string{"order.yaml": orderYAML})

	form, err := store.NewForm("order")
	if err != nil {
		t.Fatal(err)
	}

	// Title falls back to a label derived from the key.
	title, err := form.FieldTitle("customer_name")
	if err != nil {
		t.Fatal(err)
	}
	if title != "Customer Name" {
		t.Fatalf("expected derived title %q, got %q", "Customer Name", title)
	}

	if required, _ := form.IsFieldRequired("customer_name"); !required {
		t.Fatal("customer_name must be required")
	}
	if readOnly, _ := form.IsFieldReadOnly("reference"); !readOnly {
		t.Fatal("reference must be read-only")
	}

	field, _ := form.Get("customer_name")
	if field.Schema.Placeholder != "Jane Doe" {
		t.Fatalf("unexpected placeholder %q", field.Schema.Placeholder)
	}
}

func TestSchema_SanitizesHints(t *testing.T) {
	store := loadStore(t, map[string]string{"order.yaml": orderYAML})
	form, err := store.NewForm("order")
	if err != nil {
		t.Fatal(err)
	}

	field, _ := form.Get("reference")
	hint, ok := field.Schema.Hint.(string)
	if !ok {
		t.Fatalf("expected string hint, got %T", field.Schema.Hint)
	}
	if !strings.Contains(hint, "<em>internal</em>") {
		t.Fatalf("inline markup must survive, got %q", hint)
	}
	if strings.Contains(hint, "script") {
		t.Fatalf("script must be stripped, got %q", hint)
	}
}

func TestNewForm_CompiledValidatorsRun(t *testing.T) {
	store := loadStore(t, map[string]string{"order.yaml": orderYAML})
	form, err := store.NewForm("order")
	if err != nil {
		t.Fatal(err)
	}

	form.Validate()
	field, _ := form.Get("customer_name")
	if field.ValidationMessage != "customer name is required" {
		t.Fatalf("expected required message, got %q", field.ValidationMessage)
	}
	field, _ = form.Get("age")
	if field.ValidationMessage != "too young" {
		t.Fatalf("expected min rule failure, got %q", field.ValidationMessage)
	}

	if err := form.Set("customer_name", "Ada"); err != nil {
		t.Fatal(err)
	}
	if err := form.Set("age", 30); err != nil {
		t.Fatal(err)
	}
	if !form.Valid() {
		t.Fatal("expected valid form after good values")
	}
}

func TestNewTree_ExposesCollections(t *testing.T) {
	store := loadStore(t, map[string]string{"order.yaml": orderYAML})
	tree, err := store.NewTree("order")
	if err != nil {
		t.Fatal(err)
	}

	items, ok := tree.Collections["items"]
	if !ok {
		t.Fatalf("items collection not exposed, got %v", tree.Collections)
	}
	member := items.Add()
	if member.Parent() != tree.Root {
		t.Fatal("collection member must attach to the tree root")
	}

	if err := member.Set("qty", 5); err != nil {
		t.Fatal(err)
	}
	tree.Root.Validate()
	if !member.Validated() {
		t.Fatal("member must be validated through the root fan-out")
	}
}

func TestNewCollection_FromDefinition(t *testing.T) {
	store := loadStore(t, map[string]string{"order.yaml": orderYAML})
	root, err := store.NewForm("order")
	if err != nil {
		t.Fatal(err)
	}

	items, err := store.NewCollection("order", root)
	if err != nil {
		t.Fatal(err)
	}
	member := items.Add()
	if member.Parent() != root {
		t.Fatal("collection member must attach to the supplied parent")
	}
}

func TestNewForm_Unknown(t *testing.T) {
	store := loadStore(t, map[string]string{"order.yaml": orderYAML})
	if _, err := store.NewForm("missing"); err == nil {
		t.Fatal("expected error for unknown form")
	}
}
