package formstate

import (
	"sort"

	"github.com/google/uuid"
)

type fieldState struct {
	value   any
	message string
}

// Field is the read view returned by Get: the current value and validation
// message plus derived properties recomputed on every call.
type Field struct {
	Value             any
	ValidationMessage string
	// ReadOnly is the effective flag: true when the owning form is read-only
	// or the field's own schema flag evaluates true.
	ReadOnly bool
	// Schema is the field's declaration, exposed so UI layers can reach
	// hints, placeholders, and required/title properties.
	Schema FieldSchema
}

// Form binds a FormSchema to live field state and composes into trees through
// an ordered child list. Forms assume single-writer, UI-thread style usage;
// none of the methods are safe for concurrent mutation.
type Form struct {
	id        uuid.UUID
	schema    FormSchema
	keys      []string
	states    map[string]*fieldState
	validated bool
	readOnly  bool
	parent    *Form
	children  []Node
	observers []Observer
}

// New constructs a Form from the schema, seeds every field with its default
// value, and, when parent is non-nil, registers the new form as a child of
// that parent. The parent relationship is fixed for the form's lifetime.
func New(schema FormSchema, parent *Form) *Form {
	f := &Form{
		id:     uuid.New(),
		schema: schema,
		states: make(map[string]*fieldState, len(schema.Fields)),
	}
	f.keys = make([]string, 0, len(schema.Fields))
	for key := range schema.Fields {
		f.keys = append(f.keys, key)
	}
	sort.Strings(f.keys)
	for _, key := range f.keys {
		f.states[key] = &fieldState{value: schema.Fields[key].Default.eval()}
	}
	if parent != nil {
		f.parent = parent
		parent.children = append(parent.children, f)
	}
	return f
}

// ID returns the form's stable identity, assigned at construction. UI layers
// use it as a reconciliation key and to correlate observer events.
func (f *Form) ID() uuid.UUID { return f.id }

// Schema returns the form's schema. The schema reference is immutable for
// the form's lifetime.
func (f *Form) Schema() FormSchema { return f.schema }

// Parent returns the owning form, nil for roots.
func (f *Form) Parent() *Form { return f.parent }

// Keys returns the schema's field keys in stable sorted order.
func (f *Form) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Children returns a snapshot of the form's child list.
func (f *Form) Children() []Node {
	return append([]Node(nil), f.children...)
}

// AdoptChild registers a node constructed without a parent so it participates
// in every subsequent lifecycle fan-out. Collections stay transparent:
// adopting an orphan collection rewires it and its orphan members onto the
// adopter instead of registering the collection itself, so each member is
// still visited exactly once. A collection that already has a parent is left
// untouched. The caller must not adopt the same node twice; registration is
// a single append and is not deduplicated.
func (f *Form) AdoptChild(child Node) {
	switch n := child.(type) {
	case nil:
		return
	case *Form:
		if n.parent == nil {
			n.parent = f
		}
		f.children = append(f.children, n)
	case *FormCollection:
		if n.parent != nil {
			return
		}
		n.parent = f
		for _, member := range n.members {
			if member.parent == nil {
				member.parent = f
				f.children = append(f.children, member)
			}
		}
	default:
		f.children = append(f.children, child)
	}
}

// Get returns the field's current state together with derived properties.
// The effective read-only flag and the schema entry are recomputed on every
// call, never cached.
func (f *Form) Get(key string) (Field, error) {
	st, ok := f.states[key]
	if !ok {
		return Field{}, unknownFieldError(key)
	}
	fs := f.schema.Fields[key]
	return Field{
		Value:             st.value,
		ValidationMessage: st.message,
		ReadOnly:          f.readOnly || fs.ReadOnly.Eval(f),
		Schema:            fs,
	}, nil
}

// Set overwrites the field's value. The validation message is recomputed
// only when the form has already been validated and the field declares a
// validator; otherwise the message is forced empty, so editing clears stale
// validation results. The field's OnChange hook and the form's OnChangeForm
// hook run synchronously before Set returns; a panicking hook aborts the
// remaining side effects.
func (f *Form) Set(key string, value any) error {
	st, ok := f.states[key]
	if !ok {
		return unknownFieldError(key)
	}
	fs := f.schema.Fields[key]
	st.value = value
	if f.validated && fs.Validate != nil {
		st.message = fs.Validate(value, fs, f)
	} else {
		st.message = ""
	}
	if fs.OnChange != nil {
		fs.OnChange(value, fs, f)
	}
	if f.schema.OnChangeForm != nil {
		f.schema.OnChangeForm(f)
	}
	f.notify(Event{Node: f.id, Field: key, Kind: EventValue})
	return nil
}

// IsFieldReadOnly reports the field's effective read-only flag: true when
// the form is read-only, else the field's own literal-or-computed flag.
func (f *Form) IsFieldReadOnly(key string) (bool, error) {
	fs, ok := f.schema.Fields[key]
	if !ok {
		return false, unknownFieldError(key)
	}
	if f.readOnly {
		return true, nil
	}
	return fs.ReadOnly.Eval(f), nil
}

// IsFieldRequired evaluates the field's literal-or-computed required flag.
func (f *Form) IsFieldRequired(key string) (bool, error) {
	fs, ok := f.schema.Fields[key]
	if !ok {
		return false, unknownFieldError(key)
	}
	return fs.Required.Eval(f), nil
}

// FieldTitle evaluates the field's literal-or-computed title.
func (f *Form) FieldTitle(key string) (string, error) {
	fs, ok := f.schema.Fields[key]
	if !ok {
		return "", unknownFieldError(key)
	}
	return fs.Title.Eval(f), nil
}

// Validate recomputes every field's validation message, marks the form
// validated, and recurses into every child. Fields without a validator get
// an empty message. A panicking validator aborts the pass; fields and
// children after it are not visited.
func (f *Form) Validate() {
	for _, key := range f.keys {
		fs := f.schema.Fields[key]
		st := f.states[key]
		if fs.Validate != nil {
			st.message = fs.Validate(st.value, fs, f)
		} else {
			st.message = ""
		}
	}
	f.validated = true
	for _, child := range f.Children() {
		child.Validate()
	}
	f.notify(Event{Node: f.id, Kind: EventValidation})
}

// ValidateField recomputes a single field's message unconditionally. It does
// not change the form's validated flag and does not recurse into children.
func (f *Form) ValidateField(key string) error {
	st, ok := f.states[key]
	if !ok {
		return unknownFieldError(key)
	}
	fs := f.schema.Fields[key]
	if fs.Validate != nil {
		st.message = fs.Validate(st.value, fs, f)
	} else {
		st.message = ""
	}
	f.notify(Event{Node: f.id, Field: key, Kind: EventValidation})
	return nil
}

// ClearValidations blanks every field's message, marks the form unvalidated,
// and recurses into every child.
func (f *Form) ClearValidations() {
	for _, key := range f.keys {
		f.states[key].message = ""
	}
	f.validated = false
	for _, child := range f.Children() {
		child.ClearValidations()
	}
	f.notify(Event{Node: f.id, Kind: EventValidation})
}

// ClearFields reinitializes every field to its schema default, marks the
// form unvalidated, recurses into every child, then fires OnChangeForm.
// Validation messages survive the reset; only Validate, ValidateField, and
// ClearValidations touch them. The method is synchronous: all state is fully
// applied before it returns.
func (f *Form) ClearFields() {
	for _, key := range f.keys {
		f.states[key].value = f.schema.Fields[key].Default.eval()
	}
	f.validated = false
	for _, child := range f.Children() {
		child.ClearFields()
	}
	if f.schema.OnChangeForm != nil {
		f.schema.OnChangeForm(f)
	}
	f.notify(Event{Node: f.id, Kind: EventReset})
}

// Validated reports whether this form and every descendant have been
// validated. The aggregate is recomputed on demand, never cached.
func (f *Form) Validated() bool {
	if !f.validated {
		return false
	}
	for _, child := range f.children {
		if !child.Validated() {
			return false
		}
	}
	return true
}

// Valid reports whether the subtree is validated and free of validation
// messages. An unvalidated form is never valid, even when every message
// happens to be empty.
func (f *Form) Valid() bool {
	if !f.Validated() {
		return false
	}
	for _, key := range f.keys {
		if f.states[key].message != "" {
			return false
		}
	}
	for _, child := range f.children {
		if !child.Valid() {
			return false
		}
	}
	return true
}

// Fields returns a value-only snapshot keyed like the schema; validation
// messages are stripped.
func (f *Form) Fields() map[string]any {
	out := make(map[string]any, len(f.keys))
	for _, key := range f.keys {
		out[key] = f.states[key].value
	}
	return out
}

// SetFields overwrites the supplied keys' values without revalidating and
// without running per-field OnChange hooks; it is the low-level bypass
// distinct from Set. Nil values mean "no change" for that key. Unknown keys
// fail the whole call before any value is applied. Fires OnChangeForm once.
func (f *Form) SetFields(values map[string]any) error {
	for key := range values {
		if _, ok := f.states[key]; !ok {
			return unknownFieldError(key)
		}
	}
	for key, value := range values {
		if value == nil {
			continue
		}
		f.states[key].value = value
	}
	if f.schema.OnChangeForm != nil {
		f.schema.OnChangeForm(f)
	}
	f.notify(Event{Node: f.id, Kind: EventValue})
	return nil
}

// ReadOnly reports the form's own read-only flag.
func (f *Form) ReadOnly() bool { return f.readOnly }

// SetReadOnly sets the form's flag and overwrites every child's flag with
// the same value, recursing through the whole subtree.
func (f *Form) SetReadOnly(readOnly bool) {
	f.readOnly = readOnly
	for _, child := range f.Children() {
		child.SetReadOnly(readOnly)
	}
}
