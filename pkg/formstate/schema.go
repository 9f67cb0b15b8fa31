package formstate

// Validator checks a field value against its schema and returns a
// human-readable failure reason, or the empty string when the value is
// acceptable. Validators must be pure and synchronous; the container never
// interprets message content.
type Validator func(value any, field FieldSchema, form *Form) string

// ChangeHook runs after a field value write performed through Set. Hooks are
// invoked synchronously before Set returns.
type ChangeHook func(value any, field FieldSchema, form *Form)

// FormHook runs after a field write or bulk field assignment on a form.
type FormHook func(form *Form)

// Prop holds a per-field property that is either a literal value or computed
// from the owning form on every read. The zero Prop evaluates to T's zero
// value.
type Prop[T any] struct {
	value T
	fn    func(*Form) T
}

// Static wraps a literal property value.
func Static[T any](v T) Prop[T] {
	return Prop[T]{value: v}
}

// Computed wraps a property derived from the owning form at read time.
func Computed[T any](fn func(*Form) T) Prop[T] {
	return Prop[T]{fn: fn}
}

// Eval resolves the property against the owning form. Computed properties are
// re-evaluated on every call; nothing is cached.
func (p Prop[T]) Eval(form *Form) T {
	if p.fn != nil {
		return p.fn(form)
	}
	return p.value
}

// Default describes a field's initial value: either a literal copied on each
// (re)initialization or a zero-argument factory invoked per use.
type Default struct {
	value   any
	factory func() any
}

// DefaultOf wraps a literal default value.
func DefaultOf(v any) Default {
	return Default{value: v}
}

// DefaultFunc wraps a default-value factory.
func DefaultFunc(fn func() any) Default {
	return Default{factory: fn}
}

func (d Default) eval() any {
	if d.factory != nil {
		return d.factory()
	}
	return d.value
}

// FieldSchema declares a single field: display metadata, default value,
// derived flags, and the optional validator and change hook.
type FieldSchema struct {
	// Title is the field's display label, literal or derived from the form.
	Title Prop[string]
	// Hint is an opaque display payload passed through to the UI untouched.
	Hint any
	// ReadOnly marks the field itself read-only. The effective flag also
	// honors the owning form's ReadOnly state.
	ReadOnly Prop[bool]
	// Default seeds the field's value at construction and on ClearFields.
	Default Default
	// Validate computes the field's validation message. Nil means the field
	// always validates clean.
	Validate Validator
	// Required marks the field required for display purposes; the container
	// does not enforce it (use a validator for enforcement).
	Required Prop[bool]
	// Placeholder is shown by UI layers while the field is empty.
	Placeholder string
	// OnChange runs after each Set on this field.
	OnChange ChangeHook
}

// FormSchema maps field keys to their schemas. The key set is fixed at form
// construction; keys are never added or removed afterwards.
type FormSchema struct {
	Fields map[string]FieldSchema
	// OnChangeForm runs after any field write or bulk assignment on the form.
	OnChangeForm FormHook
}
