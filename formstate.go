// Package formstate re-exports the core container API so callers can depend
// on the module root. See pkg/formstate for the full documentation.
package formstate

import (
	core "github.com/goliatone/go-formstate/pkg/formstate"
)

// Form is a schema-bound container of field state; see pkg/formstate.
type Form = core.Form

// FormCollection is an ordered sequence of sibling forms; see pkg/formstate.
type FormCollection = core.FormCollection

// Node is the shared lifecycle capability of forms and collections.
type Node = core.Node

// FormSchema maps field keys to their declarations.
type FormSchema = core.FormSchema

// FieldSchema declares a single field.
type FieldSchema = core.FieldSchema

// Field is the read view returned by Form.Get.
type Field = core.Field

// Default describes a field's initial value.
type Default = core.Default

// Validator computes a field's validation message.
type Validator = core.Validator

// ChangeHook runs after a field write.
type ChangeHook = core.ChangeHook

// FormHook runs after a field write or bulk assignment.
type FormHook = core.FormHook

// Event describes a mutation inside a form tree.
type Event = core.Event

// EventKind classifies mutations.
type EventKind = core.EventKind

// Observer receives mutation events.
type Observer = core.Observer

// Mutation kinds delivered to observers.
const (
	EventValue      = core.EventValue
	EventValidation = core.EventValidation
	EventReset      = core.EventReset
)

// ErrUnknownField is returned for keys missing from a form's schema.
var ErrUnknownField = core.ErrUnknownField

// New constructs a Form; see pkg/formstate.New.
func New(schema FormSchema, parent *Form) *Form {
	return core.New(schema, parent)
}

// NewCollection constructs a FormCollection; see pkg/formstate.NewCollection.
func NewCollection(schema FormSchema, parent *Form) *FormCollection {
	return core.NewCollection(schema, parent)
}

// Static wraps a literal field property.
func Static[T any](v T) core.Prop[T] {
	return core.Static(v)
}

// Computed wraps a field property derived from the owning form.
func Computed[T any](fn func(*Form) T) core.Prop[T] {
	return core.Computed(fn)
}

// DefaultOf wraps a literal default value.
func DefaultOf(v any) Default {
	return core.DefaultOf(v)
}

// DefaultFunc wraps a default-value factory.
func DefaultFunc(fn func() any) Default {
	return core.DefaultFunc(fn)
}
