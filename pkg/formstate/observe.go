package formstate

import "github.com/google/uuid"

// EventKind classifies the mutation that triggered an observer call.
type EventKind string

const (
	// EventValue fires after a field value write (Set or bulk assignment).
	EventValue EventKind = "value"
	// EventValidation fires after Validate, ValidateField, or
	// ClearValidations changes validation state.
	EventValidation EventKind = "validation"
	// EventReset fires after ClearFields reinitializes a form.
	EventReset EventKind = "reset"
)

// Event describes a single mutation inside a form tree.
type Event struct {
	// Node identifies the form the mutation happened on.
	Node uuid.UUID
	// Field is the affected field key, empty for form-wide operations.
	Field string
	// Kind classifies the mutation.
	Kind EventKind
}

// Observer receives mutation events. Observers run synchronously after the
// mutation is fully applied and never fire for pure reads.
type Observer func(Event)

// Observe registers an observer on this form. The observer also receives
// events from every descendant, since notifications bubble up the parent
// chain. Registration order is preserved.
func (f *Form) Observe(fn Observer) {
	if fn == nil {
		return
	}
	f.observers = append(f.observers, fn)
}

// notify walks the parent chain so observers registered on any ancestor see
// the event. Observer slices are snapshotted per node in case a callback
// registers further observers mid-dispatch.
func (f *Form) notify(ev Event) {
	for node := f; node != nil; node = node.parent {
		observers := node.observers
		for _, fn := range observers {
			fn(ev)
		}
	}
}
