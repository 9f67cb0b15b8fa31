// Package formstate implements a hierarchical, schema-driven form state
// container. A Form binds a FormSchema to live field values and validation
// messages, composes recursively into trees through child Forms and
// FormCollections, and exposes a late validation lifecycle: values change
// freely, validation messages only appear once a node has been validated,
// and editing a field clears its stale message until the next validation
// pass. UI layers observe mutations through synchronous events and never
// receive notifications for pure reads.
package formstate
