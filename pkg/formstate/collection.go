package formstate

import "github.com/google/uuid"

// FormCollection manages an ordered, mutable sequence of sibling Forms that
// share one template schema and are validated, reset, and read-only-toggled
// in lockstep. The collection is a transparent grouping: members created
// through Add attach to the collection's parent form, not to the collection,
// so aggregation at the parent level sees each member directly and visits it
// exactly once per fan-out.
type FormCollection struct {
	id      uuid.UUID
	schema  FormSchema
	parent  *Form
	members []*Form
}

// NewCollection constructs an empty collection. The schema is the template
// used by Add; the optional parent is where new members register themselves.
func NewCollection(schema FormSchema, parent *Form) *FormCollection {
	return &FormCollection{
		id:     uuid.New(),
		schema: schema,
		parent: parent,
	}
}

// ID returns the collection's stable identity.
func (c *FormCollection) ID() uuid.UUID { return c.id }

// Add constructs a member from the collection's template schema, attaches it
// to the collection's parent, appends it, and returns it for immediate use.
func (c *FormCollection) Add() *Form {
	return c.AddWithSchema(c.schema)
}

// AddWithSchema is Add with a per-member schema override.
func (c *FormCollection) AddWithSchema(schema FormSchema) *Form {
	member := New(schema, c.parent)
	c.members = append(c.members, member)
	return member
}

// Remove drops the first member reference-equal to form from the member
// list; a miss is a no-op. The member stays registered in the parent's child
// list, so the parent's lifecycle fan-out keeps visiting it. Use Detach to
// sever it from the parent as well.
func (c *FormCollection) Remove(form *Form) {
	for i, member := range c.members {
		if member == form {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

// Detach removes the member from both the collection and the parent's child
// list, fully severing it from the tree.
func (c *FormCollection) Detach(form *Form) {
	c.Remove(form)
	if c.parent == nil {
		return
	}
	for i, child := range c.parent.children {
		if child == Node(form) {
			c.parent.children = append(c.parent.children[:i], c.parent.children[i+1:]...)
			return
		}
	}
}

// Forms returns a snapshot of the member list in insertion order.
func (c *FormCollection) Forms() []*Form {
	return append([]*Form(nil), c.members...)
}

// Len returns the current member count.
func (c *FormCollection) Len() int { return len(c.members) }

// Validate forwards to every member in list order.
func (c *FormCollection) Validate() {
	for _, member := range c.Forms() {
		member.Validate()
	}
}

// ClearValidations forwards to every member in list order.
func (c *FormCollection) ClearValidations() {
	for _, member := range c.Forms() {
		member.ClearValidations()
	}
}

// ClearFields forwards to every member in list order.
func (c *FormCollection) ClearFields() {
	for _, member := range c.Forms() {
		member.ClearFields()
	}
}

// Validated reports whether every member's subtree is validated. An empty
// collection is vacuously validated.
func (c *FormCollection) Validated() bool {
	for _, member := range c.members {
		if !member.Validated() {
			return false
		}
	}
	return true
}

// Valid reports whether every member's subtree is valid. An empty collection
// is vacuously valid.
func (c *FormCollection) Valid() bool {
	for _, member := range c.members {
		if !member.Valid() {
			return false
		}
	}
	return true
}

// SetFields replaces the whole membership: current members are discarded
// (without detaching them from the parent's child list) and one fresh member
// is constructed per value-set, in order, each initialized via Add and then
// overwritten with the value-set's fields.
func (c *FormCollection) SetFields(sets []map[string]any) error {
	c.members = nil
	for _, set := range sets {
		member := c.Add()
		if err := member.SetFields(set); err != nil {
			return err
		}
	}
	return nil
}

// SetReadOnly forwards the flag to every current member.
func (c *FormCollection) SetReadOnly(readOnly bool) {
	for _, member := range c.Forms() {
		member.SetReadOnly(readOnly)
	}
}
