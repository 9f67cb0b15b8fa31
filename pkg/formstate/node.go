package formstate

// Node is the capability set shared by Forms and FormCollections so a parent
// can fan lifecycle operations out over a mixed child list.
type Node interface {
	// Validate recomputes every validation message in the subtree and marks
	// each visited form validated.
	Validate()
	// ClearValidations blanks every validation message in the subtree and
	// marks each visited form unvalidated.
	ClearValidations()
	// ClearFields reinitializes every field in the subtree to its schema
	// default and marks each visited form unvalidated. Validation messages
	// are left untouched.
	ClearFields()
	// Validated reports whether the whole subtree has been validated.
	Validated() bool
	// Valid reports whether the whole subtree is validated and free of
	// validation messages.
	Valid() bool
	// SetReadOnly overwrites the read-only flag across the subtree.
	SetReadOnly(readOnly bool)
}

var (
	_ Node = (*Form)(nil)
	_ Node = (*FormCollection)(nil)
)
