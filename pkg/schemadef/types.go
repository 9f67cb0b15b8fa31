package schemadef

// documentFile is the on-disk shape of a schema definition document. One file
// may declare several named forms.
type documentFile struct {
	Forms map[string]FormDef `json:"forms" yaml:"forms"`
}

// FormDef declares a form template: its fields plus nested child forms and
// repeatable collections.
type FormDef struct {
	Fields      map[string]FieldDef `json:"fields" yaml:"fields"`
	Forms       map[string]FormDef  `json:"forms,omitempty" yaml:"forms,omitempty"`
	Collections map[string]FormDef  `json:"collections,omitempty" yaml:"collections,omitempty"`
}

// FieldDef declares one field. Hint markup is sanitized during load; rules
// are compiled into a single composed validator.
type FieldDef struct {
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	Hint        string    `json:"hint,omitempty" yaml:"hint,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	ReadOnly    bool      `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Rules       []RuleDef `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// RuleDef pairs a go-playground rule expression with the failure message
// surfaced when the rule rejects a value. Two forms are special-cased:
// "required" maps to the presence check and "pattern=<re>" to a regular
// expression match.
type RuleDef struct {
	Rule    string `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}
