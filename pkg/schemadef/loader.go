// Package schemadef loads declarative form schema documents (JSON or YAML)
// and turns them into live formstate schemas and form trees. Documents stay
// pure data: titles, defaults, hints, and rule expressions; validators are
// compiled through the validators package during conversion.
package schemadef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/validators"
)

// Store keeps the parsed form definitions. It is safe for concurrent readers
// when treated as immutable after construction.
type Store struct {
	forms map[string]FormDef
}

// LoadFS walks the provided filesystem and parses JSON/YAML schema
// definition files. When fsys is nil or no definition files are present, the
// returned store is empty. Duplicate form names across files are errors.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]FormDef)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemadef: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.addDocument(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse builds a store from a single definition document held in memory.
func Parse(data []byte) (*Store, error) {
	doc, err := parseDocument(data, "inline")
	if err != nil {
		return nil, err
	}
	store := &Store{forms: make(map[string]FormDef)}
	if err := store.addDocument(doc, "inline"); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) addDocument(doc documentFile, source string) error {
	for name, def := range doc.Forms {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("schemadef: file %s defines a form with an empty name", source)
		}
		if _, exists := s.forms[trimmed]; exists {
			return fmt.Errorf("schemadef: duplicate form %q (file %s)", trimmed, source)
		}
		if err := checkDefinition(def, source, trimmed); err != nil {
			return err
		}
		s.forms[trimmed] = def
	}
	return nil
}

// checkDefinition rejects rule expressions the validation engine cannot run.
// The engine panics on undefined tags, so a typo'd rule that slipped past
// loading would take down Validate on a live form; rejecting it here keeps
// document mistakes at the load boundary, like duplicate form names.
func checkDefinition(def FormDef, source, path string) error {
	for key, field := range def.Fields {
		for _, rule := range field.Rules {
			expr := strings.TrimSpace(rule.Rule)
			if expr == "" || expr == "required" {
				continue
			}
			if strings.HasPrefix(expr, "pattern=") {
				pattern := strings.TrimPrefix(expr, "pattern=")
				if _, err := regexp.Compile(pattern); err != nil {
					return fmt.Errorf("schemadef: form %q field %q: invalid pattern %q (file %s)", path, key, pattern, source)
				}
				continue
			}
			if err := validators.CheckRule(expr); err != nil {
				return fmt.Errorf("schemadef: form %q field %q: %w (file %s)", path, key, err, source)
			}
		}
	}
	for name, child := range def.Forms {
		if err := checkDefinition(child, source, joinPath(path, name)); err != nil {
			return err
		}
	}
	for name, child := range def.Collections {
		if err := checkDefinition(child, source, joinPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the defined form names in no particular order.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.forms))
	for name := range s.forms {
		out = append(out, name)
	}
	return out
}

// Definition returns the raw definition for a form name.
func (s *Store) Definition(name string) (FormDef, bool) {
	def, ok := s.forms[name]
	return def, ok
}

// Schema compiles the named definition into a formstate.FormSchema. Nested
// forms and collections are not part of the schema; use NewForm to build the
// full tree.
func (s *Store) Schema(name string) (formstate.FormSchema, error) {
	def, ok := s.forms[name]
	if !ok {
		return formstate.FormSchema{}, fmt.Errorf("schemadef: form %q is not defined", name)
	}
	return Compile(def), nil
}

// Tree is a live form tree built from a definition. Nested forms and
// collections are addressable by their dotted path relative to the root
// ("shipping", "shipping.items").
type Tree struct {
	Root        *formstate.Form
	Forms       map[string]*formstate.Form
	Collections map[string]*formstate.FormCollection
}

// NewTree builds a live form tree for the named definition: the root form,
// one child form per nested forms entry, and one empty collection per
// collections entry (members are added by the caller at runtime).
func (s *Store) NewTree(name string) (*Tree, error) {
	def, ok := s.forms[name]
	if !ok {
		return nil, fmt.Errorf("schemadef: form %q is not defined", name)
	}
	return Build(def), nil
}

// NewForm is NewTree for callers that only need the root form.
func (s *Store) NewForm(name string) (*formstate.Form, error) {
	tree, err := s.NewTree(name)
	if err != nil {
		return nil, err
	}
	return tree.Root, nil
}

// NewCollection builds an empty collection whose template is the named
// definition, attached to the given parent (nil for standalone).
func (s *Store) NewCollection(name string, parent *formstate.Form) (*formstate.FormCollection, error) {
	def, ok := s.forms[name]
	if !ok {
		return nil, fmt.Errorf("schemadef: form %q is not defined", name)
	}
	return formstate.NewCollection(Compile(def), parent), nil
}

// Build constructs a live tree straight from a definition, without a store.
func Build(def FormDef) *Tree {
	tree := &Tree{
		Forms:       make(map[string]*formstate.Form),
		Collections: make(map[string]*formstate.FormCollection),
	}
	tree.Root = buildTree(def, nil, "", tree)
	return tree
}

func buildTree(def FormDef, parent *formstate.Form, path string, tree *Tree) *formstate.Form {
	form := formstate.New(Compile(def), parent)
	for name, childDef := range def.Forms {
		childPath := joinPath(path, name)
		tree.Forms[childPath] = buildTree(childDef, form, childPath, tree)
	}
	for name, collectionDef := range def.Collections {
		tree.Collections[joinPath(path, name)] = formstate.NewCollection(Compile(collectionDef), form)
	}
	return form
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Compile turns a definition into a formstate.FormSchema. Nested forms and
// collections are ignored; use Build or NewTree for the full tree.
func Compile(def FormDef) formstate.FormSchema {
	fields := make(map[string]formstate.FieldSchema, len(def.Fields))
	for key, fieldDef := range def.Fields {
		fields[key] = compileField(key, fieldDef)
	}
	return formstate.FormSchema{Fields: fields}
}

func compileField(key string, def FieldDef) formstate.FieldSchema {
	title := strings.TrimSpace(def.Title)
	if title == "" {
		title = labelFromKey(key)
	}

	field := formstate.FieldSchema{
		Title:       formstate.Static(title),
		Placeholder: def.Placeholder,
		Required:    formstate.Static(def.Required),
		ReadOnly:    formstate.Static(def.ReadOnly),
		Default:     formstate.DefaultOf(def.Default),
	}
	if hint := sanitizeHintMarkup(def.Hint); hint != "" {
		field.Hint = hint
	}
	if validator := compileRules(def.Rules); validator != nil {
		field.Validate = validator
	}
	return field
}

func compileRules(rules []RuleDef) formstate.Validator {
	if len(rules) == 0 {
		return nil
	}
	compiled := make([]formstate.Validator, 0, len(rules))
	for _, rule := range rules {
		expr := strings.TrimSpace(rule.Rule)
		if expr == "" {
			continue
		}
		switch {
		case expr == "required":
			compiled = append(compiled, validators.Required(rule.Message))
		case strings.HasPrefix(expr, "pattern="):
			compiled = append(compiled, validators.Pattern(strings.TrimPrefix(expr, "pattern="), rule.Message))
		default:
			compiled = append(compiled, validators.Rule(expr, rule.Message))
		}
	}
	if len(compiled) == 0 {
		return nil
	}
	return validators.Compose(compiled...)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schemadef: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("schemadef: parse %s: invalid JSON or YAML", source)
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
