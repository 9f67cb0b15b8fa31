// Package openapi derives form schema definitions from OpenAPI documents.
// Each operation's JSON request body becomes a schemadef.FormDef: scalar
// properties turn into fields with validators compiled from the schema's
// constraints, nested objects into child forms, and arrays of objects into
// collections.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/schemadef"
)

// Operation couples an OpenAPI operation's identity with the form definition
// derived from its request body.
type Operation struct {
	ID         string
	Method     string
	Path       string
	Summary    string
	Definition schemadef.FormDef
}

// Build constructs a live form tree from the derived definition.
func (op Operation) Build() *schemadef.Tree {
	return schemadef.Build(op.Definition)
}

// Options configures document parsing.
type Options struct {
	// ResolveReferences validates the document and allows external refs.
	ResolveReferences bool
	// AllowPartialDocuments accepts documents without operations.
	AllowPartialDocuments bool
}

// Operations parses an OpenAPI document and returns one Operation per path
// item operation that carries a request body schema, keyed by operationId.
// Operations without an explicit id are keyed "method:path".
func Operations(ctx context.Context, raw []byte, opts Options) (map[string]Operation, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	operations := make(map[string]Operation)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			collectOperation(operations, "GET", path, item.Get)
			collectOperation(operations, "PUT", path, item.Put)
			collectOperation(operations, "POST", path, item.Post)
			collectOperation(operations, "DELETE", path, item.Delete)
			collectOperation(operations, "PATCH", path, item.Patch)
		}
	}

	if len(operations) == 0 && !opts.AllowPartialDocuments {
		return nil, errors.New("openapi: no operations with request bodies extracted")
	}
	return operations, nil
}

func collectOperation(target map[string]Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	target[opID] = Operation{
		ID:         opID,
		Method:     method,
		Path:       path,
		Summary:    operation.Summary,
		Definition: definitionFromSchema(schema),
	}
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func definitionFromSchema(schema *openapi3.Schema) schemadef.FormDef {
	def := schemadef.FormDef{}
	if schema == nil {
		return def
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for name, ref := range schema.Properties {
		prop := ref.Value
		if prop == nil {
			continue
		}
		switch firstSchemaType(prop.Type) {
		case "object":
			if def.Forms == nil {
				def.Forms = make(map[string]schemadef.FormDef)
			}
			def.Forms[name] = definitionFromSchema(prop)
		case "array":
			if prop.Items != nil && prop.Items.Value != nil && firstSchemaType(prop.Items.Value.Type) == "object" {
				if def.Collections == nil {
					def.Collections = make(map[string]schemadef.FormDef)
				}
				def.Collections[name] = definitionFromSchema(prop.Items.Value)
				continue
			}
			fallthrough
		default:
			if def.Fields == nil {
				def.Fields = make(map[string]schemadef.FieldDef)
			}
			def.Fields[name] = fieldFromSchema(name, prop, required[name])
		}
	}
	return def
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) schemadef.FieldDef {
	field := schemadef.FieldDef{
		Title:    schema.Title,
		Required: required,
		Default:  schema.Default,
	}
	if schema.ReadOnly {
		field.ReadOnly = true
	}
	if field.Default == nil {
		field.Default = zeroValueFor(firstSchemaType(schema.Type))
	}
	field.Rules = rulesFromSchema(name, schema, required)
	return field
}

func rulesFromSchema(name string, schema *openapi3.Schema, required bool) []schemadef.RuleDef {
	var rules []schemadef.RuleDef
	if required {
		rules = append(rules, schemadef.RuleDef{
			Rule:    "required",
			Message: fmt.Sprintf("%s is required", name),
		})
	}

	switch firstSchemaType(schema.Type) {
	case "string":
		if schema.MinLength > 0 {
			rules = append(rules, schemadef.RuleDef{
				Rule:    "min=" + strconv.FormatUint(schema.MinLength, 10),
				Message: fmt.Sprintf("%s must be at least %d characters", name, schema.MinLength),
			})
		}
		if schema.MaxLength != nil {
			rules = append(rules, schemadef.RuleDef{
				Rule:    "max=" + strconv.FormatUint(*schema.MaxLength, 10),
				Message: fmt.Sprintf("%s must be at most %d characters", name, *schema.MaxLength),
			})
		}
		if schema.Pattern != "" {
			rules = append(rules, schemadef.RuleDef{
				Rule:    "pattern=" + schema.Pattern,
				Message: fmt.Sprintf("%s has an invalid format", name),
			})
		}
		if schema.Format == "email" {
			rules = append(rules, schemadef.RuleDef{
				Rule:    "email",
				Message: fmt.Sprintf("%s must be a valid email address", name),
			})
		}
	case "integer", "number":
		if schema.Min != nil {
			rules = append(rules, schemadef.RuleDef{
				Rule:    "min=" + formatNumber(*schema.Min),
				Message: fmt.Sprintf("%s must be at least %s", name, formatNumber(*schema.Min)),
			})
		}
		if schema.Max != nil {
			rules = append(rules, schemadef.RuleDef{
				Rule:    "max=" + formatNumber(*schema.Max),
				Message: fmt.Sprintf("%s must be at most %s", name, formatNumber(*schema.Max)),
			})
		}
	}

	if options := enumOptions(schema.Enum); len(options) > 0 {
		rules = append(rules, schemadef.RuleDef{
			Rule:    "oneof=" + strings.Join(options, " "),
			Message: fmt.Sprintf("%s must be one of: %s", name, strings.Join(options, ", ")),
		})
	}
	return rules
}

// enumOptions flattens enum values into oneof options. Values whose string
// form contains whitespace cannot be expressed in a oneof rule and disable
// the constraint.
func enumOptions(enum []any) []string {
	if len(enum) == 0 {
		return nil
	}
	options := make([]string, 0, len(enum))
	for _, value := range enum {
		s := fmt.Sprint(value)
		if strings.ContainsAny(s, " \t") {
			return nil
		}
		options = append(options, s)
	}
	return options
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func zeroValueFor(schemaType string) any {
	switch schemaType {
	case "integer":
		return 0
	case "number":
		return 0.0
	case "boolean":
		return false
	case "array":
		return []any{}
	default:
		return ""
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
