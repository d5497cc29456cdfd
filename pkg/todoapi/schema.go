package todoapi

import (
	"fmt"
	"strings"
)

// Kind is the declared type of a schema field.
type Kind int

const (
	KindString Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is one required input field.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the required-field contract for an operation's input.
// Fields are a minimum: extra input fields are ignored.
type Schema struct {
	Name   string
	Fields []Field
}

var (
	UserInputSchema = Schema{
		Name: "UserInput",
		Fields: []Field{
			{Name: "email", Kind: KindString},
			{Name: "first_name", Kind: KindString},
			{Name: "last_name", Kind: KindString},
			{Name: "password", Kind: KindString},
		},
	}

	ListInputSchema = Schema{
		Name:   "ListInput",
		Fields: []Field{{Name: "list_name", Kind: KindString}},
	}

	ItemInputSchema = Schema{
		Name:   "ItemInput",
		Fields: []Field{{Name: "todo_item_name", Kind: KindString}},
	}
)

// Input is a validated field set. It holds every required field of the
// schema it was validated against, plus any extra string fields the caller
// supplied.
type Input map[string]string

// Violation describes one failed field check.
type Violation struct {
	Field  string
	Reason string
}

// Validate checks raw against schema and returns the coerced field set.
// All violations are collected; the returned *ValidationError lists every
// missing or mistyped field, in schema order.
func Validate(raw map[string]any, schema Schema) (Input, error) {
	var violations []Violation
	in := make(Input, len(raw))

	for _, f := range schema.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			violations = append(violations, Violation{Field: f.Name, Reason: "field required"})
			continue
		}
		s, ok := coerce(v, f.Kind)
		if !ok {
			violations = append(violations, Violation{
				Field:  f.Name,
				Reason: fmt.Sprintf("expected %s, got %T", f.Kind, v),
			})
			continue
		}
		in[f.Name] = s
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Schema: schema.Name, Violations: violations}
	}

	// Extra string fields pass through; they are only sent when a request
	// struct names them.
	for k, v := range raw {
		if _, seen := in[k]; seen {
			continue
		}
		if s, ok := v.(string); ok {
			in[k] = s
		}
	}

	return in, nil
}

func coerce(v any, kind Kind) (string, bool) {
	switch kind {
	case KindString:
		s, ok := v.(string)
		return s, ok
	default:
		return "", false
	}
}

// Fields converts a flat list of key/value pairs into a raw field map.
// It is a convenience for callers that build input from strings.
// A trailing key without a value is kept with a nil value, so Validate
// reports it as "field required" when the schema needs it.
func Fields(kv ...string) map[string]any {
	m := make(map[string]any, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			m[kv[i]] = nil
			break
		}
		m[kv[i]] = kv[i+1]
	}
	return m
}

func (v Violation) String() string {
	return v.Field + ": " + v.Reason
}

func joinViolations(vs []Violation) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}
