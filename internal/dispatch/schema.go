// Package dispatch validates tool parameters against per-operation
// schemas and routes calls to the aggregation tools. It is the outermost
// failure boundary: malformed input never reaches a source client, and a
// handler panic never propagates to the caller.
package dispatch

import (
	"fmt"
	"sort"
	"strings"
)

// Kind enumerates the parameter value types a schema can declare.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindEnum
)

// Field declares one parameter: its type, whether the caller must supply
// it, allowed choices for enums, numeric bounds, and the value filled in
// when an optional field is absent.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Choices  []string // KindEnum only
	Min, Max *float64 // KindInt / KindFloat only
	Default  any      // applied when absent; nil means stay absent
}

// Schema is the full parameter contract for one tool.
type Schema struct {
	Fields []Field
}

// ValidationError reports every rejected parameter at once, keyed by
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "dispatch: invalid parameters (" + strings.Join(parts, "; ") + ")"
}

// Validate checks params against the schema and returns a normalized copy
// with defaults applied and numeric values coerced. All problems are
// collected into a single *ValidationError rather than failing on the
// first.
func (s Schema) Validate(params map[string]any) (map[string]any, error) {
	problems := map[string]string{}
	out := make(map[string]any, len(s.Fields))

	known := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = f
	}
	for name := range params {
		if _, ok := known[name]; !ok {
			problems[name] = "unknown parameter"
		}
	}

	for _, f := range s.Fields {
		raw, present := params[f.Name]
		if !present || raw == nil {
			if f.Required {
				problems[f.Name] = "required"
			} else if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		v, problem := f.coerce(raw)
		if problem != "" {
			problems[f.Name] = problem
			continue
		}
		out[f.Name] = v
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Fields: problems}
	}
	return out, nil
}

// coerce normalizes one raw value to the field's kind. JSON decoding
// delivers every number as float64; integers are recovered from whole
// floats.
func (f Field) coerce(raw any) (any, string) {
	switch f.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		if f.Required && strings.TrimSpace(s) == "" {
			return nil, "must not be empty"
		}
		return s, ""

	case KindInt:
		var n int
		switch v := raw.(type) {
		case int:
			n = v
		case float64:
			if v != float64(int(v)) {
				return nil, "must be an integer"
			}
			n = int(v)
		default:
			return nil, "must be an integer"
		}
		if problem := f.checkRange(float64(n)); problem != "" {
			return nil, problem
		}
		return n, ""

	case KindFloat:
		var x float64
		switch v := raw.(type) {
		case float64:
			x = v
		case int:
			x = float64(v)
		default:
			return nil, "must be a number"
		}
		if problem := f.checkRange(x); problem != "" {
			return nil, problem
		}
		return x, ""

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""

	case KindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be one of: " + strings.Join(f.Choices, ", ")
		}
		for _, c := range f.Choices {
			if strings.EqualFold(s, c) {
				return c, ""
			}
		}
		return nil, "must be one of: " + strings.Join(f.Choices, ", ")

	default:
		return nil, fmt.Sprintf("unsupported kind %d", f.Kind)
	}
}

func (f Field) checkRange(v float64) string {
	if f.Min != nil && v < *f.Min {
		return fmt.Sprintf("must be >= %g", *f.Min)
	}
	if f.Max != nil && v > *f.Max {
		return fmt.Sprintf("must be <= %g", *f.Max)
	}
	return ""
}
