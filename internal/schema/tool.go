// Package schema turns Go section types into LLM tool definitions and checks
// tool-call arguments against them.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// Tool is a callable function offered to the model. Parameters is the JSON
// Schema of its single object argument.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema

	resolved *jsonschema.Resolved
}

// Refinement narrows an inferred schema, e.g. adding enums or ranges
type Refinement func(root *jsonschema.Schema) error

// NewTool infers the parameter schema from T, applies the refinements and
// resolves the result for validation.
func NewTool[T any](name, description string, refinements ...Refinement) (*Tool, error) {
	if name == "" {
		return nil, errors.InvalidArgument("tool name is required")
	}

	root, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to infer schema for tool %s", name)
	}

	for _, refine := range refinements {
		if err := refine(root); err != nil {
			return nil, errors.Wrapf(err, "failed to refine schema for tool %s", name)
		}
	}

	resolved, err := root.Resolve(nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve schema for tool %s", name)
	}

	return &Tool{
		Name:        name,
		Description: description,
		Parameters:  root,
		resolved:    resolved,
	}, nil
}

// MustTool is NewTool for package-level tables built from static types
func MustTool[T any](name, description string, refinements ...Refinement) *Tool {
	t, err := NewTool[T](name, description, refinements...)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate checks an untyped argument value against the tool schema
func (t *Tool) Validate(args any) error {
	if err := t.resolved.Validate(args); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument,
			fmt.Sprintf("arguments for %s do not match schema", t.Name))
	}
	return nil
}

// Decode parses raw JSON arguments, validates them against the schema and
// strictly decodes them into v.
func (t *Tool) Decode(raw []byte, v any) error {
	var args any
	if err := json.Unmarshal(raw, &args); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument,
			fmt.Sprintf("arguments for %s are not valid JSON", t.Name))
	}

	if err := t.Validate(args); err != nil {
		return err
	}

	if err := entities.DecodeStrict(raw, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument,
			fmt.Sprintf("arguments for %s could not be decoded", t.Name))
	}
	return nil
}

// ParametersJSON returns the parameter schema as JSON
func (t *Tool) ParametersJSON() (json.RawMessage, error) {
	data, err := json.Marshal(t.Parameters)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal schema for tool %s", t.Name)
	}
	return data, nil
}

// Lookup walks a dotted path through the schema. A segment ending in "[]"
// steps into array items; "*" steps into map values.
func Lookup(root *jsonschema.Schema, path string) (*jsonschema.Schema, error) {
	current := root
	if path == "" {
		return current, nil
	}

	for _, segment := range strings.Split(path, ".") {
		items := strings.HasSuffix(segment, "[]")
		name := strings.TrimSuffix(segment, "[]")

		switch {
		case name == "*":
			if current.AdditionalProperties == nil {
				return nil, fmt.Errorf("%s: no map values at %q", path, segment)
			}
			current = current.AdditionalProperties
		case name != "":
			next, ok := current.Properties[name]
			if !ok {
				return nil, fmt.Errorf("%s: no property %q", path, name)
			}
			current = next
		}

		if items {
			if current.Items == nil {
				return nil, fmt.Errorf("%s: %q is not an array", path, name)
			}
			current = current.Items
		}
	}
	return current, nil
}

func refineAt(path string, f func(s *jsonschema.Schema)) Refinement {
	return func(root *jsonschema.Schema) error {
		s, err := Lookup(root, path)
		if err != nil {
			return err
		}
		f(s)
		return nil
	}
}

// Enum restricts the value at path to the given strings
func Enum(path string, values []string) Refinement {
	return refineAt(path, func(s *jsonschema.Schema) {
		s.Enum = make([]any, len(values))
		for i, v := range values {
			s.Enum[i] = v
		}
	})
}

// NumberEnum restricts the value at path to the given numbers
func NumberEnum(path string, values []float64) Refinement {
	return refineAt(path, func(s *jsonschema.Schema) {
		s.Enum = make([]any, len(values))
		for i, v := range values {
			s.Enum[i] = v
		}
	})
}

// Range bounds the number at path, inclusive
func Range(path string, minValue, maxValue float64) Refinement {
	return refineAt(path, func(s *jsonschema.Schema) {
		s.Minimum = jsonschema.Ptr(minValue)
		s.Maximum = jsonschema.Ptr(maxValue)
	})
}

// Minimum sets an inclusive lower bound on the number at path
func Minimum(path string, minValue float64) Refinement {
	return refineAt(path, func(s *jsonschema.Schema) {
		s.Minimum = jsonschema.Ptr(minValue)
	})
}

// Describe sets the description at path
func Describe(path, text string) Refinement {
	return refineAt(path, func(s *jsonschema.Schema) {
		s.Description = text
	})
}

// FixedKeys turns the map at path into an object whose optional properties
// are exactly keys, each with the map's value schema.
func FixedKeys(path string, keys []string) Refinement {
	return func(root *jsonschema.Schema) error {
		s, err := Lookup(root, path)
		if err != nil {
			return err
		}
		if s.AdditionalProperties == nil {
			return fmt.Errorf("%s: not a map", path)
		}

		value := s.AdditionalProperties
		s.Properties = make(map[string]*jsonschema.Schema, len(keys))
		for _, k := range keys {
			s.Properties[k] = value.CloneSchemas()
		}
		s.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
		return nil
	}
}
