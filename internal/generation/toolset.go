package generation

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/schema"
)

type decoder[P any] func(raw json.RawMessage) (P, error)

// Toolset maps tool names to typed decoders producing partial records
type Toolset[P any] struct {
	tools    []*schema.Tool
	decoders map[string]decoder[P]
	groups   [][]string
}

// NewToolset creates an empty toolset
func NewToolset[P any]() *Toolset[P] {
	return &Toolset[P]{decoders: make(map[string]decoder[P])}
}

// Register adds a tool whose arguments decode into S and convert to a partial P.
// It is a function rather than a method because methods cannot take type parameters.
func Register[S, P any](ts *Toolset[P], tool *schema.Tool, convert func(S) P) {
	if _, ok := ts.decoders[tool.Name]; !ok {
		ts.tools = append(ts.tools, tool)
	}
	ts.decoders[tool.Name] = func(raw json.RawMessage) (P, error) {
		var section S
		if err := tool.Decode(raw, &section); err != nil {
			var zero P
			return zero, err
		}
		return convert(section), nil
	}
}

// Group sets the tool groups used for fan-out. Every registered tool must
// appear in exactly one group.
func (ts *Toolset[P]) Group(groups ...[]string) error {
	seen := make(map[string]bool)
	for _, g := range groups {
		if len(g) == 0 {
			return errors.InvalidArgument("tool group is empty")
		}
		for _, name := range g {
			if _, ok := ts.decoders[name]; !ok {
				return errors.InvalidArgumentf("unknown tool %q in group", name)
			}
			if seen[name] {
				return errors.InvalidArgumentf("tool %q is in more than one group", name)
			}
			seen[name] = true
		}
	}
	if len(seen) != len(ts.decoders) {
		return errors.InvalidArgument("every tool must belong to a group")
	}

	ts.groups = groups
	return nil
}

// Tools returns the registered tools in registration order
func (ts *Toolset[P]) Tools() []*schema.Tool {
	return ts.tools
}

// Groups returns the fan-out groups as tool lists. Without explicit groups
// all tools form one group.
func (ts *Toolset[P]) Groups() [][]*schema.Tool {
	if len(ts.groups) == 0 {
		return [][]*schema.Tool{ts.tools}
	}

	byName := make(map[string]*schema.Tool, len(ts.tools))
	for _, t := range ts.tools {
		byName[t.Name] = t
	}

	out := make([][]*schema.Tool, len(ts.groups))
	for i, g := range ts.groups {
		for _, name := range g {
			out[i] = append(out[i], byName[name])
		}
	}
	return out
}

// Decode validates and converts one tool call
func (ts *Toolset[P]) Decode(call llm.ToolCall) (P, error) {
	dec, ok := ts.decoders[call.Name]
	if !ok {
		var zero P
		return zero, errors.InvalidArgumentf("unknown tool %q", call.Name)
	}

	p, err := dec(call.Arguments)
	if err != nil {
		var zero P
		return zero, errors.Wrap(err, fmt.Sprintf("invalid arguments for %s", call.Name))
	}
	return p, nil
}
