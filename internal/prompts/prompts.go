// Package prompts holds the system prompts and tool descriptions offered to
// the language model.
package prompts

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var catalogYAML []byte

// Prompt names
const (
	CreatureGenerate = "creature_generate"
	CreatureUpdate   = "creature_update"
	ItemGenerate     = "item_generate"
	ItemUpdate       = "item_update"
)

// Catalog is the parsed prompt file
type Catalog struct {
	System map[string]string `yaml:"system"`
	Tools  map[string]string `yaml:"tools"`
}

var (
	loadOnce sync.Once
	catalog  *Catalog
	loadErr  error
)

// Load parses the embedded catalog once
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		catalog, loadErr = Parse(catalogYAML)
	})
	return catalog, loadErr
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}
	return &c, nil
}

// SystemPrompt returns the named system prompt
func (c *Catalog) SystemPrompt(name string) (string, error) {
	p, ok := c.System[name]
	if !ok {
		return "", fmt.Errorf("unknown system prompt %q", name)
	}
	return p, nil
}

// ToolDescription returns the description for a tool
func (c *Catalog) ToolDescription(tool string) (string, error) {
	d, ok := c.Tools[tool]
	if !ok {
		return "", fmt.Errorf("no description for tool %q", tool)
	}
	return d, nil
}

// MustSystemPrompt is SystemPrompt on the embedded catalog, panicking on a
// missing entry.
func MustSystemPrompt(name string) string {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	p, err := c.SystemPrompt(name)
	if err != nil {
		panic(err)
	}
	return p
}

// MustToolDescription is ToolDescription on the embedded catalog, panicking
// on a missing entry.
func MustToolDescription(tool string) string {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	d, err := c.ToolDescription(tool)
	if err != nil {
		panic(err)
	}
	return d
}
