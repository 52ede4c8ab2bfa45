// Package dataset generates and loads simulated family speech commands.
//
// The command catalog is embedded at build time. Each category carries the
// intent and priority its commands resolve to, speaker-specific template
// lists, and ordered parameter pools; generation draws from the pools in
// declaration order so a fixed seed reproduces the same dataset.
package dataset

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// ParamPool is a named set of values substituted into template placeholders.
type ParamPool struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Category groups the templates and parameter pools for one command intent.
type Category struct {
	Name     string      `yaml:"name"`
	Intent   string      `yaml:"intent"`
	Priority string      `yaml:"priority"`
	Parent   []string    `yaml:"parent"`
	Child    []string    `yaml:"child"`
	Params   []ParamPool `yaml:"params"`
}

// Catalog is the full set of command categories.
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

var placeholderRE = regexp.MustCompile(`\{(\w+)\}`)

// LoadCatalog parses and validates the embedded command catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(templatesYAML, &c); err != nil {
		return nil, fmt.Errorf("parse command catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid command catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
		if cat.Intent == "" {
			return fmt.Errorf("category %q: missing intent", cat.Name)
		}
		switch cat.Priority {
		case "low", "medium", "high":
		default:
			return fmt.Errorf("category %q: priority %q (want low, medium, or high)", cat.Name, cat.Priority)
		}
		if len(cat.Parent)+len(cat.Child) == 0 {
			return fmt.Errorf("category %q: no templates", cat.Name)
		}
		pools := make(map[string]bool, len(cat.Params))
		for _, p := range cat.Params {
			if p.Name == "" {
				return fmt.Errorf("category %q: parameter pool with empty name", cat.Name)
			}
			if pools[p.Name] {
				return fmt.Errorf("category %q: duplicate parameter pool %q", cat.Name, p.Name)
			}
			if len(p.Values) == 0 {
				return fmt.Errorf("category %q: parameter pool %q has no values", cat.Name, p.Name)
			}
			pools[p.Name] = true
		}
		for _, tmpl := range append(append([]string{}, cat.Parent...), cat.Child...) {
			for _, m := range placeholderRE.FindAllStringSubmatch(tmpl, -1) {
				if !pools[m[1]] {
					return fmt.Errorf("category %q: template %q references unknown parameter %q", cat.Name, tmpl, m[1])
				}
			}
		}
	}
	return nil
}

// Category returns the named category, or nil when absent.
func (c *Catalog) Category(name string) *Category {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i]
		}
	}
	return nil
}

// Names lists the category names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		out[i] = cat.Name
	}
	return out
}

// Templates returns the template list for a persona. Categories that carry
// no templates for the requested persona fall back to the parent list, then
// the child list, so every category can serve every speaker.
func (cat *Category) Templates(persona string) []string {
	if persona == "child" && len(cat.Child) > 0 {
		return cat.Child
	}
	if persona == "parent" && len(cat.Parent) > 0 {
		return cat.Parent
	}
	if len(cat.Parent) > 0 {
		return cat.Parent
	}
	return cat.Child
}
