package retailer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSchedule is shown for retailers without a schedule note.
const DefaultSchedule = "Monthly"

// Entry maps a canonical retailer name to the keywords that identify it.
type Entry struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Schedule string   `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

// Table is an ordered list of retailers. Order is significant: the first
// entry with a matching keyword wins.
type Table struct {
	Entries []Entry `yaml:"retailers"`
}

// Names returns the canonical names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		names[i] = e.Name
	}
	return names
}

// Schedule returns the launch cadence note for a retailer.
func (t *Table) Schedule(name string) string {
	for _, e := range t.Entries {
		if e.Name == name && e.Schedule != "" {
			return e.Schedule
		}
	}
	return DefaultSchedule
}

// Contains reports whether name is a canonical retailer name.
func (t *Table) Contains(name string) bool {
	for _, e := range t.Entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Validate checks for empty names, missing keywords and duplicates.
func (t *Table) Validate() error {
	if len(t.Entries) == 0 {
		return fmt.Errorf("retailer table is empty")
	}
	seen := make(map[string]bool, len(t.Entries))
	for i, e := range t.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("retailer %d has no name", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate retailer %q", e.Name)
		}
		seen[e.Name] = true
		if len(e.Keywords) == 0 {
			return fmt.Errorf("retailer %q has no keywords", e.Name)
		}
		for _, k := range e.Keywords {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("retailer %q has an empty keyword", e.Name)
			}
		}
	}
	return nil
}

// Parse decodes a YAML retailer table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse retailer table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads the table from path, or returns the built-in table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read retailer table: %w", err)
	}
	return Parse(data)
}
