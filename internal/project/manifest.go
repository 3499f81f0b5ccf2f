package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest is the TOML description of type declarations the CLI feeds to
// the derivation engine. It stands in for the parser/binder, which is a
// separate subsystem.
type Manifest struct {
	Module string         `toml:"module"`
	Types  []TypeManifest `toml:"type"`
}

// TypeManifest declares one nominal type.
type TypeManifest struct {
	Name        string          `toml:"name"`
	Kind        string          `toml:"kind"` // variant|product|reference
	File        string          `toml:"file"`
	Raw         string          `toml:"raw"` // backing type: "int" | "string" | ""
	Final       bool            `toml:"final"`
	Interop     bool            `toml:"interop"`
	Unavailable bool            `toml:"unavailable_case"`
	Derive      []string        `toml:"derive"`
	Cases       []CaseManifest  `toml:"case"`
	Fields      []FieldManifest `toml:"field"`
}

// CaseManifest declares one variant case in declaration order.
type CaseManifest struct {
	Name      string          `toml:"name"`
	RawInt    int64           `toml:"raw_int"`
	RawString string          `toml:"raw_string"`
	RawSet    bool            `toml:"raw_set"`
	Fields    []FieldManifest `toml:"field"`
}

// FieldManifest declares one payload field or stored member.
type FieldManifest struct {
	Label string `toml:"label"` // "" = unlabeled
	Type  string `toml:"type"`  // builtin name or a previously declared type
}

// LoadManifest reads and validates a type manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(string(data))
}

// ParseManifest decodes and validates manifest TOML.
func ParseManifest(data string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Module == "" {
		m.Module = "main"
	}
	seen := make(map[string]bool, len(m.Types))
	for i := range m.Types {
		t := &m.Types[i]
		if t.Name == "" {
			return fmt.Errorf("type #%d has no name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate type %q", t.Name)
		}
		seen[t.Name] = true
		switch t.Kind {
		case "variant":
			if len(t.Fields) > 0 {
				return fmt.Errorf("type %q: variant types declare cases, not fields", t.Name)
			}
		case "product", "reference":
			if len(t.Cases) > 0 {
				return fmt.Errorf("type %q: only variant types declare cases", t.Name)
			}
		default:
			return fmt.Errorf("type %q: unknown kind %q", t.Name, t.Kind)
		}
		switch t.Raw {
		case "", "int", "string":
		default:
			return fmt.Errorf("type %q: unsupported backing type %q", t.Name, t.Raw)
		}
		if t.File == "" {
			t.File = t.Name + ".tn"
		}
	}
	return nil
}
