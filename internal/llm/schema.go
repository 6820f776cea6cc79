package llm

import (
	"encoding/json"
	"fmt"
)

// SchemaType is the JSON type of a schema node.
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeString SchemaType = "string"
)

// Schema is a provider-neutral subset of JSON Schema, sufficient to describe
// flat structured replies. Providers translate it to their own dialect.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`

	// PropertyOrdering fixes the order in which providers that honour it
	// emit properties. It is not part of the JSON rendering.
	PropertyOrdering []string `json:"-"`
}

// JSON renders the schema as indented JSON Schema text.
func (s *Schema) JSON() (string, error) {
	if s == nil {
		return "", nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(data), nil
}

// schemaInstruction appends the schema to a system prompt for providers that
// have no native structured output.
func schemaInstruction(system string, req GenerateRequest) string {
	if req.Format != FormatJSON {
		return system
	}
	suffix := "\n\nResponda somente com um único objeto JSON válido, sem texto adicional."
	if req.Schema != nil {
		if text, err := req.Schema.JSON(); err == nil {
			suffix += " O objeto deve seguir exatamente este JSON Schema:\n" + text
		}
	}
	return system + suffix
}
