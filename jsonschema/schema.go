package jsonschema

import gojson "github.com/goccy/go-json"

// Draft is the dialect emitted in Document.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Nullable follows the OpenAPI 3.0 keyword the Opik API definition uses.
type Schema struct {
	// Core
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Nullable    bool   `json:"nullable,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	OneOf         []*Schema      `json:"oneOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`
}

// Discriminator names the property selecting a oneOf variant.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// Clone returns a shallow copy so wrappers can annotate a child schema
// without mutating it.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return &Schema{}
	}
	c := *s
	return &c
}

// Document stamps the dialect onto a root schema.
func Document(s *Schema, title string) *Schema {
	out := s.Clone()
	out.Schema = Draft
	if title != "" {
		out.Title = title
	}
	return out
}

// Marshal renders s as indented JSON.
func Marshal(s *Schema) ([]byte, error) {
	return gojson.MarshalIndent(s, "", "  ")
}
