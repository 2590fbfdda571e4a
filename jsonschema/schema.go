package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Enum        []any  `json:"enum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Draft is the dialect emitted at the document root.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// IntPtr is a small helper for the optional integer keywords.
func IntPtr(n int) *int { return &n }

// AsMap returns s as plain JSON values (maps, slices, strings, ints, bools)
// with the same keys and omissions as the struct tags. Encoders that cannot
// compile the recursive struct type can encode the map instead.
func (s *Schema) AsMap() map[string]any {
	if s == nil {
		return nil
	}
	m := map[string]any{}
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("$schema", s.Schema)
	put("title", s.Title)
	put("description", s.Description)
	put("type", s.Type)
	put("format", s.Format)
	if len(s.Enum) > 0 {
		m["enum"] = append([]any(nil), s.Enum...)
	}
	if s.MinLength != nil {
		m["minLength"] = *s.MinLength
	}
	put("pattern", s.Pattern)
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for k, p := range s.Properties {
			props[k] = p.AsMap()
		}
		m["properties"] = props
	}
	if len(s.Required) > 0 {
		req := make([]any, len(s.Required))
		for i, r := range s.Required {
			req[i] = r
		}
		m["required"] = req
	}
	if s.AdditionalProperties != nil {
		if sub, ok := s.AdditionalProperties.(*Schema); ok {
			m["additionalProperties"] = sub.AsMap()
		} else {
			m["additionalProperties"] = s.AdditionalProperties
		}
	}
	if s.Items != nil {
		m["items"] = s.Items.AsMap()
	}
	if s.MinItems != nil {
		m["minItems"] = *s.MinItems
	}
	if len(s.AnyOf) > 0 {
		alts := make([]any, len(s.AnyOf))
		for i, a := range s.AnyOf {
			alts[i] = a.AsMap()
		}
		m["anyOf"] = alts
	}
	return m
}
