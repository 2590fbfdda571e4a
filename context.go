package croissant

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Term is one binding of the JSON-LD @context. A Term with a non-empty Type
// is emitted in expanded form: {"@id": IRI, "@type": Type}.
type Term struct {
	Name string
	IRI  string
	Type string
}

// vocabulary is the Croissant 1.0 @context, in emission order. It must stay
// byte-for-byte compatible with what downstream Croissant consumers expect.
var vocabulary = [...]Term{
	{Name: "@language", IRI: "en"},
	{Name: "@vocab", IRI: "https://schema.org/"},
	{Name: "citeAs", IRI: "cr:citeAs"},
	{Name: "column", IRI: "cr:column"},
	{Name: "conformsTo", IRI: "dct:conformsTo"},
	{Name: "cr", IRI: "http://mlcommons.org/croissant/"},
	{Name: "rai", IRI: "http://mlcommons.org/croissant/RAI/"},
	{Name: "data", IRI: "cr:data", Type: "@json"},
	{Name: "dataType", IRI: "cr:dataType", Type: "@vocab"},
	{Name: "dct", IRI: "http://purl.org/dc/terms/"},
	{Name: "examples", IRI: "cr:examples", Type: "@json"},
	{Name: "extract", IRI: "cr:extract"},
	{Name: "field", IRI: "cr:field"},
	{Name: "fileProperty", IRI: "cr:fileProperty"},
	{Name: "fileObject", IRI: "cr:fileObject"},
	{Name: "fileSet", IRI: "cr:fileSet"},
	{Name: "format", IRI: "cr:format"},
	{Name: "includes", IRI: "cr:includes"},
	{Name: "isLiveDataset", IRI: "cr:isLiveDataset"},
	{Name: "jsonPath", IRI: "cr:jsonPath"},
	{Name: "key", IRI: "cr:key"},
	{Name: "md5", IRI: "cr:md5"},
	{Name: "parentField", IRI: "cr:parentField"},
	{Name: "path", IRI: "cr:path"},
	{Name: "recordSet", IRI: "cr:recordSet"},
	{Name: "references", IRI: "cr:references"},
	{Name: "regex", IRI: "cr:regex"},
	{Name: "repeated", IRI: "cr:repeated"},
	{Name: "replace", IRI: "cr:replace"},
	{Name: "samplingRate", IRI: "cr:samplingRate"},
	{Name: "sc", IRI: "https://schema.org/"},
	{Name: "separator", IRI: "cr:separator"},
	{Name: "source", IRI: "cr:source"},
	{Name: "subField", IRI: "cr:subField"},
	{Name: "transform", IRI: "cr:transform"},
}

// Context is the @context value of a Document. The zero value marshals to the
// standard Croissant vocabulary; it carries no mutable state.
type Context struct{}

// Terms returns a copy of the vocabulary bindings in emission order.
func (Context) Terms() []Term {
	out := make([]Term, len(vocabulary))
	copy(out, vocabulary[:])
	return out
}

// Lookup returns the binding for a short name.
func (Context) Lookup(name string) (Term, bool) {
	for _, t := range vocabulary {
		if t.Name == name {
			return t, true
		}
	}
	return Term{}, false
}

// MarshalJSON emits the bindings as an object, preserving order.
func (Context) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, t := range vocabulary {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(&b, t.Name)
		b.WriteByte(':')
		if t.Type == "" {
			writeJSONString(&b, t.IRI)
			continue
		}
		b.WriteString(`{"@id":`)
		writeJSONString(&b, t.IRI)
		b.WriteString(`,"@type":`)
		writeJSONString(&b, t.Type)
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// AsMap renders the vocabulary as a JSON-compatible map, the shape a decoded
// document carries.
func (Context) AsMap() map[string]any {
	m := make(map[string]any, len(vocabulary))
	for _, t := range vocabulary {
		if t.Type == "" {
			m[t.Name] = t.IRI
			continue
		}
		m[t.Name] = map[string]any{"@id": t.IRI, "@type": t.Type}
	}
	return m
}

func writeJSONString(b *bytes.Buffer, s string) {
	q, _ := json.Marshal(s)
	b.Write(q)
}
