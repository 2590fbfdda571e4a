// Package schema describes the structure of a Croissant 1.0 dataset document
// with the dsl package. It backs the validator's deep check and the
// "croissant schema" command.
package schema

import (
	"sync"
	"time"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/codec"
	g "github.com/reoring/croissant/dsl"
	js "github.com/reoring/croissant/jsonschema"
	"github.com/reoring/croissant/rules"
)

// Name identifies this schema in validator output.
const Name = "croissant-1.0"

type doc = map[string]any

var (
	once    sync.Once
	current croissant.Schema[doc]
)

// Document returns the dataset schema. Unknown keys are accepted and dropped
// at every level, since JSON-LD documents routinely carry extra terms.
func Document() croissant.Schema[doc] {
	once.Do(func() { current = build() })
	return current
}

// JSONSchema exports Document as a standalone JSON Schema document.
func JSONSchema() (*js.Schema, error) {
	s, err := Document().JSONSchema()
	if err != nil {
		return nil, err
	}
	s.Schema = js.Draft
	s.Title = "Croissant dataset metadata (" + Name + ")"
	return s, nil
}

func str() g.AnyAdapter      { return g.SchemaOf[string](g.String()) }
func nonEmpty() g.AnyAdapter { return g.SchemaOf[string](g.String().NonEmpty()) }

func oneOrMany(item croissant.Schema[doc]) g.AnyAdapter {
	return g.AnyOf(g.SchemaOf(item), g.SchemaOf[[]doc](g.Array[doc](item).Min(1)))
}

func typeEnum(spellings ...string) g.AnyAdapter {
	return g.SchemaOf[string](g.String().Enum(spellings...))
}

func build() croissant.Schema[doc] {
	person := g.Object().
		Field("@type", str()).
		Field("name", nonEmpty()).Required().
		Field("url", str()).
		Field("email", str()).
		UnknownStrip().
		MustBuild()

	ref := g.Object().
		Field("@id", nonEmpty()).Required().
		UnknownStrip().
		MustBuild()

	fileObject := g.Object().
		Field("@type", typeEnum(croissant.TypeFileObject, "FileObject", "http://mlcommons.org/croissant/FileObject")).Required().
		Field("@id", nonEmpty()).Required().
		Field("name", nonEmpty()).Required().
		Field("description", str()).
		Field("contentUrl", str()).
		Field("contentSize", str()).
		Field("encodingFormat", nonEmpty()).Required().
		Field("sha256", str()).
		Field("md5", str()).
		Field("containedIn", g.AnyOf(g.SchemaOf(ref), g.ArrayOf(ref))).
		Describe("cr:FileObject").
		UnknownStrip().
		MustBuild()

	fileSet := g.Object().
		Field("@type", typeEnum("cr:FileSet", "FileSet", "http://mlcommons.org/croissant/FileSet")).Required().
		Field("@id", nonEmpty()).Required().
		Field("name", nonEmpty()).Required().
		Field("description", str()).
		Field("encodingFormat", nonEmpty()).Required().
		Field("includes", g.AnyOf(str(), g.ArrayOf[string](g.String()))).
		Field("excludes", g.AnyOf(str(), g.ArrayOf[string](g.String()))).
		Field("containedIn", g.AnyOf(g.SchemaOf(ref), g.ArrayOf(ref))).
		Describe("cr:FileSet").
		UnknownStrip().
		MustBuild()

	extract := g.Object().
		Field("column", str()).
		Field("jsonPath", str()).
		Field("fileProperty", str()).
		UnknownStrip().
		MustBuild()

	source := g.Object().
		Field("fileObject", g.SchemaOf(ref)).
		Field("fileSet", g.SchemaOf(ref)).
		Field("field", g.SchemaOf(ref)).
		Field("extract", g.SchemaOf(extract)).
		Field("transform", g.Any()).
		UnknownStrip().
		MustBuild()

	field := g.Object().
		Field("@type", typeEnum(croissant.TypeField, "Field", "http://mlcommons.org/croissant/Field")).Required().
		Field("@id", nonEmpty()).Required().
		Field("name", nonEmpty()).Required().
		Field("description", str()).
		Field("dataType", g.AnyOf(nonEmpty(), g.ArrayOf[string](g.String().NonEmpty()))).Required().
		Field("source", g.SchemaOf(source)).
		Field("repeated", g.SchemaOf[bool](g.Bool())).
		Field("references", g.SchemaOf(ref)).
		UnknownStrip().
		MustBuild()

	recordSet := g.Object().
		Field("@type", typeEnum(croissant.TypeRecordSet, "RecordSet", "http://mlcommons.org/croissant/RecordSet")).Required().
		Field("@id", nonEmpty()).Required().
		Field("name", nonEmpty()).Required().
		Field("description", str()).
		Field("key", g.Any()).
		Field("field", g.SchemaOf[[]doc](g.Array[doc](field).Min(1))).Required().
		UnknownStrip().
		MustBuild()

	return g.Object().
		Field("@context", g.SchemaOf(g.MapAny())).Required().
		Field("@type", g.SchemaOf[string](g.String().Enum(croissant.TypeDataset, "Dataset", "https://schema.org/Dataset", "schema:Dataset"))).Required().
		Field("conformsTo", str()).Required().
		Field("name", nonEmpty()).Required().
		Field("description", str()).Required().
		Field("license", g.AnyOf(nonEmpty(), g.SchemaOf[[]string](g.Array[string](g.String().NonEmpty()).Min(1)))).Required().
		Field("url", nonEmpty()).Required().
		Field("citeAs", str()).
		Field("creator", oneOrMany(person)).Required().
		Field("datePublished", g.SchemaOf[time.Time](g.Codec(codec.ISODate()))).Required().
		Field("version", str()).
		Field("keywords", g.ArrayOf[string](g.String())).
		Field("isLiveDataset", g.SchemaOf[bool](g.Bool())).
		Field("distribution", g.ArrayOf[any](g.AnyOf(g.SchemaOf(fileObject), g.SchemaOf(fileSet)))).Required().
		Field("recordSet", g.ArrayOf(recordSet)).
		Rule("distribution-id-unique", rules.UniqueBy[doc]("/distribution", "@id")).
		Rule("recordset-id-unique", rules.UniqueBy[doc]("/recordSet", "@id")).
		Rule("field-id-unique", rules.UniqueBy[doc]("/recordSet/*/field", "@id")).
		Rule("field-source-resolves", rules.And[doc](
			rules.RefersTo[doc]("/recordSet/*/field/*/source/fileObject/@id", "/distribution/*/@id"),
			rules.RefersTo[doc]("/recordSet/*/field/*/source/fileSet/@id", "/distribution/*/@id"),
		)).
		Describe("sc:Dataset").
		UnknownStrip().
		MustBuild()
}
