package croissant

// Fixed identifiers used in generated documents.
const (
	ConformsTo10 = "http://mlcommons.org/croissant/1.0"

	TypeDataset    = "sc:Dataset"
	TypeFileObject = "cr:FileObject"
	TypeRecordSet  = "cr:RecordSet"
	TypeField      = "cr:Field"
	TypePerson     = "Person"
)

// fileObjectTypes are the @type spellings that mark a distribution entry as a
// File Object.
var fileObjectTypes = map[string]struct{}{
	TypeFileObject:                              {},
	"FileObject":                                {},
	"http://mlcommons.org/croissant/FileObject": {},
}

// IsFileObjectType reports whether t names the File Object class.
func IsFileObjectType(t string) bool {
	_, ok := fileObjectTypes[t]
	return ok
}

// Document is a Croissant dataset description. Field order is the
// serialization order.
type Document struct {
	Context       Context      `json:"@context"`
	Type          string       `json:"@type"`
	ConformsTo    string       `json:"conformsTo"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	License       string       `json:"license"`
	URL           string       `json:"url"`
	CiteAs        string       `json:"citeAs"`
	Creator       Creator      `json:"creator"`
	DatePublished string       `json:"datePublished"`
	Version       string       `json:"version"`
	Distribution  []FileObject `json:"distribution"`
	RecordSet     []RecordSet  `json:"recordSet"`
}

// Creator names the person or organization that produced the dataset.
type Creator struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// FileObject describes one physical data file and its integrity digest.
type FileObject struct {
	Type           string `json:"@type"`
	ID             string `json:"@id"`
	Name           string `json:"name"`
	ContentURL     string `json:"contentUrl"`
	EncodingFormat string `json:"encodingFormat"`
	SHA256         string `json:"sha256,omitempty"`
	MD5            string `json:"md5,omitempty"`
}

// HasDigest reports whether at least one checksum is set.
func (f FileObject) HasDigest() bool { return f.SHA256 != "" || f.MD5 != "" }

// RecordSet describes one tabular schema.
type RecordSet struct {
	Type   string  `json:"@type"`
	ID     string  `json:"@id"`
	Name   string  `json:"name"`
	Fields []Field `json:"field"`
}

// Field is one column of a RecordSet.
type Field struct {
	Type        string      `json:"@type"`
	ID          string      `json:"@id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	DataType    DataType    `json:"dataType"`
	Source      FieldSource `json:"source"`
}

// FieldSource binds a Field to a column of a FileObject.
type FieldSource struct {
	FileObject Ref     `json:"fileObject"`
	Extract    Extract `json:"extract"`
}

// Ref is a JSON-LD node reference.
type Ref struct {
	ID string `json:"@id"`
}

// Extract selects the column a Field reads.
type Extract struct {
	Column string `json:"column"`
}
