// Package yamlstrict decodes YAML configuration with the checks plain
// yaml.Unmarshal skips: duplicate mapping keys are reported with both
// positions and unknown struct fields are rejected.
package yamlstrict

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	Path      string // dotted path of the enclosing mapping, "" at the root
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	key := e.Key
	if e.Path != "" {
		key = e.Path + "." + e.Key
	}
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// ErrEmpty is returned when the input holds no YAML document.
var ErrEmpty = errors.New("yamlstrict: empty document")

// Decode reads a single YAML document from r into out. Duplicate keys fail
// with *DuplicateKeyError before any field is assigned; keys that do not
// match a field of out fail as well.
func Decode(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if len(root.Content) == 0 {
		return ErrEmpty
	}
	if err := CheckDuplicates(&root); err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

// CheckDuplicates walks n and returns the first duplicate mapping key.
func CheckDuplicates(n *yaml.Node) error {
	return walk(n, nil)
}

func walk(n *yaml.Node, path []string) error {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if err := walk(c, path); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if pos, dup := first[k.Value]; dup {
				return &DuplicateKeyError{
					Key:       k.Value,
					Path:      strings.Join(path, "."),
					FirstLine: pos[0],
					FirstCol:  pos[1],
					Line:      k.Line,
					Col:       k.Column,
				}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			if err := walk(n.Content[i+1], append(path, k.Value)); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			if err := walk(c, append(path, fmt.Sprint(i))); err != nil {
				return err
			}
		}
	}
	return nil
}
