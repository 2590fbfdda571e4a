// Package rules holds document-level checks that span more than one field,
// for use with dsl's objectBuilder.Rule. Paths are JSON Pointers relative to
// the value the rule is attached to; a "*" segment matches every element of
// an array (or every value of an object, in key order).
package rules

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	croissant "github.com/reoring/croissant"
)

// Rule is an alias for a typed rule function.
type Rule[T any] = func(croissant.DomainCtx[T], T) []croissant.Issue

// AtLeastOne ensures the collection at collectionPath has at least 1 element.
// A missing collection is left to the required-key check.
func AtLeastOne[T any](collectionPath string) Rule[T] {
	segs := split(collectionPath)
	return func(d croissant.DomainCtx[T], v T) []croissant.Issue {
		var out []croissant.Issue
		for _, m := range match(any(v), segs) {
			if isCollection(m.value) && reflect.ValueOf(m.value).Len() == 0 {
				out = append(out, m.ref(d.Ref).Issue(croissant.CodeTooShort, "at least 1 item is required", "minItems", 1))
			}
		}
		return out
	}
}

// UniqueBy ensures elements in a collection have unique key values.
// collectionPath points at an array (it may contain "*" to pool several
// arrays into one collection, e.g. "/recordSet/*/field").
// keyPath is a relative path inside each element (e.g., "@id" or "/@id").
// Keys are compared by their string form; elements without the key are skipped.
func UniqueBy[T any](collectionPath, keyPath string) Rule[T] {
	cs := split(collectionPath)
	ks := split(keyPath)
	return func(d croissant.DomainCtx[T], v T) []croissant.Issue {
		seen := map[string]string{}
		var out []croissant.Issue
		for _, coll := range match(any(v), cs) {
			if !isCollection(coll.value) {
				continue
			}
			for _, el := range match(coll.value, []string{"*"}) {
				for _, kv := range match(el.value, ks) {
					key := fmt.Sprint(kv.value)
					at := coll.join(el).join(kv)
					if first, dup := seen[key]; dup {
						out = append(out, at.ref(d.Ref).Issue(
							croissant.CodeUniqueness,
							fmt.Sprintf("duplicate value %q (first at %s)", key, first),
							"first", first, "key", key,
						))
						continue
					}
					seen[key] = at.ref(d.Ref).Pointer()
				}
			}
		}
		return out
	}
}

// RefersTo ensures every value matched by fromPath equals some value matched
// by toPath, e.g. RefersTo("/recordSet/*/field/*/source/fileObject/@id",
// "/distribution/*/@id").
func RefersTo[T any](fromPath, toPath string) Rule[T] {
	fs := split(fromPath)
	ts := split(toPath)
	return func(d croissant.DomainCtx[T], v T) []croissant.Issue {
		targets := map[string]struct{}{}
		for _, m := range match(any(v), ts) {
			targets[fmt.Sprint(m.value)] = struct{}{}
		}
		var out []croissant.Issue
		for _, m := range match(any(v), fs) {
			key := fmt.Sprint(m.value)
			if _, ok := targets[key]; ok {
				continue
			}
			out = append(out, m.ref(d.Ref).Issue(
				croissant.CodeDanglingRef,
				fmt.Sprintf("%q does not match any %s", key, toPath),
				"ref", key, "target", toPath,
			))
		}
		return out
	}
}

// ---------- Rule combinators ----------

// And executes all rules and concatenates Issues. Stops early under fail-fast.
func And[T any](rules ...Rule[T]) Rule[T] {
	return func(d croissant.DomainCtx[T], v T) []croissant.Issue {
		var out []croissant.Issue
		for _, r := range rules {
			if r == nil {
				continue
			}
			if iss := r(d, v); len(iss) > 0 {
				out = append(out, iss...)
				if croissant.IsFailFast(d.Ctx) {
					return out
				}
			}
		}
		return out
	}
}

// Or succeeds if any rule returns no Issues. When all fail it returns the
// branch with the fewest Issues.
func Or[T any](rules ...Rule[T]) Rule[T] {
	return func(d croissant.DomainCtx[T], v T) []croissant.Issue {
		var best []croissant.Issue
		bestSet := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			iss := r(d, v)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best = iss
				bestSet = true
			}
		}
		return best
	}
}

// ------- helpers -------

// hit is one value reached by a path pattern plus the concrete steps taken.
type hit struct {
	value any
	steps []step
}

type step struct {
	key   string
	index int
	isIdx bool
}

func (h hit) join(o hit) hit {
	return hit{value: o.value, steps: append(append([]step{}, h.steps...), o.steps...)}
}

func (h hit) ref(base croissant.PathRef) croissant.PathRef {
	r := base
	for _, s := range h.steps {
		if s.isIdx {
			r = r.Index(s.index)
		} else {
			r = r.Field(s.key)
		}
	}
	return r
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// split turns a JSON Pointer (leading "/" optional) into unescaped segments.
func split(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	for i := range parts {
		parts[i] = pointerUnescaper.Replace(parts[i])
	}
	return parts
}

// match walks v along segs and returns every value reached, in document order.
// Maps with string keys and slices of any element type are traversed, so it
// works on both decoded JSON and the typed output of dsl schemas.
func match(v any, segs []string) []hit {
	cur := []hit{{value: v}}
	for _, seg := range segs {
		var next []hit
		for _, h := range cur {
			rv := reflect.ValueOf(h.value)
			switch rv.Kind() {
			case reflect.Map:
				if rv.Type().Key().Kind() != reflect.String {
					continue
				}
				if seg == "*" {
					keys := rv.MapKeys()
					sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
					for _, k := range keys {
						next = append(next, h.join(hit{value: rv.MapIndex(k).Interface(), steps: []step{{key: k.String()}}}))
					}
					continue
				}
				child := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
				if child.IsValid() {
					next = append(next, h.join(hit{value: child.Interface(), steps: []step{{key: seg}}}))
				}
			case reflect.Slice, reflect.Array:
				if seg == "*" {
					for i := 0; i < rv.Len(); i++ {
						next = append(next, h.join(hit{value: rv.Index(i).Interface(), steps: []step{{index: i, isIdx: true}}}))
					}
					continue
				}
				if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < rv.Len() {
					next = append(next, h.join(hit{value: rv.Index(i).Interface(), steps: []step{{index: i, isIdx: true}}}))
				}
			}
		}
		cur = next
	}
	return cur
}

func isCollection(v any) bool {
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
