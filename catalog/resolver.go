package catalog

import "strings"

type lookupKind int

const (
	byID lookupKind = iota
	bySlug
	byDisplayName
)

// Lookup selects a category or subcategory by exactly one criterion.
type Lookup struct {
	kind  lookupKind
	value string
}

func ByID(id string) Lookup            { return Lookup{byID, id} }
func BySlug(val string) Lookup         { return Lookup{bySlug, val} }
func ByDisplayName(name string) Lookup { return Lookup{byDisplayName, name} }

// Resolved is a flattened view of a matched category tree node.
type Resolved struct {
	ID   string
	Name string
	Val  string
	// ParentVal is set when the match is a subcategory.
	ParentVal   string
	Subcategory bool
}

// Resolve walks the category tree and returns the node matching the lookup.
// Slug and display-name comparisons are case-insensitive; id comparison is
// exact. Categories are checked before subcategories.
func Resolve(cats []Category, q Lookup) (Resolved, bool) {
	for _, c := range cats {
		if matches(q, c.ID, c.Name, c.Val) {
			return Resolved{ID: c.ID, Name: c.Name, Val: c.Val}, true
		}
	}
	for _, c := range cats {
		for _, s := range c.Subcategories {
			if matches(q, s.ID, s.Name, s.Val) {
				return Resolved{ID: s.ID, Name: s.Name, Val: s.Val, ParentVal: c.Val, Subcategory: true}, true
			}
		}
	}
	return Resolved{}, false
}

func matches(q Lookup, id, name, val string) bool {
	switch q.kind {
	case byID:
		return id != "" && id == q.value
	case bySlug:
		return strings.EqualFold(val, q.value)
	case byDisplayName:
		return strings.EqualFold(name, q.value)
	}
	return false
}
