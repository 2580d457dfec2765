package meta

import "reflect"

// Entry is one tag recorded on an element together with its provenance:
// whether it was inherited from another declaring source and, if so, which
// type contributed it.
type Entry struct {
	Tag       Tag
	Inherited bool
	Origin    reflect.Type
}

// AnnotatedElement wraps one reflective program element (struct field,
// accessor method, parameter or type) together with the tags visible on it,
// in declaration order. Own-declaration tags always precede inherited ones.
type AnnotatedElement struct {
	element any
	entries []Entry
}

// NewAnnotatedElement wraps element with its directly declared tags.
func NewAnnotatedElement(element any, tags ...Tag) *AnnotatedElement {
	e := &AnnotatedElement{element: element}
	for _, t := range tags {
		e.Add(t)
	}
	return e
}

// Element returns the wrapped reflective element.
func (e *AnnotatedElement) Element() any {
	return e.element
}

// Entries returns all recorded tag entries in order.
func (e *AnnotatedElement) Entries() []Entry {
	return e.entries
}

// Lookup returns the first tag of the given kind, if any.
func (e *AnnotatedElement) Lookup(kind Kind) (Tag, bool) {
	if e == nil {
		return nil, false
	}
	for _, entry := range e.entries {
		if entry.Tag.Kind() == kind {
			return entry.Tag, true
		}
	}
	return nil, false
}

// LookupDeclared returns the first tag of the given kind declared directly
// on the element, skipping inherited contributions.
func (e *AnnotatedElement) LookupDeclared(kind Kind) (Tag, bool) {
	if e == nil {
		return nil, false
	}
	for _, entry := range e.entries {
		if !entry.Inherited && entry.Tag.Kind() == kind {
			return entry.Tag, true
		}
	}
	return nil, false
}

// All returns every entry of the given kind in recorded order.
func (e *AnnotatedElement) All(kind Kind) []Entry {
	if e == nil {
		return nil
	}
	var out []Entry
	for _, entry := range e.entries {
		if entry.Tag.Kind() == kind {
			out = append(out, entry)
		}
	}
	return out
}

// Has reports whether at least one tag of the given kind is recorded.
func (e *AnnotatedElement) Has(kind Kind) bool {
	_, ok := e.Lookup(kind)
	return ok
}

// Add records a tag declared directly on the element.
func (e *AnnotatedElement) Add(tag Tag) {
	e.entries = append(e.entries, Entry{Tag: tag})
}

// Merge records an entry unless a tag of the same kind is already present
// and the kind is not repeatable. Reports whether the entry was recorded.
func (e *AnnotatedElement) Merge(entry Entry) bool {
	if e.Has(entry.Tag.Kind()) && !entry.Tag.Kind().Repeatable() {
		return false
	}
	e.entries = append(e.entries, entry)
	return true
}
