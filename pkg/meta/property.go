package meta

import "reflect"

// Scope identifies which physical representation of a logical property a tag
// was found on.
type Scope int

// Resolution scopes in lookup precedence order.
const (
	ScopeProperty Scope = iota // the storage slot (struct field)
	ScopeGetter                // the read accessor
	ScopeSetter                // the write accessor
	ScopeClass                 // the declaring type
)

func (s Scope) String() string {
	switch s {
	case ScopeProperty:
		return "property"
	case ScopeGetter:
		return "getter"
	case ScopeSetter:
		return "setter"
	case ScopeClass:
		return "class"
	}
	return "unknown"
}

// Property groups the up-to-three physical representations that together
// form one logical named data member: the storage slot, the read accessor
// and the write accessor. Immutable once built; cached by the introspection
// context for the lifetime of the binding context.
type Property struct {
	name      string
	typ       reflect.Type
	field     *AnnotatedElement
	getter    *AnnotatedElement
	setter    *AnnotatedElement
	declaring *AnnotatedElement
}

// NewProperty builds the property model for one logical member. Any of
// field, getter and setter may be nil; declaring must not be.
func NewProperty(name string, typ reflect.Type, field, getter, setter, declaring *AnnotatedElement) *Property {
	return &Property{
		name:      name,
		typ:       typ,
		field:     field,
		getter:    getter,
		setter:    setter,
		declaring: declaring,
	}
}

// Name returns the raw (un-translated) member name.
func (p *Property) Name() string { return p.name }

// Type returns the declared property type.
func (p *Property) Type() reflect.Type { return p.typ }

// Field returns the storage slot element, or nil.
func (p *Property) Field() *AnnotatedElement { return p.field }

// Getter returns the read accessor element, or nil.
func (p *Property) Getter() *AnnotatedElement { return p.getter }

// Setter returns the write accessor element, or nil.
func (p *Property) Setter() *AnnotatedElement { return p.setter }

// Declaring returns the annotated element of the enclosing type.
func (p *Property) Declaring() *AnnotatedElement { return p.declaring }

// DeclaringType returns the enclosing type itself.
func (p *Property) DeclaringType() reflect.Type {
	if t, ok := p.declaring.Element().(reflect.Type); ok {
		return t
	}
	return nil
}

// Lookup returns the first tag of the given kind checking the storage slot,
// then the read accessor, then the write accessor. Used whenever a single
// authoritative value suffices.
func (p *Property) Lookup(kind Kind) (Tag, bool) {
	for _, el := range []*AnnotatedElement{p.field, p.getter, p.setter} {
		if tag, ok := el.Lookup(kind); ok {
			return tag, ok
		}
	}
	return nil, false
}

// LookupCategorized collects a tag of the given kind from all three
// representations at once, keyed by the scope it came from. Used when read
// and write behavior may legitimately differ for the same property.
func (p *Property) LookupCategorized(kind Kind) map[Scope]Tag {
	result := map[Scope]Tag{}
	if tag, ok := p.field.Lookup(kind); ok {
		result[ScopeProperty] = tag
	}
	if tag, ok := p.getter.Lookup(kind); ok {
		result[ScopeGetter] = tag
	}
	if tag, ok := p.setter.Lookup(kind); ok {
		result[ScopeSetter] = tag
	}
	return result
}
