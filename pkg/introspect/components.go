package introspect

import (
	"reflect"

	"github.com/example/jsonbind/pkg/component"
	"github.com/example/jsonbind/pkg/meta"
)

// tagSource is any element group a component tag can be looked up on: a
// property (first-match across its representations) or a single annotated
// element.
type tagSource interface {
	Lookup(kind meta.Kind) (meta.Tag, bool)
}

// declaredOnly restricts lookups to tags declared directly on an element,
// skipping inherited contributions. Class-scope component bindings resolve
// through it.
type declaredOnly struct {
	el *meta.AnnotatedElement
}

func (d declaredOnly) Lookup(kind meta.Kind) (meta.Tag, bool) {
	return d.el.LookupDeclared(kind)
}

// adapterFor resolves the adapter binding for a source: the tag on the
// source wins, else the source's declared type is consulted. When an
// expected type is known the adapter's model-side type must be able to
// accept it.
func (ix *introspector) adapterFor(source tagSource, declaredType, expected reflect.Type) (*component.AdapterBinding, error) {
	tag, ok, err := ix.componentTag(source, declaredType, meta.KindAdapter)
	if err != nil || !ok {
		return nil, err
	}

	adapterTag := tag.(meta.AdapterTag)
	comp, err := ix.component(adapterTag.Component, adapterTag.Name)
	if err != nil {
		return nil, err
	}
	binding, err := ix.components.ResolveAdapter(comp)
	if err != nil {
		return nil, err
	}

	if expected != nil {
		exp := concreteType(expected)
		if exp != nil && exp.Kind() != reflect.Interface && !exp.AssignableTo(binding.Original) {
			return nil, &AdapterIncompatibleError{Original: binding.Original, Expected: exp}
		}
	}
	return binding, nil
}

// serializerFor resolves the serializer binding for a source. Output-only
// bindings carry no assignability ambiguity, so no compatibility check
// applies.
func (ix *introspector) serializerFor(source tagSource, declaredType reflect.Type) (*component.SerializerBinding, error) {
	tag, ok, err := ix.componentTag(source, declaredType, meta.KindSerializer)
	if err != nil || !ok {
		return nil, err
	}
	serializerTag := tag.(meta.SerializerTag)
	comp, err := ix.component(serializerTag.Component, serializerTag.Name)
	if err != nil {
		return nil, err
	}
	return ix.components.ResolveSerializer(comp)
}

// deserializerFor resolves the deserializer binding for a source.
func (ix *introspector) deserializerFor(source tagSource, declaredType reflect.Type) (*component.DeserializerBinding, error) {
	tag, ok, err := ix.componentTag(source, declaredType, meta.KindDeserializer)
	if err != nil || !ok {
		return nil, err
	}
	deserializerTag := tag.(meta.DeserializerTag)
	comp, err := ix.component(deserializerTag.Component, deserializerTag.Name)
	if err != nil {
		return nil, err
	}
	return ix.components.ResolveDeserializer(comp)
}

// componentTag performs the two-tier lookup: the source first, then the
// source's declared type (skipped when declaredType is nil).
func (ix *introspector) componentTag(source tagSource, declaredType reflect.Type, kind meta.Kind) (meta.Tag, bool, error) {
	if tag, ok := source.Lookup(kind); ok {
		return tag, true, nil
	}
	if declaredType == nil {
		return nil, false, nil
	}
	tag, ok, err := ix.typeLevel(declaredType, kind)
	return tag, ok, err
}

// typeLevel looks a tag up on a declared type through the hierarchy
// collector.
func (ix *introspector) typeLevel(t reflect.Type, kind meta.Kind) (meta.Tag, bool, error) {
	raw := concreteType(t)
	if raw == nil || isBuiltinType(raw) {
		return nil, false, nil
	}
	el, err := ix.collectedElement(raw)
	if err != nil {
		return nil, false, err
	}
	tag, ok := el.Lookup(kind)
	return tag, ok, nil
}

// typeLevelTag is the error-dropping variant used for formatter tags, which
// tolerate uncollectable types (the surrounding resolution reports hierarchy
// errors through the class element).
func (ix *introspector) typeLevelTag(t reflect.Type, kind meta.Kind) (meta.Tag, bool) {
	tag, ok, err := ix.typeLevel(t, kind)
	if err != nil {
		return nil, false
	}
	return tag, ok
}

// component materializes the component referenced by a tag: the carried
// value when present, else the name registered in the component registry.
func (ix *introspector) component(carried any, name string) (any, error) {
	if carried != nil {
		return carried, nil
	}
	comp, ok := ix.components.Lookup(name)
	if !ok {
		return nil, &UnknownComponentError{Name: name}
	}
	return comp, nil
}
