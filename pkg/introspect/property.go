package introspect

import (
	"fmt"
	"reflect"

	"github.com/example/jsonbind/pkg/meta"
)

// discoverProperties builds the property models of a struct type: one per
// visible, non-embedded field, pairing the storage slot with its
// conventional read and write accessors. Embedded structs form the base
// chain and are resolved as the parent type, not as properties.
func (ix *introspector) discoverProperties(t reflect.Type, classEl *meta.AnnotatedElement, visibility meta.VisibilityStrategy) []*meta.Property {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []*meta.Property
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous || !visibility.VisibleField(field) {
			continue
		}

		parsed := meta.ParseFieldTags(field)

		slot := meta.NewAnnotatedElement(field, parsed.Slot...)
		for _, tag := range ix.reg.AccessorTags(t, field.Name, meta.ScopeProperty) {
			slot.Add(tag)
		}

		getter := ix.accessorElement(t, field, meta.ScopeGetter, parsed.Getter, visibility)
		setter := ix.accessorElement(t, field, meta.ScopeSetter, parsed.Setter, visibility)

		out = append(out, meta.NewProperty(field.Name, field.Type, slot, getter, setter, classEl))
	}
	return out
}

// accessorElement wraps the conventional accessor method of a field, if one
// exists, with the tags declared for that scope. When only tags exist the
// element still materializes so accessor-scoped declarations apply.
func (ix *introspector) accessorElement(t reflect.Type, field reflect.StructField, scope meta.Scope, parsed []meta.Tag, visibility meta.VisibilityStrategy) *meta.AnnotatedElement {
	tags := append(parsed[:len(parsed):len(parsed)], ix.reg.AccessorTags(t, field.Name, scope)...)

	method, ok := accessorMethod(t, field, scope)
	if ok && !visibility.VisibleMethod(method) {
		ok = false
	}
	if !ok && len(tags) == 0 {
		return nil
	}
	if ok {
		return meta.NewAnnotatedElement(method, tags...)
	}
	return meta.NewAnnotatedElement(field, tags...)
}

// accessorMethod finds the conventional accessor for a field: GetName()
// returning the field type for reads, SetName(v) for writes.
func accessorMethod(t reflect.Type, field reflect.StructField, scope meta.Scope) (reflect.Method, bool) {
	ptr := reflect.PointerTo(t)
	switch scope {
	case meta.ScopeGetter:
		for _, host := range []reflect.Type{t, ptr} {
			method, ok := host.MethodByName("Get" + field.Name)
			if ok && method.Type.NumIn() == 1 && method.Type.NumOut() == 1 && method.Type.Out(0) == field.Type {
				return method, true
			}
		}
	case meta.ScopeSetter:
		method, ok := ptr.MethodByName("Set" + field.Name)
		if ok && method.Type.NumIn() == 2 && method.Type.In(1) == field.Type {
			return method, true
		}
	}
	return reflect.Method{}, false
}

// resolveProperty compiles the customization of one property against the
// already-resolved class defaults.
func (ix *introspector) resolveProperty(p *meta.Property, classEl *meta.AnnotatedElement, class *ClassCustomization) (*PropertyCustomization, error) {
	transient, err := ix.checkTransient(p)
	if err != nil {
		return nil, err
	}
	if transient {
		return &PropertyCustomization{Property: p, Transient: true}, nil
	}

	out := &PropertyCustomization{
		Property:         p,
		SerializedName:   ix.resolveName(p, p.Getter()),
		DeserializedName: ix.resolveName(p, p.Setter()),
		Nillable:         ix.resolveNillable(p, class),
	}

	out.DateFormatters, err = ix.dateFormatters(p, classEl)
	if err != nil {
		return nil, err
	}
	out.NumberFormatters = ix.numberFormatters(p, classEl)

	out.Adapter, err = ix.adapterFor(p, p.Type(), p.Type())
	if err != nil {
		return nil, err
	}
	out.Serializer, err = ix.serializerFor(p, p.Type())
	if err != nil {
		return nil, err
	}
	out.Deserializer, err = ix.deserializerFor(p, p.Type())
	if err != nil {
		return nil, err
	}

	out.Implementation, err = ix.resolveImplementation(p)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// checkTransient reports whether the property is excluded from binding and
// rejects customization tags co-occurring with a transient tag on the same
// element.
func (ix *introspector) checkTransient(p *meta.Property) (bool, error) {
	transient := false
	for _, el := range []*meta.AnnotatedElement{p.Field(), p.Getter(), p.Setter()} {
		if !el.Has(meta.KindTransient) {
			continue
		}
		transient = true
		for _, kind := range meta.TransientIncompatible() {
			if el.Has(kind) {
				return false, &TransientConflictError{Property: p.Name(), Kind: kind}
			}
		}
	}
	return transient, nil
}

// resolveName picks the JSON key for one direction: the accessor's naming
// tag wins, the storage slot's is the fallback, the naming strategy decides
// otherwise. A naming tag with an empty value counts as absent.
func (ix *introspector) resolveName(p *meta.Property, accessor *meta.AnnotatedElement) string {
	if tag, ok := accessor.Lookup(meta.KindName); ok {
		if name := tag.(meta.NameTag).Value; name != "" {
			return name
		}
	}
	if tag, ok := p.Field().Lookup(meta.KindName); ok {
		if name := tag.(meta.NameTag).Value; name != "" {
			return name
		}
	}
	return ix.cfg.NamingStrategy.Translate(p.Name())
}

// resolveNillable applies the nil-handling cascade: an explicit nillable
// tag wins outright, then the deprecated flag on the naming tag, then the
// class-level policy.
func (ix *introspector) resolveNillable(p *meta.Property, class *ClassCustomization) bool {
	if tag, ok := p.Lookup(meta.KindNillable); ok {
		return tag.(meta.NillableTag).Value
	}
	if tag, ok := p.Lookup(meta.KindName); ok {
		if deprecated := tag.(meta.NameTag).Nillable; deprecated != nil {
			return *deprecated
		}
	}
	return class.Nillable
}

// dateFormatters collects the per-scope date formatters of a property. A
// temporal property never inherits the class-level formatter: absent a
// property-level tag, global date handling applies to it. The class-level
// contribution is recorded for the remaining types without the temporal
// validation, which polices property-scoped declarations only.
func (ix *introspector) dateFormatters(p *meta.Property, classEl *meta.AnnotatedElement) (map[meta.Scope]*DateFormatter, error) {
	result := map[meta.Scope]*DateFormatter{}
	for scope, tag := range p.LookupCategorized(meta.KindDateFormat) {
		formatter, err := propertyDateFormatter(tag.(meta.DateFormatTag), p.Type(), ix.cfg)
		if err != nil {
			return nil, err
		}
		result[scope] = formatter
	}

	raw := concreteType(p.Type())
	if isTemporal(raw) {
		return result, nil
	}
	if len(result) == 0 {
		if tag, ok := classEl.Lookup(meta.KindDateFormat); ok {
			classTag := tag.(meta.DateFormatTag)
			result[meta.ScopeClass] = newDateFormatter(classTag.Format, classTag.Locale, ix.cfg)
		}
	}
	return result, nil
}

// numberFormatters collects the per-scope number formatters, always
// including the class-level contribution when one is declared.
func (ix *introspector) numberFormatters(p *meta.Property, classEl *meta.AnnotatedElement) map[meta.Scope]*NumberFormatter {
	result := map[meta.Scope]*NumberFormatter{}
	for scope, tag := range p.LookupCategorized(meta.KindNumberFormat) {
		result[scope] = newNumberFormatter(tag.(meta.NumberFormatTag))
	}
	if tag, ok := classEl.Lookup(meta.KindNumberFormat); ok {
		result[meta.ScopeClass] = newNumberFormatter(tag.(meta.NumberFormatTag))
	}
	return result
}

// resolveImplementation resolves the concrete type hint of an
// interface-typed property.
func (ix *introspector) resolveImplementation(p *meta.Property) (reflect.Type, error) {
	tag, ok := p.Lookup(meta.KindImplementation)
	if !ok {
		return nil, nil
	}
	implTag := tag.(meta.ImplementationTag)
	if implTag.Type != nil {
		return implTag.Type, nil
	}
	t, ok := ix.reg.TypeByName(implTag.Name)
	if !ok {
		return nil, fmt.Errorf("property %s: no type registered under name %q: %w", p.Name(), implTag.Name, ErrBinding)
	}
	return t, nil
}
