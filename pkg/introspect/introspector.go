// Package introspect is the customization-resolution engine: it discovers
// per-property and per-type binding behavior from struct tags, registered
// metadata and the declared interface graph, and compiles it into one
// immutable, cacheable descriptor per type.
package introspect

import (
	"reflect"

	"github.com/example/jsonbind/pkg/component"
	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/registry"
)

// introspector performs one resolution pass. It is cheap to construct and
// holds no state beyond its collaborators; memoization lives in Context.
type introspector struct {
	cfg        Config
	reg        *registry.Registry
	components *component.Registry
	coll       *collector
	elements   func(reflect.Type) (*meta.AnnotatedElement, error)
}

// introspectType assembles the full customization of one type. Every
// sub-resolution is independent; any failure aborts the type as a whole.
func (ix *introspector) introspectType(t reflect.Type, parent *ClassCustomization) (*ClassCustomization, error) {
	classEl, err := ix.collectedElement(t)
	if err != nil {
		return nil, err
	}

	out := &ClassCustomization{
		Type:       t,
		Nillable:   ix.classNillable(t, classEl),
		Visibility: ix.classVisibility(classEl),
	}

	out.DateFormatter = ix.classDateFormatter(classEl)
	if tag, ok := classEl.Lookup(meta.KindNumberFormat); ok {
		out.NumberFormatter = newNumberFormatter(tag.(meta.NumberFormatTag))
	}

	out.Creator, err = ix.resolveCreator(t)
	if err != nil {
		return nil, err
	}

	if tag, ok := classEl.LookupDeclared(meta.KindPropertyOrder); ok {
		out.PropertyOrder = tag.(meta.PropertyOrderTag).Order
	}

	classScope := declaredOnly{el: classEl}
	out.Adapter, err = ix.adapterFor(classScope, nil, t)
	if err != nil {
		return nil, err
	}
	out.Serializer, err = ix.serializerFor(classScope, nil)
	if err != nil {
		return nil, err
	}
	out.Deserializer, err = ix.deserializerFor(classScope, nil)
	if err != nil {
		return nil, err
	}

	out.Polymorphism, err = ix.resolvePolymorphism(classEl, parent)
	if err != nil {
		return nil, err
	}

	properties := ix.discoverProperties(t, classEl, out.Visibility)
	out.Properties = make([]*PropertyCustomization, 0, len(properties))
	out.byName = make(map[string]*PropertyCustomization, len(properties))
	for _, p := range properties {
		resolved, err := ix.resolveProperty(p, classEl, out)
		if err != nil {
			return nil, err
		}
		out.Properties = append(out.Properties, resolved)
		out.byName[p.Name()] = resolved
	}

	return out, nil
}

// classNillable resolves the class-level nil-handling default: an explicit
// tag wins, optional-like types default to true, the global default closes.
func (ix *introspector) classNillable(t reflect.Type, classEl *meta.AnnotatedElement) bool {
	if tag, ok := classEl.Lookup(meta.KindNillable); ok {
		return tag.(meta.NillableTag).Value
	}
	if isOptionalLike(t) {
		return true
	}
	return ix.cfg.Nillable
}

// classVisibility resolves the visibility strategy: class tag, then
// package tag (already merged into the element), then the global default.
func (ix *introspector) classVisibility(classEl *meta.AnnotatedElement) meta.VisibilityStrategy {
	if tag, ok := classEl.Lookup(meta.KindVisibility); ok {
		if strategy := tag.(meta.VisibilityTag).Strategy; strategy != nil {
			return strategy
		}
	}
	return ix.cfg.Visibility
}

// classDateFormatter resolves the class-level date formatter, falling back
// to the configured default.
func (ix *introspector) classDateFormatter(classEl *meta.AnnotatedElement) *DateFormatter {
	if tag, ok := classEl.Lookup(meta.KindDateFormat); ok {
		dateTag := tag.(meta.DateFormatTag)
		return newDateFormatter(dateTag.Format, dateTag.Locale, ix.cfg)
	}
	return newDateFormatter(ix.cfg.DateFormat, ix.cfg.DateLocale, ix.cfg)
}

// collectedElement returns the memoized annotated element of a type.
func (ix *introspector) collectedElement(t reflect.Type) (*meta.AnnotatedElement, error) {
	return ix.elements(t)
}
