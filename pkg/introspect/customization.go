package introspect

import (
	"reflect"

	"github.com/example/jsonbind/pkg/component"
	"github.com/example/jsonbind/pkg/meta"
)

// TypeInheritanceConfiguration is one node of a polymorphism chain: the
// discriminator field, the type that declared it and the alias for each
// known subtype. Parent nodes are shared, never owned; chains only grow
// from base to derived.
type TypeInheritanceConfiguration struct {
	// FieldName is the JSON key carrying the discriminator.
	FieldName string
	// DefinedType is the type that declared this node.
	DefinedType reflect.Type
	// Inherited marks a node received from an ancestor rather than declared
	// on the resolved type itself.
	Inherited bool
	// Parent is the next node towards the chain root, possibly shared with
	// other descendants.
	Parent *TypeInheritanceConfiguration
	// Aliases maps each subtype to the discriminator value written for it.
	Aliases map[reflect.Type]string
}

// Alias returns the discriminator value registered for a subtype.
func (c *TypeInheritanceConfiguration) Alias(t reflect.Type) (string, bool) {
	alias, ok := c.Aliases[t]
	return alias, ok
}

// SubtypeByAlias returns the subtype registered under a discriminator value.
func (c *TypeInheritanceConfiguration) SubtypeByAlias(alias string) (reflect.Type, bool) {
	for t, a := range c.Aliases {
		if a == alias {
			return t, true
		}
	}
	return nil, false
}

// PropertyCustomization is the resolved per-property configuration.
type PropertyCustomization struct {
	// Property is the underlying physical model.
	Property *meta.Property
	// SerializedName is the JSON key written for this property.
	SerializedName string
	// DeserializedName is the JSON key read for this property.
	DeserializedName string
	// Nillable is the effective nil-handling policy after the
	// property / deprecated-flag / class cascade.
	Nillable bool
	// Transient excludes the property from binding.
	Transient bool
	// DateFormatters holds per-scope date formatters; the ScopeClass entry
	// records a class-level contribution.
	DateFormatters map[meta.Scope]*DateFormatter
	// NumberFormatters holds per-scope number formatters.
	NumberFormatters map[meta.Scope]*NumberFormatter
	// Adapter, Serializer and Deserializer are the resolved component
	// bindings, if any.
	Adapter      *component.AdapterBinding
	Serializer   *component.SerializerBinding
	Deserializer *component.DeserializerBinding
	// Implementation is the concrete type to instantiate for an
	// interface-typed property.
	Implementation reflect.Type
}

// ClassCustomization is the compiled, immutable per-type descriptor the
// marshalling walker consults. Created once per type and cached by the
// context; never mutated afterwards.
type ClassCustomization struct {
	// Type is the introspected type.
	Type reflect.Type
	// Nillable is the class-level nil-handling default.
	Nillable bool
	// DateFormatter is the class-level date formatter.
	DateFormatter *DateFormatter
	// NumberFormatter is the class-level number formatter, if declared.
	NumberFormatter *NumberFormatter
	// Creator builds instances during deserialization, if resolved.
	Creator *Creator
	// PropertyOrder is the declared serialization order; nil means natural
	// declaration order.
	PropertyOrder []string
	// Adapter, Serializer and Deserializer are class-scope bindings.
	Adapter      *component.AdapterBinding
	Serializer   *component.SerializerBinding
	Deserializer *component.DeserializerBinding
	// Visibility is the effective visibility strategy.
	Visibility meta.VisibilityStrategy
	// Polymorphism is the head of the type-discrimination chain, if any.
	Polymorphism *TypeInheritanceConfiguration
	// Properties holds the resolved properties in declaration order.
	Properties []*PropertyCustomization

	byName map[string]*PropertyCustomization
}

// Property returns the resolved customization for a raw member name.
func (c *ClassCustomization) Property(name string) (*PropertyCustomization, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// OrderedProperties returns the properties in serialization order: the
// declared property order first, remaining properties in declaration order.
func (c *ClassCustomization) OrderedProperties() []*PropertyCustomization {
	if c.PropertyOrder == nil {
		return c.Properties
	}
	out := make([]*PropertyCustomization, 0, len(c.Properties))
	taken := map[string]bool{}
	for _, name := range c.PropertyOrder {
		if p, ok := c.byName[name]; ok && !taken[name] {
			out = append(out, p)
			taken[name] = true
		}
	}
	for _, p := range c.Properties {
		if !taken[p.Property.Name()] {
			out = append(out, p)
		}
	}
	return out
}
