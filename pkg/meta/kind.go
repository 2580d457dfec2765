// Package meta defines the declarative metadata model consumed by the
// introspection engine: tag kinds with their conflict policy, the tag
// variants themselves, annotated elements and logical properties.
package meta

// Kind identifies one kind of binding tag.
type Kind int

// Tag kinds understood by the introspection engine.
const (
	KindName Kind = iota
	KindNillable
	KindTransient
	KindDateFormat
	KindNumberFormat
	KindAdapter
	KindSerializer
	KindDeserializer
	KindPropertyOrder
	KindVisibility
	KindTypeInfo
	KindCreator
	KindImplementation
)

var kindNames = map[Kind]string{
	KindName:           "name",
	KindNillable:       "nillable",
	KindTransient:      "transient",
	KindDateFormat:     "dateformat",
	KindNumberFormat:   "numberformat",
	KindAdapter:        "adapter",
	KindSerializer:     "serializer",
	KindDeserializer:   "deserializer",
	KindPropertyOrder:  "propertyorder",
	KindVisibility:     "visibility",
	KindTypeInfo:       "typeinfo",
	KindCreator:        "creator",
	KindImplementation: "implementation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Repeatable reports whether multiple tags of this kind may accumulate on a
// single element. Only type-discriminator tags behave this way; every other
// kind permits at most one occurrence per element.
func (k Kind) Repeatable() bool {
	return k == KindTypeInfo
}

// transientIncompatible lists the kinds that must not co-occur with a
// transient tag on the same element. Excluding a property from binding and
// customizing its binding are contradictory declarations.
var transientIncompatible = []Kind{
	KindName,
	KindDateFormat,
	KindNumberFormat,
	KindAdapter,
	KindSerializer,
	KindDeserializer,
}

// TransientIncompatible returns the kinds that conflict with a transient tag.
func TransientIncompatible() []Kind {
	return transientIncompatible
}

// Kinds returns every known tag kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindName; k <= KindImplementation; k++ {
		out = append(out, k)
	}
	return out
}
