package meta

import "reflect"

// Sentinel date format values. DefaultFormat selects the library default
// (RFC 3339); EpochMillis serializes as milliseconds since the Unix epoch.
const (
	DefaultFormat = "##default"
	EpochMillis   = "##time-in-millis"
)

// Tag is one declarative customization attached to a program element.
type Tag interface {
	Kind() Kind
}

// NameTag overrides the JSON key used for a property. Nillable carries the
// deprecated per-name nillable flag; nil means not set.
type NameTag struct {
	Value    string
	Nillable *bool
}

// Kind implements Tag.
func (NameTag) Kind() Kind { return KindName }

// NillableTag controls whether a nil value is serialized as JSON null or
// skipped entirely.
type NillableTag struct {
	Value bool
}

// Kind implements Tag.
func (NillableTag) Kind() Kind { return KindNillable }

// TransientTag excludes an element from binding.
type TransientTag struct{}

// Kind implements Tag.
func (TransientTag) Kind() Kind { return KindTransient }

// DateFormatTag selects a date serialization format: a Go time layout, or
// one of the DefaultFormat / EpochMillis sentinels. Locale is a BCP 47 tag;
// empty means the configured default locale.
type DateFormatTag struct {
	Format string
	Locale string
}

// Kind implements Tag.
func (DateFormatTag) Kind() Kind { return KindDateFormat }

// NumberFormatTag selects a number serialization format pattern.
type NumberFormatTag struct {
	Format string
	Locale string
}

// Kind implements Tag.
func (NumberFormatTag) Kind() Kind { return KindNumberFormat }

// AdapterTag binds a bidirectional value adapter. Either Name references a
// component registered under that name, or Component carries the adapter
// value directly (programmatic registration).
type AdapterTag struct {
	Name      string
	Component any
}

// Kind implements Tag.
func (AdapterTag) Kind() Kind { return KindAdapter }

// SerializerTag binds a write-only serializer component.
type SerializerTag struct {
	Name      string
	Component any
}

// Kind implements Tag.
func (SerializerTag) Kind() Kind { return KindSerializer }

// DeserializerTag binds a read-only deserializer component.
type DeserializerTag struct {
	Name      string
	Component any
}

// Kind implements Tag.
func (DeserializerTag) Kind() Kind { return KindDeserializer }

// PropertyOrderTag fixes the serialization order of the named properties.
type PropertyOrderTag struct {
	Order []string
}

// Kind implements Tag.
func (PropertyOrderTag) Kind() Kind { return KindPropertyOrder }

// VisibilityStrategy decides which physical members of a type take part in
// binding.
type VisibilityStrategy interface {
	// VisibleField reports whether the struct field backs a bindable property.
	VisibleField(field reflect.StructField) bool
	// VisibleMethod reports whether the method may act as an accessor.
	VisibleMethod(method reflect.Method) bool
}

// VisibilityTag installs a visibility strategy for a type or package.
type VisibilityTag struct {
	Strategy VisibilityStrategy
}

// Kind implements Tag.
func (VisibilityTag) Kind() Kind { return KindVisibility }

// SubtypeAlias maps one concrete subtype to the discriminator value written
// for it.
type SubtypeAlias struct {
	Type  reflect.Type
	Alias string
}

// TypeInfoTag declares polymorphic type discrimination: the JSON key holding
// the discriminator and the alias for each known subtype. The only
// repeatable tag kind.
type TypeInfoTag struct {
	Key      string
	Subtypes []SubtypeAlias
}

// DefaultTypeInfoKey is used when a type info tag does not name a key.
const DefaultTypeInfoKey = "@type"

// Kind implements Tag.
func (TypeInfoTag) Kind() Kind { return KindTypeInfo }

// TypeInfoKey returns the discriminator key, falling back to the default.
func (t TypeInfoTag) TypeInfoKey() string {
	if t.Key == "" {
		return DefaultTypeInfoKey
	}
	return t.Key
}

// CreatorTag designates a constructor or static factory for deserialization.
type CreatorTag struct{}

// Kind implements Tag.
func (CreatorTag) Kind() Kind { return KindCreator }

// ImplementationTag names the concrete type to instantiate for an
// interface-typed property. Either Name references a type registered under
// that name, or Type carries it directly.
type ImplementationTag struct {
	Name string
	Type reflect.Type
}

// Kind implements Tag.
func (ImplementationTag) Kind() Kind { return KindImplementation }
