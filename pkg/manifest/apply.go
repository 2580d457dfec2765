package manifest

import (
	"fmt"
	"reflect"

	"github.com/example/jsonbind/pkg/introspect"
	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/naming"
	"github.com/example/jsonbind/pkg/registry"
)

// Apply translates the manifest's declarations into registry metadata.
// Every type name referenced by the manifest must already be registered
// with RegisterTypeName.
func (m *Manifest) Apply(reg *registry.Registry) error {
	for _, pkg := range m.Packages {
		tags, err := pkg.Tags.tags(reg)
		if err != nil {
			return fmt.Errorf("package %s: %w", pkg.Path, err)
		}
		reg.RegisterPackage(pkg.Path, tags...)
	}

	for _, decl := range m.Types {
		t, ok := reg.TypeByName(decl.Name)
		if !ok {
			return fmt.Errorf("type %q is not registered", decl.Name)
		}

		tags, err := decl.Tags.tags(reg)
		if err != nil {
			return fmt.Errorf("type %s: %w", decl.Name, err)
		}
		if t.Kind() == reflect.Interface {
			reg.RegisterInterface(reflect.New(t).Interface(), registry.WithTags(tags...))
		} else {
			reg.RegisterType(t, tags...)
		}

		for _, prop := range decl.Properties {
			propTags, err := prop.Tags.tags(reg)
			if err != nil {
				return fmt.Errorf("type %s property %s: %w", decl.Name, prop.Name, err)
			}
			reg.TagAccessor(t, prop.Name, scopeOf(prop.Scope), propTags...)
		}
	}
	return nil
}

// ApplyDefaults copies the manifest defaults onto a binding configuration.
func (m *Manifest) ApplyDefaults(cfg *introspect.Config) error {
	if m.Defaults == nil {
		return nil
	}
	d := m.Defaults
	if d.Naming != "" {
		strategy, ok := naming.ByName(d.Naming)
		if !ok {
			return fmt.Errorf("unknown naming strategy %q", d.Naming)
		}
		cfg.NamingStrategy = strategy
	}
	if d.Nillable != nil {
		cfg.Nillable = *d.Nillable
	}
	if d.DateFormat != "" {
		cfg.DateFormat = d.DateFormat
	}
	if d.DateLocale != "" {
		cfg.DateLocale = d.DateLocale
	}
	return nil
}

// tags materializes the declared tag set. The registry resolves subtype
// names in type-info declarations.
func (s TagSet) tags(reg *registry.Registry) ([]meta.Tag, error) {
	var out []meta.Tag
	if s.Name != "" {
		out = append(out, meta.NameTag{Value: s.Name})
	}
	if s.Nillable != nil {
		out = append(out, meta.NillableTag{Value: *s.Nillable})
	}
	if s.Transient {
		out = append(out, meta.TransientTag{})
	}
	if s.DateFormat != "" || s.DateLocale != "" {
		format := s.DateFormat
		if format == "" {
			format = meta.DefaultFormat
		}
		out = append(out, meta.DateFormatTag{Format: format, Locale: s.DateLocale})
	}
	if s.NumberFormat != "" || s.NumberLocale != "" {
		out = append(out, meta.NumberFormatTag{Format: s.NumberFormat, Locale: s.NumberLocale})
	}
	if s.Adapter != "" {
		out = append(out, meta.AdapterTag{Name: s.Adapter})
	}
	if s.Serializer != "" {
		out = append(out, meta.SerializerTag{Name: s.Serializer})
	}
	if s.Deserializer != "" {
		out = append(out, meta.DeserializerTag{Name: s.Deserializer})
	}
	if len(s.PropertyOrder) > 0 {
		out = append(out, meta.PropertyOrderTag{Order: s.PropertyOrder})
	}
	if s.TypeInfo != nil {
		tag := meta.TypeInfoTag{Key: s.TypeInfo.Key}
		for alias, typeName := range s.TypeInfo.Subtypes {
			t, ok := reg.TypeByName(typeName)
			if !ok {
				return nil, fmt.Errorf("subtype %q is not registered", typeName)
			}
			tag.Subtypes = append(tag.Subtypes, meta.SubtypeAlias{Type: t, Alias: alias})
		}
		out = append(out, tag)
	}
	return out, nil
}

func scopeOf(scope string) meta.Scope {
	switch scope {
	case "getter":
		return meta.ScopeGetter
	case "setter":
		return meta.ScopeSetter
	default:
		return meta.ScopeProperty
	}
}
