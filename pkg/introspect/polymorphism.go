package introspect

import (
	"fmt"
	"reflect"

	"github.com/example/jsonbind/pkg/meta"
)

// resolvePolymorphism builds the type-discrimination chain for one type,
// appending at most one new node to the parent chain per genuinely new
// declaration. Inherited declarations already represented by the parent
// chain, and multiple independent declarations reaching the same type, are
// rejected.
func (ix *introspector) resolvePolymorphism(classEl *meta.AnnotatedElement, parent *ClassCustomization) (*TypeInheritanceConfiguration, error) {
	var parentConfig *TypeInheritanceConfiguration
	if parent != nil {
		parentConfig = parent.Polymorphism
	}

	entries := classEl.All(meta.KindTypeInfo)

	if parentConfig != nil {
		switch {
		case len(entries) == 1 && entries[0].Inherited:
			// the "new" tag is the same inherited declaration the parent
			// chain already accounts for
			return nil, &MultipleTypeInfoError{
				Type:    elementType(classEl),
				Sources: []string{parentConfig.DefinedType.String(), entries[0].Origin.String()},
			}
		case len(entries) > 1:
			return nil, &MultipleTypeInfoError{
				Type:    elementType(classEl),
				Sources: entrySources(entries),
			}
		case len(entries) == 0:
			// pass-through copy of the parent configuration marked inherited
			return &TypeInheritanceConfiguration{
				FieldName:   parentConfig.FieldName,
				DefinedType: parentConfig.DefinedType,
				Inherited:   true,
				Parent:      parentConfig.Parent,
				Aliases:     parentConfig.Aliases,
			}, nil
		}
	}

	// most-base entries come last; walk in reverse so the chain grows from
	// base to derived
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		tag := entry.Tag.(meta.TypeInfoTag)

		definedType := elementType(classEl)
		if entry.Inherited && entry.Origin != nil {
			definedType = entry.Origin
		}

		aliases := make(map[reflect.Type]string, len(tag.Subtypes))
		for _, subtype := range tag.Subtypes {
			if !isSubtype(subtype.Type, definedType) {
				return nil, &InvalidAliasError{Declaring: definedType, Alias: subtype.Type}
			}
			aliases[subtype.Type] = subtype.Alias
		}

		parentConfig = &TypeInheritanceConfiguration{
			FieldName:   tag.TypeInfoKey(),
			DefinedType: definedType,
			Inherited:   entry.Inherited,
			Parent:      parentConfig,
			Aliases:     aliases,
		}
	}

	if err := checkDiscriminatorNames(parentConfig); err != nil {
		return nil, err
	}
	return parentConfig, nil
}

// checkDiscriminatorNames walks a finished chain once and rejects two nodes
// sharing a discriminator field name.
func checkDiscriminatorNames(config *TypeInheritanceConfiguration) error {
	names := map[string]*TypeInheritanceConfiguration{}
	for current := config; current != nil; current = current.Parent {
		if conflicting, ok := names[current.FieldName]; ok {
			return &DiscriminatorConflictError{
				FieldName: current.FieldName,
				First:     conflicting.DefinedType,
				Second:    current.DefinedType,
			}
		}
		names[current.FieldName] = current
	}
	return nil
}

// elementType returns the reflective type an annotated element wraps.
func elementType(el *meta.AnnotatedElement) reflect.Type {
	if t, ok := el.Element().(reflect.Type); ok {
		return t
	}
	return nil
}

func entrySources(entries []meta.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Origin != nil {
			out = append(out, e.Origin.String())
			continue
		}
		out = append(out, fmt.Sprintf("%v", e.Tag))
	}
	return out
}
