package introspect

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// isBuiltinType reports whether a type is recognized natively by the
// library: primitives, composites and standard-library types. Such types
// never carry custom metadata, so interface and package scanning is skipped
// for them.
func isBuiltinType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Interface:
		return t == timeType || isNativePackage(t.PkgPath())
	case reflect.Ptr:
		return isBuiltinType(t.Elem())
	default:
		return true
	}
}

// isNativePackage reports whether an import path belongs to the standard
// library: its first segment carries no domain dot.
func isNativePackage(path string) bool {
	if path == "" {
		return true
	}
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

// isTemporal reports whether a property type holds a point in time.
func isTemporal(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t == timeType
}

// isOptionalLike reports whether a type models an absent-able value:
// pointers, and sql.Null-shaped structs carrying a Valid bool field.
// Such types default to nillable.
func isOptionalLike(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr:
		return true
	case reflect.Struct:
		valid, ok := t.FieldByName("Valid")
		return ok && valid.Type.Kind() == reflect.Bool
	default:
		return false
	}
}

// concreteType dereferences pointers down to the underlying type.
func concreteType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// embeddedBase returns the first embedded struct of a struct type; the
// embedded chain plays the role of the base type hierarchy.
func embeddedBase(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		base := concreteType(field.Type)
		if base.Kind() == reflect.Struct && !isBuiltinType(base) {
			return base, true
		}
	}
	return nil, false
}

// isSubtype reports whether alias is a subtype of declaring: for interfaces
// it must implement them, for structs it must be the type itself or embed it
// somewhere along its base chain.
func isSubtype(alias, declaring reflect.Type) bool {
	if alias == nil || declaring == nil {
		return false
	}
	if declaring.Kind() == reflect.Interface {
		return alias.Implements(declaring) || reflect.PointerTo(alias).Implements(declaring)
	}
	for t := alias; ; {
		if t == declaring {
			return true
		}
		base, ok := embeddedBase(t)
		if !ok {
			return false
		}
		t = base
	}
}

// implements reports whether t or a pointer to t satisfies the interface.
func implements(t, iface reflect.Type) bool {
	if t.Implements(iface) {
		return true
	}
	if t.Kind() != reflect.Ptr && t.Kind() != reflect.Interface {
		return reflect.PointerTo(t).Implements(iface)
	}
	return false
}
