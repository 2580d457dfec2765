package introspect

import "reflect"

// ExportedMembers is the default visibility strategy: exported fields back
// properties, exported methods may act as accessors.
type ExportedMembers struct{}

// VisibleField implements meta.VisibilityStrategy.
func (ExportedMembers) VisibleField(field reflect.StructField) bool {
	return field.IsExported()
}

// VisibleMethod implements meta.VisibilityStrategy.
func (ExportedMembers) VisibleMethod(method reflect.Method) bool {
	return method.IsExported()
}

// FieldsOnly restricts binding to exported fields; accessor methods are
// ignored entirely.
type FieldsOnly struct{}

// VisibleField implements meta.VisibilityStrategy.
func (FieldsOnly) VisibleField(field reflect.StructField) bool {
	return field.IsExported()
}

// VisibleMethod implements meta.VisibilityStrategy.
func (FieldsOnly) VisibleMethod(reflect.Method) bool {
	return false
}
