package introspect

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/example/jsonbind/pkg/meta"
)

// ErrBinding is the root of the binding error family. Every resolution
// failure except UnsupportedDateTypeError unwraps to it.
var ErrBinding = errors.New("binding error")

// MultipleCreatorsError reports more than one explicit creator designation
// on a single type.
type MultipleCreatorsError struct {
	Type reflect.Type
}

func (e *MultipleCreatorsError) Error() string {
	return fmt.Sprintf("more than one constructor designated as creator for type %s", e.Type)
}

// Unwrap implements the binding error family.
func (e *MultipleCreatorsError) Unwrap() error { return ErrBinding }

// FactoryReturnTypeError reports a designated factory whose return type is
// not exactly the owning type.
type FactoryReturnTypeError struct {
	Owner    reflect.Type
	FuncName string
	Returns  reflect.Type
}

func (e *FactoryReturnTypeError) Error() string {
	return fmt.Sprintf("factory %s designated as creator for type %s must return exactly %s, returns %s",
		e.FuncName, e.Owner, e.Owner, e.Returns)
}

// Unwrap implements the binding error family.
func (e *FactoryReturnTypeError) Unwrap() error { return ErrBinding }

// MultipleTypeInfoError reports type-discrimination declarations reaching
// one type from more than one source.
type MultipleTypeInfoError struct {
	Type    reflect.Type
	Sources []string
}

func (e *MultipleTypeInfoError) Error() string {
	return fmt.Sprintf("cannot process type information for %s from multiple sources: %v", e.Type, e.Sources)
}

// Unwrap implements the binding error family.
func (e *MultipleTypeInfoError) Unwrap() error { return ErrBinding }

// DiscriminatorConflictError reports the same discriminator field name
// declared twice across one polymorphism chain.
type DiscriminatorConflictError struct {
	FieldName string
	First     reflect.Type
	Second    reflect.Type
}

func (e *DiscriminatorConflictError) Error() string {
	return fmt.Sprintf("polymorphic types %s and %s declare the same discriminator field %q in one chain",
		e.First, e.Second, e.FieldName)
}

// Unwrap implements the binding error family.
func (e *DiscriminatorConflictError) Unwrap() error { return ErrBinding }

// InvalidAliasError reports a subtype alias naming a type that is not a
// subtype of the declaring type.
type InvalidAliasError struct {
	Declaring reflect.Type
	Alias     reflect.Type
}

func (e *InvalidAliasError) Error() string {
	return fmt.Sprintf("subtype alias %s is not a subtype of the declaring type %s", e.Alias, e.Declaring)
}

// Unwrap implements the binding error family.
func (e *InvalidAliasError) Unwrap() error { return ErrBinding }

// TransientConflictError reports a transient tag co-occurring with a
// customization tag on the same element.
type TransientConflictError struct {
	Property string
	Kind     meta.Kind
}

func (e *TransientConflictError) Error() string {
	return fmt.Sprintf("property %s is transient and cannot carry a %s tag on the same element", e.Property, e.Kind)
}

// Unwrap implements the binding error family.
func (e *TransientConflictError) Unwrap() error { return ErrBinding }

// AdapterIncompatibleError reports an adapter whose model-side type cannot
// accept the expected property type.
type AdapterIncompatibleError struct {
	Original reflect.Type
	Expected reflect.Type
}

func (e *AdapterIncompatibleError) Error() string {
	return fmt.Sprintf("adapter operating on %s is not compatible with type %s", e.Original, e.Expected)
}

// Unwrap implements the binding error family.
func (e *AdapterIncompatibleError) Unwrap() error { return ErrBinding }

// ParallelSourcesError reports the same non-repeatable tag kind reachable
// through two independent interface branches.
type ParallelSourcesError struct {
	Kind   meta.Kind
	First  reflect.Type
	Second reflect.Type
}

func (e *ParallelSourcesError) Error() string {
	return fmt.Sprintf("cannot process %s tag from multiple parallel sources %s and %s", e.Kind, e.First, e.Second)
}

// Unwrap implements the binding error family.
func (e *ParallelSourcesError) Unwrap() error { return ErrBinding }

// UnknownComponentError reports a tag referencing a component name that was
// never registered.
type UnknownComponentError struct {
	Name string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("no component registered under name %q", e.Name)
}

// Unwrap implements the binding error family.
func (e *UnknownComponentError) Unwrap() error { return ErrBinding }

// UnsupportedDateTypeError reports a date-format tag applied to a property
// whose type is not temporal. A programming mistake on the modeled type, so
// deliberately outside the ErrBinding family.
type UnsupportedDateTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedDateTypeError) Error() string {
	return fmt.Sprintf("date format not supported for type %s", e.Type)
}
