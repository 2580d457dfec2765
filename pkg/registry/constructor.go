package registry

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/example/jsonbind/pkg/meta"
)

// Param models one parameter of a registered constructor. Go reflection
// does not expose parameter names, so they are supplied at registration.
type Param struct {
	Name string
	Type reflect.Type
	Tags []meta.Tag
}

// Constructor is one registered constructor function or static factory for
// a type.
type Constructor struct {
	// Owner is the type the constructor was registered for.
	Owner reflect.Type
	// Fn is the constructor function value.
	Fn reflect.Value
	// FuncName is the bare function name, recovered from the runtime.
	FuncName string
	// Designated marks an explicit creator designation.
	Designated bool
	// Params holds the parameter models in declaration order.
	Params []Param
}

// Returns reports the constructor's sole return type, or nil when the
// function does not have exactly one result.
func (c *Constructor) Returns() reflect.Type {
	if c.Fn.Type().NumOut() != 1 {
		return nil
	}
	return c.Fn.Type().Out(0)
}

// ConstructorOption configures a constructor registration.
type ConstructorOption func(*Constructor)

// Designated marks the constructor as the explicit creator designation.
func Designated() ConstructorOption {
	return func(c *Constructor) { c.Designated = true }
}

// ParamNames supplies the declared parameter names in order.
func ParamNames(names ...string) ConstructorOption {
	return func(c *Constructor) {
		for i, name := range names {
			if i < len(c.Params) {
				c.Params[i].Name = name
			}
		}
	}
}

// ParamTags attaches tags to the parameter at the given index.
func ParamTags(index int, tags ...meta.Tag) ConstructorOption {
	return func(c *Constructor) {
		if index < len(c.Params) {
			c.Params[index].Tags = append(c.Params[index].Tags, tags...)
		}
	}
}

// RegisterConstructor records a constructor function for a type. fn must be
// a function; its parameter types are captured from the signature, names
// and tags come from options.
func (r *Registry) RegisterConstructor(v any, fn any, opts ...ConstructorOption) error {
	owner := typeOf(v)
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		return fmt.Errorf("constructor for %s must be a function, got %T", owner, fn)
	}

	fnType := fnValue.Type()
	ctor := &Constructor{
		Owner:    owner,
		Fn:       fnValue,
		FuncName: funcName(fnValue),
		Params:   make([]Param, fnType.NumIn()),
	}
	for i := range ctor.Params {
		ctor.Params[i].Type = fnType.In(i)
	}
	for _, opt := range opts {
		opt(ctor)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[owner] = append(r.constructors[owner], ctor)
	return nil
}

// Constructors returns the constructors registered for a type in
// registration order.
func (r *Registry) Constructors(t reflect.Type) []*Constructor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.constructors[t]
}

// funcName recovers the bare name of a function value, without package
// qualifier or closure suffixes.
func funcName(fn reflect.Value) string {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
