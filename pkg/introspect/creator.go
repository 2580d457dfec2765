package introspect

import (
	"reflect"
	"strings"

	"github.com/example/jsonbind/pkg/component"
	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/registry"
)

// CreatorParam is one parameter of a resolved creator, bound to the JSON
// key it consumes.
type CreatorParam struct {
	// Name is the JSON key bound to this parameter.
	Name string
	// Type is the declared parameter type.
	Type reflect.Type
	// Required rejects input missing this key.
	Required bool
	// DateFormatter and NumberFormatter are per-parameter formatters.
	DateFormatter   *DateFormatter
	NumberFormatter *NumberFormatter
	// Adapter and Deserializer are per-parameter component bindings.
	Adapter      *component.AdapterBinding
	Deserializer *component.DeserializerBinding
}

// Creator is the executable chosen to build instances during
// deserialization, with its parameters bound to property names.
type Creator struct {
	// Owner is the type the creator produces.
	Owner reflect.Type
	// FuncName is the constructor function's bare name.
	FuncName string
	// Params holds the bound parameters in declaration order.
	Params []CreatorParam

	fn reflect.Value
}

// Invoke calls the creator with already-converted argument values.
func (c *Creator) Invoke(args []any) (any, error) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(c.fn.Type().In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	return c.fn.Call(in)[0].Interface(), nil
}

// resolveCreator finds the constructor or static factory designated for a
// type and binds its parameters. At most one explicit designation may
// exist; a designated factory must return exactly the owning type. Without
// an explicit designation two conventions are tried in order: a function
// named New<Type>, then any registered constructor with full parameter-name
// coverage. No usable creator is not an error here; the caller reports it
// when instantiation is actually needed.
func (ix *introspector) resolveCreator(t reflect.Type) (*Creator, error) {
	ctors := ix.reg.Constructors(t)

	var chosen *registry.Constructor
	for _, ctor := range ctors {
		if !ctor.Designated {
			continue
		}
		if chosen != nil {
			return nil, &MultipleCreatorsError{Type: t}
		}
		if ctor.Returns() != t {
			return nil, &FactoryReturnTypeError{Owner: t, FuncName: ctor.FuncName, Returns: ctor.Returns()}
		}
		chosen = ctor
	}

	if chosen == nil {
		chosen = findConventionCreator(t, ctors)
	}
	if chosen == nil {
		return nil, nil
	}
	return ix.buildCreator(chosen)
}

// findConventionCreator applies the fallback conventions over undesignated
// constructors.
func findConventionCreator(t reflect.Type, ctors []*registry.Constructor) *registry.Constructor {
	for _, ctor := range ctors {
		if ctor.Returns() == t && strings.EqualFold(ctor.FuncName, "new"+t.Name()) && allParamsNamed(ctor) {
			return ctor
		}
	}
	for _, ctor := range ctors {
		if ctor.Returns() == t && allParamsNamed(ctor) {
			return ctor
		}
	}
	return nil
}

func allParamsNamed(ctor *registry.Constructor) bool {
	for _, p := range ctor.Params {
		if strings.TrimSpace(p.Name) == "" {
			return false
		}
	}
	return true
}

func (ix *introspector) buildCreator(ctor *registry.Constructor) (*Creator, error) {
	creator := &Creator{
		Owner:    ctor.Owner,
		FuncName: ctor.FuncName,
		Params:   make([]CreatorParam, len(ctor.Params)),
		fn:       ctor.Fn,
	}
	for i, p := range ctor.Params {
		param, err := ix.bindParam(p)
		if err != nil {
			return nil, err
		}
		creator.Params[i] = param
	}
	return creator, nil
}

// bindParam resolves the JSON key, per-parameter formatters and component
// bindings of one creator parameter. An explicit name tag wins; otherwise
// the configured naming strategy translates the declared parameter name.
func (ix *introspector) bindParam(p registry.Param) (CreatorParam, error) {
	el := meta.NewAnnotatedElement(p, p.Tags...)

	param := CreatorParam{
		Name:     ix.cfg.NamingStrategy.Translate(p.Name),
		Type:     p.Type,
		Required: ix.cfg.RequiredCreatorParams,
	}
	if tag, ok := el.Lookup(meta.KindName); ok {
		if name := tag.(meta.NameTag).Value; name != "" {
			param.Name = name
		}
	}

	if tag, ok := ix.paramTag(el, p.Type, meta.KindDateFormat); ok {
		formatter, err := propertyDateFormatter(tag.(meta.DateFormatTag), p.Type, ix.cfg)
		if err != nil {
			return CreatorParam{}, err
		}
		param.DateFormatter = formatter
	}
	if tag, ok := ix.paramTag(el, p.Type, meta.KindNumberFormat); ok {
		param.NumberFormatter = newNumberFormatter(tag.(meta.NumberFormatTag))
	}

	adapter, err := ix.adapterFor(el, p.Type, p.Type)
	if err != nil {
		return CreatorParam{}, err
	}
	param.Adapter = adapter

	deserializer, err := ix.deserializerFor(el, p.Type)
	if err != nil {
		return CreatorParam{}, err
	}
	param.Deserializer = deserializer

	return param, nil
}

// paramTag looks a tag up on the parameter itself, falling back to the
// parameter's declared type.
func (ix *introspector) paramTag(el *meta.AnnotatedElement, paramType reflect.Type, kind meta.Kind) (meta.Tag, bool) {
	if tag, ok := el.Lookup(kind); ok {
		return tag, true
	}
	return ix.typeLevelTag(paramType, kind)
}
