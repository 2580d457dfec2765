package component

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// Method names matched structurally on registered components.
const (
	methodAdaptTo     = "AdaptTo"
	methodAdaptFrom   = "AdaptFrom"
	methodSerialize   = "SerializeJSON"
	methodDeserialize = "DeserializeJSON"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	rawType   = reflect.TypeOf(json.RawMessage(nil))
)

// Registry resolves components into typed bindings and caches them, one
// binding per concrete component type. Resolution computes the component's
// bound types from its method signatures (the generic-compatibility check).
// Safe for concurrent use; concurrent resolution of the same component
// yields the same binding instance.
type Registry struct {
	mu            sync.RWMutex
	named         map[string]any
	adapters      map[reflect.Type]*AdapterBinding
	serializers   map[reflect.Type]*SerializerBinding
	deserializers map[reflect.Type]*DeserializerBinding
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		named:         map[string]any{},
		adapters:      map[reflect.Type]*AdapterBinding{},
		serializers:   map[reflect.Type]*SerializerBinding{},
		deserializers: map[reflect.Type]*DeserializerBinding{},
	}
}

// Register records a component under a name so struct tags can reference it.
// The same name may only be registered once.
func (r *Registry) Register(name string, component any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.named[name]; exists {
		return fmt.Errorf("component %q already registered", name)
	}
	r.named[name] = component
	return nil
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	component, ok := r.named[name]
	return component, ok
}

// ResolveAdapter introspects an adapter component and returns its cached
// binding, creating it on first use.
func (r *Registry) ResolveAdapter(component any) (*AdapterBinding, error) {
	key := reflect.TypeOf(component)

	r.mu.RLock()
	binding, ok := r.adapters[key]
	r.mu.RUnlock()
	if ok {
		return binding, nil
	}

	binding, err := introspectAdapter(component)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.adapters[key]; ok {
		return existing, nil
	}
	r.adapters[key] = binding
	return binding, nil
}

// ResolveSerializer introspects a serializer component and returns its
// cached binding, creating it on first use.
func (r *Registry) ResolveSerializer(component any) (*SerializerBinding, error) {
	key := reflect.TypeOf(component)

	r.mu.RLock()
	binding, ok := r.serializers[key]
	r.mu.RUnlock()
	if ok {
		return binding, nil
	}

	binding, err := introspectSerializer(component)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.serializers[key]; ok {
		return existing, nil
	}
	r.serializers[key] = binding
	return binding, nil
}

// ResolveDeserializer introspects a deserializer component and returns its
// cached binding, creating it on first use.
func (r *Registry) ResolveDeserializer(component any) (*DeserializerBinding, error) {
	key := reflect.TypeOf(component)

	r.mu.RLock()
	binding, ok := r.deserializers[key]
	r.mu.RUnlock()
	if ok {
		return binding, nil
	}

	binding, err := introspectDeserializer(component)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.deserializers[key]; ok {
		return existing, nil
	}
	r.deserializers[key] = binding
	return binding, nil
}

// introspectAdapter derives the Original and Adapted types from the
// AdaptTo/AdaptFrom method pair and validates that the two directions agree.
func introspectAdapter(component any) (*AdapterBinding, error) {
	value := reflect.ValueOf(component)

	adaptTo, err := boundMethod(value, methodAdaptTo)
	if err != nil {
		return nil, err
	}
	if err := checkUnary(adaptTo.Type(), methodAdaptTo, component); err != nil {
		return nil, err
	}

	adaptFrom, err := boundMethod(value, methodAdaptFrom)
	if err != nil {
		return nil, err
	}
	if err := checkUnary(adaptFrom.Type(), methodAdaptFrom, component); err != nil {
		return nil, err
	}

	original := adaptTo.Type().In(0)
	adapted := adaptTo.Type().Out(0)
	if adaptFrom.Type().In(0) != adapted || adaptFrom.Type().Out(0) != original {
		return nil, fmt.Errorf("adapter %T: AdaptFrom(%s) (%s, error) does not mirror AdaptTo(%s) (%s, error)",
			component, adaptFrom.Type().In(0), adaptFrom.Type().Out(0), original, adapted)
	}

	return &AdapterBinding{
		Original:  original,
		Adapted:   adapted,
		Adapter:   component,
		adaptTo:   adaptTo,
		adaptFrom: adaptFrom,
	}, nil
}

func introspectSerializer(component any) (*SerializerBinding, error) {
	value := reflect.ValueOf(component)

	serialize, err := boundMethod(value, methodSerialize)
	if err != nil {
		return nil, err
	}
	if err := checkUnary(serialize.Type(), methodSerialize, component); err != nil {
		return nil, err
	}
	if serialize.Type().Out(0) != rawType {
		return nil, fmt.Errorf("serializer %T: %s must return json.RawMessage, returns %s",
			component, methodSerialize, serialize.Type().Out(0))
	}

	return &SerializerBinding{
		Bound:      serialize.Type().In(0),
		Serializer: component,
		serialize:  serialize,
	}, nil
}

func introspectDeserializer(component any) (*DeserializerBinding, error) {
	value := reflect.ValueOf(component)

	deserialize, err := boundMethod(value, methodDeserialize)
	if err != nil {
		return nil, err
	}
	if err := checkUnary(deserialize.Type(), methodDeserialize, component); err != nil {
		return nil, err
	}
	if deserialize.Type().In(0) != rawType {
		return nil, fmt.Errorf("deserializer %T: %s must accept json.RawMessage, accepts %s",
			component, methodDeserialize, deserialize.Type().In(0))
	}

	return &DeserializerBinding{
		Bound:        deserialize.Type().Out(0),
		Deserializer: component,
		deserialize:  deserialize,
	}, nil
}

func boundMethod(value reflect.Value, name string) (reflect.Value, error) {
	method := value.MethodByName(name)
	if !method.IsValid() {
		return reflect.Value{}, fmt.Errorf("component %s has no method %s", value.Type(), name)
	}
	return method, nil
}

// checkUnary validates the `func(T) (U, error)` shape shared by every
// component method.
func checkUnary(fn reflect.Type, name string, component any) error {
	if fn.NumIn() != 1 || fn.NumOut() != 2 || fn.Out(1) != errorType {
		return fmt.Errorf("component %T: %s must have shape func(T) (U, error)", component, name)
	}
	return nil
}
