package component

import "reflect"

// AdapterBinding associates a bidirectional adapter instance with the model
// type it adapts from and the representation it adapts to.
type AdapterBinding struct {
	// Original is the model-side type the adapter accepts.
	Original reflect.Type
	// Adapted is the serialized-side type the adapter produces.
	Adapted reflect.Type
	// Adapter is the component instance.
	Adapter any

	adaptTo   reflect.Value
	adaptFrom reflect.Value
}

// AdaptTo runs the adapter in the model-to-JSON direction.
func (b *AdapterBinding) AdaptTo(original any) (any, error) {
	return call1(b.adaptTo, original)
}

// AdaptFrom runs the adapter in the JSON-to-model direction.
func (b *AdapterBinding) AdaptFrom(adapted any) (any, error) {
	return call1(b.adaptFrom, adapted)
}

// SerializerBinding associates a write-only serializer with its bound type.
type SerializerBinding struct {
	Bound      reflect.Type
	Serializer any

	serialize reflect.Value
}

// Serialize produces raw JSON for one value of the bound type.
func (b *SerializerBinding) Serialize(value any) (any, error) {
	return call1(b.serialize, value)
}

// DeserializerBinding associates a read-only deserializer with its bound type.
type DeserializerBinding struct {
	Bound        reflect.Type
	Deserializer any

	deserialize reflect.Value
}

// Deserialize builds a value of the bound type from raw JSON.
func (b *DeserializerBinding) Deserialize(raw any) (any, error) {
	return call1(b.deserialize, raw)
}

func call1(fn reflect.Value, arg any) (any, error) {
	results := fn.Call([]reflect.Value{reflect.ValueOf(arg)})
	out := results[0].Interface()
	if errv := results[1].Interface(); errv != nil {
		return out, errv.(error)
	}
	return out, nil
}
