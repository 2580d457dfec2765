// Package component defines the pluggable converter contracts (adapters,
// serializers, deserializers), their resolved bindings, and the thread-safe
// registry that caches one binding per component.
package component

import "encoding/json"

// Adapter converts between a model type and a JSON-friendly representation.
// Implementations are free to use any method receiver; the registry matches
// them structurally through the AdaptTo/AdaptFrom method pair.
type Adapter[Original, Adapted any] interface {
	// AdaptTo converts a model value into its serialized-side representation.
	AdaptTo(Original) (Adapted, error)
	// AdaptFrom converts a serialized-side value back into the model type.
	AdaptFrom(Adapted) (Original, error)
}

// Serializer produces raw JSON for values of one bound type. Write-only.
type Serializer[T any] interface {
	SerializeJSON(T) (json.RawMessage, error)
}

// Deserializer builds values of one bound type from raw JSON. Read-only.
type Deserializer[T any] interface {
	DeserializeJSON(json.RawMessage) (T, error)
}
