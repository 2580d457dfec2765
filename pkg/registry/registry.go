// Package registry is the programmatic metadata channel: it records the
// declarations Go struct tags cannot carry — interface-level and
// package-level tags, the declared interface graph, type-level tags,
// accessor tags and constructor designations — and serves them to the
// introspection engine.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/example/jsonbind/pkg/meta"
)

// InterfaceNode is one registered interface with its declared tags and the
// interfaces it extends.
type InterfaceNode struct {
	Type    reflect.Type
	Extends []reflect.Type
	Tags    []meta.Tag
}

type accessorKey struct {
	typ      reflect.Type
	property string
	scope    meta.Scope
}

// Registry stores declared binding metadata. Safe for concurrent use; all
// registration is expected to happen before introspection starts, lookups
// may run concurrently afterwards.
type Registry struct {
	mu           sync.RWMutex
	types        map[reflect.Type][]meta.Tag
	interfaces   map[reflect.Type]*InterfaceNode
	packages     map[string][]meta.Tag
	accessors    map[accessorKey][]meta.Tag
	constructors map[reflect.Type][]*Constructor
	namedTypes   map[string]reflect.Type
}

// New creates an empty metadata registry.
func New() *Registry {
	return &Registry{
		types:        map[reflect.Type][]meta.Tag{},
		interfaces:   map[reflect.Type]*InterfaceNode{},
		packages:     map[string][]meta.Tag{},
		accessors:    map[accessorKey][]meta.Tag{},
		constructors: map[reflect.Type][]*Constructor{},
		namedTypes:   map[string]reflect.Type{},
	}
}

// RegisterType records tags declared on a type. v may be a value of the
// type or a reflect.Type.
func (r *Registry) RegisterType(v any, tags ...meta.Tag) {
	t := typeOf(v)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t] = append(r.types[t], tags...)
}

// InterfaceOption configures an interface registration.
type InterfaceOption func(*InterfaceNode)

// Extends declares that the registered interface embeds the given
// interfaces. Each argument is a nil interface pointer like (*Shape)(nil).
func Extends(ifaces ...any) InterfaceOption {
	return func(n *InterfaceNode) {
		for _, iface := range ifaces {
			n.Extends = append(n.Extends, interfaceOf(iface))
		}
	}
}

// WithTags declares tags on the registered interface.
func WithTags(tags ...meta.Tag) InterfaceOption {
	return func(n *InterfaceNode) {
		n.Tags = append(n.Tags, tags...)
	}
}

// RegisterInterface records an interface in the declared interface graph.
// ptr is a nil interface pointer like (*Shape)(nil).
func (r *Registry) RegisterInterface(ptr any, opts ...InterfaceOption) *InterfaceNode {
	t := interfaceOf(ptr)
	r.mu.Lock()
	defer r.mu.Unlock()
	node, ok := r.interfaces[t]
	if !ok {
		node = &InterfaceNode{Type: t}
		r.interfaces[t] = node
	}
	for _, opt := range opts {
		opt(node)
	}
	return node
}

// RegisterPackage records tags declared on a package, keyed by import path.
func (r *Registry) RegisterPackage(path string, tags ...meta.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages[path] = append(r.packages[path], tags...)
}

// TagAccessor records tags on a read or write accessor of one logical
// property, for types whose source cannot carry getter/setter struct tags.
func (r *Registry) TagAccessor(v any, property string, scope meta.Scope, tags ...meta.Tag) {
	key := accessorKey{typ: typeOf(v), property: property, scope: scope}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accessors[key] = append(r.accessors[key], tags...)
}

// RegisterTypeName records a concrete type under a name so `impl=` tags can
// reference it.
func (r *Registry) RegisterTypeName(name string, v any) error {
	t := typeOf(v)
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.namedTypes[name]; ok && existing != t {
		return fmt.Errorf("type name %q already bound to %s", name, existing)
	}
	r.namedTypes[name] = t
	return nil
}

// TypeByName returns the type registered under name.
func (r *Registry) TypeByName(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.namedTypes[name]
	return t, ok
}

// TypeTags returns the tags registered for a type.
func (r *Registry) TypeTags(t reflect.Type) []meta.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[t]
}

// Interface returns the registered node for an interface type.
func (r *Registry) Interface(t reflect.Type) (*InterfaceNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, ok := r.interfaces[t]
	return node, ok
}

// Interfaces returns every registered interface node.
func (r *Registry) Interfaces() []*InterfaceNode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*InterfaceNode, 0, len(r.interfaces))
	for _, node := range r.interfaces {
		out = append(out, node)
	}
	return out
}

// PackageTags returns the tags registered for a package path.
func (r *Registry) PackageTags(path string) []meta.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.packages[path]
}

// AccessorTags returns the tags registered for one accessor of a property.
func (r *Registry) AccessorTags(t reflect.Type, property string, scope meta.Scope) []meta.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accessors[accessorKey{typ: t, property: property, scope: scope}]
}

func typeOf(v any) reflect.Type {
	if t, ok := v.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(v)
}

// interfaceOf unwraps a nil interface pointer into the interface type.
func interfaceOf(ptr any) reflect.Type {
	t := reflect.TypeOf(ptr)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		panic(fmt.Sprintf("registry: expected nil interface pointer like (*Shape)(nil), got %T", ptr))
	}
	return t.Elem()
}
