package introspect

import (
	"reflect"
	"sync"

	"github.com/example/jsonbind/pkg/component"
	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/registry"
)

// Context resolves and caches type customizations. A Context is safe for
// concurrent use; each type is resolved exactly once, and resolution errors
// are cached alongside successes so a failing type does not get re-walked.
type Context struct {
	cfg Config
	ix  *introspector

	mu       sync.Mutex
	cache    map[reflect.Type]*cacheEntry
	elements map[reflect.Type]*elementEntry
}

type cacheEntry struct {
	once sync.Once
	cust *ClassCustomization
	err  error
}

type elementEntry struct {
	once sync.Once
	el   *meta.AnnotatedElement
	err  error
}

// NewContext builds a resolution context over the given metadata and
// component registries. Nil registries mean tag-only resolution.
func NewContext(cfg Config, metaReg *registry.Registry, comps *component.Registry) *Context {
	if metaReg == nil {
		metaReg = registry.New()
	}
	if comps == nil {
		comps = component.NewRegistry()
	}
	cfg = cfg.normalized()
	ctx := &Context{
		cfg:      cfg,
		cache:    map[reflect.Type]*cacheEntry{},
		elements: map[reflect.Type]*elementEntry{},
	}
	ctx.ix = &introspector{
		cfg:        cfg,
		reg:        metaReg,
		components: comps,
		coll:       &collector{reg: metaReg},
		elements:   ctx.collectedElement,
	}
	return ctx
}

// Customization returns the compiled customization of a type, resolving it
// on first use. Pointer types resolve to their element type.
func (ctx *Context) Customization(t reflect.Type) (*ClassCustomization, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	entry := ctx.entry(t)
	entry.once.Do(func() {
		entry.cust, entry.err = ctx.resolve(t)
	})
	return entry.cust, entry.err
}

// CustomizationOf is a convenience wrapper resolving the dynamic type of a
// value.
func (ctx *Context) CustomizationOf(v any) (*ClassCustomization, error) {
	return ctx.Customization(reflect.TypeOf(v))
}

// resolve compiles one type, resolving its embedded base chain first so
// inherited polymorphism configuration is available.
func (ctx *Context) resolve(t reflect.Type) (*ClassCustomization, error) {
	var parent *ClassCustomization
	if base, ok := embeddedBase(t); ok {
		var err error
		parent, err = ctx.Customization(base)
		if err != nil {
			return nil, err
		}
	}
	return ctx.ix.introspectType(t, parent)
}

func (ctx *Context) entry(t reflect.Type) *cacheEntry {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	e, ok := ctx.cache[t]
	if !ok {
		e = &cacheEntry{}
		ctx.cache[t] = e
	}
	return e
}

// collectedElement memoizes collector output; component lookups and the
// compiler itself both consult it.
func (ctx *Context) collectedElement(t reflect.Type) (*meta.AnnotatedElement, error) {
	ctx.mu.Lock()
	e, ok := ctx.elements[t]
	if !ok {
		e = &elementEntry{}
		ctx.elements[t] = e
	}
	ctx.mu.Unlock()
	e.once.Do(func() {
		e.el, e.err = ctx.ix.coll.Collect(t)
	})
	return e.el, e.err
}
