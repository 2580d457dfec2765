package introspect

import (
	"reflect"
	"sort"

	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/registry"
)

// collector walks a type's declared interface graph and package, merging
// tags into one annotated element under the conflict rules: own declarations
// win, a tag reached through a single branch chain resolves to the nearest
// ancestor, the same non-repeatable kind reached through two independent
// branches is a hard error, and package tags only fill gaps.
type collector struct {
	reg *registry.Registry
}

// declID identifies one tag declaration: the declaring type plus the index
// of the tag on it. A shared ancestor reached through two branches produces
// the same IDs, which distinguishes legitimate diamonds from true parallel
// declarations.
type declID struct {
	origin reflect.Type
	index  int
}

type taggedEntry struct {
	meta.Entry
	id declID
}

// branchTags is the memoized result of collecting one interface subtree.
type branchTags struct {
	entries []taggedEntry
	// effective holds the winning (nearest) declaration per kind.
	effective map[meta.Kind]declID
}

func newBranchTags() *branchTags {
	return &branchTags{effective: map[meta.Kind]declID{}}
}

func (b *branchTags) add(e taggedEntry) {
	b.entries = append(b.entries, e)
	if _, ok := b.effective[e.Tag.Kind()]; !ok {
		b.effective[e.Tag.Kind()] = e.id
	}
}

// Collect returns the annotated element for a type: tags declared on the
// type itself, then tags inherited through its interface graph, then
// package-level tags filling remaining gaps. Built-in types skip hierarchy
// scanning entirely.
func (c *collector) Collect(t reflect.Type) (*meta.AnnotatedElement, error) {
	el := meta.NewAnnotatedElement(t, c.ownTags(t)...)
	if isBuiltinType(t) {
		return el, nil
	}

	inherited, err := c.interfaceEntries(t)
	if err != nil {
		return nil, err
	}
	for _, entry := range inherited {
		el.Merge(entry.Entry)
	}

	for _, tag := range c.reg.PackageTags(t.PkgPath()) {
		el.Merge(meta.Entry{Tag: tag, Inherited: true})
	}
	return el, nil
}

// ownTags returns the tags declared directly on the type through the
// registry, including the interface node tags when the type is a registered
// interface.
func (c *collector) ownTags(t reflect.Type) []meta.Tag {
	tags := c.reg.TypeTags(t)
	if node, ok := c.reg.Interface(t); ok {
		tags = append(tags[:len(tags):len(tags)], node.Tags...)
	}
	return tags
}

// interfaceEntries collects the inherited tag entries contributed by the
// type's interface graph, in nearest-first order.
func (c *collector) interfaceEntries(t reflect.Type) ([]taggedEntry, error) {
	direct := c.directInterfaces(t)
	if len(direct) == 0 {
		return nil, nil
	}

	memo := map[reflect.Type]*branchTags{}
	branches := make([]*branchTags, 0, len(direct))
	for _, node := range direct {
		branch, err := c.collectNode(node, memo)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	merged, err := mergeBranches(branches)
	if err != nil {
		return nil, err
	}
	return merged.entries, nil
}

// collectNode gathers the tags of one interface and, recursively, of the
// interfaces it extends. Memoized per traversal so a shared ancestor is
// resolved once and reused.
func (c *collector) collectNode(node *registry.InterfaceNode, memo map[reflect.Type]*branchTags) (*branchTags, error) {
	if cached, ok := memo[node.Type]; ok {
		return cached, nil
	}

	result := newBranchTags()
	for i, tag := range node.Tags {
		result.add(taggedEntry{
			Entry: meta.Entry{Tag: tag, Inherited: true, Origin: node.Type},
			id:    declID{origin: node.Type, index: i},
		})
	}

	if len(node.Extends) > 0 {
		branches := make([]*branchTags, 0, len(node.Extends))
		for _, parent := range node.Extends {
			branch, err := c.collectNode(c.nodeFor(parent), memo)
			if err != nil {
				return nil, err
			}
			branches = append(branches, branch)
		}
		merged, err := mergeBranches(branches)
		if err != nil {
			return nil, err
		}
		for _, e := range merged.entries {
			result.add(e)
		}
	}

	memo[node.Type] = result
	return result, nil
}

// mergeBranches joins sibling subtree results. Two branches carrying the
// same non-repeatable kind conflict unless their winning declaration is the
// one shared ancestor; duplicate declarations reached through converging
// paths are reused, not repeated.
func mergeBranches(branches []*branchTags) (*branchTags, error) {
	out := newBranchTags()
	added := map[declID]bool{}
	for _, branch := range branches {
		for kind, id := range branch.effective {
			if kind.Repeatable() {
				continue
			}
			if winner, ok := out.effective[kind]; ok && winner != id {
				return nil, &ParallelSourcesError{Kind: kind, First: winner.origin, Second: id.origin}
			}
		}
		for _, e := range branch.entries {
			if added[e.id] {
				continue
			}
			added[e.id] = true
			out.add(e)
		}
	}
	return out, nil
}

// nodeFor resolves a parent interface type to its registered node, or to an
// empty placeholder when the interface was never registered.
func (c *collector) nodeFor(t reflect.Type) *registry.InterfaceNode {
	if node, ok := c.reg.Interface(t); ok {
		return node
	}
	return &registry.InterfaceNode{Type: t}
}

// directInterfaces returns the interfaces a type declares directly. For a
// registered interface these are its Extends parents. For other types they
// are the maximal registered interfaces the type implements, minus the ones
// already satisfied by its embedded base (those belong to the base's own
// resolution).
func (c *collector) directInterfaces(t reflect.Type) []*registry.InterfaceNode {
	if t.Kind() == reflect.Interface {
		node, ok := c.reg.Interface(t)
		if !ok {
			return nil
		}
		out := make([]*registry.InterfaceNode, 0, len(node.Extends))
		for _, parent := range node.Extends {
			out = append(out, c.nodeFor(parent))
		}
		return out
	}

	var candidates []*registry.InterfaceNode
	for _, node := range c.reg.Interfaces() {
		if implements(t, node.Type) {
			candidates = append(candidates, node)
		}
	}

	if base, ok := embeddedBase(t); ok {
		filtered := candidates[:0]
		for _, node := range candidates {
			if !implements(base, node.Type) {
				filtered = append(filtered, node)
			}
		}
		candidates = filtered
	}

	// drop interfaces reachable as ancestors of other candidates; they are
	// visited through the graph, not as direct declarations
	ancestors := map[reflect.Type]bool{}
	for _, node := range candidates {
		for _, parent := range node.Extends {
			c.markAncestors(parent, ancestors)
		}
	}
	direct := candidates[:0]
	for _, node := range candidates {
		if !ancestors[node.Type] {
			direct = append(direct, node)
		}
	}

	sort.Slice(direct, func(i, j int) bool {
		return direct[i].Type.String() < direct[j].Type.String()
	})
	return direct
}

func (c *collector) markAncestors(t reflect.Type, seen map[reflect.Type]bool) {
	if seen[t] {
		return
	}
	seen[t] = true
	if node, ok := c.reg.Interface(t); ok {
		for _, parent := range node.Extends {
			c.markAncestors(parent, seen)
		}
	}
}
