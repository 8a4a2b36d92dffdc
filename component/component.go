// Package component implements the reconciler: it turns an element
// declaration tree into a persistent component tree across renders,
// preserving identity across updates by recycling instances keyed by
// (sibling key, component type), and diffing children.
//
// Grounded primarily on pkg/lotus/reconciler/diff.go and
// pkg/lotus/reconciler/context.go (the per-context `UI` instance registry
// is the model for the persistent component tree here), generalized from
// that package's index-based, largely-stubbed diffing (diffChildren there
// leaves insertion/deletion/replacement as "// TODO" patches) into a
// fully-implemented sibling-key FIFO multimap. The keyed-recycling idea
// itself is enriched from newbpydev-bubblyui/pkg/core/component_diff.go
// (ComponentDiffer.EnableKeyReconciliation), generalized into the
// append-only-then-remove-only multimap.
package component

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/weave-tui/weave/canvas"
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/hook"
	"github.com/weave-tui/weave/layout"
)

// Key is a sibling key: the identifier distinguishing children within one
// parent. The empty key is valid and, used on more than one sibling,
// participates in the same FIFO recycling pool as any other key.
type Key string

// AutoKey generates a fresh, globally unique sibling key. The element-
// construction macro that would normally mint a per-call key is out of
// scope for this module; callers building declarations programmatically
// (e.g. a list with no natural per-item identifier) use this instead of
// leaving every item keyed "" and relying on positional FIFO recycling,
// which is usually the wrong call for an item the caller wants to track
// identity-stably across unrelated reorders rather than recycle
// positionally.
func AutoKey() Key { return Key(uuid.NewString()) }

// Component is the contract every concrete leaf component (Text, View,
// TextInput, ...) implements. The concrete component library itself is
// out of scope for this module; this interface is the framework contract
// they're built against.
type Component interface {
	// Update runs this component's own update logic for one pass: reading
	// props, calling hooks, and — for a container component — declaring
	// its children and calling ctx.Reconcile on them. Props is whatever
	// the declaration that produced/refreshed this instance carried;
	// components type-assert it to their own props type.
	Update(ctx *UpdateContext, props any)

	// Draw paints this component into ctx.Canvas, which is already scoped
	// and clipped to the component's own rectangle.
	Draw(ctx *DrawContext)
}

// Declaration is an immutable, cheap-to-clone element: a sibling key, a
// component-type identity, and a props payload, plus nested children
// declarations. It is reconciliation's input, never retained as a source
// of truth past one Sync call.
type Declaration struct {
	Key      Key
	Type     reflect.Type
	New      func() Component
	Props    any
	Children []Declaration
}

// Decl builds a Declaration for a component type C, using newFn to
// construct a fresh instance the first time this (key, type) pair is
// seen. Type identity is the concrete Go type of C (the spec's "canonical
// per-component-type token"), so two components with identical prop
// layouts but different concrete types are still distinguished.
func Decl[C Component](key Key, newFn func() C, props any, children ...Declaration) Declaration {
	var zero C
	return Declaration{
		Key:      key,
		Type:     reflect.TypeOf(zero),
		New:      func() Component { return newFn() },
		Props:    props,
		Children: children,
	}
}

// Instance is a persistent component, owned by its parent in the
// component tree. It survives across renders so long as a declaration
// under the same parent keeps carrying its sibling key and type, wherever
// that declaration sits among its siblings.
type Instance struct {
	key      Key
	typ      reflect.Type
	node     *layout.Node
	value    Component
	props    any
	children []Declaration
	hooks    *hook.List
	kids     *siblingMap
	seq      uint64 // monotonically increasing identity marker, for tests
}

// Seq returns an opaque, monotonically increasing identity marker unique
// to this instance's creation — used by tests to verify instance reuse
// without exposing a raw pointer.
func (i *Instance) Seq() uint64 { return i.seq }

// Node returns the instance's layout-tree node.
func (i *Instance) Node() *layout.Node { return i.node }

// Value returns the concrete component value, for tests that need to
// reach into component-specific state.
func (i *Instance) Value() Component { return i.value }

// UpdateContext is threaded into Component.Update: it exposes the hook
// list, the context stack, this instance's layout node, and the
// Reconcile method a container component calls on its own declared
// children.
type UpdateContext struct {
	Hooks    *hook.List
	Context  *wcontext.Stack
	Node     *layout.Node
	Children []Declaration // this instance's own declared children, from Decl's variadic children argument

	tree *Tree
	self *Instance
}

// Reconcile synchronizes children against this component's current set of
// child instances, recursing into each child's own Update in the
// process. Container components typically pass
// ctx.Children straight through; the parameter exists separately so a
// component may filter, reorder, or synthesize children instead.
func (u *UpdateContext) Reconcile(children []Declaration) {
	u.tree.sync(u.self, children, u.Context)
}

// PushContext pushes a new context-stack frame visible to this
// component's children for the remainder of this update. Callers
// (context-provider components) must pair every Push with a
// PopContextTo(mark) using the Mark taken before the push.
func (u *UpdateContext) PushContext(kind wcontext.Kind, v any) {
	u.Context.Push(kind, v)
}

// ContextMark returns the current context-stack depth, to be restored
// with PopContextTo after this component's children have been updated.
func (u *UpdateContext) ContextMark() int { return u.Context.Len() }

// PopContextTo truncates the context stack back to mark, popping whatever
// frames this component pushed.
func (u *UpdateContext) PopContextTo(mark int) { u.Context.TruncateTo(mark) }

// DrawContext is threaded into Component.Draw: a canvas subview already
// scoped (and, by default, clipped) to the component's rectangle.
type DrawContext struct {
	Canvas *canvas.SubView
	Rect   layout.Rect
}
