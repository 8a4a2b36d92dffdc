package component

import (
	"fmt"

	"github.com/weave-tui/weave/canvas"
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/hook"
	"github.com/weave-tui/weave/layout"
)

// Tree owns the persistent component tree and the layout tree it mirrors
// one-for-one: every live component instance has exactly one layout node
// and vice versa.
type Tree struct {
	Layout *layout.Tree
	root   *Instance
	seq    uint64

	// StrictKeys makes an explicit (non-empty) sibling key repeated among
	// siblings in the same declaration list panic immediately instead of
	// being tolerated by the FIFO recycle pool. A repeated explicit key is
	// usually a programming error, but the FIFO multimap exists precisely
	// to recycle same-keyed siblings across renders (the common case for
	// the default, empty key) — see DESIGN.md for why this is a caller
	// opt-in rather than the default. Off by default; callers that want
	// the stricter guarantee for explicitly keyed lists (as opposed to
	// intentionally-repeated default keys) turn it on.
	StrictKeys bool
}

// NewTree creates an empty component tree with its own layout tree.
func NewTree() *Tree {
	return &Tree{Layout: layout.NewTree()}
}

// Root returns the current root instance, or nil before the first Update.
func (t *Tree) Root() *Instance { return t.root }

// Update runs one top-level update pass: creating the root instance on
// the first call, replacing it if the root declaration's type changes,
// and otherwise refreshing its props and invoking its Update.
func (t *Tree) Update(decl Declaration, ctx *wcontext.Stack) *Instance {
	if t.root != nil && t.root.typ != decl.Type {
		t.dropInstance(t.root)
		t.root = nil
	}
	if t.root == nil {
		t.root = t.newInstance(decl, nil)
	} else {
		t.root.props = decl.Props
		t.root.children = decl.Children
	}
	t.runUpdate(t.root, ctx)
	return t.root
}

func (t *Tree) newInstance(d Declaration, parent *Instance) *Instance {
	t.seq++
	var parentNode *layout.Node
	if parent != nil {
		parentNode = parent.node
	}
	node := t.Layout.NewNode(parentNode)
	return &Instance{
		key:      d.Key,
		typ:      d.Type,
		node:     node,
		value:    d.New(),
		props:    d.Props,
		children: d.Children,
		hooks:    hook.NewList(d.Type.String()),
		kids:     newSiblingMap(),
		seq:      t.seq,
	}
}

func (t *Tree) runUpdate(inst *Instance, ctx *wcontext.Stack) {
	uctx := &UpdateContext{Hooks: inst.hooks, Context: ctx, Node: inst.node, Children: inst.children, tree: t, self: inst}
	hctx := &hook.UpdateCtx{Context: ctx, Component: inst.typ.String()}
	inst.hooks.Begin()
	inst.hooks.PreUpdate(hctx)
	inst.value.Update(uctx, inst.props)
	inst.hooks.PostUpdate(hctx)
	inst.hooks.End()
}

// sync reconciles parent's children against decls: reuse by (key, type)
// from the oldest surviving entry in the old multimap, create fresh
// instances otherwise, recurse into each child's own update, then drop
// whatever is left unconsumed in the old map.
func (t *Tree) sync(parent *Instance, decls []Declaration, ctx *wcontext.Stack) {
	old := parent.kids
	next := newSiblingMap()

	if t.StrictKeys {
		seen := make(map[Key]bool, len(decls))
		for _, d := range decls {
			if d.Key == "" {
				continue
			}
			if seen[d.Key] {
				panic(fmt.Sprintf("weave: duplicate sibling key %q under component %q", d.Key, parent.typ))
			}
			seen[d.Key] = true
		}
	}

	nodeOrder := make([]*layout.Node, 0, len(decls))
	for _, d := range decls {
		var inst *Instance
		if existing, ok := old.take(d.Key, d.Type); ok {
			inst = existing
			inst.props = d.Props
			inst.children = d.Children
		} else {
			inst = t.newInstance(d, parent)
		}
		t.runUpdate(inst, ctx)
		next.append(d.Key, inst)
		nodeOrder = append(nodeOrder, inst.node)
	}

	for _, leftover := range old.remaining() {
		t.dropInstance(leftover)
	}

	parent.kids = next
	t.Layout.SetChildrenOrder(parent.node, nodeOrder)
}

// dropInstance removes inst and its entire subtree: detaching its layout
// node, disposing its hooks (invalidating any outstanding state/ref
// handles), and recursing into its children.
func (t *Tree) dropInstance(inst *Instance) {
	for _, c := range inst.kids.remaining() {
		t.dropInstance(c)
	}
	inst.hooks.Dispose()
	t.Layout.Detach(inst.node)
}

// InstanceCount returns the number of live component instances, for the
// layout-tree-parity invariant check: it must equal t.Layout.Count().
func (t *Tree) InstanceCount() int {
	if t.root == nil {
		return 0
	}
	return 1 + countChildren(t.root)
}

func countChildren(inst *Instance) int {
	n := 0
	for _, c := range inst.kids.remaining() {
		n++
		n += countChildren(c)
	}
	return n
}

// Draw runs one draw pass: computing the canvas subview for every
// instance whose layout node appears in result (transparent components
// contribute no Result of their own and are skipped, per layout.Compute),
// parent before children so a parent may paint its background before its
// children paint on top.
func (t *Tree) Draw(c *canvas.Canvas, result *layout.Result) {
	if t.root == nil || result == nil {
		return
	}
	instances := make(map[int]*Instance)
	collectInstances(t.root, instances)
	drawResult(c, result, instances)
}

func collectInstances(inst *Instance, out map[int]*Instance) {
	if inst == nil {
		return
	}
	out[inst.node.ID()] = inst
	for _, c := range inst.kids.remaining() {
		collectInstances(c, out)
	}
}

func drawResult(c *canvas.Canvas, res *layout.Result, instances map[int]*Instance) {
	inst := instances[res.Node.ID()]
	if inst != nil {
		sub := c.SubView(res.Rect.X, res.Rect.Y, res.Rect.Width, res.Rect.Height, true)
		dctx := &DrawContext{Canvas: sub, Rect: res.Rect}
		drawCtx := &hook.DrawCtx{Rect: res.Rect, Origin: res.Rect}
		inst.hooks.PreDraw(drawCtx)
		inst.value.Draw(dctx)
		inst.hooks.PostDraw(drawCtx)
	}
	for _, child := range res.Children {
		drawResult(c, child, instances)
	}
}

// PollChange polls every live instance's hook list with the shared waker,
// reporting Ready if any one of them is. Every instance must be polled,
// even after one reports Ready, so each hook gets a chance to register
// the waker.
func (t *Tree) PollChange(w *hook.Waker) hook.ChangeState {
	if t.root == nil {
		return hook.Pending
	}
	return pollInstance(t.root, w)
}

func pollInstance(inst *Instance, w *hook.Waker) hook.ChangeState {
	state := inst.hooks.PollChange(w)
	for _, c := range inst.kids.remaining() {
		if pollInstance(c, w) == hook.Ready {
			state = hook.Ready
		}
	}
	return state
}
