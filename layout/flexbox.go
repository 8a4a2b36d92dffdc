package layout

// Rect is a node's computed position (absolute, in the coordinates of the
// root passed to Compute) and size, the output of a Compute pass.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Result is the computed layout for one node and its laid-out children,
// mirroring the Node tree one-for-one except that Transparent nodes
// contribute no Result of their own — their children are spliced into
// their parent's child list directly.
type Result struct {
	Node     *Node
	Rect     Rect
	Children []*Result
}

// Compute runs the flexbox pass over a node tree rooted at root, given the
// space available to it. This is adapted from a from-scratch flexbox
// implementation (no box-algorithm dependency exists anywhere in the
// retrieved pack); see DESIGN.md for why it is carried in-tree rather than
// imported.
func Compute(root *Node, available Size) *Result {
	w, ok := root.Style.Width.resolve(available.Width)
	if !ok {
		w = available.Width
	}
	h, ok := root.Style.Height.resolve(available.Height)
	if !ok {
		h = available.Height
	}
	w = clampDim(w, root.Style.MinWidth, root.Style.MaxWidth, available.Width)
	h = clampDim(h, root.Style.MinHeight, root.Style.MaxHeight, available.Height)

	res := &Result{Node: root, Rect: Rect{0, 0, w, h}}
	layoutChildren(res)
	return res
}

func clampDim(v int, min, max Length, basis int) int {
	if mn, ok := min.resolve(basis); ok && v < mn {
		v = mn
	}
	if mx, ok := max.resolve(basis); ok && v > mx {
		v = mx
	}
	if v < 0 {
		v = 0
	}
	return v
}

// effectiveChildren flattens transparent children into their parent's child
// list so a Fragment-style wrapper contributes no box of its own.
func effectiveChildren(n *Node) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Transparent {
			out = append(out, effectiveChildren(c)...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func layoutChildren(parent *Result) {
	node := parent.Node
	children := effectiveChildren(node)
	if len(children) == 0 {
		return
	}

	contentX, contentY, contentW, contentH := contentBox(parent.Rect, node.Style)

	switch node.Style.Display {
	case DisplayNone:
		return
	case DisplayBlock:
		parent.Children = layoutBlock(children, contentX, contentY, contentW, contentH)
	default:
		if node.Style.FlexDirection == Row || node.Style.FlexDirection == RowReverse {
			parent.Children = layoutMainAxis(children, contentX, contentY, contentW, contentH, node.Style, true)
		} else {
			parent.Children = layoutMainAxis(children, contentX, contentY, contentW, contentH, node.Style, false)
		}
	}

	for _, child := range parent.Children {
		layoutChildren(child)
	}
}

func contentBox(r Rect, st Style) (x, y, w, h int) {
	x = r.X + st.Padding.Left
	y = r.Y + st.Padding.Top
	w = r.Width - st.Padding.Left - st.Padding.Right
	h = r.Height - st.Padding.Top - st.Padding.Bottom
	if st.Border.Left {
		x++
		w--
	}
	if st.Border.Right {
		w--
	}
	if st.Border.Top {
		y++
		h--
	}
	if st.Border.Bottom {
		h--
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return
}

func layoutBlock(children []*Node, x, y, w, h int) []*Result {
	results := make([]*Result, len(children))
	cy := y
	for i, c := range children {
		ch := intrinsicHeight(c, w, h)
		results[i] = &Result{Node: c, Rect: Rect{X: x, Y: cy, Width: w, Height: ch}}
		cy += ch
	}
	return results
}

// layoutMainAxis handles both row and column flex layout; axis-generic
// fields are picked out via isRow.
func layoutMainAxis(children []*Node, x, y, w, h int, parent Style, isRow bool) []*Result {
	mainSize := w
	crossSize := h
	if !isRow {
		mainSize, crossSize = h, w
	}

	gap := parent.Gap
	basisOf := func(n *Node) int {
		if basis, ok := n.Style.FlexBasis.resolve(mainSize); ok {
			return basis
		}
		return intrinsicMain(n, isRow, mainSize, crossSize)
	}

	fixed := 0
	totalGrow := 0.0
	totalShrink := 0.0
	basisOfAll := make([]int, len(children))
	for i, c := range children {
		b := basisOf(c)
		basisOfAll[i] = b
		fixed += b
		totalGrow += c.Style.FlexGrow
		totalShrink += c.Style.FlexShrink * float64(b)
	}
	if len(children) > 1 {
		fixed += gap * (len(children) - 1)
	}

	remaining := mainSize - fixed
	results := make([]*Result, len(children))
	mainPos := 0

	grown := make([]int, len(children))
	for i, c := range children {
		size := basisOfAll[i]
		if remaining > 0 && totalGrow > 0 && c.Style.FlexGrow > 0 {
			size += int(float64(remaining) * c.Style.FlexGrow / totalGrow)
		} else if remaining < 0 && totalShrink > 0 && c.Style.FlexShrink > 0 {
			share := float64(-remaining) * (c.Style.FlexShrink * float64(basisOfAll[i])) / totalShrink
			size -= int(share)
			if size < 0 {
				size = 0
			}
		}
		grown[i] = size
	}

	// Distribute justify-content slack across the gaps/edges once sizes are
	// fixed, before computing positions.
	usedMain := 0
	for _, s := range grown {
		usedMain += s
	}
	if len(children) > 1 {
		usedMain += gap * (len(children) - 1)
	}
	slack := mainSize - usedMain
	if slack < 0 {
		slack = 0
	}
	leadingOffset, between := justifyOffsets(parent.Justify, slack, len(children), gap)

	mainPos = leadingOffset
	for i, c := range children {
		size := grown[i]
		crossAlign := parent.AlignItems
		if c.Style.AlignSelf != AlignStretch {
			crossAlign = c.Style.AlignSelf
		}
		childCross := crossSize
		if crossAlign != AlignStretch {
			childCross = intrinsicCross(c, isRow, size, crossSize)
		}
		crossPos := 0
		switch crossAlign {
		case AlignEnd:
			crossPos = crossSize - childCross
		case AlignCenter:
			crossPos = (crossSize - childCross) / 2
		}

		var rect Rect
		if isRow {
			rect = Rect{X: x + mainPos, Y: y + crossPos, Width: size, Height: childCross}
		} else {
			rect = Rect{X: x + crossPos, Y: y + mainPos, Width: childCross, Height: size}
		}
		if c.Style.Position == PositionAbsolute {
			rect = absoluteRect(c, x, y, w, h)
		}
		results[i] = &Result{Node: c, Rect: rect}
		mainPos += size + between
	}
	return results
}

func absoluteRect(n *Node, x, y, w, h int) Rect {
	rw, _ := n.Style.Width.resolve(w)
	rh, _ := n.Style.Height.resolve(h)
	rx, hasLeft := n.Style.Left.resolve(w)
	ry, hasTop := n.Style.Top.resolve(h)
	if !hasLeft {
		if right, ok := n.Style.Right.resolve(w); ok {
			rx = w - right - rw
		}
	}
	if !hasTop {
		if bottom, ok := n.Style.Bottom.resolve(h); ok {
			ry = h - bottom - rh
		}
	}
	return Rect{X: x + rx, Y: y + ry, Width: rw, Height: rh}
}

func justifyOffsets(j Justify, slack, count, gap int) (leading, between int) {
	if count == 0 {
		return 0, gap
	}
	switch j {
	case JustifyEnd:
		return slack, gap
	case JustifyCenter:
		return slack / 2, gap
	case JustifySpaceBetween:
		if count > 1 {
			return 0, gap + slack/(count-1)
		}
		return 0, gap
	case JustifySpaceAround:
		each := 0
		if count > 0 {
			each = slack / count
		}
		return each / 2, gap + each
	default:
		return 0, gap
	}
}

func intrinsicMain(n *Node, isRow bool, mainAvail, crossAvail int) int {
	if n.Measure == nil {
		if isRow {
			if v, ok := n.Style.Width.resolve(mainAvail); ok {
				return v
			}
		} else {
			if v, ok := n.Style.Height.resolve(mainAvail); ok {
				return v
			}
		}
		return 0
	}
	avail := Size{Width: mainAvail, Height: crossAvail}
	if !isRow {
		avail = Size{Width: crossAvail, Height: mainAvail}
	}
	sz := n.Measure(avail)
	if isRow {
		return sz.Width
	}
	return sz.Height
}

func intrinsicCross(n *Node, isRow bool, mainSize, crossAvail int) int {
	if n.Measure == nil {
		return crossAvail
	}
	avail := Size{Width: mainSize, Height: crossAvail}
	if !isRow {
		avail = Size{Width: crossAvail, Height: mainSize}
	}
	sz := n.Measure(avail)
	if isRow {
		return sz.Height
	}
	return sz.Width
}

func intrinsicHeight(n *Node, width, availHeight int) int {
	if h, ok := n.Style.Height.resolve(availHeight); ok {
		return h
	}
	if n.Measure != nil {
		return n.Measure(Size{Width: width, Height: availHeight}).Height
	}
	return 0
}
