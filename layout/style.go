// Package layout adapts a flexbox engine to the tree of nodes a component
// tree contributes: one node per component, carrying style and an optional
// intrinsic-size measure function.
package layout

// Unit distinguishes how a Length is interpreted.
type Unit int

const (
	UnitAuto Unit = iota
	UnitPoints
	UnitPercent
)

// Length is a flexbox dimension: either automatic, an absolute cell count,
// or a percentage of the containing block.
type Length struct {
	Unit  Unit
	Value float64
}

func Auto() Length                { return Length{Unit: UnitAuto} }
func Points(v float64) Length     { return Length{Unit: UnitPoints, Value: v} }
func Percent(v float64) Length    { return Length{Unit: UnitPercent, Value: v} }
func (l Length) IsAuto() bool     { return l.Unit == UnitAuto }
func (l Length) resolve(basis int) (int, bool) {
	switch l.Unit {
	case UnitPoints:
		return int(l.Value), true
	case UnitPercent:
		return int(float64(basis) * l.Value / 100), true
	default:
		return 0, false
	}
}

// Display selects whether a node participates in flex layout or is a plain
// block (its children simply stack, one per line, full width).
type Display int

const (
	DisplayFlex Display = iota
	DisplayBlock
	DisplayNone
)

// FlexDirection is the main axis for a flex container's children.
type FlexDirection int

const (
	Row FlexDirection = iota
	Column
	RowReverse
	ColumnReverse
)

// FlexWrap controls whether a flex container's children wrap onto new lines.
type FlexWrap int

const (
	NoWrap FlexWrap = iota
	Wrap
)

// Justify positions children along the main axis.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
)

// Align positions children along the cross axis.
type Align int

const (
	AlignStretch Align = iota
	AlignStart
	AlignEnd
	AlignCenter
)

// Position selects whether a node participates in normal flow or is
// positioned relative to its containing block's edges.
type Position int

const (
	PositionRelative Position = iota
	PositionAbsolute
)

// Edges is a four-sided inset (padding, margin) with CSS-shorthand
// construction helpers.
type Edges struct {
	Top, Right, Bottom, Left int
}

// EdgesAll builds an Edges with the same inset on every side.
func EdgesAll(v int) Edges { return Edges{v, v, v, v} }

// EdgesSymmetric builds an Edges from (vertical, horizontal) shorthand.
func EdgesSymmetric(vertical, horizontal int) Edges {
	return Edges{vertical, horizontal, vertical, horizontal}
}

// Overflow controls whether content exceeding a node's box is visible,
// clipped, or scrollable, independently per axis.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// BorderSides records which of a node's four edges draw a one-cell border.
// The spec allows only 0 or 1 cell thickness per edge.
type BorderSides struct {
	Top, Right, Bottom, Left bool
}

func (b BorderSides) Any() bool { return b.Top || b.Right || b.Bottom || b.Left }

// Style holds every per-node layout input the flexbox pass consumes.
type Style struct {
	Display   Display
	Width     Length
	Height    Length
	MinWidth  Length
	MinHeight Length
	MaxWidth  Length
	MaxHeight Length

	Padding Edges
	Margin  Edges

	OverflowX Overflow
	OverflowY Overflow

	FlexDirection FlexDirection
	FlexWrap      FlexWrap
	FlexBasis     Length
	FlexGrow      float64
	FlexShrink    float64
	Gap           int

	Justify    Justify
	AlignItems Align
	AlignSelf  Align

	Position                 Position
	Top, Left, Right, Bottom Length

	Border BorderSides
}

// DefaultStyle matches flexbox's usual initial values.
func DefaultStyle() Style {
	return Style{
		Width:      Auto(),
		Height:     Auto(),
		MinWidth:   Auto(),
		MinHeight:  Auto(),
		MaxWidth:   Auto(),
		MaxHeight:  Auto(),
		FlexBasis:  Auto(),
		FlexShrink: 1,
		AlignItems: AlignStretch,
		AlignSelf:  AlignStretch,
		Top:        Auto(),
		Left:       Auto(),
		Right:      Auto(),
		Bottom:     Auto(),
	}
}
