package layout

import "testing"

func TestCompute_RowGrow(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	root.Style.FlexDirection = Row

	a := tree.NewNode(root)
	a.Style.Width = Points(10)
	b := tree.NewNode(root)
	b.Style.FlexGrow = 1

	result := Compute(root, Size{Width: 40, Height: 10})
	if len(result.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(result.Children))
	}
	if w := result.Children[0].Rect.Width; w != 10 {
		t.Errorf("fixed child width = %d, want 10", w)
	}
	if w := result.Children[1].Rect.Width; w != 30 {
		t.Errorf("growing child width = %d, want 30", w)
	}
	if x := result.Children[1].Rect.X; x != 10 {
		t.Errorf("growing child x = %d, want 10", x)
	}
}

func TestCompute_ColumnStack(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	root.Style.FlexDirection = Column
	root.Style.Gap = 1

	for i := 0; i < 3; i++ {
		c := tree.NewNode(root)
		c.Style.Height = Points(2)
	}

	result := Compute(root, Size{Width: 20, Height: 20})
	if len(result.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(result.Children))
	}
	wantY := []int{0, 3, 6}
	for i, child := range result.Children {
		if child.Rect.Y != wantY[i] {
			t.Errorf("child %d Y = %d, want %d", i, child.Rect.Y, wantY[i])
		}
		if child.Rect.Height != 2 {
			t.Errorf("child %d height = %d, want 2", i, child.Rect.Height)
		}
	}
}

func TestCompute_PaddingAndBorderShrinkContentBox(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	root.Style.Padding = EdgesAll(1)
	root.Style.Border = BorderSides{Top: true, Right: true, Bottom: true, Left: true}

	child := tree.NewNode(root)
	child.Style.Width = Percent(100)
	child.Style.Height = Percent(100)

	result := Compute(root, Size{Width: 10, Height: 10})
	cr := result.Children[0].Rect
	if cr.X != 2 || cr.Y != 2 {
		t.Errorf("content origin = (%d,%d), want (2,2)", cr.X, cr.Y)
	}
	if cr.Width != 6 || cr.Height != 6 {
		t.Errorf("content size = (%d,%d), want (6,6)", cr.Width, cr.Height)
	}
}

func TestCompute_TransparentNodeFlattens(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	root.Style.FlexDirection = Row

	fragment := tree.NewNode(root)
	fragment.Transparent = true

	leaf1 := tree.NewNode(fragment)
	leaf1.Style.Width = Points(5)
	leaf2 := tree.NewNode(fragment)
	leaf2.Style.Width = Points(5)

	result := Compute(root, Size{Width: 20, Height: 5})
	if len(result.Children) != 2 {
		t.Fatalf("expected fragment's children spliced into root, got %d results", len(result.Children))
	}
	if result.Children[0].Node != leaf1 || result.Children[1].Node != leaf2 {
		t.Errorf("transparent flattening did not preserve leaf order")
	}
}

func TestCompute_JustifyCenter(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	root.Style.FlexDirection = Row
	root.Style.Justify = JustifyCenter

	child := tree.NewNode(root)
	child.Style.Width = Points(4)

	result := Compute(root, Size{Width: 10, Height: 1})
	if x := result.Children[0].Rect.X; x != 3 {
		t.Errorf("centered child X = %d, want 3", x)
	}
}

func TestCompute_AbsolutePosition(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)

	child := tree.NewNode(root)
	child.Style.Position = PositionAbsolute
	child.Style.Width = Points(3)
	child.Style.Height = Points(2)
	child.Style.Right = Points(1)
	child.Style.Bottom = Points(1)

	result := Compute(root, Size{Width: 10, Height: 10})
	rect := result.Children[0].Rect
	if rect.X != 6 || rect.Y != 7 {
		t.Errorf("absolute child rect = (%d,%d), want (6,7)", rect.X, rect.Y)
	}
}

func TestCompute_MeasureDrivesIntrinsicSize(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	root.Style.FlexDirection = Column

	leaf := tree.NewNode(root)
	leaf.Measure = func(avail Size) Size { return Size{Width: 7, Height: 2} }

	result := Compute(root, Size{Width: 20, Height: 20})
	if h := result.Children[0].Rect.Height; h != 2 {
		t.Errorf("measured height = %d, want 2", h)
	}
}

func TestTree_DetachRemovesSubtree(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	child := tree.NewNode(root)
	_ = tree.NewNode(child)

	if tree.Count() != 3 {
		t.Fatalf("expected 3 nodes before detach, got %d", tree.Count())
	}
	tree.Detach(child)
	if tree.Count() != 1 {
		t.Errorf("expected 1 node after detach, got %d", tree.Count())
	}
	if len(root.Children()) != 0 {
		t.Errorf("expected root to have no children after detach")
	}
}

func TestTree_SetChildrenOrderReorders(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(nil)
	a := tree.NewNode(root)
	b := tree.NewNode(root)

	tree.SetChildrenOrder(root, []*Node{b, a})
	kids := root.Children()
	if kids[0] != b || kids[1] != a {
		t.Errorf("SetChildrenOrder did not reorder children")
	}
}
