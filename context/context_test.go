package context

import "testing"

func TestLookup_FindsNearestMatchingFrame(t *testing.T) {
	s := NewStack()
	s.PushShared(1)
	s.PushShared(2)

	v, ok := Lookup[int](s)
	if !ok || v != 2 {
		t.Fatalf("Lookup = %v, %v, want 2, true", v, ok)
	}
}

func TestLookupMutable_SkipsSharedFrames(t *testing.T) {
	s := NewStack()
	s.PushShared(1)

	_, ok := LookupMutable[int](s)
	if ok {
		t.Fatal("LookupMutable must not see a Shared-only frame")
	}
}

func TestLookupMutable_SeesExclusiveFrames(t *testing.T) {
	s := NewStack()
	s.PushExclusive(1)

	v, ok := LookupMutable[int](s)
	if !ok || v != 1 {
		t.Fatalf("LookupMutable = %v, %v, want 1, true", v, ok)
	}
}

func TestMustLookup_PanicsWithNoMatchingFrame(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		want := "weave: widget.Box requested context int with no matching frame"
		if r != want {
			t.Errorf("panic = %v, want %q", r, want)
		}
	}()
	MustLookup[int](NewStack(), "widget.Box")
}

func TestMustLookup_ReturnsMatchingValue(t *testing.T) {
	s := NewStack()
	s.PushOwned(7)
	if v := MustLookup[int](s, "widget.Box"); v != 7 {
		t.Errorf("MustLookup = %d, want 7", v)
	}
}

func TestMustLookupMutable_PanicsNamingSharedOnlyFrame(t *testing.T) {
	s := NewStack()
	s.PushShared(1)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		want := "weave: widget.Box requested mutable context int but the only matching frame is shared (immutable)"
		if r != want {
			t.Errorf("panic = %v, want %q", r, want)
		}
	}()
	MustLookupMutable[int](s, "widget.Box")
}

func TestMustLookupMutable_PanicsWithNoMatchingFrameAtAll(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		want := "weave: widget.Box requested context int with no matching frame"
		if r != want {
			t.Errorf("panic = %v, want %q", r, want)
		}
	}()
	MustLookupMutable[int](NewStack(), "widget.Box")
}

func TestMustLookupMutable_ReturnsExclusiveFrame(t *testing.T) {
	s := NewStack()
	s.PushExclusive(9)
	if v := MustLookupMutable[int](s, "widget.Box"); v != 9 {
		t.Errorf("MustLookupMutable = %d, want 9", v)
	}
}

func TestTruncateTo_RestoresMark(t *testing.T) {
	s := NewStack()
	s.PushShared(1)
	mark := s.Len()
	s.PushShared(2)
	s.TruncateTo(mark)

	if s.Len() != mark {
		t.Fatalf("Len after TruncateTo = %d, want %d", s.Len(), mark)
	}
	v, ok := Lookup[int](s)
	if !ok || v != 1 {
		t.Fatalf("Lookup after TruncateTo = %v, %v, want 1, true", v, ok)
	}
}
