package term

import "testing"

func TestKeyEvent_IsCtrlC(t *testing.T) {
	cases := []struct {
		name string
		k    KeyEvent
		want bool
	}{
		{"explicit code", KeyEvent{Code: KeyCtrlC}, true},
		{"ctrl+c rune", KeyEvent{Code: KeyRune, Rune: 'c', Modifiers: ModCtrl}, true},
		{"plain c", KeyEvent{Code: KeyRune, Rune: 'c'}, false},
		{"ctrl+d", KeyEvent{Code: KeyRune, Rune: 'd', Modifiers: ModCtrl}, false},
	}
	for _, tc := range cases {
		if got := tc.k.IsCtrlC(); got != tc.want {
			t.Errorf("%s: IsCtrlC() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEvent_PayloadAccessors(t *testing.T) {
	ke := Event{Payload: KeyEvent{Code: KeyEnter}}
	if _, ok := KeyOf(ke); !ok {
		t.Error("KeyOf should match a KeyEvent payload")
	}
	if _, ok := MouseOf(ke); ok {
		t.Error("MouseOf should not match a KeyEvent payload")
	}

	me := Event{Payload: MouseEvent{Kind: MouseDown}}
	if _, ok := MouseOf(me); !ok {
		t.Error("MouseOf should match a MouseEvent payload")
	}

	re := Event{Payload: ResizeEvent{Width: 80, Height: 24}}
	r, ok := ResizeOf(re)
	if !ok || r.Width != 80 || r.Height != 24 {
		t.Errorf("ResizeOf(%+v) = %+v, %v", re, r, ok)
	}
}

func TestModifiers_Has(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Error("expected both ModCtrl and ModShift set")
	}
	if m.Has(ModAlt) {
		t.Error("ModAlt should not be set")
	}
}
