package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNullBackendCells(t *testing.T) {
	b := NewNullBackend(10, 3)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cell := NewCell('X', DefaultStyle().WithForeground(ColorRed))
	b.SetCell(4, 1, cell)
	if got := b.GetCell(4, 1); got != cell {
		t.Errorf("GetCell = %+v, want %+v", got, cell)
	}
	if got := b.Row(1); got != "    X     " {
		t.Errorf("Row(1) = %q", got)
	}

	b.SetCell(-1, 0, cell)
	b.SetCell(10, 0, cell)
	if got := b.GetCell(-1, 0); got != EmptyCell() {
		t.Errorf("off-screen cell = %+v, want empty", got)
	}

	b.Clear()
	if got := b.GetCell(4, 1); got != EmptyCell() {
		t.Error("Clear left a cell behind")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(10, 3)
	_ = b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'l'})
	b.Resize(20, 5)

	if ev := b.PollEvent(); ev.Type != EventKey || ev.Rune != 'l' {
		t.Errorf("first event = %+v, want key l", ev)
	}
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 20 || ev.Height != 5 {
		t.Errorf("second event = %+v, want resize 20x5", ev)
	}
	if w, h := b.Size(); w != 20 || h != 5 {
		t.Errorf("Size = %dx%d, want 20x5", w, h)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		mod      ModMask
		wantKey  Key
		wantRune rune
		wantMod  ModMask
	}{
		{"rune", tcell.KeyRune, 'l', ModNone, KeyRune, 'l', ModNone},
		{"ctrl z", tcell.KeyCtrlZ, 26, ModCtrl, KeyRune, 'z', ModCtrl},
		{"ctrl a without mod", tcell.KeyCtrlA, 1, ModNone, KeyRune, 'a', ModCtrl},
		{"escape", tcell.KeyEscape, 0, ModNone, KeyEscape, 0, ModNone},
		{"delete", tcell.KeyDelete, 0, ModNone, KeyDelete, 0, ModNone},
		{"backspace2", tcell.KeyBackspace2, 0, ModNone, KeyBackspace, 0, ModNone},
		{"f5", tcell.KeyF5, 0, ModNone, KeyF5, 0, ModNone},
		{"shift left", tcell.KeyLeft, 0, ModShift, KeyLeft, 0, ModShift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, r, mod := convertKey(tt.key, tt.r, tt.mod)
			if k != tt.wantKey || r != tt.wantRune || mod != tt.wantMod {
				t.Errorf("convertKey = (%v, %q, %v), want (%v, %q, %v)",
					k, r, mod, tt.wantKey, tt.wantRune, tt.wantMod)
			}
		})
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModShift))
	if ev.Type != EventMouse || ev.MouseX != 3 || ev.MouseY != 4 ||
		ev.MouseButton != MouseLeft || !ev.Mod.Has(ModShift) {
		t.Errorf("mouse event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	if ev.MouseButton != MouseNone {
		t.Errorf("motion button = %v, want none", ev.MouseButton)
	}

	ev = convertEvent(tcell.NewEventResize(80, 24))
	if ev.Type != EventResize || ev.Width != 80 || ev.Height != 24 {
		t.Errorf("resize event = %+v", ev)
	}

	if ev = convertEvent(tcell.NewEventInterrupt(nil)); ev.Type != EventInterrupt {
		t.Errorf("interrupt event = %+v", ev)
	}
}

func TestConvertStyleRoundTrip(t *testing.T) {
	styles := []Style{
		DefaultStyle(),
		DefaultStyle().WithForeground(ColorYellow).With(AttrBold),
		{Foreground: ColorCyan, Background: ColorBlack, Attributes: AttrReverse | AttrUnderline},
		DefaultStyle().With(AttrDim),
	}
	for _, s := range styles {
		if got := convertTcellStyle(convertStyle(s)); got != s {
			t.Errorf("round trip of %+v = %+v", s, got)
		}
	}
}
