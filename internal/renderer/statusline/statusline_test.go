package statusline

import (
	"strings"
	"testing"

	"github.com/Hakkology/MuginCAD-sub001/internal/renderer/backend"
)

func TestRender(t *testing.T) {
	b := backend.NewNullBackend(40, 2)
	_ = b.Init()

	s := New(40)
	s.SetMode("line")
	s.SetMessage("Line: pick end point")
	s.SetInfo("3 ents")
	s.Render(b, 1)

	row := b.Row(1)
	if !strings.HasPrefix(row, " LINE  Line: pick end point") {
		t.Errorf("row = %q", row)
	}
	if !strings.HasSuffix(row, "3 ents ") {
		t.Errorf("row = %q, want summary on the right", row)
	}
	if got := b.GetCell(1, 1).Style.Background; got != backend.ColorGreen {
		t.Errorf("mode background = %v, want green", got)
	}
	if b.Row(0) != strings.Repeat(" ", 40) {
		t.Error("Render touched another row")
	}
}

func TestRenderTruncates(t *testing.T) {
	b := backend.NewNullBackend(20, 1)
	_ = b.Init()

	s := New(20)
	s.SetMessage(strings.Repeat("x", 50))
	s.SetInfo("info")
	s.Render(b, 0)

	row := b.Row(0)
	if len([]rune(row)) != 20 || !strings.HasSuffix(row, "info ") {
		t.Errorf("row = %q", row)
	}
}

func TestModeAndSeverity(t *testing.T) {
	s := New(10)
	if s.Mode() != "IDLE" {
		t.Errorf("initial mode = %q", s.Mode())
	}
	s.SetMode("rotate")
	if s.Mode() != "ROTATE" {
		t.Errorf("mode = %q", s.Mode())
	}
	s.SetMode("none")
	if s.Mode() != "IDLE" {
		t.Errorf("mode = %q, want IDLE", s.Mode())
	}

	tests := []struct {
		msg  string
		want MessageType
	}{
		{"Add line", MessageInfo},
		{"Scale rejected: degenerate input", MessageError},
		{"Move: select entities first", MessageWarning},
		{"Nothing to undo", MessageWarning},
	}
	for _, tt := range tests {
		s.SetMessage(tt.msg)
		if got := s.MessageType(); got != tt.want {
			t.Errorf("SetMessage(%q) severity = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
