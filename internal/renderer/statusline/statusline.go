// Package statusline draws the bottom line of the drawing view: the active
// tool, the controller's status message and snap/scene information.
package statusline

import (
	"strings"

	"github.com/Hakkology/MuginCAD-sub001/internal/renderer/backend"
)

// MessageType selects how the message is highlighted.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageWarning
	MessageError
)

// StatusLine holds the text of the bottom line between frames.
type StatusLine struct {
	mode        string // tool name, or "IDLE"
	message     string
	messageType MessageType
	info        string // right-aligned summary

	modeStyles map[string]backend.Style
	width      int
}

// New creates a status line of the given width.
func New(width int) *StatusLine {
	return &StatusLine{
		mode:       "IDLE",
		modeStyles: defaultModeStyles(),
		width:      width,
	}
}

func defaultModeStyles() map[string]backend.Style {
	draw := backend.Style{Foreground: backend.ColorBlack, Background: backend.ColorGreen, Attributes: backend.AttrBold}
	edit := backend.Style{Foreground: backend.ColorWhite, Background: backend.ColorMagenta, Attributes: backend.AttrBold}
	return map[string]backend.Style{
		"IDLE":      {Foreground: backend.ColorWhite, Background: backend.ColorBlue, Attributes: backend.AttrBold},
		"LINE":      draw,
		"CIRCLE":    draw,
		"RECTANGLE": draw,
		"ARC":       draw,
		"TEXT":      draw,
		"MOVE":      edit,
		"ROTATE":    edit,
		"SCALE":     edit,
		"COPY":      edit,
		"CUT":       edit,
	}
}

// SetMode sets the tool shown on the left. Empty or "none" shows IDLE.
func (s *StatusLine) SetMode(tool string) {
	if tool == "" || tool == "none" {
		s.mode = "IDLE"
		return
	}
	s.mode = strings.ToUpper(tool)
}

// Mode returns the displayed mode label.
func (s *StatusLine) Mode() string {
	return s.mode
}

// SetMessage sets the status text and guesses its severity from wording
// the controller uses for failures.
func (s *StatusLine) SetMessage(msg string) {
	s.message = msg
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rejected"), strings.Contains(lower, "failed"), strings.Contains(lower, "error"):
		s.messageType = MessageError
	case strings.Contains(lower, "nothing"), strings.Contains(lower, "select entities first"):
		s.messageType = MessageWarning
	default:
		s.messageType = MessageInfo
	}
}

// MessageType returns the severity of the current message.
func (s *StatusLine) MessageType() MessageType {
	return s.messageType
}

// SetInfo sets the right-aligned summary.
func (s *StatusLine) SetInfo(info string) {
	s.info = info
}

// Resize updates the width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the line at row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	modeStyle, ok := s.modeStyles[s.mode]
	if !ok {
		modeStyle = backend.Style{Foreground: backend.ColorWhite, Background: backend.ColorGray, Attributes: backend.AttrBold}
	}
	barStyle := backend.Style{Foreground: backend.ColorWhite, Background: backend.ColorGray}

	msgStyle := barStyle
	switch s.messageType {
	case MessageError:
		msgStyle = barStyle.WithForeground(backend.ColorRed).With(backend.AttrBold)
	case MessageWarning:
		msgStyle = barStyle.WithForeground(backend.ColorYellow)
	}

	for x := 0; x < s.width; x++ {
		b.SetCell(x, row, backend.NewCell(' ', barStyle))
	}

	col := s.put(b, row, 0, " "+s.mode+" ", modeStyle, s.width)
	col++

	// Leave room for the summary on the right.
	infoStart := s.width - len([]rune(s.info)) - 1
	limit := s.width
	if s.info != "" && infoStart > col {
		limit = infoStart - 1
	}
	s.put(b, row, col, s.message, msgStyle, limit)

	if s.info != "" && infoStart > col {
		s.put(b, row, infoStart, s.info, barStyle, s.width)
	}
}

func (s *StatusLine) put(b backend.Backend, row, col int, text string, style backend.Style, limit int) int {
	for _, r := range text {
		if col >= limit {
			break
		}
		b.SetCell(col, row, backend.NewCell(r, style))
		col++
	}
	return col
}
