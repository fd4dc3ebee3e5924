package command

import (
	"fmt"
	"strings"
)

// Tool identifies an interactive drawing or manipulation tool.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolLine
	ToolCircle
	ToolRectangle
	ToolArc
	ToolText
	ToolMove
	ToolRotate
	ToolScale
	ToolCopy
	ToolCut
)

var toolNames = [...]string{
	ToolNone:      "none",
	ToolLine:      "line",
	ToolCircle:    "circle",
	ToolRectangle: "rectangle",
	ToolArc:       "arc",
	ToolText:      "text",
	ToolMove:      "move",
	ToolRotate:    "rotate",
	ToolScale:     "scale",
	ToolCopy:      "copy",
	ToolCut:       "cut",
}

// String returns the tool's lowercase name.
func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", t)
}

// ParseTool converts a tool name to a Tool. Matching ignores case and
// accepts "rect" for rectangle.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "rect" {
		return ToolRectangle, nil
	}
	for t, s := range toolNames {
		if Tool(t) != ToolNone && s == n {
			return Tool(t), nil
		}
	}
	return ToolNone, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Step names the point a tool is waiting for.
type Step string

// Steps of every tool. StepIdle means no command is active.
const (
	StepIdle Step = "Idle"

	StepLineStart Step = "WaitingForLineStart"
	StepLineEnd   Step = "WaitingForLineEnd"

	StepCircleCenter Step = "WaitingForCircleCenter"
	StepCircleRadius Step = "WaitingForCircleRadius"

	StepRectStart Step = "WaitingForRectStart"
	StepRectEnd   Step = "WaitingForRectEnd"

	StepArcCenter Step = "WaitingForArcCenter"
	StepArcStart  Step = "WaitingForArcStart"
	StepArcEnd    Step = "WaitingForArcEnd"

	StepTextPosition Step = "WaitingForTextPosition"

	StepMoveBase   Step = "WaitingForMoveBase"
	StepMoveTarget Step = "WaitingForMoveTarget"

	StepRotatePivot     Step = "WaitingForRotatePivot"
	StepRotateReference Step = "WaitingForRotateReference"
	StepRotateTarget    Step = "WaitingForRotateTarget"

	StepScaleBase      Step = "WaitingForScaleBase"
	StepScaleReference Step = "WaitingForScaleReference"
	StepScaleTarget    Step = "WaitingForScaleTarget"

	StepCopyBase   Step = "WaitingForCopyBase"
	StepCopyTarget Step = "WaitingForCopyTarget"

	StepCutBase   Step = "WaitingForCutBase"
	StepCutTarget Step = "WaitingForCutTarget"
)

// Spec is the point-count contract of one tool.
type Spec struct {
	Tool Tool

	// Manipulation tools act on a selection captured at start.
	Manipulation bool

	// Steps has one entry per required point, in capture order.
	Steps []Step

	// Prompts are the status hints shown for each step.
	Prompts []string
}

// Points returns the number of clicks the tool needs.
func (s Spec) Points() int {
	return len(s.Steps)
}

var specs = map[Tool]Spec{
	ToolLine: {
		Tool:    ToolLine,
		Steps:   []Step{StepLineStart, StepLineEnd},
		Prompts: []string{"pick start point", "pick end point"},
	},
	ToolCircle: {
		Tool:    ToolCircle,
		Steps:   []Step{StepCircleCenter, StepCircleRadius},
		Prompts: []string{"pick center", "pick a point on the circle"},
	},
	ToolRectangle: {
		Tool:    ToolRectangle,
		Steps:   []Step{StepRectStart, StepRectEnd},
		Prompts: []string{"pick first corner", "pick opposite corner"},
	},
	ToolArc: {
		Tool:    ToolArc,
		Steps:   []Step{StepArcCenter, StepArcStart, StepArcEnd},
		Prompts: []string{"pick center", "pick start point", "pick end point"},
	},
	ToolText: {
		Tool:    ToolText,
		Steps:   []Step{StepTextPosition},
		Prompts: []string{"pick text position"},
	},
	ToolMove: {
		Tool:         ToolMove,
		Manipulation: true,
		Steps:        []Step{StepMoveBase, StepMoveTarget},
		Prompts:      []string{"pick base point", "pick destination"},
	},
	ToolRotate: {
		Tool:         ToolRotate,
		Manipulation: true,
		Steps:        []Step{StepRotatePivot, StepRotateReference, StepRotateTarget},
		Prompts:      []string{"pick pivot", "pick reference direction", "pick target direction"},
	},
	ToolScale: {
		Tool:         ToolScale,
		Manipulation: true,
		Steps:        []Step{StepScaleBase, StepScaleReference, StepScaleTarget},
		Prompts:      []string{"pick base point", "pick reference length", "pick target length"},
	},
	ToolCopy: {
		Tool:         ToolCopy,
		Manipulation: true,
		Steps:        []Step{StepCopyBase, StepCopyTarget},
		Prompts:      []string{"pick base point", "pick destination"},
	},
	ToolCut: {
		Tool:         ToolCut,
		Manipulation: true,
		Steps:        []Step{StepCutBase, StepCutTarget},
		Prompts:      []string{"pick base point", "pick destination"},
	},
}

// SpecFor returns the contract for t.
func SpecFor(t Tool) (Spec, bool) {
	s, ok := specs[t]
	return s, ok
}
