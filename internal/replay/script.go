package replay

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Hakkology/MuginCAD-sub001/internal/command"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/input"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
)

// Script is a recorded or hand-written input session.
type Script struct {
	Name string `yaml:"name,omitempty"`
	// StopOnError ends the run at the first failing step.
	StopOnError bool   `yaml:"stopOnError,omitempty"`
	Steps       []Step `yaml:"steps"`

	// Path is the file the script was loaded from.
	Path string `yaml:"-"`
}

// StepKind names what a step does.
type StepKind string

// Step kinds.
const (
	StepClick  StepKind = "click"
	StepMove   StepKind = "move"
	StepKey    StepKind = "key"
	StepTool   StepKind = "tool"
	StepAction StepKind = "action"
)

// Step is one input. Exactly one of Click, Move, Key, Tool or Action is set.
type Step struct {
	Click  []float64 `yaml:"click,flow,omitempty"`
	Move   []float64 `yaml:"move,flow,omitempty"`
	Key    string    `yaml:"key,omitempty"`
	Tool   string    `yaml:"tool,omitempty"`
	Action string    `yaml:"action,omitempty"`

	// Shift holds shift during a click.
	Shift bool `yaml:"shift,omitempty"`

	// Expect, when set, must equal the status the step produces.
	Expect string `yaml:"expect,omitempty"`

	// Line is where the step starts in its file.
	Line int `yaml:"-"`
}

var stepFields = map[string]bool{
	"click": true, "move": true, "key": true, "tool": true,
	"action": true, "shift": true, "expect": true,
}

// UnmarshalYAML decodes a step and checks it names exactly one input.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return &StepError{Line: value.Line, Err: fmt.Errorf("%w: expected a mapping", ErrInvalidStep)}
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if k := value.Content[i].Value; !stepFields[k] {
			return &StepError{Line: value.Content[i].Line, Err: fmt.Errorf("%w: unknown field %q", ErrInvalidStep, k)}
		}
	}

	type plain Step
	var p plain
	if err := value.Decode(&p); err != nil {
		return &StepError{Line: value.Line, Err: fmt.Errorf("%w: %v", ErrInvalidStep, err)}
	}
	*s = Step(p)
	s.Line = value.Line
	if err := s.Validate(); err != nil {
		return &StepError{Line: value.Line, Err: err}
	}
	return nil
}

// Kind returns what the step does, or "" when it names no input.
func (s Step) Kind() StepKind {
	switch {
	case s.Click != nil:
		return StepClick
	case s.Move != nil:
		return StepMove
	case s.Key != "":
		return StepKey
	case s.Tool != "":
		return StepTool
	case s.Action != "":
		return StepAction
	default:
		return ""
	}
}

// Validate checks the step is well formed.
func (s Step) Validate() error {
	set := 0
	for _, ok := range []bool{s.Click != nil, s.Move != nil, s.Key != "", s.Tool != "", s.Action != ""} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return fmt.Errorf("%w: needs one of click, move, key, tool or action", ErrInvalidStep)
	case set > 1:
		return fmt.Errorf("%w: more than one input", ErrInvalidStep)
	case s.Click != nil && len(s.Click) != 2:
		return fmt.Errorf("%w: click needs [x, y]", ErrInvalidStep)
	case s.Move != nil && len(s.Move) != 2:
		return fmt.Errorf("%w: move needs [x, y]", ErrInvalidStep)
	case s.Shift && s.Click == nil:
		return fmt.Errorf("%w: shift only applies to click", ErrInvalidStep)
	}
	if s.Key != "" {
		if _, err := key.Parse(s.Key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
	}
	if s.Tool != "" {
		if _, err := command.ParseTool(s.Tool); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
	}
	return nil
}

// Event returns the input event for click, move and key steps.
func (s Step) Event() (input.Event, bool) {
	switch s.Kind() {
	case StepClick:
		mods := key.ModNone
		if s.Shift {
			mods = key.ModShift
		}
		return input.Click(point(s.Click), mods).From(input.SourceReplay), true
	case StepMove:
		return input.Move(point(s.Move)).From(input.SourceReplay), true
	case StepKey:
		ev, err := input.KeySpec(s.Key)
		if err != nil {
			return input.Event{}, false
		}
		return ev.From(input.SourceReplay), true
	default:
		return input.Event{}, false
	}
}

// String describes the step for logs, e.g. "click (10, 0)".
func (s Step) String() string {
	switch s.Kind() {
	case StepClick:
		if s.Shift {
			return fmt.Sprintf("shift-click (%g, %g)", s.Click[0], s.Click[1])
		}
		return fmt.Sprintf("click (%g, %g)", s.Click[0], s.Click[1])
	case StepMove:
		return fmt.Sprintf("move (%g, %g)", s.Move[0], s.Move[1])
	case StepKey:
		return "key " + s.Key
	case StepTool:
		return "tool " + s.Tool
	case StepAction:
		return "action " + s.Action
	default:
		return "empty step"
	}
}

func point(xy []float64) geom.Vector2 {
	return geom.V(float32(xy[0]), float32(xy[1]))
}

// Parse decodes a script. The document is either a list of steps or a
// mapping with a steps list.
func Parse(data []byte) (*Script, error) {
	return parse("<input>", data)
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay %s: %w", path, err)
	}
	s, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	s.Path = path
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

func parse(source string, data []byte) (*Script, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, newParseError(source, err)
	}

	s := &Script{}
	if len(root.Content) == 0 {
		return s, nil
	}
	doc := root.Content[0]

	var steps *yaml.Node
	switch doc.Kind {
	case yaml.SequenceNode:
		steps = doc
	case yaml.MappingNode:
		var head struct {
			Name        string    `yaml:"name"`
			StopOnError bool      `yaml:"stopOnError"`
			Steps       yaml.Node `yaml:"steps"`
		}
		if err := doc.Decode(&head); err != nil {
			return nil, newParseError(source, err)
		}
		s.Name, s.StopOnError = head.Name, head.StopOnError
		switch head.Steps.Kind {
		case 0:
			return s, nil
		case yaml.SequenceNode:
			steps = &head.Steps
		default:
			return nil, &ParseError{Path: source, Line: head.Steps.Line, Err: errors.New("steps must be a list")}
		}
	default:
		return nil, &ParseError{Path: source, Line: doc.Line, Err: errors.New("expected a list of steps or a mapping with steps")}
	}

	s.Steps = make([]Step, 0, len(steps.Content))
	for i, n := range steps.Content {
		var st Step
		if err := n.Decode(&st); err != nil {
			var se *StepError
			if errors.As(err, &se) {
				se.Index = i
			}
			return nil, newParseError(source, err)
		}
		s.Steps = append(s.Steps, st)
	}
	return s, nil
}

// Marshal encodes the script as YAML.
func (s *Script) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding replay: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding replay: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the script to path through a temporary file and rename.
func (s *Script) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
