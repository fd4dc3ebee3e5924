package replay

import (
	"context"
	"fmt"

	"github.com/Hakkology/MuginCAD-sub001/internal/app"
	"github.com/Hakkology/MuginCAD-sub001/internal/command"
	"github.com/Hakkology/MuginCAD-sub001/internal/input"
)

// Host receives replayed input. *app.Controller implements it.
type Host interface {
	ProcessInput(ev input.Event) string
	Do(action string) (string, error)
}

// Result is the outcome of one step.
type Result struct {
	Index  int
	Step   Step
	Status string
	Err    error
}

// Player feeds scripts to a host.
type Player struct {
	host        Host
	logger      *app.Logger
	stopOnError bool
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger that receives one line per step.
func WithLogger(l *app.Logger) Option {
	return func(p *Player) {
		p.logger = l
	}
}

// WithStopOnError stops at the first failing step even when the script
// does not ask for it.
func WithStopOnError() Option {
	return func(p *Player) {
		p.stopOnError = true
	}
}

// NewPlayer creates a player for host.
func NewPlayer(host Host, opts ...Option) *Player {
	p := &Player{host: host, logger: app.NullLogger}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithComponent("replay")
	return p
}

// Play runs every step in order. Failing steps are collected into an
// app.ErrorList of *StepError; the run continues unless the script or the
// player asks to stop. A cancelled context ends the run with ctx.Err().
func (p *Player) Play(ctx context.Context, s *Script) ([]Result, error) {
	stop := p.stopOnError || s.StopOnError
	results := make([]Result, 0, len(s.Steps))
	errs := app.NewErrorList()

	p.logger.WithField("steps", len(s.Steps)).Info("replaying %s", s.Name)
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		status, err := p.apply(step)
		if err == nil && step.Expect != "" && status != step.Expect {
			err = fmt.Errorf("%w: got %q, want %q", ErrExpectationFailed, status, step.Expect)
		}
		res := Result{Index: i, Step: step, Status: status, Err: err}
		results = append(results, res)

		log := p.logger.WithFields(map[string]any{"step": i + 1, "line": step.Line})
		if err != nil {
			errs.Add(&StepError{Index: i, Line: step.Line, Err: err})
			log.Warn("%s: %v", step, err)
			if stop {
				break
			}
			continue
		}
		log.Info("%s -> %s", step, status)
	}
	return results, errs.AsError()
}

func (p *Player) apply(step Step) (string, error) {
	if ev, ok := step.Event(); ok {
		return p.host.ProcessInput(ev), nil
	}

	switch step.Kind() {
	case StepTool:
		t, err := command.ParseTool(step.Tool)
		if err != nil {
			return "", err
		}
		return p.host.Do("tool." + t.String())
	case StepAction:
		return p.host.Do(step.Action)
	default:
		return "", step.Validate()
	}
}

// PlayFile loads the script at path and plays it.
func (p *Player) PlayFile(ctx context.Context, path string) ([]Result, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return p.Play(ctx, s)
}
