package replay

import (
	"slices"
	"strconv"
	"sync"

	"github.com/Hakkology/MuginCAD-sub001/internal/input"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
)

// Recorder sits in front of a Host and records what passes through as
// replay steps.
type Recorder struct {
	host Host

	mu      sync.Mutex
	steps   []Step
	moves   bool
	expects bool
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// RecordMoves keeps pointer moves, which are dropped by default.
func RecordMoves() RecorderOption {
	return func(r *Recorder) {
		r.moves = true
	}
}

// RecordExpectations stores each step's status in its expect field so the
// recording replays as a regression check.
func RecordExpectations() RecorderOption {
	return func(r *Recorder) {
		r.expects = true
	}
}

// NewRecorder creates a recorder forwarding to host.
func NewRecorder(host Host, opts ...RecorderOption) *Recorder {
	r := &Recorder{host: host}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ProcessInput forwards ev and records it.
func (r *Recorder) ProcessInput(ev input.Event) string {
	status := r.host.ProcessInput(ev)

	var step Step
	switch ev.Kind {
	case input.KindClick:
		step = Step{Click: xy(ev), Shift: ev.Modifiers.Has(key.ModShift)}
	case input.KindMove:
		if !r.moves {
			return status
		}
		step = Step{Move: xy(ev)}
	case input.KindKey:
		step = Step{Key: ev.Key.Spec()}
	default:
		return status
	}
	r.record(step, status)
	return status
}

// Do forwards action and records it when it succeeds.
func (r *Recorder) Do(action string) (string, error) {
	status, err := r.host.Do(action)
	if err == nil {
		r.record(Step{Action: action}, status)
	}
	return status, err
}

func (r *Recorder) record(step Step, status string) {
	if r.expects {
		step.Expect = status
	}
	r.mu.Lock()
	r.steps = append(r.steps, step)
	r.mu.Unlock()
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

// Script returns the recording so far.
func (r *Recorder) Script(name string) *Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Script{Name: name, Steps: slices.Clone(r.steps)}
}

// Reset discards the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.steps = nil
	r.mu.Unlock()
}

// xy widens the event position without float32 noise, so 10.2 stays 10.2.
func xy(ev input.Event) []float64 {
	return []float64{widen(ev.Pos.X), widen(ev.Pos.Y)}
}

func widen(f float32) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	return v
}
