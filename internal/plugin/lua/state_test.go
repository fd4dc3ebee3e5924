package lua

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(context.Background(), "", `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	v, ok := state.GetGlobal("x").(glua.LNumber)
	if !ok || float64(v) != 2 {
		t.Errorf("x = %v, want 2", state.GetGlobal("x"))
	}
}

func TestStateSyntaxError(t *testing.T) {
	state := newTestState(t)

	err := state.DoString(context.Background(), "broken.lua", `invalid lua code !!!`)
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("error = %v, want *ScriptError", err)
	}
	if scriptErr.Script != "broken.lua" {
		t.Errorf("Script = %q", scriptErr.Script)
	}
	var apiErr *glua.ApiError
	if !errors.As(err, &apiErr) {
		t.Errorf("error should wrap *lua.ApiError, got %T", scriptErr.Err)
	}
}

func TestStateRuntimeErrorNamesInlineScript(t *testing.T) {
	state := newTestState(t)

	err := state.DoString(context.Background(), "", `error("boom")`)
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) || scriptErr.Script != "<string>" {
		t.Fatalf("error = %v", err)
	}
	if got := firstLine(err); got == "" || bytes.Contains([]byte(got), []byte("\n")) {
		t.Errorf("firstLine = %q", got)
	}
}

func TestStateTimeout(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	start := time.Now()
	err := state.DoString(context.Background(), "", `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("error = %v, want ErrExecutionTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(context.Background(), "", `y = 3`); err != nil {
		t.Errorf("DoString after timeout: %v", err)
	}
}

func TestStateParentCancelled(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := state.DoString(ctx, "", `while true do end`)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestStateClose(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := state.DoString(context.Background(), "", `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after Close = %v", err)
	}
	if state.GetGlobal("x") != glua.LNil {
		t.Error("GetGlobal after Close should be nil")
	}
	if state.RegisterModule("m", nil) != nil {
		t.Error("RegisterModule after Close should return nil")
	}
}
