package lua

import (
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Bridge converts drafting values to Lua tables.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a new Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// ToLuaValue converts a Go value to a Lua value. Unsupported types become nil.
func (b *Bridge) ToLuaValue(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case geom.Vector2:
		return b.point(val)
	case geom.Rect:
		t := b.L.NewTable()
		t.RawSetString("min", b.point(val.Min))
		t.RawSetString("max", b.point(val.Max))
		return t
	case []geom.Vector2:
		t := b.L.NewTable()
		for i, p := range val {
			t.RawSetInt(i+1, b.point(p))
		}
		return t
	case entity.Entity:
		return b.entity(val)
	case []entity.Entity:
		t := b.L.NewTable()
		for i, e := range val {
			t.RawSetInt(i+1, b.entity(e))
		}
		return t
	case []any:
		t := b.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, b.ToLuaValue(item))
		}
		return t
	case map[string]any:
		t := b.L.NewTable()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.RawSetString(k, b.ToLuaValue(val[k]))
		}
		return t
	default:
		return lua.LNil
	}
}

func (b *Bridge) point(p geom.Vector2) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("x", lua.LNumber(p.X))
	t.RawSetString("y", lua.LNumber(p.Y))
	return t
}

// entity describes e the way exports do: id, kind, closed, filled, points.
func (b *Bridge) entity(e entity.Entity) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("id", lua.LString(e.ID.String()))
	t.RawSetString("kind", lua.LString(e.Kind().String()))
	t.RawSetString("closed", lua.LBool(e.IsClosed()))
	t.RawSetString("filled", lua.LBool(e.IsFilled()))
	t.RawSetString("points", b.ToLuaValue(e.AsPolyline()))
	return t
}

// GetTableNumber reads a numeric field.
func (b *Bridge) GetTableNumber(t *lua.LTable, key string) (float64, bool) {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}
