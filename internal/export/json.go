package export

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// EncodeJSON renders doc. Coordinates are written with float32 precision.
func EncodeJSON(doc Document) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, value)
		}
	}
	setRaw := func(path string, raw []byte) {
		if err == nil {
			out, err = sjson.SetRawBytes(out, path, raw)
		}
	}

	version := doc.Version
	if version == 0 {
		version = Version
	}
	set("version", version)
	set("session", doc.Session.String())
	setRaw("bounds.min", appendPoint(nil, doc.Bounds.Min))
	setRaw("bounds.max", appendPoint(nil, doc.Bounds.Max))
	setRaw("entities", []byte(`[]`))

	for _, p := range doc.Polylines {
		obj, objErr := encodePolyline(p)
		if objErr != nil {
			return nil, objErr
		}
		setRaw("entities.-1", obj)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return out, nil
}

func encodePolyline(p Polyline) ([]byte, error) {
	obj := []byte(`{}`)
	var err error
	for _, kv := range []struct {
		path  string
		value any
	}{
		{"id", p.ID.String()},
		{"kind", p.Kind},
		{"closed", p.Closed},
		{"filled", p.Filled},
	} {
		if obj, err = sjson.SetBytes(obj, kv.path, kv.value); err != nil {
			return nil, fmt.Errorf("encoding entity %s: %w", p.ID, err)
		}
	}

	pts := []byte{'['}
	for i, pt := range p.Points {
		if i > 0 {
			pts = append(pts, ',')
		}
		pts = appendPoint(pts, pt)
	}
	pts = append(pts, ']')
	if obj, err = sjson.SetRawBytes(obj, "points", pts); err != nil {
		return nil, fmt.Errorf("encoding entity %s: %w", p.ID, err)
	}

	if p.Text != "" {
		if obj, err = sjson.SetBytes(obj, "text", p.Text); err != nil {
			return nil, fmt.Errorf("encoding entity %s: %w", p.ID, err)
		}
	}
	return obj, nil
}

func appendPoint(buf []byte, p geom.Vector2) []byte {
	buf = append(buf, '[')
	buf = strconv.AppendFloat(buf, float64(p.X), 'g', -1, 32)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, float64(p.Y), 'g', -1, 32)
	return append(buf, ']')
}

// DecodeJSON reads a document written by EncodeJSON.
func DecodeJSON(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Document{}, fmt.Errorf("%w: not an object", ErrInvalidDocument)
	}

	doc := Document{Version: int(root.Get("version").Int())}
	switch {
	case doc.Version <= 0:
		return Document{}, fmt.Errorf("%w: missing version", ErrInvalidDocument)
	case doc.Version > Version:
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	if s := root.Get("session"); s.Exists() {
		id, err := uuid.Parse(s.String())
		if err != nil {
			return Document{}, fmt.Errorf("%w: session: %v", ErrInvalidDocument, err)
		}
		doc.Session = id
	}
	doc.Bounds = geom.Rect{
		Min: readPoint(root.Get("bounds.min")),
		Max: readPoint(root.Get("bounds.max")),
	}

	entities := root.Get("entities")
	if !entities.IsArray() {
		return Document{}, fmt.Errorf("%w: entities is not an array", ErrInvalidDocument)
	}

	var err error
	entities.ForEach(func(key, value gjson.Result) bool {
		var p Polyline
		p, err = decodePolyline(value)
		if err != nil {
			err = fmt.Errorf("%w: entity %d: %v", ErrInvalidDocument, key.Int(), err)
			return false
		}
		doc.Polylines = append(doc.Polylines, p)
		return true
	})
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

func decodePolyline(v gjson.Result) (Polyline, error) {
	id, err := uuid.Parse(v.Get("id").String())
	if err != nil {
		return Polyline{}, err
	}
	p := Polyline{
		ID:     id,
		Kind:   v.Get("kind").String(),
		Closed: v.Get("closed").Bool(),
		Filled: v.Get("filled").Bool(),
		Text:   v.Get("text").String(),
	}
	if p.Kind == "" {
		return Polyline{}, fmt.Errorf("missing kind")
	}
	for _, pt := range v.Get("points").Array() {
		if len(pt.Array()) != 2 {
			return Polyline{}, fmt.Errorf("point %s is not [x, y]", pt.Raw)
		}
		p.Points = append(p.Points, readPoint(pt))
	}
	return p, nil
}

func readPoint(v gjson.Result) geom.Vector2 {
	return geom.V(float32(v.Get("0").Float()), float32(v.Get("1").Float()))
}

// WriteJSON encodes doc to path.
func WriteJSON(path string, doc Document) error {
	data, err := EncodeJSON(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a document written by WriteJSON.
func ReadJSON(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := DecodeJSON(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
