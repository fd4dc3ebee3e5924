package export

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Version is the JSON document version written by EncodeJSON.
const Version = 1

var (
	// ErrInvalidDocument is returned for JSON that is not an export document.
	ErrInvalidDocument = errors.New("invalid export document")

	// ErrUnsupportedVersion is returned for documents newer than Version.
	ErrUnsupportedVersion = errors.New("unsupported export version")
)

// Polyline is one flattened entity.
type Polyline struct {
	ID     uuid.UUID
	Kind   string
	Closed bool
	Filled bool
	Points []geom.Vector2
	// Text is the content of text entities.
	Text string
}

// Document is everything an export carries.
type Document struct {
	Version   int
	Session   uuid.UUID
	Bounds    geom.Rect
	Polylines []Polyline
}

// NewDocument flattens entities. bounds is normally scene.Model.Bounds().
func NewDocument(session uuid.UUID, entities []entity.Entity, bounds geom.Rect) Document {
	doc := Document{
		Version:   Version,
		Session:   session,
		Bounds:    bounds,
		Polylines: make([]Polyline, 0, len(entities)),
	}
	for _, e := range entities {
		p := Polyline{
			ID:     e.ID,
			Kind:   e.Kind().String(),
			Closed: e.IsClosed(),
			Filled: e.IsFilled(),
			Points: e.AsPolyline(),
		}
		if t, ok := e.Shape.(entity.Text); ok {
			p.Text = t.Style.Content
		}
		doc.Polylines = append(doc.Polylines, p)
	}
	return doc
}
