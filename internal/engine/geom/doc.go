// Package geom provides the 2D value types shared by the drafting kernel.
//
// Vector2 is used both as a point and as a displacement. It is a small value
// type and is always passed and returned by value. Coordinates are float32 to
// match the scene's single scalar coordinate space; intermediate trigonometry
// is carried out in float64 and narrowed on return.
package geom
