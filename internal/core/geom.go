// Package core provides fundamental types and utilities for the breakout game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units (terminal cells, y grows downward).
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Box is a float axis-aligned bounding box used for entity hitboxes.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// BoxAround returns a box of the given size centered on c.
func BoxAround(c Vec2, w, h float64) Box {
	return Box{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.X }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{b.X + b.W/2, b.Y + b.H/2}
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vec2) Box {
	b.X += d.X
	b.Y += d.Y
	return b
}

// Intersects reports whether two boxes overlap.
// Boxes that only touch along an edge do not intersect.
func (b Box) Intersects(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Rect represents an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// CellRect snaps a world box to the screen cells it covers.
func CellRect(b Box) Rect {
	x := int(math.Floor(b.X))
	y := int(math.Floor(b.Y))
	w := int(math.Ceil(b.Right())) - x
	h := int(math.Ceil(b.Bottom())) - y
	return Rect{X: x, Y: y, W: Max(w, 1), H: Max(h, 1)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
