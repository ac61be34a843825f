// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea or ebiten)
// to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned bounding box in logical canvas units.
// Y grows downward, matching raster coordinates.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CellRect is a rectangle in whole screen cells.
type CellRect struct {
	X, Y int
	W, H int
}

// Right returns the x-coordinate one past the right edge.
func (r CellRect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r CellRect) Bottom() int {
	return r.Y + r.H
}

// Viewport maps the fixed logical canvas onto a screen of cells.
type Viewport struct {
	CanvasW, CanvasH float64
	CellsW, CellsH   int
}

// NewViewport creates a viewport for a canvas drawn onto a cell screen.
func NewViewport(canvasW, canvasH float64, cellsW, cellsH int) Viewport {
	return Viewport{CanvasW: canvasW, CanvasH: canvasH, CellsW: cellsW, CellsH: cellsH}
}

// X converts a logical x-coordinate to a cell column.
func (v Viewport) X(x float64) int {
	if v.CanvasW <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.CellsW) / v.CanvasW))
}

// Y converts a logical y-coordinate to a cell row.
func (v Viewport) Y(y float64) int {
	if v.CanvasH <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(v.CellsH) / v.CanvasH))
}

// Cells converts a logical rectangle to cells.
// Non-empty rectangles always cover at least one cell.
func (v Viewport) Cells(r Rect) CellRect {
	x0, y0 := v.X(r.X), v.Y(r.Y)
	x1, y1 := v.X(r.Right()), v.Y(r.Bottom())
	if r.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
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
	return math.Max(min, math.Min(max, val))
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
