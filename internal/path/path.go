// Package path builds and flattens the outlines used for overlay marks.
package path

import "math"

// Point is a 2D point in pixel space.
type Point struct {
	X, Y float64
}

func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Element is one command of a path.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

func (MoveTo) isElement() {}

// LineTo draws a straight segment.
type LineTo struct{ Point Point }

func (LineTo) isElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isElement() {}

// Path accumulates path elements.
type Path struct {
	elements []Element
}

// Elements returns the recorded elements.
func (p *Path) Elements() []Element {
	return p.elements
}

func (p *Path) MoveTo(x, y float64) {
	p.elements = append(p.elements, MoveTo{Point: Point{X: x, Y: y}})
}

func (p *Path) LineTo(x, y float64) {
	p.elements = append(p.elements, LineTo{Point: Point{X: x, Y: y}})
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: Point{X: c1x, Y: c1y},
		Control2: Point{X: c2x, Y: c2y},
		Point:    Point{X: x, Y: y},
	})
}

func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
}

// Circle adds a closed circle built from four cubic arcs.
func (p *Path) Circle(cx, cy, r float64) {
	// 4/3 * (sqrt(2) - 1)
	const k = 0.5522847498307936
	offset := r * k

	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+offset, cx+offset, cy+r, cx, cy+r)
	p.CubicTo(cx-offset, cy+r, cx-r, cy+offset, cx-r, cy)
	p.CubicTo(cx-r, cy-offset, cx-offset, cy-r, cx, cy-r)
	p.CubicTo(cx+offset, cy-r, cx+r, cy-offset, cx+r, cy)
	p.Close()
}

// Ring adds an annulus centered on (cx, cy) whose stroke is centered on
// radius r and is width wide. Fill it with the even-odd rule.
func (p *Path) Ring(cx, cy, r, width float64) {
	half := width / 2
	p.Circle(cx, cy, r+half)
	if inner := r - half; inner > 0 {
		p.Circle(cx, cy, inner)
	}
}

// Segment adds the outline of a straight stroke from (x0, y0) to (x1, y1)
// with the given width and square caps.
func (p *Path) Segment(x0, y0, x1, y1, width float64) {
	half := width / 2
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		// Degenerate segment: a square cap on both sides of a point.
		p.MoveTo(x0-half, y0-half)
		p.LineTo(x0+half, y0-half)
		p.LineTo(x0+half, y0+half)
		p.LineTo(x0-half, y0+half)
		p.Close()
		return
	}

	ux, uy := dx/length*half, dy/length*half
	nx, ny := -uy, ux

	sx, sy := x0-ux, y0-uy
	ex, ey := x1+ux, y1+uy

	p.MoveTo(sx+nx, sy+ny)
	p.LineTo(ex+nx, ey+ny)
	p.LineTo(ex-nx, ey-ny)
	p.LineTo(sx-nx, sy-ny)
	p.Close()
}
