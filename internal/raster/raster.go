// Package raster provides scanline rasterization of flattened outlines.
package raster

import "math"

// RGBA is a straight-alpha 8-bit color (internal copy to avoid import cycle).
type RGBA struct {
	R, G, B, A uint8
}

// Pixmap receives rasterized coverage.
type Pixmap interface {
	Width() int
	Height() int
	// BlendPixelAlpha composites c over the pixel at (x, y) with the given
	// coverage (0-255). Coverage 255 means the pixel is fully inside.
	BlendPixelAlpha(x, y int, c RGBA, coverage uint8)
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Point is a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// PathEdge is a line segment produced by path flattening.
type PathEdge struct {
	P0, P1 Point
}

// Rasterizer performs scanline rasterization.
// A Rasterizer reuses its edge table across fills and is not safe for
// concurrent use.
type Rasterizer struct {
	aet *ActiveEdgeTable
}

// NewRasterizer creates a rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{aet: NewActiveEdgeTable()}
}

// buildEdges converts path edges to scanline edges, dropping horizontal ones.
func buildEdges(pathEdges []PathEdge) []Edge {
	edges := make([]Edge, 0, len(pathEdges))
	for _, pe := range pathEdges {
		if math.Abs(pe.P1.Y-pe.P0.Y) < 0.001 {
			continue
		}
		edges = append(edges, NewEdge(pe.P0, pe.P1))
	}
	return edges
}

// Fill rasterizes edges without anti-aliasing: a pixel is painted when its
// center lies inside the outline.
func (r *Rasterizer) Fill(pixmap Pixmap, pathEdges []PathEdge, fillRule FillRule, color RGBA) {
	edges := buildEdges(pathEdges)
	if len(edges) == 0 {
		return
	}

	y0, y1 := rowRange(edges, pixmap.Height())

	for y := y0; y < y1; y++ {
		scanY := float64(y) + 0.5
		r.collect(edges, scanY)
		forEachSpan(r.aet.Edges(), fillRule, func(x1, x2 float64) {
			// Pixel centers in [x1, x2).
			r.fillSpan(pixmap, int(math.Ceil(x1-0.5)), int(math.Ceil(x2-0.5)), y, color)
		})
	}
}

// rowRange returns the pixel rows [y0, y1) the edges can touch, clipped to
// height.
func rowRange(edges []Edge, height int) (y0, y1 int) {
	yMin, yMax := math.MaxFloat64, -math.MaxFloat64
	for _, e := range edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}
	return max(int(math.Floor(yMin)), 0), min(int(math.Ceil(yMax)), height)
}

// collect loads the edges crossing scanline y into the active edge table,
// sorted by x.
func (r *Rasterizer) collect(edges []Edge, y float64) {
	r.aet.Clear()
	for _, edge := range edges {
		if edge.y0 <= y && y < edge.y1 {
			r.aet.AddAtY(edge, y)
		}
	}
	r.aet.Sort()
}

// forEachSpan reports the inside spans of a sorted active edge list.
func forEachSpan(edges []ActiveEdge, fillRule FillRule, span func(x1, x2 float64)) {
	if fillRule == FillRuleEvenOdd {
		for i := 0; i+1 < len(edges); i += 2 {
			span(edges[i].x, edges[i+1].x)
		}
		return
	}

	winding := 0
	var x1 float64
	for _, edge := range edges {
		if winding == 0 {
			x1 = edge.x
		}
		winding += edge.dir
		if winding == 0 {
			span(x1, edge.x)
		}
	}
}

// fillSpan paints pixels [x1, x2) of row y at full coverage.
func (r *Rasterizer) fillSpan(pixmap Pixmap, x1, x2, y int, color RGBA) {
	if y < 0 || y >= pixmap.Height() {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	x1 = max(x1, 0)
	x2 = min(x2, pixmap.Width())

	for x := x1; x < x2; x++ {
		pixmap.BlendPixelAlpha(x, y, color, 255)
	}
}
