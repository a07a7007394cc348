package raster

import (
	"cmp"
	"slices"
)

// Edge represents a line segment for scanline rasterization, stored with
// y0 < y1.
type Edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int // +1 downward, -1 upward (non-zero winding)
}

// NewEdge creates a new edge from two points.
func NewEdge(p0, p1 Point) Edge {
	// Direction is taken before the swap.
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}

	return Edge{
		x0:  p0.X,
		y0:  p0.Y,
		x1:  p1.X,
		y1:  p1.Y,
		dir: dir,
	}
}

// XAtY calculates the x coordinate at the given y coordinate.
func (e *Edge) XAtY(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}

// ActiveEdgeTable holds the edges crossing the current scanline.
type ActiveEdgeTable struct {
	edges []ActiveEdge
}

// ActiveEdge is an edge intersected with one scanline.
type ActiveEdge struct {
	x   float64
	dir int
}

// NewActiveEdgeTable creates a new active edge table.
func NewActiveEdgeTable() *ActiveEdgeTable {
	return &ActiveEdgeTable{
		edges: make([]ActiveEdge, 0, 32),
	}
}

// AddAtY adds an edge with x computed for the given y.
func (aet *ActiveEdgeTable) AddAtY(edge Edge, y float64) {
	aet.edges = append(aet.edges, ActiveEdge{
		x:   edge.XAtY(y),
		dir: edge.dir,
	})
}

// Sort orders the edges by x.
func (aet *ActiveEdgeTable) Sort() {
	slices.SortFunc(aet.edges, func(a, b ActiveEdge) int {
		return cmp.Compare(a.x, b.x)
	})
}

// Edges returns the active edges.
func (aet *ActiveEdgeTable) Edges() []ActiveEdge {
	return aet.edges
}

// Clear clears all edges.
func (aet *ActiveEdgeTable) Clear() {
	aet.edges = aet.edges[:0]
}
