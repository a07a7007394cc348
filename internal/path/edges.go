package path

// Edge is a line segment from P0 to P1.
type Edge struct {
	P0, P1 Point
}

// Edges flattens elements into line edges. Every subpath is closed back to
// its own start point and no edge ever joins two subpaths.
func Edges(elements []Element) []Edge {
	var (
		edges   []Edge
		start   Point
		current Point
		open    bool
	)

	add := func(p0, p1 Point) {
		if p0 == p1 {
			return
		}
		edges = append(edges, Edge{P0: p0, P1: p1})
	}
	closeSubpath := func() {
		if open {
			add(current, start)
			current = start
			open = false
		}
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			closeSubpath()
			start = e.Point
			current = e.Point
		case LineTo:
			open = true
			add(current, e.Point)
			current = e.Point
		case CubicTo:
			open = true
			for _, pt := range flattenCubic(current, e.Control1, e.Control2, e.Point, Tolerance) {
				add(current, pt)
				current = pt
			}
		case Close:
			closeSubpath()
		}
	}
	closeSubpath()

	return edges
}
