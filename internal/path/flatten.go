package path

import "math"

// Tolerance is the maximum distance from the curve for flattening.
const Tolerance = 0.1

// flattenCubic flattens a cubic Bezier curve into line segments. The start
// point is not included in the result.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	var points []Point
	flattenCubicRec(p0, p1, p2, p3, tolerance, &points, 0)
	return points
}

// maxDepth bounds subdivision for degenerate control polygons.
const maxDepth = 16

func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, points *[]Point, depth int) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)

	if math.Max(d1, d2) < tolerance || depth >= maxDepth {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, points, depth+1)
	flattenCubicRec(s, r1, q2, p3, tolerance, points, depth+1)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	return p.Distance(a.Add(ab.Mul(t)))
}
