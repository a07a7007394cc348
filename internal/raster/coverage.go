package raster

import "math"

// Anti-aliased fills sample every pixel on a subScale x subScale grid.
const (
	subShift = 2
	subScale = 1 << subShift
)

// fullCoverage is the sample count of a pixel lying entirely inside.
const fullCoverage = subScale * subScale

// rowCoverage accumulates the samples hit in one pixel row, one
// sub-scanline at a time.
type rowCoverage struct {
	width      int
	samples    []uint16
	minX, maxX int
}

func newRowCoverage(width int) *rowCoverage {
	return &rowCoverage{
		width:   width,
		samples: make([]uint16, width),
		minX:    width,
		maxX:    -1,
	}
}

// addSpan records the sample columns whose centers lie in [x1, x2).
func (c *rowCoverage) addSpan(x1, x2 float64) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	s1 := max(int(math.Ceil(x1*subScale-0.5)), 0)
	s2 := min(int(math.Ceil(x2*subScale-0.5)), c.width<<subShift)

	for s1 < s2 {
		x := s1 >> subShift
		end := min((x+1)<<subShift, s2)
		c.samples[x] += uint16(end - s1) //nolint:gosec // at most subScale
		c.minX = min(c.minX, x)
		c.maxX = max(c.maxX, x)
		s1 = end
	}
}

// flush blends the accumulated row into row y of the pixmap and resets it.
func (c *rowCoverage) flush(pixmap Pixmap, y int, color RGBA) {
	for x := c.minX; x <= c.maxX; x++ {
		if n := c.samples[x]; n > 0 {
			pixmap.BlendPixelAlpha(x, y, color, coverageAlpha(n))
			c.samples[x] = 0
		}
	}
	c.minX, c.maxX = c.width, -1
}

// coverageAlpha maps a sample count to an 8-bit coverage.
func coverageAlpha(n uint16) uint8 {
	if n >= fullCoverage {
		return 255
	}
	return uint8(int(n) * 256 / fullCoverage) //nolint:gosec // < 256
}
