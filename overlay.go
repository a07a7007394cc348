package celpaint

import (
	"math"

	"github.com/gogpu/celpaint/internal/path"
	"github.com/gogpu/celpaint/internal/raster"
)

// overlay draws annotation shapes onto a pixmap with the scanline rasterizer.
type overlay struct {
	rasterizer *raster.Rasterizer
	target     *pixmapAdapter
}

func newOverlay(pm *Pixmap) *overlay {
	return &overlay{
		rasterizer: raster.NewRasterizer(),
		target:     &pixmapAdapter{pixmap: pm},
	}
}

// pixmapAdapter adapts Pixmap to the raster.Pixmap interface.
type pixmapAdapter struct {
	pixmap *Pixmap
}

func (p *pixmapAdapter) Width() int {
	return p.pixmap.Width()
}

func (p *pixmapAdapter) Height() int {
	return p.pixmap.Height()
}

// BlendPixelAlpha composites c over the existing pixel (source-over, straight
// alpha) scaled by coverage.
func (p *pixmapAdapter) BlendPixelAlpha(x, y int, c raster.RGBA, coverage uint8) {
	if coverage == 0 || c.A == 0 {
		return
	}
	if x < 0 || x >= p.pixmap.Width() || y < 0 || y >= p.pixmap.Height() {
		return
	}

	src := Color(c)
	if coverage == 255 && c.A == 255 {
		p.pixmap.SetPixel(x, y, src)
		return
	}

	dst := p.pixmap.Pixel(x, y)
	srcA := float64(c.A) / 255 * float64(coverage) / 255
	dstA := float64(dst.A) / 255
	inv := 1 - srcA

	outA := srcA + dstA*inv
	if outA <= 0 {
		return
	}
	blend := func(s, d uint8) uint8 {
		v := (float64(s)*srcA + float64(d)*dstA*inv) / outA
		return uint8(math.Min(255, math.Round(v)))
	}
	p.pixmap.SetPixel(x, y, Color{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	})
}

func toRasterEdges(p *path.Path) []raster.PathEdge {
	edges := path.Edges(p.Elements())
	result := make([]raster.PathEdge, len(edges))
	for i, e := range edges {
		result[i] = raster.PathEdge{
			P0: raster.Point{X: e.P0.X, Y: e.P0.Y},
			P1: raster.Point{X: e.P1.X, Y: e.P1.Y},
		}
	}
	return result
}

// ring strokes an anti-aliased circle outline of the given radius and
// thickness around the center of pixel (cx, cy). The interior is left
// untouched. Thickness below 1 draws a 1 pixel outline.
func (o *overlay) ring(cx, cy, radius, thickness int, c Color) {
	var p path.Path
	p.Ring(float64(cx)+0.5, float64(cy)+0.5, float64(radius), float64(max(thickness, 1)))
	o.rasterizer.FillAA(o.target, toRasterEdges(&p), raster.FillRuleEvenOdd, raster.RGBA(c))
}

// cross draws an aliased "X" with square caps through the center of pixel
// (cx, cy). Each arm reaches size/2 pixels from the center.
func (o *overlay) cross(cx, cy, size, thickness int, c Color) {
	h := float64(size / 2)
	x, y := float64(cx)+0.5, float64(cy)+0.5
	w := float64(max(thickness, 1))

	var a, b path.Path
	a.Segment(x-h, y-h, x+h, y+h, w)
	b.Segment(x-h, y+h, x+h, y-h, w)
	o.rasterizer.Fill(o.target, toRasterEdges(&a), raster.FillRuleNonZero, raster.RGBA(c))
	o.rasterizer.Fill(o.target, toRasterEdges(&b), raster.FillRuleNonZero, raster.RGBA(c))
}
