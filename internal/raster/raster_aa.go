package raster

// FillAA rasterizes edges with anti-aliasing. Each pixel row is scanned
// subScale times and every scan is resolved to 1/subScale pixel columns.
func (r *Rasterizer) FillAA(pixmap Pixmap, pathEdges []PathEdge, fillRule FillRule, color RGBA) {
	edges := buildEdges(pathEdges)
	if len(edges) == 0 {
		return
	}

	y0, y1 := rowRange(edges, pixmap.Height())
	if y0 >= y1 || pixmap.Width() <= 0 {
		return
	}

	row := newRowCoverage(pixmap.Width())
	for y := y0; y < y1; y++ {
		for sub := range subScale {
			scanY := float64(y) + (float64(sub)+0.5)/subScale
			r.collect(edges, scanY)
			forEachSpan(r.aet.Edges(), fillRule, row.addSpan)
		}
		row.flush(pixmap, y, color)
	}
}
