package celpaint

import "github.com/gogpu/celpaint/internal/blob"

// AlphaCheckParams configures transparent-region annotation.
type AlphaCheckParams struct {
	CrossColor Color
	CrossSize  int
	Thickness  int
	ApplyToAll bool
}

// DefaultAlphaCheckParams returns a red 10 pixel cross, 2 pixels thick,
// applied to the current frame only.
func DefaultAlphaCheckParams() AlphaCheckParams {
	return AlphaCheckParams{
		CrossColor: Red,
		CrossSize:  10,
		Thickness:  2,
	}
}

// CheckAlpha marks the centroid of every 4-connected fully transparent
// region (alpha == 0) of p with an "X" in params.CrossColor. All regions are
// found before anything is drawn. It reports whether any region was found.
// ApplyToAll is ignored here; it selects the scope at the Sequence level.
func CheckAlpha(p *Pixmap, params AlphaCheckParams) bool {
	data := p.Data()
	w := p.Width()
	blobs := blob.Detect(w, p.Height(), func(x, y int) bool {
		return data[(y*w+x)*4+3] == 0
	})
	if len(blobs) == 0 {
		return false
	}

	ov := newOverlay(p)
	for _, b := range blobs {
		c := b.Centroid()
		ov.cross(c.X, c.Y, params.CrossSize, params.Thickness, params.CrossColor)
	}
	Logger().Debug("alpha check", "blobs", len(blobs))
	return true
}
