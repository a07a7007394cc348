package celpaint

import "github.com/gogpu/celpaint/internal/blob"

// Default guide ring geometry.
const (
	DefaultGuideRadius    = 10
	DefaultGuideThickness = 2
)

// GuideCheckRule marks every connected region of Source with a ring in Mark.
type GuideCheckRule struct {
	Source    Color
	Mark      Color
	Tolerance uint8
	Enabled   bool
}

// CheckGuides finds every 4-connected region matching an enabled rule and
// draws a ring of the rule's mark color around each region's centroid.
//
// Detection always runs against the original pixels, so rings drawn for one
// rule never create or split regions for a later rule. Overlapping rings are
// drawn as-is. p is only modified when at least one region was found, and
// the result reports exactly that.
func CheckGuides(p *Pixmap, rules []GuideCheckRule, radius, thickness int) bool {
	w, h := p.Width(), p.Height()
	out := p.Clone()
	ov := newOverlay(out)

	found := false
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		blobs := blob.Detect(w, h, func(x, y int) bool {
			return p.Pixel(x, y).Matches(rule.Source, rule.Tolerance)
		})
		for _, b := range blobs {
			c := b.Centroid()
			ov.ring(c.X, c.Y, radius, thickness, rule.Mark)
		}
		if len(blobs) > 0 {
			found = true
			Logger().Debug("guide check",
				"source", rule.Source, "tolerance", rule.Tolerance, "blobs", len(blobs))
		}
	}

	if found {
		copy(p.Data(), out.Data())
	}
	return found
}
