package celpaint

// ColorSwapRule replaces pixels matching Source with Dest.
type ColorSwapRule struct {
	Source    Color
	Dest      Color
	Enabled   bool
	Tolerance uint8
}

// ReplaceColors applies rules to every pixel of p in place. Disabled rules
// are ignored; for each pixel the first enabled rule whose source matches
// wins and later rules are not consulted. All four channels of the
// destination are written. It reports whether any pixel value changed.
func ReplaceColors(p *Pixmap, rules []ColorSwapRule) bool {
	active := make([]ColorSwapRule, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return false
	}

	changed := false
	data := p.Data()
	for i := 0; i+3 < len(data); i += 4 {
		px := Color{R: data[i], G: data[i+1], B: data[i+2], A: data[i+3]}
		for _, r := range active {
			if !px.Matches(r.Source, r.Tolerance) {
				continue
			}
			if px != r.Dest {
				data[i+0] = r.Dest.R
				data[i+1] = r.Dest.G
				data[i+2] = r.Dest.B
				data[i+3] = r.Dest.A
				changed = true
			}
			break
		}
	}
	return changed
}
