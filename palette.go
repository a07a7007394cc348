package celpaint

import "slices"

// RecentColorsCapacity is the number of custom colors remembered.
const RecentColorsCapacity = 16

// RecentColors remembers the most recently added custom colors. When full,
// adding a new color evicts the oldest one.
type RecentColors struct {
	colors []Color
}

// Add appends c unless it is already present. It reports whether c was added.
func (r *RecentColors) Add(c Color) bool {
	if slices.Contains(r.colors, c) {
		return false
	}
	if len(r.colors) >= RecentColorsCapacity {
		r.colors = slices.Delete(r.colors, 0, 1)
	}
	r.colors = append(r.colors, c)
	return true
}

// Len returns the number of colors held.
func (r *RecentColors) Len() int {
	return len(r.colors)
}

// Colors returns the colors from oldest to newest.
func (r *RecentColors) Colors() []Color {
	return slices.Clone(r.colors)
}
