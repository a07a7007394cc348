package celpaint

import "slices"

// SwapList is an editable ordered list of color swap rules.
// Methods taking an index ignore out-of-range indices.
type SwapList struct {
	rules []ColorSwapRule
}

// Add appends an enabled rule.
func (l *SwapList) Add(src, dest Color, tolerance uint8) {
	l.rules = append(l.rules, ColorSwapRule{Source: src, Dest: dest, Enabled: true, Tolerance: tolerance})
}

// AddSource appends an identity rule src→src with tolerance 0 unless a rule
// for src already exists. It reports whether a rule was added.
func (l *SwapList) AddSource(src Color) bool {
	if l.IndexOf(src) >= 0 {
		return false
	}
	l.Add(src, src, 0)
	return true
}

// IndexOf returns the index of the first rule with the given source, or -1.
func (l *SwapList) IndexOf(src Color) int {
	return slices.IndexFunc(l.rules, func(r ColorSwapRule) bool { return r.Source == src })
}

// Remove deletes rule i.
func (l *SwapList) Remove(i int) {
	if l.valid(i) {
		l.rules = slices.Delete(l.rules, i, i+1)
	}
}

// Clear removes every rule.
func (l *SwapList) Clear() {
	l.rules = nil
}

// SetSource changes the source color of rule i.
func (l *SwapList) SetSource(i int, c Color) {
	if l.valid(i) {
		l.rules[i].Source = c
	}
}

// SetDest changes the destination color of rule i.
func (l *SwapList) SetDest(i int, c Color) {
	if l.valid(i) {
		l.rules[i].Dest = c
	}
}

// SetEnabled enables or disables rule i.
func (l *SwapList) SetEnabled(i int, enabled bool) {
	if l.valid(i) {
		l.rules[i].Enabled = enabled
	}
}

// SetTolerance changes the tolerance of rule i.
func (l *SwapList) SetTolerance(i int, tolerance uint8) {
	if l.valid(i) {
		l.rules[i].Tolerance = tolerance
	}
}

// SetAllTolerance changes the tolerance of every enabled rule. Disabled rules
// keep theirs.
func (l *SwapList) SetAllTolerance(tolerance uint8) {
	for i := range l.rules {
		if l.rules[i].Enabled {
			l.rules[i].Tolerance = tolerance
		}
	}
}

// Len returns the number of rules.
func (l *SwapList) Len() int {
	return len(l.rules)
}

// At returns rule i and whether i was in range.
func (l *SwapList) At(i int) (ColorSwapRule, bool) {
	if !l.valid(i) {
		return ColorSwapRule{}, false
	}
	return l.rules[i], true
}

// Rules returns a copy of every rule, enabled or not, in order.
func (l *SwapList) Rules() []ColorSwapRule {
	return slices.Clone(l.rules)
}

func (l *SwapList) valid(i int) bool {
	return i >= 0 && i < len(l.rules)
}

// GuideList is an editable ordered list of guide check rules.
// Methods taking an index ignore out-of-range indices.
type GuideList struct {
	rules []GuideCheckRule
}

// NewGuideList returns the default list: red, blue and green sources, each
// marked in yellow with tolerance 0.
func NewGuideList() *GuideList {
	l := &GuideList{}
	l.Add(Red, Yellow, 0)
	l.Add(Blue, Yellow, 0)
	l.Add(Green, Yellow, 0)
	return l
}

// Add appends an enabled rule.
func (l *GuideList) Add(src, mark Color, tolerance uint8) {
	l.rules = append(l.rules, GuideCheckRule{Source: src, Mark: mark, Tolerance: tolerance, Enabled: true})
}

// Remove deletes rule i.
func (l *GuideList) Remove(i int) {
	if l.valid(i) {
		l.rules = slices.Delete(l.rules, i, i+1)
	}
}

// Clear removes every rule.
func (l *GuideList) Clear() {
	l.rules = nil
}

// SetSource changes the source color of rule i.
func (l *GuideList) SetSource(i int, c Color) {
	if l.valid(i) {
		l.rules[i].Source = c
	}
}

// SetMark changes the ring color of rule i.
func (l *GuideList) SetMark(i int, c Color) {
	if l.valid(i) {
		l.rules[i].Mark = c
	}
}

// SetTolerance changes the tolerance of rule i.
func (l *GuideList) SetTolerance(i int, tolerance uint8) {
	if l.valid(i) {
		l.rules[i].Tolerance = tolerance
	}
}

// SetEnabled enables or disables rule i.
func (l *GuideList) SetEnabled(i int, enabled bool) {
	if l.valid(i) {
		l.rules[i].Enabled = enabled
	}
}

// SetAllTolerances changes the tolerance of every rule.
func (l *GuideList) SetAllTolerances(tolerance uint8) {
	for i := range l.rules {
		l.rules[i].Tolerance = tolerance
	}
}

// Len returns the number of rules.
func (l *GuideList) Len() int {
	return len(l.rules)
}

// At returns rule i and whether i was in range.
func (l *GuideList) At(i int) (GuideCheckRule, bool) {
	if !l.valid(i) {
		return GuideCheckRule{}, false
	}
	return l.rules[i], true
}

// Rules returns a copy of every rule, enabled or not, in order.
func (l *GuideList) Rules() []GuideCheckRule {
	return slices.Clone(l.rules)
}

// Enabled returns a copy of the enabled rules in order.
func (l *GuideList) Enabled() []GuideCheckRule {
	var out []GuideCheckRule
	for _, r := range l.rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

func (l *GuideList) valid(i int) bool {
	return i >= 0 && i < len(l.rules)
}
