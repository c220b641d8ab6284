// Package geometry holds the pure viewport math behind exploration tracking.
// Nothing here touches state; everything is total over its inputs.
package geometry

import "math"

// ExplorationPercent converts a seen-height sum into an integer percentage.
// A zero-height container has nothing to explore and reads as fully seen.
// Overlapping measurements can push seenHeight past totalHeight transiently,
// so the result is capped at 100 and floored at 0.
func ExplorationPercent(totalHeight, seenHeight float64) int {
	if totalHeight <= 0 {
		return 100
	}
	pct := int(math.Round(100 * seenHeight / totalHeight))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// SectionVisibility returns how much of a section counts as seen, given how
// far the viewport bottom has scrolled. A section is fully seen once the
// viewport bottom passes its bottom edge, partially seen while the bottom
// edge sits inside it, and unseen while it starts at or below the viewport
// bottom. The viewport top is deliberately ignored: progress means "furthest
// point reached", not "currently on screen".
func SectionVisibility(sectionTop, sectionHeight, viewportBottom float64) float64 {
	if sectionTop+sectionHeight <= viewportBottom {
		return sectionHeight
	}
	if sectionTop >= viewportBottom {
		return 0
	}
	return viewportBottom - sectionTop
}
