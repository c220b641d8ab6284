// Package scanner abstracts how trackable sections are discovered inside a
// content container, keeping the percent/discovery logic free of any DOM or
// rendering dependency.
package scanner

// Section is one trackable slice of a content container. Sections are
// ephemeral: every scan rebuilds the list from current layout.
type Section struct {
	ID          string
	Top         float64 // offset from the container top, px
	Height      float64 // full height, px
	Conditional bool    // belongs to a collapsible block
	Expanded    bool    // collapse state, meaningful only when Conditional
}

// Countable reports whether the section contributes to exploration totals.
// The collapsed body of a conditional block does not count; its
// always-visible header is a separate non-conditional section.
func (s Section) Countable() bool {
	return !s.Conditional || s.Expanded
}

// Scanner produces the ordered section list for a single container and
// reports content changes. Scan must be cheap — it is invoked on every
// recompute pass.
type Scanner interface {
	// Scan returns the current sections in document order.
	Scan() []Section

	// Watch registers a change callback invoked whenever the section list
	// may have changed (content mutation, block expand/collapse). The
	// returned function unregisters the callback.
	Watch(onChange func()) (cancel func())
}
