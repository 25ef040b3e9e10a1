package virtual

// spacerHeights sizes the placeholders for the applied window: everything
// above it on top, everything below it on the bottom.
func (l *List) spacerHeights() (top, bottom int) {
	l.freshen()
	total := l.index.total()
	window := l.applied.clamp(l.entries.len())
	if window.Empty() {
		return 0, max(total, 0)
	}
	top = l.index.at(window.Start)
	bottom = total - l.index.at(window.End+1)
	return max(top, 0), max(bottom, 0)
}

func (l *List) updateSpacers() {
	top, bottom := l.spacerHeights()
	l.host.SetExtent(SpacerTop, top, top > 0)
	l.host.SetExtent(SpacerBottom, bottom, bottom > 0)
}

// Spacers returns the current top and bottom placeholder heights.
func (l *List) Spacers() (top, bottom int) {
	return l.spacerHeights()
}
