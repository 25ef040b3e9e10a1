package virtual

import "vibe/internal/logging"

// measure reads back settled heights for the mounted window. Unavailable
// readings keep the previous height and queue another pass.
func (l *List) measure() {
	n := l.entries.len()
	window := l.applied.clamp(n)
	if window.Empty() {
		return
	}
	l.stats.Measures++
	l.freshen()

	first := -1
	changed := 0
	retry := false
	for i := window.Start; i <= window.End; i++ {
		e := &l.entries.items[i]
		if !e.mounted || !l.host.IsAttached(e.content) {
			continue
		}
		height, ok := l.host.MeasuredHeight(e.content)
		if !ok || height <= 0 {
			retry = true
			continue
		}
		before := e.bestHeight(l.estimate)
		e.height = height
		if height == before {
			continue
		}
		changed++
		if first < 0 {
			first = i
		}
	}

	if first >= 0 {
		l.index.rebuildFrom(&l.entries, first)
		l.stats.Corrections++
		l.updateSpacers()
		if l.logger.Enabled(logging.Debug) {
			l.logger.Debug("heights corrected",
				logging.F("from", first),
				logging.F("changed", changed),
				logging.F("total", l.index.total()),
			)
		}
		l.syncRange()
	}
	if retry {
		l.schedule(slotMeasure, l.measure)
	}
}
