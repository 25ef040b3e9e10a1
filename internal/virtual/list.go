package virtual

import (
	"vibe/internal/logging"
)

const (
	DefaultEstimate = 6
	DefaultBuffer   = 40
)

// Stats counts the work the list has asked of its host.
type Stats struct {
	Mounts       int
	Unmounts     int
	Reconciles   int
	Measures     int
	Corrections  int
	FullRebuilds int
}

type Option func(*List)

// WithEstimate sets the height assumed for entries that were never measured.
func WithEstimate(height int) Option {
	return func(l *List) {
		if height > 0 {
			l.estimate = height
		}
	}
}

// WithBuffer sets the margin, in lines, mounted above and below the viewport.
func WithBuffer(lines int) Option {
	return func(l *List) {
		if lines >= 0 {
			l.viewport.buffer = lines
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// List virtualizes an append-only sequence of renderables over a Host.
// It is not safe for concurrent use; drive it from the host's event loop.
type List struct {
	host      Host
	scheduler Scheduler
	logger    logging.Logger

	estimate int
	entries  entryStore
	index    *prefixIndex
	viewport viewport
	applied  Range
	pending  pendingTasks
	stats    Stats

	// lingering holds indices outside applied whose unmount failed.
	lingering []int
}

func New(host Host, scheduler Scheduler, opts ...Option) *List {
	l := &List{
		host:      host,
		scheduler: scheduler,
		logger:    logging.Nop(),
		estimate:  DefaultEstimate,
		viewport:  viewport{buffer: DefaultBuffer},
		applied:   EmptyRange(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.index = newPrefixIndex(l.estimate)
	return l
}

// Append adds item at the tail with an estimated height.
func (l *List) Append(item Mountable) {
	if item == nil {
		return
	}
	l.entries.append(item)
	l.index.appendHeight()
	if !l.syncRange() {
		l.updateSpacers()
	}
}

// Clear drops every entry. Mounted renderables are detached by the forced
// reconciliation it schedules.
func (l *List) Clear() {
	l.entries.clear()
	l.index.reset()
	l.applied = EmptyRange()
	l.lingering = nil
	l.updateSpacers()
	l.schedule(slotReconcile, l.reconcile)
}

// SetViewport records the scroll offset and viewport height, both relative to
// the top of the list content. Unchanged geometry does no further work.
func (l *List) SetViewport(scrollY, height int) {
	if !l.viewport.set(scrollY, height) {
		return
	}
	l.syncRange()
}

// SetEstimate changes the default height for unmeasured entries. The index is
// rebuilt in full before its next use.
func (l *List) SetEstimate(height int) {
	if height <= 0 || height == l.estimate {
		return
	}
	l.estimate = height
	l.index.setEstimate(height)
	l.syncRange()
	l.updateSpacers()
}

// Remeasure schedules a measurement pass over the mounted window, for example
// after the host width changed.
func (l *List) Remeasure() {
	l.schedule(slotMeasure, l.measure)
}

// syncRange schedules a reconciliation when the desired window differs from
// the applied one and reports whether it did.
func (l *List) syncRange() bool {
	l.freshen()
	desired := l.viewport.desired(l.index, l.entries.len())
	if desired == l.applied {
		return false
	}
	l.schedule(slotReconcile, l.reconcile)
	return true
}

func (l *List) freshen() {
	before := l.index.rebuilds
	l.index.ensureFresh(&l.entries)
	if l.index.rebuilds != before {
		l.stats.FullRebuilds++
	}
}

func (l *List) Len() int {
	return l.entries.len()
}

// Range returns the window most recently applied to the host.
func (l *List) Range() Range {
	return l.applied
}

func (l *List) TotalHeight() int {
	l.freshen()
	return l.index.total()
}

// Offset returns the summed height of entries [0, i), clamped to the list.
func (l *List) Offset(i int) int {
	l.freshen()
	return l.index.at(i)
}

func (l *List) Offsets() []int {
	l.freshen()
	return append([]int(nil), l.index.offsets...)
}

// Height returns the best-known height of entry i and whether it has been
// measured.
func (l *List) Height(i int) (int, bool) {
	e := l.entries.at(i)
	if e == nil {
		return 0, false
	}
	return e.bestHeight(l.estimate), e.height > 0
}

func (l *List) IsMounted(i int) bool {
	e := l.entries.at(i)
	return e != nil && e.mounted
}

func (l *List) Item(i int) Mountable {
	e := l.entries.at(i)
	if e == nil {
		return nil
	}
	return e.content
}

func (l *List) Estimate() int {
	return l.estimate
}

func (l *List) Stats() Stats {
	return l.stats
}
