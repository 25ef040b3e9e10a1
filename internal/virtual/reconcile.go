package virtual

import (
	"errors"

	"vibe/internal/logging"
)

// reconcile brings the host's mounted set in line with the desired window.
// Renderables that stay in the window are never touched; new ones are
// inserted before their nearest mounted follower so sibling order always
// matches index order.
func (l *List) reconcile() {
	l.stats.Reconciles++
	l.freshen()
	n := l.entries.len()
	desired := l.viewport.desired(l.index, n)

	wanted := make([]Mountable, 0, desired.Len())
	wantedIDs := make(map[string]struct{}, desired.Len())
	for i := desired.Start; i <= desired.End; i++ {
		item := l.entries.items[i].content
		wanted = append(wanted, item)
		wantedIDs[item.ID()] = struct{}{}
	}

	unmounted, failed := 0, 0
	for _, item := range l.host.Mounted() {
		if _, ok := wantedIDs[item.ID()]; ok {
			continue
		}
		if err := l.host.Unmount(item); err != nil {
			l.logger.Warn("unmount failed", logging.F("id", item.ID()), logging.F("error", err))
			failed++
			continue
		}
		unmounted++
	}

	mounted := 0
	var anchor Mountable
	for j := len(wanted) - 1; j >= 0; j-- {
		item := wanted[j]
		if l.host.IsAttached(item) {
			anchor = item
			continue
		}
		if err := l.mountBefore(item, anchor); err != nil {
			l.logger.Warn("mount failed", logging.F("id", item.ID()), logging.F("error", err))
			failed++
			continue
		}
		mounted++
		anchor = item
	}

	// Flags follow the host. Entries left attached outside the window are
	// remembered so the retry pass clears their flags once they detach.
	var lingering []int
	release := func(i int) {
		if i >= n || desired.Contains(i) {
			return
		}
		e := &l.entries.items[i]
		e.mounted = l.host.IsAttached(e.content)
		if e.mounted {
			lingering = append(lingering, i)
		}
	}
	for _, i := range l.lingering {
		release(i)
	}
	previous := l.applied.clamp(n)
	for i := previous.Start; i <= previous.End; i++ {
		release(i)
	}
	l.lingering = lingering
	for i := desired.Start; i <= desired.End; i++ {
		e := &l.entries.items[i]
		e.mounted = l.host.IsAttached(e.content)
	}

	l.stats.Mounts += mounted
	l.stats.Unmounts += unmounted
	l.applied = desired
	l.updateSpacers()
	if l.logger.Enabled(logging.Debug) {
		l.logger.Debug("reconciled",
			logging.F("range", desired),
			logging.F("entries", n),
			logging.F("mounted", mounted),
			logging.F("unmounted", unmounted),
		)
	}
	if failed > 0 {
		l.schedule(slotReconcile, l.reconcile)
	}
	if !desired.Empty() {
		l.schedule(slotMeasure, l.measure)
	}
}

// mountBefore mounts item ahead of anchor, falling back to the end of the
// mounted siblings when the anchor went away underneath us.
func (l *List) mountBefore(item, anchor Mountable) error {
	if anchor == nil {
		return l.host.Mount(item, nil)
	}
	err := l.host.Mount(item, anchor)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrAnchorDetached) {
		l.logger.Debug("mount before anchor failed", logging.F("id", item.ID()), logging.F("anchor", anchor.ID()), logging.F("error", err))
	}
	return l.host.Mount(item, nil)
}
