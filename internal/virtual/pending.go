package virtual

type taskSlot uint8

const (
	slotReconcile taskSlot = iota
	slotMeasure
)

func (s taskSlot) String() string {
	if s == slotMeasure {
		return "measure"
	}
	return "reconcile"
}

// pendingTasks records which deferred passes are queued. Each slot holds at
// most one task; further requests fold into it.
type pendingTasks struct {
	reconcile bool
	measure   bool
}

func (p *pendingTasks) claim(slot taskSlot) bool {
	switch slot {
	case slotReconcile:
		if p.reconcile {
			return false
		}
		p.reconcile = true
	case slotMeasure:
		if p.measure {
			return false
		}
		p.measure = true
	}
	return true
}

func (p *pendingTasks) release(slot taskSlot) {
	switch slot {
	case slotReconcile:
		p.reconcile = false
	case slotMeasure:
		p.measure = false
	}
}

func (p pendingTasks) has(slot taskSlot) bool {
	if slot == slotMeasure {
		return p.measure
	}
	return p.reconcile
}

// schedule defers run unless the slot already has a pending task. The slot is
// released before run starts so run may queue its own follow-up.
func (l *List) schedule(slot taskSlot, run func()) {
	if !l.pending.claim(slot) {
		return
	}
	if l.scheduler == nil {
		l.pending.release(slot)
		run()
		return
	}
	l.scheduler.Defer(func() {
		l.pending.release(slot)
		run()
	})
}

// Pending reports whether a reconciliation or measurement pass is queued.
func (l *List) Pending() bool {
	return l.pending.reconcile || l.pending.measure
}
