package virtual

import "errors"

// Mountable is a renderable unit the host display tree can attach. ID must be
// stable for the item's lifetime and unique within a list.
type Mountable interface {
	ID() string
}

// Spacer names one of the two boundary placeholders that stand in for the
// unmounted content above and below the window.
type Spacer int

const (
	SpacerTop Spacer = iota
	SpacerBottom
)

func (s Spacer) String() string {
	switch s {
	case SpacerTop:
		return "top"
	case SpacerBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// ErrAnchorDetached is returned by Host.Mount when the requested anchor is no
// longer attached.
var ErrAnchorDetached = errors.New("virtual: anchor is not attached")

// Host is the display tree the list mounts renderables into.
type Host interface {
	// Mount attaches item immediately before the attached sibling before, or
	// after every mounted sibling (but ahead of the bottom spacer) when before
	// is nil.
	Mount(item Mountable, before Mountable) error
	// Unmount detaches item. Detaching a detached item is a no-op.
	Unmount(item Mountable) error
	IsAttached(item Mountable) bool
	// MeasuredHeight reports the settled on-screen height of item. It is only
	// available once layout has committed after the item was mounted.
	MeasuredHeight(item Mountable) (int, bool)
	SetExtent(spacer Spacer, height int, visible bool)
	// Mounted lists the attached renderables in display order, spacers
	// excluded.
	Mounted() []Mountable
}

// Scheduler defers work until after the next display commit.
type Scheduler interface {
	Defer(task func())
}
