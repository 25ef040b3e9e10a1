package virtual

import (
	"errors"
	"fmt"
	"testing"
)

type testItem string

func (i testItem) ID() string { return string(i) }

func itemAt(i int) testItem { return testItem(fmt.Sprintf("item-%03d", i)) }

type extent struct {
	height  int
	visible bool
}

// fakeHost is an in-memory display tree. Heights become readable only after
// commit, mirroring a real layout pass.
type fakeHost struct {
	children      []Mountable
	heights       map[string]int
	settled       map[string]bool
	extents       map[Spacer]extent
	mounts        int
	unmounts      int
	rejectAnchors bool
	unavailable   bool
	failUnmounts  int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		heights: map[string]int{},
		settled: map[string]bool{},
		extents: map[Spacer]extent{},
	}
}

func (h *fakeHost) indexOf(id string) int {
	for i, child := range h.children {
		if child.ID() == id {
			return i
		}
	}
	return -1
}

func (h *fakeHost) Mount(item Mountable, before Mountable) error {
	if h.indexOf(item.ID()) >= 0 {
		return nil
	}
	at := len(h.children)
	if before != nil {
		if h.rejectAnchors {
			return ErrAnchorDetached
		}
		at = h.indexOf(before.ID())
		if at < 0 {
			return ErrAnchorDetached
		}
	}
	h.children = append(h.children, nil)
	copy(h.children[at+1:], h.children[at:])
	h.children[at] = item
	h.settled[item.ID()] = false
	h.mounts++
	return nil
}

func (h *fakeHost) Unmount(item Mountable) error {
	at := h.indexOf(item.ID())
	if at < 0 {
		return nil
	}
	if h.failUnmounts > 0 {
		h.failUnmounts--
		return errors.New("unmount rejected")
	}
	h.children = append(h.children[:at], h.children[at+1:]...)
	delete(h.settled, item.ID())
	h.unmounts++
	return nil
}

func (h *fakeHost) IsAttached(item Mountable) bool {
	return h.indexOf(item.ID()) >= 0
}

func (h *fakeHost) MeasuredHeight(item Mountable) (int, bool) {
	if h.unavailable || !h.settled[item.ID()] {
		return 0, false
	}
	height, ok := h.heights[item.ID()]
	if !ok {
		return DefaultEstimate, true
	}
	return height, true
}

func (h *fakeHost) SetExtent(spacer Spacer, height int, visible bool) {
	h.extents[spacer] = extent{height: height, visible: visible}
}

func (h *fakeHost) Mounted() []Mountable {
	return append([]Mountable(nil), h.children...)
}

func (h *fakeHost) commit() {
	for _, child := range h.children {
		h.settled[child.ID()] = true
	}
}

func (h *fakeHost) mountedIDs() []string {
	out := make([]string, 0, len(h.children))
	for _, child := range h.children {
		out = append(out, child.ID())
	}
	return out
}

// settle runs display frames until the list has no deferred work left.
func settle(t *testing.T, host *fakeHost, queue *Queue) {
	t.Helper()
	for round := 0; round < 100; round++ {
		if queue.Len() == 0 {
			return
		}
		host.commit()
		queue.Flush()
	}
	t.Fatalf("list did not settle after 100 frames")
}

func newTestList(t *testing.T, count int, opts ...Option) (*List, *fakeHost, *Queue) {
	t.Helper()
	host := newFakeHost()
	queue := NewQueue()
	list := New(host, queue, opts...)
	for i := 0; i < count; i++ {
		list.Append(itemAt(i))
	}
	return list, host, queue
}

// assertWindowMounted checks that exactly the applied range is mounted, in
// index order.
func assertWindowMounted(t *testing.T, list *List, host *fakeHost) {
	t.Helper()
	window := list.Range()
	ids := host.mountedIDs()
	if len(ids) != window.Len() {
		t.Fatalf("expected %d mounted for range %s, got %d: %v", window.Len(), window, len(ids), ids)
	}
	for j, id := range ids {
		want := list.Item(window.Start + j).ID()
		if id != want {
			t.Fatalf("mounted[%d] = %s, want %s", j, id, want)
		}
	}
	for i := 0; i < list.Len(); i++ {
		if list.IsMounted(i) != window.Contains(i) {
			t.Fatalf("entry %d mounted flag = %v, range %s", i, list.IsMounted(i), window)
		}
	}
}
