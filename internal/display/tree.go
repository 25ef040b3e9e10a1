package display

import (
	"errors"
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"vibe/internal/virtual"
)

// ErrDuplicateID is returned when a different block with the same ID is
// already mounted.
var ErrDuplicateID = errors.New("display: duplicate block id")

type extent struct {
	height  int
	visible bool
}

// Tree is the terminal display tree: the mounted message blocks in order,
// framed by the top and bottom spacers. Blocks report a height only after a
// Layout pass has committed them at the current width.
type Tree struct {
	renderer *Renderer
	width    int
	children []*Block
	settled  map[string][]string
	spacers  [2]extent
	commits  int
}

var _ virtual.Host = (*Tree)(nil)

func NewTree(renderer *Renderer) *Tree {
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Tree{
		renderer: renderer,
		settled:  map[string][]string{},
	}
}

func (t *Tree) indexOf(id string) int {
	for i, child := range t.children {
		if child.ID() == id {
			return i
		}
	}
	return -1
}

func (t *Tree) Mount(item virtual.Mountable, before virtual.Mountable) error {
	block, ok := item.(*Block)
	if !ok || block == nil {
		return fmt.Errorf("display: cannot mount %T", item)
	}
	if at := t.indexOf(block.ID()); at >= 0 {
		if t.children[at] == block {
			return nil
		}
		return fmt.Errorf("mount %s: %w", block.ID(), ErrDuplicateID)
	}
	at := len(t.children)
	if before != nil {
		at = t.indexOf(before.ID())
		if at < 0 {
			return fmt.Errorf("mount %s before %s: %w", block.ID(), before.ID(), virtual.ErrAnchorDetached)
		}
	}
	t.children = append(t.children, nil)
	copy(t.children[at+1:], t.children[at:])
	t.children[at] = block
	delete(t.settled, block.ID())
	return nil
}

func (t *Tree) Unmount(item virtual.Mountable) error {
	if item == nil {
		return nil
	}
	at := t.indexOf(item.ID())
	if at < 0 || virtual.Mountable(t.children[at]) != item {
		return nil
	}
	t.children = append(t.children[:at], t.children[at+1:]...)
	delete(t.settled, item.ID())
	return nil
}

func (t *Tree) IsAttached(item virtual.Mountable) bool {
	if item == nil {
		return false
	}
	at := t.indexOf(item.ID())
	return at >= 0 && virtual.Mountable(t.children[at]) == item
}

func (t *Tree) MeasuredHeight(item virtual.Mountable) (int, bool) {
	if item == nil {
		return 0, false
	}
	lines, ok := t.settled[item.ID()]
	if !ok || !t.IsAttached(item) {
		return 0, false
	}
	return len(lines), true
}

func (t *Tree) SetExtent(spacer virtual.Spacer, height int, visible bool) {
	if spacer != virtual.SpacerTop && spacer != virtual.SpacerBottom {
		return
	}
	if height < 0 {
		height = 0
	}
	t.spacers[spacer] = extent{height: height, visible: visible && height > 0}
}

func (t *Tree) Mounted() []virtual.Mountable {
	out := make([]virtual.Mountable, 0, len(t.children))
	for _, child := range t.children {
		out = append(out, child)
	}
	return out
}

// Layout commits every unsettled block at width and returns how many were
// laid out. A width change unsettles the whole tree.
func (t *Tree) Layout(width int) int {
	if width <= 0 {
		return 0
	}
	if width != t.width {
		t.width = width
		t.settled = map[string][]string{}
	}
	laidOut := 0
	for _, child := range t.children {
		if _, ok := t.settled[child.ID()]; ok {
			continue
		}
		t.settled[child.ID()] = t.renderer.Render(child.Message(), width)
		laidOut++
	}
	t.commits++
	return laidOut
}

// Invalidate drops committed layout, e.g. after a theme change.
func (t *Tree) Invalidate() {
	t.settled = map[string][]string{}
}

func (t *Tree) Width() int {
	return t.width
}

func (t *Tree) Spacer(spacer virtual.Spacer) (int, bool) {
	if spacer != virtual.SpacerTop && spacer != virtual.SpacerBottom {
		return 0, false
	}
	e := t.spacers[spacer]
	return e.height, e.visible
}

func (t *Tree) spacerLines(spacer virtual.Spacer) int {
	e := t.spacers[spacer]
	if !e.visible {
		return 0
	}
	return e.height
}

func (t *Tree) blockLines(block *Block) []string {
	if lines, ok := t.settled[block.ID()]; ok {
		return lines
	}
	return t.renderer.Render(block.Message(), t.width)
}

// ContentHeight is the full scrollable height: both spacers plus every
// mounted block.
func (t *Tree) ContentHeight() int {
	total := t.spacerLines(virtual.SpacerTop) + t.spacerLines(virtual.SpacerBottom)
	for _, child := range t.children {
		total += len(t.blockLines(child))
	}
	return total
}

// View renders the height lines starting at content offset scrollY. Spacer
// rows render blank; only blocks overlapping the window are touched.
func (t *Tree) View(scrollY, height int) string {
	if height <= 0 {
		return ""
	}
	if scrollY < 0 {
		scrollY = 0
	}
	end := scrollY + height
	out := make([]string, 0, height)
	y := 0

	blank := func(count int) {
		from := max(y, scrollY)
		to := min(y+count, end)
		for i := from; i < to; i++ {
			out = append(out, "")
		}
		y += count
	}

	blank(t.spacerLines(virtual.SpacerTop))
	for _, child := range t.children {
		if y >= end {
			break
		}
		lines := t.blockLines(child)
		if y+len(lines) <= scrollY {
			y += len(lines)
			continue
		}
		for _, line := range lines {
			if y >= scrollY && y < end {
				out = append(out, t.fit(line))
			}
			y++
		}
	}
	if y < end {
		blank(t.spacerLines(virtual.SpacerBottom))
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (t *Tree) fit(line string) string {
	if t.width <= 0 || xansi.StringWidth(line) <= t.width {
		return line
	}
	return xansi.Truncate(line, t.width, "")
}
