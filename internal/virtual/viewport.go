package virtual

import "fmt"

// Range is an inclusive span of entry indices. It is empty when End < Start.
type Range struct {
	Start int
	End   int
}

func EmptyRange() Range {
	return Range{Start: 0, End: -1}
}

func (r Range) Empty() bool {
	return r.End < r.Start
}

func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Range) Contains(i int) bool {
	return !r.Empty() && i >= r.Start && i <= r.End
}

// clamp trims the range to the indices of a list of n entries.
func (r Range) clamp(n int) Range {
	if r.Empty() || n <= 0 || r.Start >= n {
		return EmptyRange()
	}
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > n-1 {
		r.End = n - 1
	}
	return r
}

func (r Range) String() string {
	if r.Empty() {
		return "empty"
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

type viewport struct {
	scrollY int
	height  int
	buffer  int
}

func (v *viewport) set(scrollY, height int) bool {
	if scrollY < 0 {
		scrollY = 0
	}
	if height < 0 {
		height = 0
	}
	changed := v.scrollY != scrollY || v.height != height
	v.scrollY = scrollY
	v.height = height
	return changed
}

// desired maps the viewport, widened by the buffer on both sides, to the
// entries that should be mounted.
func (v viewport) desired(index *prefixIndex, n int) Range {
	if n == 0 {
		return EmptyRange()
	}
	y0 := v.scrollY - v.buffer
	if y0 < 0 {
		y0 = 0
	}
	y1 := v.scrollY + v.height + v.buffer
	start := index.locate(y0)
	end := index.locate(y1)
	if end > n-1 {
		end = n - 1
	}
	return Range{Start: start, End: end}
}
