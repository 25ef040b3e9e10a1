package virtual

import "sort"

type indexState uint8

const (
	indexFresh indexState = iota
	indexDirty
)

func (s indexState) String() string {
	if s == indexDirty {
		return "dirty"
	}
	return "fresh"
}

// prefixIndex holds cumulative heights: offsets[i] is the summed best-known
// height of entries [0, i). Appends extend it in O(1); a height correction at
// i only recomputes the tail after i.
type prefixIndex struct {
	offsets  []int
	state    indexState
	estimate int
	rebuilds int
}

func newPrefixIndex(estimate int) *prefixIndex {
	return &prefixIndex{offsets: []int{0}, estimate: estimate}
}

func (p *prefixIndex) reset() {
	p.offsets = append(p.offsets[:0], 0)
	p.state = indexFresh
}

func (p *prefixIndex) markDirty() {
	p.state = indexDirty
}

func (p *prefixIndex) setEstimate(estimate int) {
	if estimate == p.estimate {
		return
	}
	p.estimate = estimate
	p.markDirty()
}

// appendHeight extends the index for a freshly appended, unmeasured entry.
// A dirty index is left alone; the next ensureFresh rebuilds it anyway.
func (p *prefixIndex) appendHeight() {
	if p.state == indexDirty {
		return
	}
	p.offsets = append(p.offsets, p.offsets[len(p.offsets)-1]+p.estimate)
}

func (p *prefixIndex) stale(n int) bool {
	return p.state == indexDirty || len(p.offsets) != n+1
}

func (p *prefixIndex) ensureFresh(store *entryStore) {
	n := store.len()
	if !p.stale(n) {
		return
	}
	if cap(p.offsets) < n+1 {
		p.offsets = make([]int, n+1)
	} else {
		p.offsets = p.offsets[:n+1]
	}
	p.offsets[0] = 0
	for i := 0; i < n; i++ {
		p.offsets[i+1] = p.offsets[i] + store.items[i].bestHeight(p.estimate)
	}
	p.state = indexFresh
	p.rebuilds++
}

// rebuildFrom recomputes offsets[i+1..n] after a height change at i. Heights
// before i are assumed unchanged.
func (p *prefixIndex) rebuildFrom(store *entryStore, i int) {
	n := store.len()
	if p.stale(n) {
		p.ensureFresh(store)
		return
	}
	if i < 0 {
		i = 0
	}
	for j := i; j < n; j++ {
		p.offsets[j+1] = p.offsets[j] + store.items[j].bestHeight(p.estimate)
	}
}

// locate returns the greatest k with offsets[k] <= y, clamped to [0, n-1].
func (p *prefixIndex) locate(y int) int {
	n := len(p.offsets) - 1
	if n <= 0 {
		return 0
	}
	k := sort.Search(len(p.offsets), func(i int) bool {
		return p.offsets[i] > y
	}) - 1
	if k < 0 {
		return 0
	}
	if k > n-1 {
		return n - 1
	}
	return k
}

func (p *prefixIndex) at(i int) int {
	if i < 0 {
		i = 0
	}
	if i > len(p.offsets)-1 {
		i = len(p.offsets) - 1
	}
	return p.offsets[i]
}

func (p *prefixIndex) total() int {
	return p.offsets[len(p.offsets)-1]
}
