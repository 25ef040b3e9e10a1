package virtual

import (
	"math/rand"
	"testing"
)

func storeWithHeights(heights []int) *entryStore {
	store := &entryStore{}
	for i, h := range heights {
		store.append(itemAt(i))
		store.items[i].height = h
	}
	return store
}

func fullOffsets(store *entryStore, estimate int) []int {
	out := make([]int, store.len()+1)
	for i, e := range store.items {
		out[i+1] = out[i] + e.bestHeight(estimate)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPrefixIndexAppendsWithoutRebuilding(t *testing.T) {
	store := &entryStore{}
	index := newPrefixIndex(6)
	for i := 0; i < 200; i++ {
		store.append(itemAt(i))
		index.appendHeight()
	}
	index.ensureFresh(store)
	if index.rebuilds != 0 {
		t.Fatalf("expected incremental appends to keep the index fresh, got %d rebuilds", index.rebuilds)
	}
	if index.total() != 1200 {
		t.Fatalf("expected total 1200, got %d", index.total())
	}
	for i, offset := range index.offsets {
		if offset != 6*i {
			t.Fatalf("offsets[%d] = %d, want %d", i, offset, 6*i)
		}
	}
}

func TestPrefixIndexIsNonDecreasingAndSumsBestHeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	heights := make([]int, 300)
	for i := range heights {
		if rng.Intn(3) > 0 {
			heights[i] = 1 + rng.Intn(40)
		}
	}
	store := storeWithHeights(heights)
	index := newPrefixIndex(6)
	index.ensureFresh(store)

	sum := 0
	for i, h := range heights {
		if h == 0 {
			h = 6
		}
		sum += h
		if index.offsets[i+1] < index.offsets[i] {
			t.Fatalf("offsets decrease at %d", i)
		}
	}
	if index.total() != sum {
		t.Fatalf("total = %d, want %d", index.total(), sum)
	}
}

func TestPrefixIndexRebuildFromMatchesFullRebuild(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	heights := make([]int, 64)
	for i := range heights {
		heights[i] = 1 + rng.Intn(12)
	}
	for i := range heights {
		store := storeWithHeights(heights)
		index := newPrefixIndex(6)
		index.ensureFresh(store)

		store.items[i].height = 1 + rng.Intn(30)
		index.rebuildFrom(store, i)

		if want := fullOffsets(store, 6); !equalInts(index.offsets, want) {
			t.Fatalf("correction at %d: partial rebuild %v != full %v", i, index.offsets, want)
		}
		if index.rebuilds != 1 {
			t.Fatalf("expected rebuildFrom to avoid a full rebuild, got %d", index.rebuilds)
		}
	}
}

func TestPrefixIndexRebuildFromFallsBackWhenLengthDrifts(t *testing.T) {
	store := storeWithHeights([]int{3, 4, 5})
	index := newPrefixIndex(6)
	index.ensureFresh(store)

	store.append(itemAt(3))
	store.append(itemAt(4))
	index.rebuildFrom(store, 1)

	if want := []int{0, 3, 7, 12, 18, 24}; !equalInts(index.offsets, want) {
		t.Fatalf("offsets = %v, want %v", index.offsets, want)
	}
	if index.rebuilds != 2 {
		t.Fatalf("expected a full rebuild for the structural mismatch, got %d", index.rebuilds)
	}
}

func TestPrefixIndexDirtySkipsIncrementalAppend(t *testing.T) {
	store := storeWithHeights([]int{2, 2})
	index := newPrefixIndex(6)
	index.ensureFresh(store)
	index.setEstimate(4)

	store.append(itemAt(2))
	index.appendHeight()
	if len(index.offsets) != 3 {
		t.Fatalf("expected dirty index to skip the append, got %v", index.offsets)
	}
	index.ensureFresh(store)
	if want := []int{0, 2, 4, 8}; !equalInts(index.offsets, want) {
		t.Fatalf("offsets = %v, want %v", index.offsets, want)
	}
	if index.state != indexFresh {
		t.Fatalf("expected fresh index after rebuild, got %s", index.state)
	}
}

func TestPrefixIndexLocate(t *testing.T) {
	heights := []int{10, 1, 7, 3, 25, 6}
	store := storeWithHeights(heights)
	index := newPrefixIndex(6)
	index.ensureFresh(store)
	n := len(heights)

	for y := 0; y <= index.total(); y++ {
		k := index.locate(y)
		if k < 0 || k > n-1 {
			t.Fatalf("locate(%d) = %d out of bounds", y, k)
		}
		if index.offsets[k] > y {
			t.Fatalf("locate(%d) = %d but P[k] = %d", y, k, index.offsets[k])
		}
		if k != n-1 && index.offsets[k+1] <= y {
			t.Fatalf("locate(%d) = %d is not the right-most match", y, k)
		}
	}

	cases := []struct {
		y    int
		want int
	}{
		{y: -5, want: 0},
		{y: 0, want: 0},
		{y: 9, want: 0},
		{y: 10, want: 1},
		{y: 11, want: 2},
		{y: index.total() + 100, want: n - 1},
	}
	for _, tc := range cases {
		if got := index.locate(tc.y); got != tc.want {
			t.Fatalf("locate(%d) = %d, want %d", tc.y, got, tc.want)
		}
	}
}

func TestPrefixIndexLocateOnEmptyIndex(t *testing.T) {
	index := newPrefixIndex(6)
	if got := index.locate(50); got != 0 {
		t.Fatalf("expected 0 for empty index, got %d", got)
	}
	if index.total() != 0 || index.at(3) != 0 || index.at(-1) != 0 {
		t.Fatalf("expected zero offsets for empty index")
	}
}
