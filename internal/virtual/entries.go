package virtual

type entry struct {
	content Mountable
	// height is the last measured height; 0 until the first measurement.
	height  int
	mounted bool
}

func (e entry) bestHeight(estimate int) int {
	if e.height > 0 {
		return e.height
	}
	return estimate
}

type entryStore struct {
	items []entry
}

func (s *entryStore) append(content Mountable) {
	s.items = append(s.items, entry{content: content})
}

func (s *entryStore) clear() {
	s.items = nil
}

func (s *entryStore) len() int {
	return len(s.items)
}

func (s *entryStore) at(i int) *entry {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return &s.items[i]
}
