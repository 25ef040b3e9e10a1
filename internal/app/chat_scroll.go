package app

// chatScroll tracks the transcript scroll position. Callers notify the
// virtual list only when the integer offset moves or the viewport resizes.
type chatScroll struct {
	offset  int
	height  int
	content int
	follow  bool
}

func newChatScroll(follow bool) chatScroll {
	return chatScroll{follow: follow}
}

func (s *chatScroll) maxOffset() int {
	return max(0, s.content-s.height)
}

func (s *chatScroll) atBottom() bool {
	return s.offset >= s.maxOffset()
}

// setContent records the transcript height. With follow on the bottom stays
// pinned. Reports whether the offset moved.
func (s *chatScroll) setContent(height int) bool {
	s.content = max(0, height)
	if s.follow {
		return s.moveTo(s.maxOffset())
	}
	return s.moveTo(s.offset)
}

func (s *chatScroll) resize(height int) {
	s.height = max(0, height)
	if s.follow {
		s.moveTo(s.maxOffset())
		return
	}
	s.moveTo(s.offset)
}

// scrollBy moves by delta lines. Scrolling up releases follow; reaching the
// bottom re-engages it.
func (s *chatScroll) scrollBy(delta int) bool {
	moved := s.moveTo(s.offset + delta)
	if delta < 0 && moved {
		s.follow = false
	}
	if delta > 0 && s.atBottom() {
		s.follow = true
	}
	return moved
}

func (s *chatScroll) top() bool {
	s.follow = false
	return s.moveTo(0)
}

func (s *chatScroll) bottom() bool {
	s.follow = true
	return s.moveTo(s.maxOffset())
}

func (s *chatScroll) moveTo(offset int) bool {
	offset = min(max(0, offset), s.maxOffset())
	if offset == s.offset {
		return false
	}
	s.offset = offset
	return true
}
