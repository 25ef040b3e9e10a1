package types

import "time"

// UIState holds the chat preferences that survive restarts. The transcript
// itself is never persisted.
type UIState struct {
	Theme     string    `json:"theme,omitempty"`
	Follow    *bool     `json:"follow,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (s *UIState) FollowOr(fallback bool) bool {
	if s == nil || s.Follow == nil {
		return fallback
	}
	return *s.Follow
}

func (s *UIState) SetFollow(follow bool) {
	if s == nil {
		return
	}
	s.Follow = &follow
}
