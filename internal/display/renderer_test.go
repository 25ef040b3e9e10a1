package display

import (
	"strings"
	"testing"
	"time"

	xansi "github.com/charmbracelet/x/ansi"

	"vibe/internal/types"
)

func TestRendererCachesByWidth(t *testing.T) {
	r := NewRenderer(WithRenderCacheSize(4))
	msg := types.Message{ID: "a", Role: types.MessageRoleAssistant, Text: "**bold** reply"}

	first := r.Render(msg, 40)
	second := r.Render(msg, 40)
	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Fatalf("expected identical cached output")
	}
	if r.cache.hits != 1 {
		t.Fatalf("expected one cache hit, got %d", r.cache.hits)
	}
	r.Render(msg, 60)
	if r.cache.Len() != 2 {
		t.Fatalf("expected a separate entry per width, got %d", r.cache.Len())
	}
	if first[len(first)-1] != "" {
		t.Fatalf("expected trailing gap line")
	}
}

func TestRenderCacheEvictsOldest(t *testing.T) {
	cache := newRenderCache(2)
	cache.Set(renderKey{width: 1}, []string{"a"})
	cache.Set(renderKey{width: 2}, []string{"b"})
	cache.Set(renderKey{width: 3}, []string{"c"})
	if _, ok := cache.Get(renderKey{width: 1}); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
}

func TestRendererAlignsUserRight(t *testing.T) {
	r := NewRenderer()
	lines := r.Render(types.Message{ID: "u", Role: types.MessageRoleUser, Text: "hi"}, 40)
	top := xansi.Strip(lines[0])
	if !strings.HasPrefix(top, " ") || strings.TrimSpace(top) == "" {
		t.Fatalf("expected right-aligned bubble, got %q", top)
	}
	for _, line := range lines {
		if xansi.StringWidth(line) > 40 {
			t.Fatalf("line wider than 40: %q", line)
		}
	}
}

func TestRendererTimestampLine(t *testing.T) {
	r := NewRenderer(WithTimestamps(true))
	created := time.Date(2026, 3, 4, 9, 30, 0, 0, time.Local)
	lines := r.Render(types.Message{ID: "s", Role: types.MessageRoleSystem, Text: "note", CreatedAt: created}, 40)
	if !strings.Contains(xansi.Strip(lines[0]), "09:30 · system") {
		t.Fatalf("expected meta line, got %q", xansi.Strip(lines[0]))
	}
}
