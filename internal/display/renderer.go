package display

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"vibe/internal/markdown"
	"vibe/internal/types"
)

const (
	defaultRenderCacheSize = 512
	fallbackWidth          = 80
	bubbleMargin           = 4
	bubbleChrome           = 4
)

type bubbleStyles struct {
	user      lipgloss.Style
	assistant lipgloss.Style
	system    lipgloss.Style
	meta      lipgloss.Style
}

var (
	darkBubbles = bubbleStyles{
		user:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 1),
		assistant: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		system:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("237")).Foreground(lipgloss.Color("245")).Padding(0, 1),
		meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true),
	}
	lightBubbles = bubbleStyles{
		user:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Background(lipgloss.Color("255")).Padding(0, 1),
		assistant: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("252")).Padding(0, 1),
		system:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("253")).Foreground(lipgloss.Color("242")).Padding(0, 1),
		meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	}
)

type RendererOption func(*Renderer)

// WithTimestamps adds a "15:04 · role" line above each bubble.
func WithTimestamps(enabled bool) RendererOption {
	return func(r *Renderer) { r.timestamps = enabled }
}

func WithRenderCacheSize(size int) RendererOption {
	return func(r *Renderer) { r.cache = newRenderCache(size) }
}

// Renderer turns messages into terminal lines. Output for a given message,
// width and theme is cached.
type Renderer struct {
	cache      *renderCache
	timestamps bool
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{cache: newRenderCache(defaultRenderCacheSize)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) SetTimestamps(enabled bool) {
	r.timestamps = enabled
}

// Render returns the lines for msg at width, including the trailing gap line.
func (r *Renderer) Render(msg types.Message, width int) []string {
	if width <= 0 {
		width = fallbackWidth
	}
	dark := markdown.Dark()
	key := renderKey{
		messageHash: hashMessage(msg),
		width:       width,
		dark:        dark,
		timestamps:  r.timestamps,
	}
	if lines, ok := r.cache.Get(key); ok {
		return lines
	}
	lines := renderMessage(msg, width, dark, r.timestamps)
	r.cache.Set(key, lines)
	return lines
}

func renderMessage(msg types.Message, width int, dark, timestamps bool) []string {
	styles := lightBubbles
	if dark {
		styles = darkBubbles
	}
	maxBubbleWidth := width - bubbleMargin
	if maxBubbleWidth < 10 {
		maxBubbleWidth = width
	}
	innerWidth := maxBubbleWidth - bubbleChrome
	if innerWidth < 1 {
		innerWidth = 1
	}

	text := strings.TrimSpace(msg.Text)
	if msg.Role == types.MessageRoleUser {
		text = markdown.Escape(text)
	}
	body := markdown.Render(text, innerWidth)
	if body == "" {
		body = " "
	}

	var bubble lipgloss.Style
	align := lipgloss.Left
	switch msg.Role {
	case types.MessageRoleUser:
		bubble = styles.user
		align = lipgloss.Right
	case types.MessageRoleSystem:
		bubble = styles.system
	default:
		bubble = styles.assistant
	}

	lines := make([]string, 0, 8)
	if timestamps && !msg.CreatedAt.IsZero() {
		meta := styles.meta.Render(formatMeta(msg))
		lines = append(lines, lipgloss.PlaceHorizontal(width, align, meta))
	}
	placed := lipgloss.PlaceHorizontal(width, align, bubble.Render(body))
	lines = append(lines, strings.Split(placed, "\n")...)
	return append(lines, "")
}

func formatMeta(msg types.Message) string {
	role := string(msg.Role)
	if role == "" {
		role = string(types.MessageRoleAssistant)
	}
	return msg.CreatedAt.In(time.Local).Format("15:04") + " · " + role
}
