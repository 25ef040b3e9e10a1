// Package markdown turns chat message bodies into styled terminal text.
//
// Glamour renderers are expensive to build, so one is kept per (width, theme)
// pair. The cache is small: a terminal drag-resize walks through many widths
// and only the most recent ones are worth keeping.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	fallbackWidth = 80
	maxRenderers  = 8
)

type styleKey struct {
	width int
	dark  bool
}

type rendererCache struct {
	mu        sync.Mutex
	dark      bool
	renderers map[styleKey]*glamour.TermRenderer
	// order lists keys oldest first.
	order []styleKey
}

var cache = &rendererCache{
	dark:      true,
	renderers: map[styleKey]*glamour.TermRenderer{},
}

// Render formats a message body to fit width columns. When glamour cannot
// render it the raw text is hard-wrapped instead, so callers always get
// output that fits.
func Render(input string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = fallbackWidth
	}
	out := input
	if r := cache.renderer(width, Dark()); r != nil {
		if rendered, err := r.Render(input); err == nil {
			out = strings.TrimRight(rendered, "\n")
		}
	}
	return strings.TrimRight(xansi.Hardwrap(out, width, true), "\n")
}

func Dark() bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.dark
}

// SetDark switches the theme used by later renders and reports whether it
// changed. Cached renderers for both themes are kept.
func SetDark(dark bool) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	changed := cache.dark != dark
	cache.dark = dark
	return changed
}

func (c *rendererCache) renderer(width int, dark bool) *glamour.TermRenderer {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := styleKey{width: width, dark: dark}
	if r, ok := c.renderers[key]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(chatStyle(dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	if len(c.order) >= maxRenderers {
		delete(c.renderers, c.order[0])
		c.order = c.order[1:]
	}
	c.renderers[key] = r
	c.order = append(c.order, key)
	return r
}

func (c *rendererCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.renderers)
}

// chatStyle is glamour's stock theme without outer margins. Bubble padding
// and spacing between messages belong to the display layer.
func chatStyle(dark bool) glamouransi.StyleConfig {
	cfg := styles.LightStyleConfig
	quote := "242"
	if dark {
		cfg = styles.DarkStyleConfig
		quote = "245"
	}
	none := uint(0)
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	cfg.Document.Margin = &none
	cfg.CodeBlock.Margin = &none
	faint := true
	cfg.BlockQuote.Faint = &faint
	cfg.BlockQuote.Color = &quote
	return cfg
}

var blockMarkers = []string{"#", ">", "- ", "* ", "+ "}

// Escape keeps typed text literal: inline code ticks and anything that would
// open a block at the start of a line are backslash-escaped.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = escapeLine(line)
	}
	return strings.Join(lines, "\n")
}

func escapeLine(line string) string {
	line = strings.ReplaceAll(line, "`", "\\`")
	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	for _, marker := range blockMarkers {
		if strings.HasPrefix(body, marker) {
			return indent + "\\" + body
		}
	}
	// Ordered items are neutralized at the delimiter; a backslash before a
	// digit is not an escape.
	if n := orderedMarker(body); n > 0 {
		return indent + body[:n] + "\\" + body[n:]
	}
	return line
}

// orderedMarker returns the length of the digit run in "12. item" or
// "3) item", or 0 when body does not start an ordered list item.
func orderedMarker(body string) int {
	n := len(body) - len(strings.TrimLeft(body, "0123456789"))
	if n == 0 || n+1 >= len(body) {
		return 0
	}
	if (body[n] == '.' || body[n] == ')') && body[n+1] == ' ' {
		return n
	}
	return 0
}
