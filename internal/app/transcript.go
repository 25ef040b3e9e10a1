package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"vibe/internal/types"
)

const transcriptSeparator = "---"

// LoadTranscript reads a markdown transcript from path. See ParseTranscript.
func LoadTranscript(path string, now time.Time) ([]types.Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()
	messages, err := ParseTranscript(file, now)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", path, err)
	}
	return messages, nil
}

// ParseTranscript splits r into messages on lines that are exactly "---".
// A block whose first line starts with "user:", "assistant:" or "system:"
// takes that role; anything else is an assistant message. Blank blocks are
// dropped.
func ParseTranscript(r io.Reader, now time.Time) ([]types.Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var blocks [][]string
	current := []string{}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == transcriptSeparator {
			blocks = append(blocks, current)
			current = []string{}
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	blocks = append(blocks, current)

	messages := make([]types.Message, 0, len(blocks))
	for _, lines := range blocks {
		role, text := splitRolePrefix(strings.TrimSpace(strings.Join(lines, "\n")))
		if text == "" {
			continue
		}
		messages = append(messages, types.Message{
			ID:        messageID(len(messages)),
			Role:      role,
			Text:      text,
			CreatedAt: now.Add(time.Duration(len(messages)) * time.Second),
		})
	}
	return messages, nil
}

func splitRolePrefix(block string) (types.MessageRole, string) {
	head, rest, found := strings.Cut(block, ":")
	if !found || strings.ContainsAny(head, " \n\t") {
		return types.MessageRoleAssistant, block
	}
	role, ok := types.ParseMessageRole(strings.ToLower(head))
	if !ok {
		return types.MessageRoleAssistant, block
	}
	return role, strings.TrimSpace(rest)
}

func messageID(seq int) string {
	return fmt.Sprintf("msg-%06d", seq)
}

var demoSentences = []string{
	"Virtualized lists keep only the visible window mounted.",
	"Heights start as estimates and converge once each block is measured.",
	"The spacers above and below stand in for everything off screen.",
	"Scrolling far away swaps the mounted window without touching the rest.",
	"A prefix sum over heights turns a scroll offset into an index.",
	"Measurements that are not ready yet are retried on the next frame.",
}

// DemoMessages builds n messages of varied length for exercising the list.
func DemoMessages(n int, now time.Time) []types.Message {
	out := make([]types.Message, 0, max(0, n))
	for i := 0; i < n; i++ {
		role := types.MessageRoleAssistant
		switch {
		case i%10 == 9:
			role = types.MessageRoleSystem
		case i%2 == 0:
			role = types.MessageRoleUser
		}
		out = append(out, types.Message{
			ID:        fmt.Sprintf("demo-%06d", i),
			Role:      role,
			Text:      demoText(i, role),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
	}
	return out
}

func demoText(i int, role types.MessageRole) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**#%d** ", i)
	count := 1 + (i*7)%5
	if role == types.MessageRoleUser {
		count = 1
	}
	for j := 0; j < count; j++ {
		if j > 0 {
			b.WriteString(" ")
		}
		b.WriteString(demoSentences[(i+j)%len(demoSentences)])
	}
	if role == types.MessageRoleAssistant && i%6 == 1 {
		fmt.Fprintf(&b, "\n\n```go\nlist.SetViewport(%d, height)\n```", i*6)
	}
	if role == types.MessageRoleAssistant && i%4 == 3 {
		b.WriteString("\n\n- estimate\n- measure\n- correct")
	}
	return b.String()
}
