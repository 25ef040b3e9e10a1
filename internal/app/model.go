package app

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"vibe/internal/display"
	"vibe/internal/logging"
	"vibe/internal/markdown"
	"vibe/internal/store"
	"vibe/internal/types"
	"vibe/internal/virtual"
)

const (
	statusHeight = 1
	inputHeight  = 1
	wheelLines   = 3
)

type Options struct {
	EstimateHeight int
	Buffer         int
	Theme          string
	Follow         bool
	Timestamps     bool
	Keybindings    *Keybindings
	Store          store.StateStore
	Logger         logging.Logger
	Messages       []types.Message
	Now            func() time.Time
}

type Model struct {
	tree         *display.Tree
	renderer     *display.Renderer
	list         *virtual.List
	queue        *virtual.Queue
	scroll       chatScroll
	input        textinput.Model
	keybindings  *Keybindings
	stateStore   store.StateStore
	logger       logging.Logger
	now          func() time.Time
	messages     []types.Message
	usedIDs      map[string]struct{}
	nextSeq      int
	width        int
	height       int
	framePending bool
	timestamps   bool
	status       string
	statusErr    bool
}

func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	keybindings := opts.Keybindings
	if keybindings == nil {
		keybindings = DefaultKeybindings()
	}
	markdown.SetDark(opts.Theme != "light")

	renderer := display.NewRenderer(display.WithTimestamps(opts.Timestamps))
	tree := display.NewTree(renderer)
	queue := virtual.NewQueue()
	listOpts := []virtual.Option{virtual.WithLogger(logger.With(logging.F("component", "virtual")))}
	if opts.EstimateHeight > 0 {
		listOpts = append(listOpts, virtual.WithEstimate(opts.EstimateHeight))
	}
	if opts.Buffer >= 0 {
		listOpts = append(listOpts, virtual.WithBuffer(opts.Buffer))
	}

	input := textinput.New()
	input.Placeholder = "Type a message, /demo N or /clear"
	input.Prompt = "> "
	input.Focus()

	m := &Model{
		tree:        tree,
		renderer:    renderer,
		list:        virtual.New(tree, queue, listOpts...),
		queue:       queue,
		scroll:      newChatScroll(opts.Follow),
		input:       input,
		keybindings: keybindings,
		stateStore:  opts.Store,
		logger:      logger,
		now:         now,
		usedIDs:     map[string]struct{}{},
		timestamps:  opts.Timestamps,
	}
	m.appendMessages(opts.Messages)
	return m
}

// Run starts the program and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.requestFrame()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.requestFrame()
	case frameMsg:
		m.framePending = false
		m.commitFrame()
		return m, m.requestFrame()
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.scrollBy(-wheelLines)
		case tea.MouseWheelDown:
			m.scrollBy(wheelLines)
		}
		return m, m.requestFrame()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case AppendMsg:
		m.appendMessages(msg.Messages)
		return m, m.requestFrame()
	case stateSavedMsg:
		if msg.err != nil {
			m.logger.Warn("ui_state_save_failed", logging.F("error", msg.err))
			m.setStatusError("save preferences failed: " + msg.err.Error())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	widthChanged := width != m.width
	m.width = width
	m.height = height
	m.input.SetWidth(max(1, width-len(m.input.Prompt)-1))
	m.scroll.resize(m.chatHeight())
	if widthChanged {
		m.list.Remeasure()
	}
	m.notifyViewport()
}

func (m *Model) chatHeight() int {
	return max(0, m.height-statusHeight-inputHeight)
}

// notifyViewport hands the current scroll geometry to the list.
func (m *Model) notifyViewport() {
	m.list.SetViewport(m.scroll.offset, m.scroll.height)
}

func (m *Model) syncScroll() {
	if m.scroll.setContent(m.list.TotalHeight()) {
		m.notifyViewport()
	}
}

func (m *Model) scrollBy(delta int) {
	if m.scroll.scrollBy(delta) {
		m.notifyViewport()
	}
}

func (m *Model) appendMessages(messages []types.Message) {
	for _, msg := range messages {
		if msg.ID != "" && m.idTaken(msg.ID) {
			m.logger.Warn("duplicate_message_id", logging.F("id", msg.ID))
			msg.ID = ""
		}
		for msg.ID == "" {
			if id := messageID(m.nextSeq); !m.idTaken(id) {
				msg.ID = id
				break
			}
			m.nextSeq++
		}
		m.nextSeq++
		m.usedIDs[msg.ID] = struct{}{}
		m.messages = append(m.messages, msg)
		m.list.Append(display.NewBlock(msg))
	}
	m.syncScroll()
}

// idTaken reports whether id was ever assigned, including before a clear.
func (m *Model) idTaken(id string) bool {
	_, ok := m.usedIDs[id]
	return ok
}

func (m *Model) clearTranscript() {
	m.messages = nil
	m.list.Clear()
	m.scroll.bottom()
	m.syncScroll()
	m.notifyViewport()
}

func (m *Model) setStatusInfo(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setStatusError(text string) {
	m.status = text
	m.statusErr = true
}
