// Package tui provides the terminal user interface for Catnip.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/catnip/internal/chat"
	"github.com/xonecas/catnip/internal/clipboard"
	"github.com/xonecas/catnip/internal/config"
	"github.com/xonecas/catnip/internal/constants"
	"github.com/xonecas/catnip/internal/document"
	"github.com/xonecas/catnip/internal/provider"
)

// focusPane identifies which pane receives navigation keys.
type focusPane int

const (
	focusChat focusPane = iota
	focusSidebar
)

// Model is the main TUI model. All conversation and document state is owned
// by Update; commands only ever communicate back through messages or the
// stream registry's channels.
type Model struct {
	cfg       *config.Config
	providers *provider.Registry

	conversations *chat.List
	streams       *chat.Registry

	current      int
	currentModel string

	// collapsed tracks per-conversation expand/collapse toggles by message
	// index. User messages start collapsed.
	collapsed map[string]map[int]bool

	cache *document.Cache
	vp    *document.Viewport

	width  int
	height int

	sidebarVisible  bool
	focus           focusPane
	showHelp        bool
	showModelSelect bool
	modelRefs       []provider.ModelRef
	modelIdx        int

	input InputModel
	spin  spinner.Model

	err    error
	status string
}

type drainMsg struct{}

type streamErrMsg struct {
	conversationID string
	err            error
}

// New creates the TUI model. conversations may carry restored history.
func New(cfg *config.Config, providers *provider.Registry, conversations *chat.List) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	currentModel := ""
	if refs := providers.EnabledModels(); len(refs) > 0 {
		currentModel = refs[0].String()
	}

	m := Model{
		cfg:            cfg,
		providers:      providers,
		conversations:  conversations,
		streams:        chat.NewRegistry(),
		currentModel:   currentModel,
		collapsed:      make(map[string]map[int]bool),
		cache:          document.NewCache(cfg.UI.CopyShortcuts, cfg.UI.MaxVisibleLines),
		vp:             document.NewViewport(),
		sidebarVisible: true,
		input:          NewInputModel(),
		spin:           sp,
	}

	// Restored user messages start collapsed, same as freshly typed ones.
	for _, conv := range conversations.All() {
		for idx, msg := range conv.Messages {
			if msg.Role == chat.RoleUser {
				m.collapsedFor(conv.ID)[idx] = true
			}
		}
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return drainTick()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(m.width)
		m.syncDocument()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case drainMsg:
		mutated := m.streams.DrainPending(m.conversations)
		if conv := m.currentConversation(); conv != nil {
			for _, id := range mutated {
				if id == conv.ID {
					m.cache.MarkDirty()
					break
				}
			}
		}
		m.syncDocument()
		return m, drainTick()

	case streamErrMsg:
		m.err = msg.err
		log.Error().Err(msg.err).Str("conversation", msg.conversationID).Msg("stream failed")
		return m, nil

	case spinner.TickMsg:
		if m.streams.Count() > 0 {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI. It only reads model state; every rebuild already
// happened in Update.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return RenderHelp(m.width, m.height)
	}
	if m.showModelSelect {
		return renderModelSelect(m.modelRefs, m.modelIdx, m.width, m.height)
	}

	header := m.renderHeader()
	body := m.renderBody()
	inputBar := m.input.ViewBar(m.width, "i: type  n: new chat  ?: help")
	status := m.renderStatus()

	return header + "\n" + body + "\n" + inputBar + "\n" + status
}

func (m Model) renderHeader() string {
	title := "catnip"
	if conv := m.currentConversation(); conv != nil {
		title = conv.Title
		if conv.Model != "" {
			title += dimmedStyle.Render("  [" + conv.Model + "]")
		}
	}
	return titleStyle.Render(" 🐱 ") + titleStyle.Render(truncateToWidth(title, m.width-5))
}

func (m Model) renderBody() string {
	bodyHeight := m.bodyHeight()
	chatPanel := renderChatView(m.cache, m.vp, m.chatPanelWidth(), bodyHeight, m.focus == focusChat)

	if !m.sidebarVisible {
		return chatPanel
	}

	sidebar := renderSidebar(
		m.conversations, m.current, m.streams.Active,
		constants.SidebarWidth, bodyHeight, m.focus == focusSidebar,
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chatPanel)
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render(truncateToWidth(fmt.Sprintf(" Error: %v", m.err), m.width-1))
	}
	if conv := m.currentConversation(); conv != nil && m.streams.Active(conv.ID) {
		return m.spin.View() + statusStyle.Render(" streaming...")
	}
	if m.status != "" {
		return statusStyle.Render(" " + m.status)
	}
	return dimmedStyle.Render(" ready")
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input.IsActive() {
		return m.handleInputKey(msg)
	}

	if m.showModelSelect {
		return m.handleModelSelectKey(msg)
	}

	if key.Matches(msg, keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Escape):
		m.err = nil
		m.status = ""
		return m, nil

	case key.Matches(msg, keys.Tab):
		if m.sidebarVisible {
			if m.focus == focusChat {
				m.focus = focusSidebar
			} else {
				m.focus = focusChat
			}
		}
		return m, nil

	case key.Matches(msg, keys.Sidebar):
		m.sidebarVisible = !m.sidebarVisible
		if !m.sidebarVisible {
			m.focus = focusChat
		}
		m.syncDocument()
		return m, nil

	case key.Matches(msg, keys.NewChat):
		m.newConversation()
		return m, nil

	case key.Matches(msg, keys.Rename):
		if conv := m.currentConversation(); conv != nil {
			m.input.SetMode(InputModeRename, conv.Title)
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		m.deleteCurrent()
		return m, nil

	case key.Matches(msg, keys.Models):
		m.modelRefs = m.providers.EnabledModels()
		m.modelIdx = 0
		for i, ref := range m.modelRefs {
			if ref.String() == m.currentModel {
				m.modelIdx = i
				break
			}
		}
		m.showModelSelect = true
		return m, nil

	case key.Matches(msg, keys.Insert):
		m.input.SetMode(InputModeInsert, "")
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.current > 0 {
			m.selectConversation(m.current - 1)
		}

	case key.Matches(msg, keys.Down):
		if m.current < m.conversations.Len()-1 {
			m.selectConversation(m.current + 1)
		}

	case key.Matches(msg, keys.Enter):
		m.focus = focusChat
	}

	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	half := m.vp.Height() / 2
	if half < 1 {
		half = 1
	}
	page := m.vp.Height()
	if page < 1 {
		page = 1
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.vp.CursorUp(1)

	case key.Matches(msg, keys.Down):
		m.vp.CursorDown(1)

	case key.Matches(msg, keys.HalfUp):
		m.vp.CursorUp(half)

	case key.Matches(msg, keys.HalfDown):
		m.vp.CursorDown(half)

	case key.Matches(msg, keys.PageUp):
		m.vp.CursorUp(page)

	case key.Matches(msg, keys.PageDown):
		m.vp.CursorDown(page)

	case key.Matches(msg, keys.Top):
		m.vp.JumpTop()

	case key.Matches(msg, keys.Bottom):
		m.vp.JumpBottom(m.cache.Total())

	case key.Matches(msg, keys.Expand):
		m.toggleExpand()

	case key.Matches(msg, keys.Enter):
		m.input.SetMode(InputModeInsert, "")

	default:
		if ordinal := m.copyOrdinal(msg.String()); ordinal >= 0 {
			m.copyBlockAtCursor(ordinal)
		}
	}

	m.vp.Clamp(m.cache.Total())
	return m, nil
}

func (m Model) handleModelSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Models):
		m.showModelSelect = false

	case key.Matches(msg, keys.Up):
		if m.modelIdx > 0 {
			m.modelIdx--
		}

	case key.Matches(msg, keys.Down):
		if m.modelIdx < len(m.modelRefs)-1 {
			m.modelIdx++
		}

	case key.Matches(msg, keys.Enter):
		if m.modelIdx < len(m.modelRefs) {
			m.currentModel = m.modelRefs[m.modelIdx].String()
			if conv := m.currentConversation(); conv != nil && !m.streams.Active(conv.ID) {
				conv.Model = m.currentModel
			}
		}
		m.showModelSelect = false

	case key.Matches(msg, keys.Quit):
		m.showModelSelect = false
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.input.Reset()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.input.Mode()
		m.input.Reset()
		if value == "" {
			return m, nil
		}

		switch mode {
		case InputModeInsert:
			return m.sendMessage(value)

		case InputModeRename:
			if conv := m.currentConversation(); conv != nil {
				conv.Title = truncateWithEllipsis(value, constants.TitleMaxChars)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sendMessage appends the typed message, derives a title if this is the first
// one, and starts a response stream.
func (m Model) sendMessage(content string) (tea.Model, tea.Cmd) {
	conv := m.currentConversation()
	if conv == nil {
		m.newConversation()
		conv = m.currentConversation()
		if conv == nil {
			return m, nil
		}
	}

	if m.streams.Active(conv.ID) {
		m.err = chat.ErrStreamActive
		return m, nil
	}

	idx := conv.AddUserMessage(content)
	m.collapsedFor(conv.ID)[idx] = true
	if idx == 0 && strings.HasPrefix(conv.Title, "Chat ") {
		conv.Title = truncateWithEllipsis(content, constants.TitleMaxChars)
	}

	sink, err := m.streams.Begin(conv.ID)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.cache.MarkDirty()
	m.syncDocument()
	m.vp.JumpBottom(m.cache.Total())
	m.vp.Clamp(m.cache.Total())
	m.err = nil

	return m, tea.Batch(m.startStream(conv, sink), m.spin.Tick)
}

// startStream snapshots the conversation history and launches the provider
// request. The returned command runs off the render loop; it only writes
// into the registry sink and closes it when done.
func (m Model) startStream(conv *chat.Conversation, sink chan<- string) tea.Cmd {
	id := conv.ID
	providerName, modelName := splitModelRef(conv.Model)

	history := make([]provider.Message, len(conv.Messages))
	for i, msg := range conv.Messages {
		history[i] = provider.Message{Role: string(msg.Role), Content: msg.Content}
	}

	return func() tea.Msg {
		defer close(sink)

		p, err := m.providers.Get(providerName)
		if err != nil {
			return streamErrMsg{conversationID: id, err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), constants.LLMRequestTimeout)
		defer cancel()

		ch, err := p.Stream(ctx, modelName, history)
		if err != nil {
			return streamErrMsg{conversationID: id, err: err}
		}

		for chunk := range ch {
			if chunk.Err != nil {
				return streamErrMsg{conversationID: id, err: chunk.Err}
			}
			if chunk.Done {
				return nil
			}
			sink <- chunk.Content
		}
		return nil
	}
}

func (m *Model) newConversation() {
	if m.currentModel == "" {
		m.err = provider.ErrProviderNotFound
		return
	}
	conv := chat.NewConversation(m.conversations.NextTitle(), m.currentModel)
	m.selectConversation(m.conversations.Add(conv))
	m.focus = focusChat
}

func (m *Model) deleteCurrent() {
	conv := m.currentConversation()
	if conv == nil {
		return
	}
	// An active stream for this conversation keeps draining into the void
	// until its producer finishes; the registry drops the fragments.
	delete(m.collapsed, conv.ID)
	m.conversations.Remove(m.current)
	if m.current >= m.conversations.Len() && m.current > 0 {
		m.current--
	}
	m.cache.MarkDirty()
	m.vp.Reset()
	m.syncDocument()
}

func (m *Model) selectConversation(idx int) {
	m.current = idx
	m.cache.MarkDirty()
	m.vp.Reset()
	m.syncDocument()
}

// toggleExpand flips the collapse state of the message under the cursor.
func (m *Model) toggleExpand() {
	conv := m.currentConversation()
	if conv == nil {
		return
	}
	ref, ok := m.cache.Ref(m.vp.Cursor())
	if !ok {
		return
	}
	col := m.collapsedFor(conv.ID)
	col[ref.MessageIndex] = !col[ref.MessageIndex]
	m.cache.MarkDirty()
	m.syncDocument()
}

// copyOrdinal maps a pressed key to a code block ordinal, or -1.
func (m Model) copyOrdinal(k string) int {
	for i, s := range m.cfg.UI.CopyShortcuts {
		if s == k {
			return i
		}
	}
	return -1
}

// copyBlockAtCursor copies the Nth code block of the message under the
// cursor to the system clipboard.
func (m *Model) copyBlockAtCursor(ordinal int) {
	conv := m.currentConversation()
	if conv == nil {
		return
	}
	ref, ok := m.cache.Ref(m.vp.Cursor())
	if !ok {
		return
	}
	blocks := conv.Blocks(ref.MessageIndex)
	if ordinal >= len(blocks) {
		return
	}
	if err := clipboard.Copy(blocks[ordinal].Content); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("copied %s block", blockLabel(blocks[ordinal].Language))
}

func blockLabel(lang string) string {
	if lang == "" {
		return constants.DefaultCodeBlockLanguage
	}
	return lang
}

func (m Model) currentConversation() *chat.Conversation {
	return m.conversations.At(m.current)
}

func (m *Model) collapsedFor(conversationID string) map[int]bool {
	col, ok := m.collapsed[conversationID]
	if !ok {
		col = make(map[int]bool)
		m.collapsed[conversationID] = col
	}
	return col
}

// syncDocument rebuilds the line cache and re-clamps the viewport. Called
// from Update after anything that can change content or geometry.
func (m *Model) syncDocument() {
	conv := m.currentConversation()
	m.vp.SetHeight(m.bodyHeight() - 2)

	var col map[int]bool
	if conv != nil {
		col = m.collapsed[conv.ID]
	}
	m.cache.Sync(conv, col, m.wrapWidth())
	m.vp.Clamp(m.cache.Total())
}

// chatPanelWidth is the outer width of the chat panel.
func (m Model) chatPanelWidth() int {
	w := m.width
	if m.sidebarVisible {
		w -= constants.SidebarWidth
	}
	return w
}

// wrapWidth is the text width inside the chat panel: border, padding, and
// the scrollbar column all come off the panel width.
func (m Model) wrapWidth() int {
	return m.chatPanelWidth() - 6
}

// bodyHeight is the height of the sidebar/chat row: total minus the header,
// the input bar, and the status line.
func (m Model) bodyHeight() int {
	return m.height - 5
}

func drainTick() tea.Cmd {
	return tea.Tick(constants.DrainInterval, func(time.Time) tea.Msg {
		return drainMsg{}
	})
}

// splitModelRef parses the "provider:model" form stored on conversations.
func splitModelRef(ref string) (string, string) {
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// Key bindings
var keys = struct {
	Quit     key.Binding
	Help     key.Binding
	Escape   key.Binding
	Enter    key.Binding
	Tab      key.Binding
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Insert   key.Binding
	NewChat  key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Models   key.Binding
	Sidebar  key.Binding
	Expand   key.Binding
}{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Help:     key.NewBinding(key.WithKeys("?")),
	Escape:   key.NewBinding(key.WithKeys("esc")),
	Enter:    key.NewBinding(key.WithKeys("enter")),
	Tab:      key.NewBinding(key.WithKeys("tab")),
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d")),
	PageUp:   key.NewBinding(key.WithKeys("pgup")),
	PageDown: key.NewBinding(key.WithKeys("pgdown")),
	Top:      key.NewBinding(key.WithKeys("g", "home")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end")),
	Insert:   key.NewBinding(key.WithKeys("i")),
	NewChat:  key.NewBinding(key.WithKeys("n")),
	Rename:   key.NewBinding(key.WithKeys("r")),
	Delete:   key.NewBinding(key.WithKeys("d")),
	Models:   key.NewBinding(key.WithKeys("m")),
	Sidebar:  key.NewBinding(key.WithKeys("s")),
	Expand:   key.NewBinding(key.WithKeys("e")),
}
