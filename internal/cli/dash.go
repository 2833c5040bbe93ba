package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/coursetrack/internal/cli/formatter"
	"github.com/alexanderramin/coursetrack/internal/service"
)

// View is one screen in the dashboard's navigation stack.
type View interface {
	tea.Model
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that are currently editing text and
// need every key, including q and esc.
type inputCapturer interface {
	CapturesInput() bool
}

type (
	pushViewMsg struct{ view View }
	// refreshViewMsg is broadcast to every view after a write.
	refreshViewMsg struct{}
	// mutationMsg reports the outcome of a write started by a view.
	mutationMsg struct {
		status string
		err    error
	}
)

var globalKeys = struct {
	Quit key.Binding
	Back key.Binding
}{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// dashState is shared by all views through a pointer.
type dashState struct {
	ctx     context.Context
	tracker service.Tracker
	width   int
	height  int
}

type dashModel struct {
	state     *dashState
	viewStack []View
	status    string
	failed    bool
	quitting  bool
}

func newDashModel(ctx context.Context, tracker service.Tracker) dashModel {
	if ctx == nil {
		ctx = context.Background()
	}
	state := &dashState{ctx: ctx, tracker: tracker, width: 80, height: 24}
	return dashModel{
		state:     state,
		viewStack: []View{newCourseListView(state)},
	}
}

func (m dashModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m dashModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.width = msg.Width
		m.state.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.status = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case mutationMsg:
		m.failed = msg.err != nil
		m.status = msg.status
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return refreshViewMsg{} }

	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}

	// Loaded and refresh messages go to every view so views below the top
	// reload after writes made above them.
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m dashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	v := m.activeView()
	if v == nil {
		return m, nil
	}
	if c, ok := v.(inputCapturer); ok && c.CapturesInput() {
		updated, cmd := v.Update(msg)
		m.viewStack[len(m.viewStack)-1] = updated.(View)
		return m, cmd
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, globalKeys.Back):
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			m.status = ""
		}
		return m, nil
	}

	m.status = ""
	updated, cmd := v.Update(msg)
	m.viewStack[len(m.viewStack)-1] = updated.(View)
	return m, cmd
}

func (m dashModel) View() string {
	if m.quitting {
		return ""
	}

	titles := make([]string, len(m.viewStack))
	for i, v := range m.viewStack {
		titles[i] = v.Title()
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(strings.Join(titles, " › ")) + "\n\n")
	if v := m.activeView(); v != nil {
		b.WriteString(v.View())
	}
	b.WriteString("\n")
	if m.status != "" {
		style := formatter.StyleGreen
		if m.failed {
			style = formatter.StyleRed
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

func (m dashModel) helpLine() string {
	var bindings []key.Binding
	if v := m.activeView(); v != nil {
		bindings = append(bindings, v.ShortHelp()...)
	}
	if len(m.viewStack) > 1 {
		bindings = append(bindings, globalKeys.Back)
	}
	bindings = append(bindings, globalKeys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · "))
}

// mutate runs a write off the update loop and reports it as a mutationMsg.
func mutate(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn()
		return mutationMsg{status: status, err: err}
	}
}

func push(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}
