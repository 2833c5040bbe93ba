package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/coursetrack/internal/cli/formatter"
	"github.com/alexanderramin/coursetrack/internal/domain"
	"github.com/alexanderramin/coursetrack/internal/service"
)

var listKeys = struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Refresh key.Binding
}{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
}

var weekKeys = struct {
	Toggle   key.Binding
	Easy     key.Binding
	Medium   key.Binding
	Hard     key.Binding
	Add      key.Binding
	Delete   key.Binding
	MarkDone key.Binding
}{
	Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	Easy:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1/2/3", "easy/medium/hard")),
	Medium:   key.NewBinding(key.WithKeys("2")),
	Hard:     key.NewBinding(key.WithKeys("3")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete own task")),
	MarkDone: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "mark week done")),
}

func moveCursor(cursor, n int, msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, listKeys.Up) && cursor > 0:
		return cursor - 1
	case key.Matches(msg, listKeys.Down) && cursor < n-1:
		return cursor + 1
	}
	return cursor
}

func cursorMark(selected bool) string {
	if selected {
		return formatter.StyleHeader.Render("›")
	}
	return " "
}

// ── Course list ──────────────────────────────────────────────────────────────

type overviewLoadedMsg struct {
	overview *service.OverviewView
	err      error
}

type courseListView struct {
	state    *dashState
	overview *service.OverviewView
	err      error
	cursor   int
}

func newCourseListView(state *dashState) *courseListView {
	return &courseListView{state: state}
}

func (v *courseListView) load() tea.Cmd {
	return func() tea.Msg {
		o, err := v.state.tracker.Overview(v.state.ctx)
		return overviewLoadedMsg{overview: o, err: err}
	}
}

func (v *courseListView) Init() tea.Cmd { return v.load() }

func (v *courseListView) Title() string { return "Courses" }

func (v *courseListView) ShortHelp() []key.Binding {
	return []key.Binding{listKeys.Up, listKeys.Down, listKeys.Open, weekKeys.MarkDone, listKeys.Refresh}
}

func (v *courseListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		v.overview, v.err = msg.overview, msg.err
		if v.overview != nil && v.cursor >= len(v.overview.Courses) {
			v.cursor = max(0, len(v.overview.Courses)-1)
		}
		return v, nil
	case refreshViewMsg:
		return v, v.load()
	case tea.KeyMsg:
		if v.overview == nil || len(v.overview.Courses) == 0 {
			return v, nil
		}
		course := v.overview.Courses[v.cursor].Course
		switch {
		case key.Matches(msg, listKeys.Open):
			return v, push(newWeekListView(v.state, course.ID, course.Code))
		case key.Matches(msg, weekKeys.MarkDone):
			return v, markDone(v.state, course.ID, v.overview.CurrentWeek)
		case key.Matches(msg, listKeys.Refresh):
			return v, v.load()
		default:
			v.cursor = moveCursor(v.cursor, len(v.overview.Courses), msg)
		}
	}
	return v, nil
}

func (v *courseListView) View() string {
	if v.err != nil {
		return formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	}
	if v.overview == nil {
		return formatter.Dim("Loading…") + "\n"
	}
	o := v.overview
	s := o.Stats

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(o.Term), formatter.Dim(fmt.Sprintf("week %d of 14", o.CurrentWeek)))
	fmt.Fprintf(&b, "%-9s %s   %-9s %s   %-8s %s\n\n",
		"Tasks", formatter.RenderPercent(s.TaskPercent, 10),
		"Weighted", formatter.RenderPercent(s.Weighted.Percent, 10),
		"Mastery", formatter.RenderPercent(s.Mastery.Score, 10))

	for i, c := range o.Courses {
		left := formatter.StyleGreen.Render("✔")
		switch {
		case !c.Workload.HasWeek:
			left = formatter.Dim("no classes")
		case !c.Workload.Complete():
			left = formatter.StyleYellow.Render(fmt.Sprintf("%d left", c.Workload.TotalRemaining()))
		}
		fmt.Fprintf(&b, "%s %s %-40s %s  %s\n",
			cursorMark(i == v.cursor),
			formatter.CourseCode(c.Course.Code, c.Course.Color),
			c.Course.Name,
			formatter.RenderCompactBar(float64(c.Score.Percent)/100, 12, false),
			left)
	}

	if n := len(o.Deadlines); n > 0 {
		next := o.Deadlines[0]
		when := formatter.Dim("date not set")
		if next.DaysUntil != nil {
			when = formatter.DaysLeft(*next.DaysUntil)
		}
		fmt.Fprintf(&b, "\n%s %s %s  %s\n", formatter.Dim("Next:"), next.CourseCode, next.Assessment.Name, when)
	}
	return b.String()
}

// ── Week list ────────────────────────────────────────────────────────────────

type courseLoadedMsg struct {
	courseID string
	detail   *service.CourseDetail
	err      error
}

type weekListView struct {
	state    *dashState
	courseID string
	code     string
	detail   *service.CourseDetail
	err      error
	cursor   int
	placed   bool
}

func newWeekListView(state *dashState, courseID, code string) *weekListView {
	return &weekListView{state: state, courseID: courseID, code: code}
}

func (v *weekListView) load() tea.Cmd {
	return func() tea.Msg {
		d, err := v.state.tracker.CourseDetail(v.state.ctx, v.courseID)
		return courseLoadedMsg{courseID: v.courseID, detail: d, err: err}
	}
}

func (v *weekListView) Init() tea.Cmd { return v.load() }

func (v *weekListView) Title() string { return v.code }

func (v *weekListView) ShortHelp() []key.Binding {
	return []key.Binding{listKeys.Up, listKeys.Down, listKeys.Open, weekKeys.MarkDone}
}

func (v *weekListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		if msg.courseID != v.courseID {
			return v, nil
		}
		v.detail, v.err = msg.detail, msg.err
		if v.detail != nil && !v.placed {
			// Start on the current week when the course has one.
			for i, w := range v.detail.Weeks {
				if w.Current {
					v.cursor = i
				}
			}
			v.placed = true
		}
		return v, nil
	case refreshViewMsg:
		return v, v.load()
	case tea.KeyMsg:
		if v.detail == nil || len(v.detail.Weeks) == 0 {
			return v, nil
		}
		week := v.detail.Weeks[v.cursor].Week.Number
		switch {
		case key.Matches(msg, listKeys.Open):
			return v, push(newWeekView(v.state, v.courseID, week))
		case key.Matches(msg, weekKeys.MarkDone):
			return v, markDone(v.state, v.courseID, week)
		default:
			v.cursor = moveCursor(v.cursor, len(v.detail.Weeks), msg)
		}
	}
	return v, nil
}

func (v *weekListView) View() string {
	if v.err != nil {
		return formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	}
	if v.detail == nil {
		return formatter.Dim("Loading…") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", formatter.Bold(v.detail.Course.Name), formatter.RenderPercent(v.detail.Score.Percent, 20))
	for i, w := range v.detail.Weeks {
		title := fmt.Sprintf("Week %-2d %s", w.Week.Number, w.Week.Title)
		if w.Current {
			title = formatter.StyleHeader.Render(title)
		}
		fmt.Fprintf(&b, "%s %-48s %s\n", cursorMark(i == v.cursor), title,
			formatter.RenderCompactBar(float64(w.Score.Percent)/100, 10, !w.Current))
	}
	return b.String()
}

// ── Week detail ──────────────────────────────────────────────────────────────

type weekLoadedMsg struct {
	courseID string
	number   int
	week     *service.WeekView
	err      error
}

type weekView struct {
	state    *dashState
	courseID string
	number   int
	week     *service.WeekView
	err      error
	cursor   int
	adding   bool
	input    textinput.Model
}

func newWeekView(state *dashState, courseID string, number int) *weekView {
	ti := textinput.New()
	ti.Placeholder = "New task"
	ti.CharLimit = 200
	ti.Width = 50
	return &weekView{state: state, courseID: courseID, number: number, input: ti}
}

func (v *weekView) load() tea.Cmd {
	return func() tea.Msg {
		w, err := v.state.tracker.Week(v.state.ctx, v.courseID, v.number)
		return weekLoadedMsg{courseID: v.courseID, number: v.number, week: w, err: err}
	}
}

func (v *weekView) Init() tea.Cmd { return v.load() }

func (v *weekView) Title() string { return fmt.Sprintf("Week %d", v.number) }

// CapturesInput is true while the add-task input is open.
func (v *weekView) CapturesInput() bool { return v.adding }

func (v *weekView) ShortHelp() []key.Binding {
	if v.adding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{listKeys.Up, listKeys.Down, weekKeys.Toggle, weekKeys.Easy, weekKeys.Add, weekKeys.Delete, weekKeys.MarkDone}
}

func (v *weekView) itemCount() int {
	if v.week == nil {
		return 0
	}
	return len(v.week.Tasks) + len(v.week.Outcomes)
}

// selected returns the task or outcome under the cursor.
func (v *weekView) selected() (*service.TaskView, *service.OutcomeView) {
	if v.week == nil || v.cursor >= v.itemCount() {
		return nil, nil
	}
	if v.cursor < len(v.week.Tasks) {
		return &v.week.Tasks[v.cursor], nil
	}
	return nil, &v.week.Outcomes[v.cursor-len(v.week.Tasks)]
}

func (v *weekView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weekLoadedMsg:
		if msg.courseID != v.courseID || msg.number != v.number {
			return v, nil
		}
		v.week, v.err = msg.week, msg.err
		if n := v.itemCount(); v.cursor >= n {
			v.cursor = max(0, n-1)
		}
		return v, nil
	case refreshViewMsg:
		return v, v.load()
	case tea.KeyMsg:
		if v.adding {
			return v.updateInput(msg)
		}
		return v.handleKey(msg)
	}
	if v.adding {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *weekView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := v.state
	courseID, number := v.courseID, v.number

	switch {
	case key.Matches(msg, weekKeys.Add):
		v.adding = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case key.Matches(msg, weekKeys.MarkDone):
		return v, markDone(st, courseID, number)
	}

	task, outcome := v.selected()
	switch {
	case task != nil && key.Matches(msg, weekKeys.Toggle):
		id := task.ID
		return v, mutate(func() (string, error) {
			done, err := st.tracker.ToggleTask(st.ctx, id)
			if done {
				return "Task done", err
			}
			return "Task reopened", err
		})
	case task != nil && task.Custom && key.Matches(msg, weekKeys.Delete):
		id := task.ID
		return v, mutate(func() (string, error) {
			return "Task removed", st.tracker.DeleteCustomTask(st.ctx, courseID, number, id)
		})
	case outcome != nil && key.Matches(msg, weekKeys.Easy, weekKeys.Medium, weekKeys.Hard):
		level := domain.DifficultyEasy
		if key.Matches(msg, weekKeys.Medium) {
			level = domain.DifficultyMedium
		} else if key.Matches(msg, weekKeys.Hard) {
			level = domain.DifficultyHard
		}
		id := outcome.ID
		return v, mutate(func() (string, error) {
			return "Rated " + string(level), st.tracker.SetDifficulty(st.ctx, id, string(level))
		})
	}

	v.cursor = moveCursor(v.cursor, v.itemCount(), msg)
	return v, nil
}

func (v *weekView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.adding = false
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		text := v.input.Value()
		v.adding = false
		v.input.Blur()
		st, courseID, number := v.state, v.courseID, v.number
		return v, mutate(func() (string, error) {
			_, err := st.tracker.AddCustomTask(st.ctx, courseID, number, text)
			return "Task added", err
		})
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *weekView) View() string {
	if v.err != nil {
		return formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	}
	if v.week == nil {
		return formatter.Dim("Loading…") + "\n"
	}
	w := v.week

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(w.Week.Title), formatter.Dim(w.Week.DateRange))
	b.WriteString(formatter.RenderPercent(w.Score.Percent, 20) + "\n\n")

	b.WriteString(formatter.Header("Tasks") + "\n")
	for i, t := range w.Tasks {
		box, text := "☐", t.Text
		if t.Done {
			box, text = formatter.StyleGreen.Render("☑"), formatter.Dim(t.Text)
		}
		if t.Custom {
			text += formatter.StylePurple.Render(" (yours)")
		}
		fmt.Fprintf(&b, "%s %s %s\n", cursorMark(i == v.cursor), box, text)
	}
	if v.adding {
		b.WriteString("  " + v.input.View() + "\n")
	}

	b.WriteString("\n" + formatter.Header("Learning outcomes") + "\n")
	for i, o := range w.Outcomes {
		fmt.Fprintf(&b, "%s %s %s\n", cursorMark(len(w.Tasks)+i == v.cursor), formatter.DifficultyBadge(o.Level), o.Text)
	}

	if w.HasNote && w.Note != "" {
		b.WriteString("\n" + formatter.Header("Note") + "\n" + w.Note + "\n")
	}
	return b.String()
}

func markDone(st *dashState, courseID string, week int) tea.Cmd {
	return mutate(func() (string, error) {
		cleared, err := st.tracker.MarkWeekDone(st.ctx, courseID, week)
		if err != nil {
			return "", err
		}
		if cleared.Complete() {
			return fmt.Sprintf("Week %d already complete", week), nil
		}
		return fmt.Sprintf("Week %d: cleared %d items", week, cleared.TotalRemaining()), nil
	})
}
