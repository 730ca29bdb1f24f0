package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"classsign/internal/modules/attendance/dto"
	attendancein "classsign/internal/modules/attendance/port/in"
	sessiondto "classsign/internal/modules/session/dto"
	"classsign/internal/ui/components"
	"classsign/internal/ui/theme"
	weekview "classsign/internal/ui/views/week"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type attendancePort interface {
	Week(ctx context.Context, week int) (dto.WeekOutput, error)
	CurrentWeek(ctx context.Context) int
	Day(ctx context.Context, date string, selection *dto.Selection, presenter attendancein.Presenter) (dto.RunSummary, error)
	SignWeek(ctx context.Context, week int, presenter attendancein.Presenter) (dto.RunSummary, error)
}

type sessionPort interface {
	Current(ctx context.Context) (sessiondto.SessionOutput, error)
}

// ─── async messages ──────────────────────────────────────────────────────────

type runDoneMsg struct {
	label   string
	summary dto.RunSummary
	lines   []string
	err     error
}

type switchWeekMsg struct{ week int }

type sessionLoadedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Reload   key.Binding
	SignOne  key.Binding
	SignWeek key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		PrevWeek: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "week")),
		NextWeek: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "week")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		SignOne:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check in course")),
		SignWeek: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "check in whole week")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "commands")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.SignOne, k.SignWeek, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevWeek, k.NextWeek, k.Reload},
		{k.SignOne, k.SignWeek},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: a week of courses on top and the log of
// the last check-in run below. Runs happen in tea commands so the view keeps
// redrawing while requests are paced.
type Model struct {
	attendance attendancePort
	session    sessionPort
	weeks      int

	weekView weekview.Model
	log      viewport.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	student  string
	running  bool
	status   string
	width    int
	height   int
}

func NewModel(attendance attendancePort, session sessionPort, weeks int) Model {
	vp := viewport.New(0, 0)
	vp.Style = theme.Pane
	return Model{
		attendance: attendance,
		session:    session,
		weeks:      weeks,
		weekView:   weekview.New(attendance),
		log:        vp,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSessionCmd(), func() tea.Msg {
		return switchWeekMsg{week: m.attendance.CurrentWeek(context.Background())}
	})
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.resize()

	case sessionLoadedMsg:
		if msg.err != nil {
			m.status = "session: " + msg.err.Error()
		} else {
			m.student = msg.session.StudentID
		}

	case switchWeekMsg:
		return m.loadWeek(msg.week)

	case runDoneMsg:
		m.running = false
		lines := msg.lines
		if msg.err != nil {
			m.status = msg.label + " failed: " + msg.err.Error()
			lines = append(lines, theme.Failure.Render(msg.err.Error()))
		} else {
			m.status = fmt.Sprintf("%s: %d/%d checked in", msg.label, msg.summary.Succeeded, msg.summary.Attempted)
		}
		m.log.SetContent(strings.Join(lines, "\n"))
		m.log.GotoBottom()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.weekView.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.PrevWeek):
			return m.loadWeek(m.weekView.Week() - 1)
		case key.Matches(msg, m.keys.NextWeek):
			return m.loadWeek(m.weekView.Week() + 1)
		case key.Matches(msg, m.keys.Reload):
			return m.loadWeek(m.weekView.Week())
		case key.Matches(msg, m.keys.SignOne):
			return m.signSelected()
		case key.Matches(msg, m.keys.SignWeek):
			return m.signWeek(m.weekView.Week())
		}
	}

	var cmd tea.Cmd
	m.weekView, cmd = m.weekView.Update(msg)
	cmds = append(cmds, cmd)
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.log, cmd = m.log.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatusBar()
	bodyH := max(m.height-lipgloss.Height(header)-lipgloss.Height(status), 1)

	var body string
	switch {
	case m.showHelp:
		body = lipgloss.NewStyle().Width(m.width).Height(bodyH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, m.weekView.View(), m.log.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	title := theme.Hot.Render(" classsign ")
	if m.student != "" {
		title += theme.Muted.Render(" student " + m.student)
	}
	week := theme.Title.Render(fmt.Sprintf("week %d/%d", m.weekView.Week(), m.weeks))
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(week), 1)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(title+strings.Repeat(" ", gap)+week) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.running {
		left = theme.Hot.Render("● running") + "  " + left
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "week":
		if len(parts) < 2 {
			m.status = "usage: week <n>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid week: " + parts[1]
			return m, nil
		}
		return m.loadWeek(n)
	case "week:current":
		return m.loadWeek(m.attendance.CurrentWeek(context.Background()))
	case "week:reload":
		return m.loadWeek(m.weekView.Week())
	case "sign:course":
		return m.signSelected()
	case "sign:week":
		return m.signWeek(m.weekView.Week())
	case "sign:day":
		if len(parts) < 2 {
			m.status = "usage: sign:day <YYYYMMDD>"
			return m, nil
		}
		all := dto.Selection{Kind: dto.SelectAll}
		return m.startRun("day "+parts[1], func(p attendancein.Presenter) (dto.RunSummary, error) {
			return m.attendance.Day(context.Background(), parts[1], &all, p)
		})
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) loadWeek(week int) (tea.Model, tea.Cmd) {
	if week < 1 || week > m.weeks {
		m.status = fmt.Sprintf("week must be 1-%d", m.weeks)
		return m, nil
	}
	var cmd tea.Cmd
	m.weekView, cmd = m.weekView.Load(week)
	m.status = fmt.Sprintf("week %d", week)
	return m, cmd
}

func (m Model) signSelected() (tea.Model, tea.Cmd) {
	date, entry, ok := m.weekView.Selected()
	if !ok {
		m.status = "no course selected"
		return m, nil
	}
	one := dto.Selection{Kind: dto.SelectOne, Index: entry.Index}
	return m.startRun(entry.CourseName, func(p attendancein.Presenter) (dto.RunSummary, error) {
		return m.attendance.Day(context.Background(), date.Format("20060102"), &one, p)
	})
}

func (m Model) signWeek(week int) (tea.Model, tea.Cmd) {
	return m.startRun(fmt.Sprintf("week %d", week), func(p attendancein.Presenter) (dto.RunSummary, error) {
		return m.attendance.SignWeek(context.Background(), week, p)
	})
}

// startRun executes run off the update loop. Only one run is in flight at a
// time.
func (m Model) startRun(label string, run func(attendancein.Presenter) (dto.RunSummary, error)) (tea.Model, tea.Cmd) {
	if m.running {
		m.status = "a run is already in progress"
		return m, nil
	}
	m.running = true
	m.status = label + "…"
	return m, func() tea.Msg {
		rec := &recorder{}
		summary, err := run(rec)
		return runDoneMsg{label: label, summary: summary, lines: rec.snapshot(), err: err}
	}
}

func (m *Model) resize() {
	weekH := max(m.height*2/3, 6)
	m.weekView, _ = m.weekView.Update(tea.WindowSizeMsg{Width: m.width, Height: weekH})
	m.log.Width = m.width
	m.log.Height = max(m.height-weekH-4, 3)
}

func (m Model) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Current(context.Background())
		return sessionLoadedMsg{session: out, err: err}
	}
}

// ─── presenter ───────────────────────────────────────────────────────────────

// recorder collects a run's output for the log pane. Runs started from the
// TUI always carry a selection, so it is never asked to choose; it agrees to
// every continuation.
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *recorder) ReportProgress(p dto.Progress) {
	switch p.Level {
	case dto.LevelWarning:
		r.add(theme.Warning.Render(p.Text))
	case dto.LevelError:
		r.add(theme.Failure.Render(p.Text))
	default:
		r.add(theme.Muted.Render(p.Text))
	}
}

func (r *recorder) ReportResult(res dto.CheckinResultOutput) {
	line := fmt.Sprintf("%s  %s  %s", res.Date, res.CourseName, res.Window)
	if res.Success {
		r.add(theme.Success.Render("✓ " + line))
		return
	}
	r.add(theme.Failure.Render("✗ " + strings.TrimSpace(line+" "+res.Detail)))
}

func (r *recorder) AskContinue(dto.ContinueQuestion) bool { return true }

func (r *recorder) AskSelection(dto.DayScheduleOutput) dto.Selection {
	return dto.Selection{Kind: dto.SelectAll}
}
