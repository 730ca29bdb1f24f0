package week

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"classsign/internal/modules/attendance/dto"
	"classsign/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Week(ctx context.Context, week int) (dto.WeekOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Requested int
	Week      dto.WeekOutput
	Err       error
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	date  time.Time
	entry dto.EntryOutput
}

func (i entryItem) Title() string { return i.entry.CourseName }
func (i entryItem) Description() string {
	desc := i.date.Format("Mon 01-02") + "  " + i.entry.Window
	if i.entry.Location != "" {
		desc += "  " + i.entry.Location
	}
	return desc
}
func (i entryItem) FilterValue() string { return i.entry.CourseName }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists every course of one teaching week.
type Model struct {
	port    Port
	week    int
	days    []dto.DayScheduleOutput
	list    list.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp}
}

// Load switches to week and fetches it in the background.
func (m Model) Load(week int) (Model, tea.Cmd) {
	m.week = week
	m.loading = true
	m.err = nil
	m.list.Title = fmt.Sprintf("Week %d", week)
	return m, tea.Batch(m.loadCmd(week), m.spinner.Tick)
}

func (m Model) Week() int { return m.week }

func (m Model) Loading() bool { return m.loading }

// Selected returns the highlighted course and its date.
func (m Model) Selected() (time.Time, dto.EntryOutput, bool) {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return time.Time{}, dto.EntryOutput{}, false
	}
	return item.date, item.entry, true
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-4, 1))

	case LoadedMsg:
		if msg.Requested != m.week {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.days = nil
			return m, m.list.SetItems(nil)
		}
		m.days = msg.Week.Days
		var items []list.Item
		for _, day := range m.days {
			for _, e := range day.Entries {
				items = append(items, entryItem{date: day.Date, entry: e})
			}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " loading week " + fmt.Sprint(m.week))
	}
	if m.err != nil {
		return theme.Pane.Render(theme.Failure.Render("week " + fmt.Sprint(m.week) + ": " + m.err.Error()))
	}
	var notes []string
	for _, day := range m.days {
		if day.Error != "" {
			notes = append(notes, theme.Warning.Render(day.Date.Format("Mon 01-02")+" unavailable: "+day.Error))
		}
	}
	if len(m.list.Items()) == 0 {
		notes = append(notes, theme.Muted.Render("no courses this week"))
	}
	body := m.list.View()
	if len(notes) > 0 {
		body += "\n" + strings.Join(notes, "\n")
	}
	return body
}

func (m Model) loadCmd(week int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Week(context.Background(), week)
		return LoadedMsg{Requested: week, Week: out, Err: err}
	}
}
