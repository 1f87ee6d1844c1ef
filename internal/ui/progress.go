// Package ui renders check progress in the terminal.
package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hlsltools/internal/driver"
)

// maxRows caps the per-file list; the rest is summarised.
const maxRows = 20

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path     string
	stage    driver.Stage
	status   driver.Status
	errors   int
	finished bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows per-file check
// progress. It quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	finished, failed := m.counts()
	header := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.items))
	if failed > 0 {
		header += fmt.Sprintf(", %d with errors", failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-12-4, 20)
	rows := m.visibleRows()
	for _, idx := range rows {
		item := m.items[idx]
		label := item.label()
		fmt.Fprintf(&b, "  %s %s\n", item.style().Render(fmt.Sprintf("%12s", label)), truncate(item.path, nameWidth))
	}
	if hidden := len(m.items) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "  %12s %d more\n", "", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.stage = ev.Stage
	item.status = ev.Status
	item.errors = ev.Errors
	item.finished = ev.Status == driver.StatusError ||
		(ev.Status == driver.StatusDone && ev.Stage != driver.StageLoad)
	return m.prog.SetPercent(m.fraction())
}

func (m *progressModel) counts() (finished, failed int) {
	for _, item := range m.items {
		if item.finished {
			finished++
		}
		if item.status == driver.StatusError {
			failed++
		}
	}
	return finished, failed
}

// fraction weights each file by how far through load, parse and bind it is.
func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if item.finished {
			total++
			continue
		}
		if item.status == driver.StatusWorking {
			total += progressFromStage(item.stage)
		}
	}
	return total / float64(len(m.items))
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.05
	case driver.StageParse:
		return 0.2
	case driver.StageBind:
		return 0.6
	}
	return 0
}

func (item fileItem) label() string {
	switch item.status {
	case driver.StatusError:
		if item.errors == 1 {
			return "1 error"
		}
		return fmt.Sprintf("%d errors", item.errors)
	case driver.StatusDone:
		if item.finished {
			return "ok"
		}
		return "queued"
	case driver.StatusWorking:
		return item.stage.String()
	}
	return "queued"
}

// rank orders rows so files being worked on and files with errors stay on
// screen when the list is cut to maxRows.
func (item fileItem) rank() int {
	switch {
	case item.status == driver.StatusWorking:
		return 0
	case item.status == driver.StatusError:
		return 1
	case !item.finished:
		return 2
	}
	return 3
}

func (item fileItem) style() lipgloss.Style {
	color := "6"
	switch item.rank() {
	case 1:
		color = "1"
	case 2:
		color = "7"
	case 3:
		color = "2"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// visibleRows returns up to maxRows item indexes, best ranked first and in
// input order within a rank.
func (m *progressModel) visibleRows() []int {
	rows := make([]int, len(m.items))
	for i := range rows {
		rows[i] = i
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		return cmp.Compare(m.items[a].rank(), m.items[b].rank())
	})
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
