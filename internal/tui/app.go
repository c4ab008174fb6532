// Package tui provides the interactive Bubble Tea dashboard for minebudget.
package tui

import (
	"fmt"
	"strings"

	"github.com/dsakenov/minebudget/internal/cli"
	"github.com/dsakenov/minebudget/internal/ledger"
	"github.com/dsakenov/minebudget/internal/model"
	"github.com/dsakenov/minebudget/internal/status"
	"github.com/dsakenov/minebudget/internal/tui/components"
	"github.com/dsakenov/minebudget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// projectRow pairs a project with its computed status for display.
type projectRow struct {
	Project model.Project
	Status  model.Status
}

// DataLoadedMsg is sent when the project list and statuses are ready.
type DataLoadedMsg struct {
	Rows []projectRow
	Err  error
}

// TimelineLoadedMsg is sent when a project's timeline is ready.
type TimelineLoadedMsg struct {
	Project model.Project
	Entries []model.TimelineEntry
	Err     error
}

const (
	viewProjects = iota
	viewTimeline
)

// App is the root Bubble Tea model.
type App struct {
	store  *ledger.Store
	engine *status.Engine

	rows   []projectRow
	loaded bool
	err    error

	view     int
	cursor   int
	scroll   int
	timeline []model.TimelineEntry
	timefor  model.Project

	width  int
	height int

	spinner spinner.Model
}

// NewApp creates the TUI model over an open ledger.
func NewApp(store *ledger.Store) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		store:   store,
		engine:  status.New(store),
		spinner: sp,
	}
}

// Init starts the spinner and the initial data load.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadProjects())
}

func (a App) loadProjects() tea.Cmd {
	store, engine := a.store, a.engine
	return func() tea.Msg {
		projects, err := store.ListProjects()
		if err != nil {
			return DataLoadedMsg{Err: err}
		}
		rows := make([]projectRow, 0, len(projects))
		for _, p := range projects {
			st, err := engine.ProjectStatus(p.ID)
			if err != nil {
				return DataLoadedMsg{Err: err}
			}
			rows = append(rows, projectRow{Project: p, Status: st})
		}
		return DataLoadedMsg{Rows: rows}
	}
}

func (a App) loadTimeline(p model.Project) tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		entries, err := engine.Timeline(p.ID)
		return TimelineLoadedMsg{Project: p, Entries: entries, Err: err}
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.err = msg.Err
		a.rows = msg.Rows
		if a.cursor >= len(a.rows) {
			a.cursor = len(a.rows) - 1
		}
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil

	case TimelineLoadedMsg:
		a.err = msg.Err
		a.timeline = msg.Entries
		a.timefor = msg.Project
		a.view = viewTimeline
		a.scroll = 0
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if a.view == viewTimeline {
			a.view = viewProjects
			return a, nil
		}
		return a, tea.Quit

	case "esc":
		a.view = viewProjects
		return a, nil

	case "j", "down":
		if a.view == viewProjects && a.cursor < len(a.rows)-1 {
			a.cursor++
		} else if a.view == viewTimeline && a.scroll < len(a.timeline)-1 {
			a.scroll++
		}
		return a, nil

	case "k", "up":
		if a.view == viewProjects && a.cursor > 0 {
			a.cursor--
		} else if a.view == viewTimeline && a.scroll > 0 {
			a.scroll--
		}
		return a, nil

	case "enter":
		if a.view == viewProjects && a.cursor < len(a.rows) {
			return a, a.loadTimeline(a.rows[a.cursor].Project)
		}
		return a, nil

	case "r":
		a.loaded = false
		return a, tea.Batch(a.spinner.Tick, a.loadProjects())
	}

	return a, nil
}

// View renders the current screen.
func (a App) View() string {
	t := theme.Active

	if !a.loaded {
		return fmt.Sprintf("\n\n  %s Loading %s...\n", a.spinner.View(), a.store.Path())
	}
	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return "\n\n" + errStyle.Render(fmt.Sprintf("  Error: %v", a.err)) + "\n\n  Press q to quit.\n"
	}

	var body string
	switch a.view {
	case viewTimeline:
		body = a.viewTimeline()
	default:
		body = a.viewProjects()
	}

	bar := components.RenderStatusBar(a.width, a.store.Path())
	return body + "\n" + bar
}

func (a App) viewProjects() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	flagStyle := lipgloss.NewStyle().Foreground(t.Orange)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  PROJECTS"))
	b.WriteString("\n\n")

	if len(a.rows) == 0 {
		b.WriteString(dimStyle.Render("  No projects yet. Create one with `minebudget add`."))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("  %-30s %14s %14s %14s  %-9s", "Name", "Have", "Need", "Diff", "Stage")
	b.WriteString(headStyle.Render(header))
	b.WriteString("\n")

	for i, row := range a.rows {
		name := cli.Truncate(row.Project.Name, 28)
		if row.Project.OutOfBudget {
			name += " *"
		}
		line := fmt.Sprintf("  %-30s %14s %14s %14s  %-9s",
			name,
			cli.FormatMoney(row.Status.Have),
			cli.FormatMoney(row.Status.Need),
			cli.FormatSigned(row.Status.Diff),
			cli.FormatStage(row.Status.Stage),
		)
		switch {
		case i == a.cursor:
			b.WriteString(selStyle.Render(line))
		case row.Status.Diff < 0:
			b.WriteString(deficitLine(line))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(flagStyle.Render("  * = out of budget"))
	b.WriteString("\n")
	return b.String()
}

func deficitLine(line string) string {
	return lipgloss.NewStyle().Foreground(theme.Active.Red).Render(line)
}

func (a App) viewTimeline() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  TIMELINE  %s", cli.Truncate(a.timefor.Name, 40))))
	b.WriteString("\n\n")

	if len(a.timeline) == 0 {
		b.WriteString(dimStyle.Render("  No events recorded."))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("  %-10s  %-44s %15s  %-20s", "Date", "Event", "Amount", "By")
	b.WriteString(headStyle.Render(header))
	b.WriteString("\n")

	for i, e := range a.timeline {
		amount := cli.FormatMoney(e.Amount)
		if e.Sign != "" {
			amount = e.Sign + amount
		}
		line := fmt.Sprintf("  %-10s  %-44s %15s  %-20s",
			e.Date,
			cli.Truncate(e.Label, 44),
			amount,
			cli.Truncate(e.AddedBy, 20),
		)
		if i == a.scroll {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  esc to go back"))
	b.WriteString("\n")
	return b.String()
}
