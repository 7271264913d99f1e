// internal/tui/browser.go
// Package tui is the interactive terminal browser for benchmark raw results.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/report"
	"github.com/mwiater/ragbench/internal/table"
	"github.com/mwiater/ragbench/internal/util"
	"golang.org/x/text/language"
)

const (
	maxColumnWidth = 40
	headerHeight   = 4
	footerHeight   = 2
)

// Options configure the browser.
type Options struct {
	Dataset string
	Locale  language.Tag
	Sort    *table.SortConfig
}

// viewState represents whether keys go to the table or the search input.
type viewState int

const (
	viewTable viewState = iota
	viewSearch
)

type model struct {
	dataset   string
	view      *table.View[fixture.BenchmarkRecord]
	databases []string
	dbIndex   int
	state     viewState
	search    textinput.Model
	table     btable.Model
	width     int
	height    int
	err       error
}

func initialModel(doc *fixture.Document, opts Options) (*model, error) {
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	view, err := table.NewView(table.Results, doc.SpeedTest.RawResults,
		table.WithLocale(opts.Locale),
		table.WithSort(opts.Sort),
	)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "filter queries..."
	ti.Prompt = "Search: "
	ti.CharLimit = 256

	t := btable.New(btable.WithFocused(true), btable.WithHeight(10))
	styles := btable.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("62")).
		Bold(false)
	t.SetStyles(styles)

	m := &model{
		dataset:   opts.Dataset,
		view:      view,
		databases: append([]string{table.AllDatabases}, view.Categories()...),
		search:    ti,
		table:     t,
	}
	m.refresh()
	return m, nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = msg.Width - len(m.search.Prompt) - 2
		m.table.SetHeight(max(msg.Height-headerHeight-footerHeight, 3))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state == viewSearch {
			return m.updateSearch(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = viewTable
		m.search.Blur()
		m.table.Focus()
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.state = viewTable
		m.search.Blur()
		m.table.Focus()
		m.view.SetSearch("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.SetSearch(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m *model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		m.state = viewSearch
		m.table.Blur()
		return m, m.search.Focus()
	case "tab":
		m.cycleDatabase(1)
		return m, nil
	case "shift+tab":
		m.cycleDatabase(-1)
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.view.SetSearch("")
		m.dbIndex = 0
		m.view.SetDatabase(table.AllDatabases)
		m.refresh()
		return m, nil
	}

	if n, err := strconv.Atoi(key); err == nil {
		cols := table.Results.Columns.All()
		if n >= 1 && n <= len(cols) {
			if err := m.view.ToggleSort(cols[n-1].Key); err != nil {
				m.err = err
			}
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) cycleDatabase(step int) {
	n := len(m.databases)
	m.dbIndex = ((m.dbIndex+step)%n + n) % n
	m.view.SetDatabase(m.databases[m.dbIndex])
	m.refresh()
}

// refresh re-projects the view into the bubbles table.
func (m *model) refresh() {
	cols := table.Results.Columns
	rows := m.view.Rows()
	cells := report.Cells(cols, rows)
	sortCfg := m.view.SortConfig()

	columns := make([]btable.Column, 0, cols.Len())
	for i, c := range cols.All() {
		title := fmt.Sprintf("%d %s", i+1, c.Title)
		if sortCfg != nil && sortCfg.Key == c.Key {
			if sortCfg.Direction == table.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		width := lipgloss.Width(title)
		for _, row := range cells {
			width = max(width, lipgloss.Width(row[i]))
		}
		columns = append(columns, btable.Column{Title: title, Width: min(width, maxColumnWidth)})
	}

	tableRows := make([]btable.Row, len(cells))
	for i, row := range cells {
		tableRows[i] = btable.Row(row)
	}
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(tableRows)
	m.table.GotoTop()
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(util.TruncateToWidth(fmt.Sprintf("Error: %v", m.err), m.width-2))
	}

	titleStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1).MarginLeft(1)

	title := "ragbench"
	if m.dataset != "" {
		title += " · " + m.dataset
	}
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(title),
		badgeStyle.Render("Database: "+m.view.Database()),
		badgeStyle.Render("Sort: "+m.view.SortConfig().String()),
		badgeStyle.Render(fmt.Sprintf("%d/%d rows", len(m.view.Rows()), m.view.Total())),
	)

	var b strings.Builder
	b.WriteString(status + "\n")
	b.WriteString(m.search.View() + "\n\n")
	if m.view.Empty() {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(1, 2)
		b.WriteString(emptyStyle.Render(report.EmptyMessage))
	} else {
		b.WriteString(m.table.View())
	}
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(
		fmt.Sprintf(" (/ search, tab database, 1-%d sort, esc clear, q quit)", table.Results.Columns.Len()))
	b.WriteString("\n" + help)
	return b.String()
}

// Run starts the browser on the raw results of doc and blocks until the user quits.
func Run(ctx context.Context, doc *fixture.Document, opts Options) error {
	if doc == nil {
		return fmt.Errorf("browse: document is nil")
	}
	m, err := initialModel(doc, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
