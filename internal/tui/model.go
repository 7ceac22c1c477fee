package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aryannaik/advocate-directory/internal/advocate"
	"github.com/aryannaik/advocate-directory/internal/directory"
)

// FetchFunc loads the roster once.
type FetchFunc func(ctx context.Context) ([]advocate.Advocate, error)

// loadedMsg carries the result of the initial fetch.
type loadedMsg struct {
	advocates []advocate.Advocate
	err       error
}

var columnWidths = map[directory.Field]int{
	directory.FirstName:         14,
	directory.LastName:          14,
	directory.City:              14,
	directory.Degree:            8,
	directory.Specialties:       40,
	directory.YearsOfExperience: 8,
	directory.PhoneNumber:       16,
}

// headerKeys maps function keys to column headers. F5 and F7 land on
// non-sortable columns and do nothing.
var headerKeys = map[string]directory.Field{
	"f1": directory.FirstName,
	"f2": directory.LastName,
	"f3": directory.City,
	"f4": directory.Degree,
	"f5": directory.Specialties,
	"f6": directory.YearsOfExperience,
	"f7": directory.PhoneNumber,
}

// Model is the directory screen: a search box over a sortable table.
type Model struct {
	ctx    context.Context
	fetch  FetchFunc
	engine *directory.Engine

	input  textinput.Model
	table  table.Model
	styles Styles

	width  int
	height int
}

func New(ctx context.Context, fetch FetchFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "Search by name, city, degree, or specialty..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	m := Model{
		ctx:    ctx,
		fetch:  fetch,
		engine: directory.NewEngine(),
		input:  ti,
		styles: DefaultStyles(),
	}
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load)
}

func (m Model) load() tea.Msg {
	advocates, err := m.fetch(m.ctx)
	return loadedMsg{advocates: advocates, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.engine.LoadFailed(msg.err)
		} else {
			m.engine.Loaded(msg.advocates)
		}
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(max(msg.Height-9, 3))
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "ctrl+r":
			m.engine.OnResetClick()
			m.input.SetValue(m.engine.Query())
			m.refresh()
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		if field, ok := headerKeys[key]; ok {
			m.engine.OnSortHeaderClick(field)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.engine.OnQueryChange(m.input.Value())
		m.refresh()
	}
	return m, cmd
}

// refresh pushes the engine's view into the table.
func (m *Model) refresh() {
	m.table.SetColumns(m.columns())

	view := m.engine.View()
	rows := make([]table.Row, 0, len(view))
	for _, a := range view {
		rows = append(rows, table.Row{
			a.FirstName,
			a.LastName,
			a.City,
			a.Degree,
			strings.Join(a.Specialties, ", "),
			strconv.Itoa(a.YearsOfExperience),
			advocate.FormatPhoneNumber(a.PhoneNumber),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m Model) columns() []table.Column {
	cols := make([]table.Column, 0, len(directory.Columns))
	for _, f := range directory.Columns {
		cols = append(cols, table.Column{Title: m.header(f), Width: columnWidths[f]})
	}
	return cols
}

func (m Model) header(f directory.Field) string {
	title := f.String()
	if f == directory.YearsOfExperience {
		title = "Years"
	}
	if f != m.engine.SortField() {
		return title
	}
	if m.engine.SortDirection() == directory.Descending {
		return title + " ▼"
	}
	return title + " ▲"
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Solace Advocates"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Search.Render(m.input.View()))
	sb.WriteString("\n")

	switch m.engine.State() {
	case directory.StateLoading:
		sb.WriteString(m.styles.Status.Render("Loading advocates..."))
		sb.WriteString("\n")
		return sb.String()
	case directory.StateFailed:
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Could not load advocates: %v", m.engine.Err())))
		sb.WriteString("\n")
		return sb.String()
	}

	shown := len(m.engine.View())
	if shown == 0 {
		sb.WriteString(m.styles.Status.Render("No advocates match."))
	} else {
		sb.WriteString(m.styles.Status.Render(fmt.Sprintf("Showing %d of %d", shown, m.engine.Total())))
	}
	sb.WriteString("\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("F1-F4, F6 sort · esc reset · ↑/↓ scroll · ctrl+c quit"))
	return sb.String()
}

// Engine exposes the underlying query engine.
func (m Model) Engine() *directory.Engine {
	return m.engine
}
