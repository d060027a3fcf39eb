package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/history"
	"github.com/rshade/ecotrack/internal/trend"
)

// ViewState is the screen a model is showing.
type ViewState int

const (
	// ViewStateLoading shows a spinner while entries are fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the entry table.
	ViewStateList
	// ViewStateDetail shows one entry.
	ViewStateDetail
	// ViewStateError shows a load failure.
	ViewStateError
	// ViewStateQuitting is terminal.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keyT     = "t"
)

// tableChrome is the number of rows the history view draws around the table.
// The table height passed to NewHistoryTable includes its own header row.
const tableChrome = 8

// HistoryFetcher loads history entries. It should honor ctx cancellation.
type HistoryFetcher func(ctx context.Context) ([]history.Entry, error)

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

// HistoryModel is a bubbletea model for browsing saved calculations.
// Entries are listed newest first; enter opens a detail view and t toggles
// the trend summary.
type HistoryModel struct {
	state     ViewState
	entries   []history.Entry // chronological
	table     table.Model
	spinner   spinner.Model
	fetchCmd  tea.Cmd
	showTrend bool
	width     int
	height    int
	err       error
}

// NewHistoryModel creates a model over entries, which must be in
// chronological order.
func NewHistoryModel(entries []history.Entry) *HistoryModel {
	m := &HistoryModel{
		state:   ViewStateList,
		entries: entries,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.rebuildTable()
	return m
}

// NewHistoryModelWithLoading creates a model that starts with a spinner and
// loads entries with fetcher.
func NewHistoryModelWithLoading(ctx context.Context, fetcher HistoryFetcher) *HistoryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle

	return &HistoryModel{
		state:   ViewStateLoading,
		spinner: s,
		width:   defaultWidth,
		height:  defaultHeight,
		fetchCmd: func() tea.Msg {
			entries, err := fetcher(ctx)
			return historyLoadedMsg{entries: entries, err: err}
		},
	}
}

// State returns the current view state.
func (m *HistoryModel) State() ViewState {
	return m.state
}

// Err returns the load error, if any.
func (m *HistoryModel) Err() error {
	return m.err
}

// Selected returns the highlighted entry.
func (m *HistoryModel) Selected() (history.Entry, bool) {
	if len(m.entries) == 0 {
		return history.Entry{}, false
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.entries) {
		return history.Entry{}, false
	}
	// Rows are newest first.
	return m.entries[len(m.entries)-1-cursor], true
}

// Init implements tea.Model.
func (m *HistoryModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.spinner.Tick, m.fetchCmd)
	}
	return nil
}

// Update implements tea.Model.
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = ViewStateError
			return m, nil
		}
		m.entries = msg.entries
		m.state = ViewStateList
		m.rebuildTable()
		return m, nil
	case tea.KeyMsg:
		if s := msg.String(); s == keyCtrlC || s == keyQuit {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	switch m.state {
	case ViewStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case ViewStateList:
		return m.updateList(msg)
	case ViewStateDetail:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyEsc {
			m.state = ViewStateList
		}
		return m, nil
	case ViewStateError, ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m *HistoryModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			if len(m.entries) > 0 {
				m.state = ViewStateDetail
			}
			return m, nil
		case keyT:
			m.showTrend = !m.showTrend
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *HistoryModel) View() string {
	switch m.state {
	case ViewStateLoading:
		return fmt.Sprintf("\n %s Loading history...\n\n", m.spinner.View())
	case ViewStateError:
		return CriticalStyle.Render("Error: "+m.err.Error()) + "\n\n" + SubtleStyle.Render("q: quit") + "\n"
	case ViewStateDetail:
		e, _ := m.Selected()
		return RenderEntryDetail(e, m.width) + "\n" + SubtleStyle.Render("esc: back  q: quit") + "\n"
	case ViewStateQuitting:
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("HISTORY (%d)", len(m.entries))))
	b.WriteString("\n")
	if len(m.entries) == 0 {
		b.WriteString(InfoStyle.Render("No saved calculations yet. Run `ecotrack footprint --save`."))
		b.WriteString("\n\n")
		b.WriteString(SubtleStyle.Render("q: quit"))
		return b.String() + "\n"
	}
	if m.showTrend {
		b.WriteString(RenderTrend(trend.Derive(m.entries), m.width))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("↑/↓: move  enter: details  t: trend  q: quit"))
	return b.String() + "\n"
}

// RenderEntryDetail renders one saved calculation with its inputs.
func RenderEntryDetail(e history.Entry, width int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("ENTRY " + e.ID))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render(padRight("Saved:", labelWidth)))
	b.WriteString(e.Timestamp.Local().Format(dateLayout))
	b.WriteString("\n\n")

	b.WriteString(HeaderStyle.Render("INPUTS"))
	b.WriteString("\n")
	in := e.Inputs
	rows := [][2]string{
		{"Car:", fmt.Sprintf("%g km/yr", in.CarKmPerYear)},
		{"Flights:", fmt.Sprintf("%g h/yr", in.AirHoursPerYear)},
		{"Electricity:", fmt.Sprintf("%g kWh/mo", in.ElectricityKWhPerMonth)},
		{"Waste:", fmt.Sprintf("%g kg/mo", in.WasteKgPerMonth)},
		{"Diet:", footprint.ParseDiet(string(in.Diet)).Label()},
	}
	for _, r := range rows {
		b.WriteString(LabelStyle.Render(padRight(r[0], labelWidth)))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderFootprintSummary(e.Results, nil, width))
	return b.String()
}

func (m *HistoryModel) rebuildTable() {
	height := max(m.height-tableChrome, 3) //nolint:mnd // Minimum usable table height.
	m.table = NewHistoryTable(m.entries, height)
}

// NewHistoryTable builds a table of entries, newest first.
func NewHistoryTable(entries []history.Entry, height int) table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 16},      //nolint:mnd // Column width.
		{Title: "Total", Width: 8},      //nolint:mnd // Column width.
		{Title: "Transport", Width: 10}, //nolint:mnd // Column width.
		{Title: "Energy", Width: 8},     //nolint:mnd // Column width.
		{Title: "Diet", Width: 8},       //nolint:mnd // Column width.
		{Title: "Waste", Width: 8},      //nolint:mnd // Column width.
	}

	rows := make([]table.Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		r := entries[i].Results
		rows = append(rows, table.Row{
			entries[i].Timestamp.Local().Format(dateLayout),
			footprint.FormatValue(r.Total),
			footprint.FormatValue(r.Transport()),
			footprint.FormatValue(r.Energy),
			footprint.FormatValue(r.Diet),
			footprint.FormatValue(r.Waste),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}
