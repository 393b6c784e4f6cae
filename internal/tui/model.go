// Package tui is the interactive lease-transaction browser: a filter form, an
// infinitely scrolling result list, a building-detail modal and an owner
// panel.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/leasetx/internal/api"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/pager"
	"github.com/Veraticus/leasetx/internal/tui/themes"
	"github.com/Veraticus/leasetx/internal/tui/viewmodel"
)

// State represents the current screen.
type State int

const (
	StateForm State = iota
	StateResults
	StateBuilding
	StateOwners
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	theme         themes.Theme
	search        *pager.Pager
	building      *pager.BuildingPager
	debounce      *pager.Debouncer
	owners        *viewmodel.OwnerPanelView
	ownersQuery   *model.OwnerQuery
	initCmd       tea.Cmd
	cfg           Config
	keymap        KeyMap
	help          help.Model
	form          filterForm
	results       table.Model
	buildingTable table.Model
	resultViews   []viewmodel.RecordView
	buildingViews []viewmodel.RecordView
	err           string
	state         State
	helpReturn    State
	ownersReturn  State
	width         int
	height        int
	quitting      bool
}

// New creates a model. With WithFilters(f, true) the first search is issued
// by Init.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := Model{
		cfg:    cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		search: pager.New(pager.Config{
			PageSize:        cfg.SearchPageSize,
			ScrollThreshold: cfg.ScrollThreshold,
		}),
		building: pager.NewBuilding(pager.Config{
			PageSize:        cfg.BuildingPageSize,
			ScrollThreshold: cfg.ScrollThreshold,
		}),
		debounce:      pager.NewDebouncer(cfg.Debounce),
		form:          newFilterForm(cfg.Filters, cfg.Now()),
		results:       newTable(resultColumns, cfg.Theme),
		buildingTable: newTable(buildingColumns, cfg.Theme),
		state:         StateForm,
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.resize()

	if cfg.AutoSearch {
		m.initCmd = m.submit()
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCmd)
}

// State reports the current screen.
func (m Model) State() State {
	return m.state
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchPageMsg:
		cmd := m.handleSearchPage(msg)
		return m, cmd

	case buildingPageMsg:
		m.handleBuildingPage(msg)
		return m, nil

	case ownersLoadedMsg:
		m.handleOwners(msg)
		return m, nil

	case scrollSettledMsg:
		if !m.debounce.Ready(msg.seq) {
			return m, nil
		}
		cmd := m.checkScroll(msg.list)
		return m, cmd

	case historyRecordedMsg:
		if msg.err != nil {
			slog.Warn("Failed to record search history", "error", msg.err)
		}
		return m, nil
	}

	if m.state == StateForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateHelp:
		m.state = m.helpReturn
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.helpReturn = m.state
		m.state = StateHelp
		return m, nil
	case key.Matches(msg, m.keymap.Reset):
		cmd := m.reset()
		return m, cmd
	}

	switch m.state {
	case StateResults:
		return m.updateResults(msg)
	case StateBuilding:
		return m.updateBuilding(msg)
	case StateOwners:
		if key.Matches(msg, m.keymap.Back) {
			m.state = m.ownersReturn
			m.ownersQuery = nil
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		cmd := m.submit()
		return m, cmd
	case key.Matches(msg, m.keymap.Back):
		if m.search.State() != pager.Idle {
			m.state = StateResults
		}
		return m, nil
	case key.Matches(msg, m.keymap.Reset):
		cmd := m.reset()
		return m, cmd
	case key.Matches(msg, m.keymap.NextField):
		cmd := m.form.move(1)
		return m, cmd
	case key.Matches(msg, m.keymap.PrevField):
		cmd := m.form.move(-1)
		return m, cmd
	case key.Matches(msg, m.keymap.NextMonth):
		m.form.cycleMonth(1)
		return m, nil
	case key.Matches(msg, m.keymap.PrevMonth):
		m.form.cycleMonth(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Edit), key.Matches(msg, m.keymap.Back):
		m.state = StateForm
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Open):
		r, ok := m.selectedResult()
		if !ok {
			return m, nil
		}
		cmd := m.openBuilding(r.BuildingQuery())
		return m, cmd
	case key.Matches(msg, m.keymap.Owners):
		r, ok := m.selectedResult()
		if !ok {
			return m, nil
		}
		q := r.BuildingQuery()
		cmd := m.openOwners(q.OwnerQuery(), q.Title())
		return m, cmd
	}

	before := m.results.Cursor()
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	if m.results.Cursor() != before {
		return m, tea.Batch(cmd, m.scheduleScroll(listResults))
	}
	return m, cmd
}

func (m Model) updateBuilding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.building.Reset()
		m.buildingViews = nil
		m.buildingTable.SetRows(nil)
		m.state = StateResults
		return m, nil
	case key.Matches(msg, m.keymap.FutureOnly):
		m.building.SetFutureOnly(!m.building.FutureOnly())
		m.buildingTable.SetCursor(0)
		m.refreshBuilding()
		cmd := m.checkScroll(listBuilding)
		return m, cmd
	case key.Matches(msg, m.keymap.Owners):
		q, ok := m.building.Query()
		if !ok {
			return m, nil
		}
		cmd := m.openOwners(q.OwnerQuery(), q.Title())
		return m, cmd
	}

	before := m.buildingTable.Cursor()
	var cmd tea.Cmd
	m.buildingTable, cmd = m.buildingTable.Update(msg)
	if m.buildingTable.Cursor() != before {
		return m, tea.Batch(cmd, m.scheduleScroll(listBuilding))
	}
	return m, cmd
}

// submit starts a new search from the form.
func (m *Model) submit() tea.Cmd {
	f, err := m.form.Filters()
	if err != nil {
		m.err = api.UserMessage(err)
		return nil
	}
	req, err := m.search.Submit(f)
	if err != nil {
		m.err = api.UserMessage(err)
		return nil
	}

	m.err = ""
	m.state = StateResults
	m.resultViews = nil
	m.results.SetRows(nil)
	m.results.SetCursor(0)
	return m.loadSearch(req)
}

// reset clears every list and the form, and invalidates requests in flight.
func (m *Model) reset() tea.Cmd {
	m.search.Reset()
	m.building.Reset()
	m.owners = nil
	m.ownersQuery = nil
	m.resultViews = nil
	m.buildingViews = nil
	m.results.SetRows(nil)
	m.buildingTable.SetRows(nil)
	m.form = newFilterForm(model.DefaultFilterSet(), m.cfg.Now())
	m.err = ""
	m.state = StateForm
	return textinput.Blink
}

func (m *Model) openBuilding(q model.BuildingQuery) tea.Cmd {
	req, err := m.building.Open(q)
	if err != nil {
		m.err = api.UserMessage(err)
		return nil
	}
	m.err = ""
	m.buildingViews = nil
	m.buildingTable.SetRows(nil)
	m.buildingTable.SetCursor(0)
	m.state = StateBuilding
	return m.loadBuilding(req)
}

func (m *Model) openOwners(q model.OwnerQuery, title string) tea.Cmd {
	if err := q.Validate(); err != nil {
		m.err = api.UserMessage(err)
		return nil
	}
	m.err = ""
	m.owners = nil
	m.ownersQuery = &q
	m.ownersReturn = m.state
	m.state = StateOwners
	return m.loadOwners(q, title)
}

func (m *Model) handleSearchPage(msg searchPageMsg) tea.Cmd {
	if msg.err != nil {
		if m.search.Fail(msg.req) {
			m.err = api.UserMessage(msg.err)
		} else {
			slog.Warn("Search page not shown", "page", msg.req.Page, "error", msg.err)
		}
		return nil
	}

	res := pager.Result{}
	if msg.page != nil {
		res = pager.Result{Rows: msg.page.Data, HasMore: msg.page.HasMore}
	}
	if !m.search.Succeed(msg.req, res) {
		slog.Debug("Dropped stale search page", "page", msg.req.Page, "generation", msg.req.Generation)
		return nil
	}

	m.refreshResults()
	if !msg.req.Append && m.cfg.History != nil {
		return m.recordHistory(msg.req.Query, m.search.Total())
	}
	return nil
}

func (m *Model) handleBuildingPage(msg buildingPageMsg) {
	if msg.err != nil {
		if m.building.Fail(msg.req) {
			m.err = api.UserMessage(msg.err)
		} else {
			slog.Warn("Building page not shown", "page", msg.req.Page, "error", msg.err)
		}
		return
	}

	res := pager.Result{}
	if msg.page != nil {
		res = pager.Result{Rows: msg.page.Data, HasMore: msg.page.HasMore}
	}
	if !m.building.Succeed(msg.req, res) {
		slog.Debug("Dropped stale building page", "page", msg.req.Page, "generation", msg.req.Generation)
		return
	}
	m.refreshBuilding()
}

func (m *Model) handleOwners(msg ownersLoadedMsg) {
	if m.ownersQuery == nil || *m.ownersQuery != msg.query {
		return
	}

	groups, message := model.NewOwnerGroups(), ""
	switch {
	case msg.err != nil:
		message = api.UserMessage(msg.err)
	case msg.info != nil:
		groups, message = &msg.info.Data, msg.info.Message
	}
	v := viewmodel.NewOwnerPanelView(msg.title, groups, message, m.cfg.Now())
	m.owners = &v
}

// checkScroll asks the active pager for the next page when the cursor is
// within the scroll threshold of the end of its list.
func (m *Model) checkScroll(l list) tea.Cmd {
	switch {
	case l == listResults && m.state == StateResults:
		req, ok := m.search.OnScroll(cursorViewport(m.results, len(m.resultViews)))
		if !ok {
			return nil
		}
		return m.loadSearch(req)
	case l == listBuilding && m.state == StateBuilding:
		req, ok := m.building.OnScroll(cursorViewport(m.buildingTable, len(m.buildingViews)))
		if !ok {
			return nil
		}
		return m.loadBuilding(req)
	}
	return nil
}

// cursorViewport measures scroll position by the selected row.
func cursorViewport(t table.Model, rows int) pager.Viewport {
	return pager.Viewport{Offset: t.Cursor(), Height: 1, Content: rows}
}

func (m *Model) refreshResults() {
	m.resultViews = viewmodel.NewRecordViews(m.search.Rows(), m.cfg.Now())
	m.results.SetRows(resultRows(m.resultViews))
}

// refreshBuilding re-derives the displayed rows from the building buffer.
func (m *Model) refreshBuilding() {
	now := m.cfg.Now()
	m.buildingViews = viewmodel.NewRecordViews(m.building.Visible(now), now)
	m.buildingTable.SetRows(buildingRows(m.buildingViews))
	if c := m.buildingTable.Cursor(); c >= len(m.buildingViews) {
		m.buildingTable.SetCursor(max(len(m.buildingViews)-1, 0))
	}
}

func (m Model) selectedResult() (model.TransactionRecord, bool) {
	i := m.results.Cursor()
	if i < 0 || i >= len(m.resultViews) {
		return model.TransactionRecord{}, false
	}
	return m.resultViews[i].Record, true
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.results.SetWidth(m.width)
	m.results.SetHeight(max(m.height-9, 3))
	m.buildingTable.SetWidth(m.width - 4)
	m.buildingTable.SetHeight(max(m.height-12, 3))
}
