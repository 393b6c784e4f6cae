package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/leasetx/internal/api"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/pager"
	"github.com/Veraticus/leasetx/internal/testutil"
	"github.com/Veraticus/leasetx/internal/testutil/records"
)

var fixedNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type fakeBackend struct {
	mu           sync.Mutex
	searchPages  map[int]*api.Page
	searchErrs   map[int]error
	buildingPage *api.Page
	owners       *api.OwnerInfo
	searches     []model.FilterSet
	buildings    []model.BuildingQuery
	ownerQueries []model.OwnerQuery
}

func (f *fakeBackend) Search(_ context.Context, filters model.FilterSet) (*api.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, filters)
	if err := f.searchErrs[filters.Page]; err != nil {
		return nil, err
	}
	if p, ok := f.searchPages[filters.Page]; ok {
		return p, nil
	}
	return &api.Page{Success: true}, nil
}

func (f *fakeBackend) BuildingTransactions(_ context.Context, q model.BuildingQuery) (*api.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buildings = append(f.buildings, q)
	if f.buildingPage == nil {
		return &api.Page{Success: true}, nil
	}
	return f.buildingPage, nil
}

func (f *fakeBackend) OwnerInfo(_ context.Context, q model.OwnerQuery) (*api.OwnerInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ownerQueries = append(f.ownerQueries, q)
	if f.owners == nil {
		return &api.OwnerInfo{Data: *model.NewOwnerGroups()}, nil
	}
	return f.owners, nil
}

func (f *fakeBackend) searchPagesRequested() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	pages := make([]int, len(f.searches))
	for i, s := range f.searches {
		pages[i] = s.Page
	}
	return pages
}

type fakeHistory struct {
	counts []int
}

func (h *fakeHistory) RecordSearch(_ context.Context, _ model.FilterSet, count int) error {
	h.counts = append(h.counts, count)
	return nil
}

func makeRows(n, offset int) []model.TransactionRecord {
	return records.Series(model.PropertyOfficetel, n, offset)
}

func validFilters() model.FilterSet {
	return testutil.SearchFilters("202512")
}

func newTestModel(backend Backend, opts ...Option) Model {
	base := []Option{
		WithBackend(backend),
		WithSize(160, 40),
		WithClock(func() time.Time { return fixedNow }),
		WithDebounce(time.Millisecond),
	}
	return New(append(base, opts...)...)
}

// drain runs cmd and feeds the browser's own messages back into the model
// until no work is left. Terminal housekeeping messages are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case searchPageMsg, buildingPageMsg, ownersLoadedMsg, scrollSettledMsg, historyRecordedMsg:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func startedModel(t *testing.T, backend *fakeBackend, opts ...Option) Model {
	t.Helper()
	m := newTestModel(backend, append([]Option{WithFilters(validFilters(), true)}, opts...)...)
	return drain(t, m, m.Init())
}

func TestModel_AutoSearchLoadsFirstPage(t *testing.T) {
	backend := &fakeBackend{searchPages: map[int]*api.Page{1: {Success: true, Data: makeRows(20, 0), HasMore: true}}}
	history := &fakeHistory{}

	m := startedModel(t, backend, WithHistory(history))

	assert.Equal(t, StateResults, m.State())
	assert.Len(t, m.resultViews, 20)
	assert.Equal(t, pager.Ready, m.search.State())
	assert.Equal(t, []int{1}, backend.searchPagesRequested())
	assert.Equal(t, model.SearchPageSize, backend.searches[0].PageSize)
	assert.Equal(t, []int{20}, history.counts)
	assert.Contains(t, m.View(), "총 20건 (더 많은 데이터 로드 중...)")
}

func TestModel_RecordsHistoryInStore(t *testing.T) {
	backend := &fakeBackend{searchPages: map[int]*api.Page{1: {Success: true, Data: makeRows(7, 0)}}}
	store := testutil.SetupTestStore(t)

	startedModel(t, backend, WithHistory(store))

	entries, err := store.RecentSearches(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].ResultCount)
	assert.Equal(t, []string{"강남구"}, entries[0].Filters.Sigungu)
}

func TestModel_ScrollToBottomAppendsNextPage(t *testing.T) {
	backend := &fakeBackend{searchPages: map[int]*api.Page{
		1: {Success: true, Data: makeRows(20, 0), HasMore: true},
		2: {Success: true, Data: makeRows(20, 20), HasMore: false},
	}}
	history := &fakeHistory{}
	m := startedModel(t, backend, WithHistory(history))

	m, cmd := press(m, runes("G"))
	m = drain(t, m, cmd)

	assert.Equal(t, []int{1, 2}, backend.searchPagesRequested())
	assert.Equal(t, backend.searches[0].Sigungu, backend.searches[1].Sigungu)
	assert.Len(t, m.resultViews, 40)
	assert.Equal(t, "빌딩21", m.resultViews[20].Name)
	assert.Equal(t, pager.Exhausted, m.search.State())
	assert.Equal(t, []int{20}, history.counts, "appended pages are not new searches")

	// Exhausted lists never request again.
	m, cmd = press(m, runes("g"))
	m = drain(t, m, cmd)
	m, cmd = press(m, runes("G"))
	drain(t, m, cmd)
	assert.Equal(t, []int{1, 2}, backend.searchPagesRequested())
}

func TestModel_ScrollAwayFromBottomDoesNotLoad(t *testing.T) {
	backend := &fakeBackend{searchPages: map[int]*api.Page{1: {Success: true, Data: makeRows(20, 0), HasMore: true}}}
	m := startedModel(t, backend)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyDown})
	drain(t, m, cmd)

	assert.Equal(t, []int{1}, backend.searchPagesRequested())
}

func TestModel_DebounceCollapsesBursts(t *testing.T) {
	backend := &fakeBackend{searchPages: map[int]*api.Page{
		1: {Success: true, Data: makeRows(4, 0), HasMore: true},
		2: {Success: true, Data: makeRows(4, 4), HasMore: true},
	}}
	m := startedModel(t, backend)

	var cmds []tea.Cmd
	for range 3 {
		var cmd tea.Cmd
		m, cmd = press(m, tea.KeyMsg{Type: tea.KeyDown})
		cmds = append(cmds, cmd)
	}
	m = drain(t, m, tea.Batch(cmds...))

	assert.Equal(t, []int{1, 2}, backend.searchPagesRequested())
	assert.Len(t, m.resultViews, 8)
}

func TestModel_ResetDropsResponseInFlight(t *testing.T) {
	backend := &fakeBackend{searchPages: map[int]*api.Page{1: {Success: true, Data: makeRows(20, 0), HasMore: true}}}
	m := newTestModel(backend, WithFilters(validFilters(), true))
	pending := m.initCmd

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = drain(t, m, pending)

	assert.Equal(t, StateForm, m.State())
	assert.Empty(t, m.resultViews)
	assert.Equal(t, pager.Idle, m.search.State())

	f, err := m.form.Filters()
	require.NoError(t, err)
	assert.Empty(t, f.Sigungu)
	assert.Empty(t, f.ContractEnd)
}

func TestModel_PageErrors(t *testing.T) {
	t.Run("first page error is shown", func(t *testing.T) {
		backend := &fakeBackend{searchErrs: map[int]error{1: &api.Error{Endpoint: api.PathSearch, Message: "서버 점검 중"}}}
		m := startedModel(t, backend)

		assert.Equal(t, "서버 점검 중", m.err)
		assert.Contains(t, m.View(), "서버 점검 중")
		assert.False(t, m.search.Loading())
	})

	t.Run("next page error keeps rows", func(t *testing.T) {
		backend := &fakeBackend{
			searchPages: map[int]*api.Page{1: {Success: true, Data: makeRows(20, 0), HasMore: true}},
			searchErrs:  map[int]error{2: errors.New("connection reset")},
		}
		m := startedModel(t, backend)

		m, cmd := press(m, runes("G"))
		m = drain(t, m, cmd)

		assert.Empty(t, m.err)
		assert.Len(t, m.resultViews, 20)
		assert.False(t, m.search.Loading())
	})
}

func TestModel_FormValidation(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, StateForm, m.State())
	assert.Equal(t, "계약만기시기를 선택해주세요", m.err)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, "202506", m.form.value(fieldContractEnd))
	assert.Contains(t, m.View(), "2025년 6월")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "최소 1개 이상의 시군구를 선택해주세요", m.err)
}

func TestModel_BuildingModalFutureOnly(t *testing.T) {
	building := []model.TransactionRecord{
		{ContractPeriod: "23.01~25.01", ContractYearMonth: "202301"},
		{ContractPeriod: "25.03~27.03", ContractYearMonth: "202503"},
		{ContractPeriod: "24.07~26.06", ContractYearMonth: "202407"},
	}
	backend := &fakeBackend{
		searchPages:  map[int]*api.Page{1: {Success: true, Data: makeRows(3, 0)}},
		buildingPage: &api.Page{Success: true, Data: building},
	}
	m := startedModel(t, backend)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	require.Equal(t, StateBuilding, m.State())
	require.Len(t, backend.buildings, 1)
	assert.Equal(t, model.BuildingPageSize, backend.buildings[0].PageSize)
	assert.Equal(t, "1", backend.buildings[0].Jibun)
	assert.Len(t, m.buildingViews, 3)

	m, cmd = press(m, runes("f"))
	m = drain(t, m, cmd)
	require.Len(t, m.buildingViews, 2)
	assert.Equal(t, "202606", m.buildingViews[0].ContractEnd)
	assert.Equal(t, "202703", m.buildingViews[1].ContractEnd)
	assert.Contains(t, m.View(), "만기 도래 예정 계약만")

	m, _ = press(m, runes("f"))
	require.Len(t, m.buildingViews, 3)
	assert.Equal(t, "202501", m.buildingViews[0].ContractEnd)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateResults, m.State())
	assert.Equal(t, pager.Idle, m.building.State())
}

func TestModel_OwnerPanel(t *testing.T) {
	groups := model.NewOwnerGroups()
	groups.Add("101호", model.OwnerRecord{OwnershipCategory: "개인", ChangeDate: "2020-01-01"})
	backend := &fakeBackend{
		searchPages: map[int]*api.Page{1: {Success: true, Data: makeRows(2, 0)}},
		owners:      &api.OwnerInfo{Data: *groups},
	}
	m := startedModel(t, backend)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = drain(t, m, cmd)
	m, cmd = press(m, runes("o"))
	assert.Equal(t, StateOwners, m.State())
	assert.Contains(t, m.View(), "소유자 정보를 불러오는 중...")

	// A response for another lot is ignored.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = press(m, runes("o"))
	stale, _ := m.Update(ownersLoadedMsg{query: model.OwnerQuery{SggCode: "x", UmdName: "y", Jibun: "z"}})
	m = stale.(Model)
	assert.Nil(t, m.owners)

	m = drain(t, m, cmd)
	require.NotNil(t, m.owners)
	assert.Equal(t, "101호", m.owners.Units[0].Key)
	assert.Equal(t, "2", backend.ownerQueries[0].Jibun)
	assert.Contains(t, m.View(), "5년 5개월")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateResults, m.State())
}

func TestModel_HelpAndQuit(t *testing.T) {
	backend := &fakeBackend{searchPages: map[int]*api.Page{1: {Success: true, Data: makeRows(1, 0)}}}
	m := startedModel(t, backend)

	m, _ = press(m, runes("?"))
	assert.Equal(t, StateHelp, m.State())
	m, _ = press(m, runes("x"))
	assert.Equal(t, StateResults, m.State())

	m, _ = press(m, runes("/"))
	assert.Equal(t, StateForm, m.State())
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateResults, m.State())

	m, cmd := press(m, runes("q"))
	assert.True(t, m.quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRun_RequiresBackend(t *testing.T) {
	assert.ErrorIs(t, Run(context.Background()), ErrNoBackend)
}
