package tui

import (
	"github.com/Veraticus/leasetx/internal/api"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/pager"
)

// Data loading messages.
type searchPageMsg struct {
	err  error
	page *api.Page
	req  pager.SearchRequest
}

type buildingPageMsg struct {
	err  error
	page *api.Page
	req  pager.BuildingRequest
}

type ownersLoadedMsg struct {
	err   error
	info  *api.OwnerInfo
	query model.OwnerQuery
	title string
}

type historyRecordedMsg struct {
	err error
}

// scrollSettledMsg fires after the debounce delay of a cursor move.
type scrollSettledMsg struct {
	list list
	seq  uint64
}

// list names one of the two paged lists.
type list int

const (
	listResults list = iota
	listBuilding
)
