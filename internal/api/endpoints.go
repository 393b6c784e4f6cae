package api

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/model"
)

// Endpoint paths.
const (
	PathSido                 = "/api/locations/sido"
	PathSigungu              = "/api/locations/sigungu"
	PathUmd                  = "/api/locations/umd"
	PathSearch               = "/api/search"
	PathBuildingTransactions = "/api/building-transactions"
	PathOwnerInfo            = "/api/owner-info"
	PathUnitInfo             = "/api/fetch-unit-info"
	PathSearchBuilding       = "/api/search-building"
)

// MinBuildingQueryLen is the shortest building search the backend accepts.
const MinBuildingQueryLen = 2

// Page is one page of transaction records.
type Page struct {
	Success bool                      `json:"success"`
	Count   int                       `json:"count"`
	HasMore bool                      `json:"has_more"`
	Data    []model.TransactionRecord `json:"data"`
}

// OwnerInfo is the owner-of-record listing for a lot.
type OwnerInfo struct {
	Data    model.OwnerGroups `json:"data"`
	Message string            `json:"message,omitempty"`
}

type unitResponse struct {
	Success bool `json:"success"`
	model.UnitInfo
}

type buildingsResponse struct {
	Success   bool                `json:"success"`
	Buildings []model.BuildingRef `json:"buildings"`
}

type sidoResponse struct {
	Sidos []string `json:"sidos"`
}

type sigunguResponse struct {
	Sigungus []string `json:"sigungus"`
}

type umdResponse struct {
	Umds map[string][]string `json:"umds"`
}

// Search posts a filter set and returns one page of matches.
func (c *Client) Search(ctx context.Context, f model.FilterSet) (*Page, error) {
	var page Page
	if err := c.post(ctx, PathSearch, f, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// BuildingTransactions returns one page of a building's transactions.
func (c *Client) BuildingTransactions(ctx context.Context, q model.BuildingQuery) (*Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var page Page
	if err := c.post(ctx, PathBuildingTransactions, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// OwnerInfo returns the owners of record for a lot, grouped by unit.
func (c *Client) OwnerInfo(ctx context.Context, q model.OwnerQuery) (*OwnerInfo, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var info OwnerInfo
	if err := c.post(ctx, PathOwnerInfo, q, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UnitInfo resolves the unit designation for a floor and area.
func (c *Client) UnitInfo(ctx context.Context, q model.UnitQuery) (model.UnitInfo, error) {
	if err := q.Validate(); err != nil {
		return model.UnitInfo{}, err
	}
	var resp unitResponse
	if err := c.post(ctx, PathUnitInfo, q, &resp); err != nil {
		return model.UnitInfo{}, err
	}
	return resp.UnitInfo, nil
}

// SearchBuildings looks up buildings by "읍면동 지번" text.
func (c *Client) SearchBuildings(ctx context.Context, query string) ([]model.BuildingRef, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinBuildingQueryLen {
		return nil, common.ErrQueryTooShort
	}
	var resp buildingsResponse
	if err := c.get(ctx, PathSearchBuilding, url.Values{"q": {query}}, &resp); err != nil {
		return nil, err
	}
	return resp.Buildings, nil
}

// Sidos lists provinces.
func (c *Client) Sidos(ctx context.Context) ([]string, error) {
	var out []string
	err := c.fetch(ctx, "locations:sido", &out, func(ctx context.Context) (any, error) {
		var resp sidoResponse
		if err := c.get(ctx, PathSido, nil, &resp); err != nil {
			return nil, err
		}
		return resp.Sidos, nil
	})
	return out, err
}

// Sigungus lists the districts of a province.
func (c *Client) Sigungus(ctx context.Context, sido string) ([]string, error) {
	var out []string
	err := c.fetch(ctx, "locations:sigungu:"+sido, &out, func(ctx context.Context) (any, error) {
		var resp sigunguResponse
		if err := c.get(ctx, PathSigungu, url.Values{"sido": {sido}}, &resp); err != nil {
			return nil, err
		}
		return resp.Sigungus, nil
	})
	return out, err
}

// Umds lists the neighborhoods of each given district.
func (c *Client) Umds(ctx context.Context, sido string, sigungus []string) (map[string][]string, error) {
	key := "locations:umd:" + sido + ":" + strings.Join(sigungus, ",")
	var out map[string][]string
	err := c.fetch(ctx, key, &out, func(ctx context.Context) (any, error) {
		q := url.Values{"sido": {sido}}
		for _, s := range sigungus {
			q.Add("sigungu", s)
		}
		var resp umdResponse
		if err := c.get(ctx, PathUmd, q, &resp); err != nil {
			return nil, err
		}
		return resp.Umds, nil
	})
	return out, err
}
