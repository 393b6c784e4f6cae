package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{
		BaseURL:      srv.URL,
		Timeout:      5 * time.Second,
		RetryMax:     0,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: time.Millisecond,
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_Search(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathSearch, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true, "count": 2, "has_more": true,
			"data": [
				{"구분": "아파트", "단지명": "래미안", "보증금": "35,000", "월세": 0, "계약기간": "23.01~25.01"},
				{"구분": "오피스텔", "건물명": "센트럴", "보증금": 5000, "월세": "50", "기준시가_126퍼센트": 63000000}
			]
		}`))
	})

	f := model.DefaultFilterSet()
	f.ContractEnd = "202512"
	f.Sido = "서울특별시"
	f.Sigungu = []string{"강남구", "서초구"}
	depositMax := int64(50000)
	f.DepositMax = &depositMax

	page, err := client.Search(context.Background(), f.WithPage(2, 20))
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	assert.True(t, page.HasMore)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "래미안", page.Data[0].Name())
	assert.Equal(t, "35,000", page.Data[0].Deposit.String())
	assert.Equal(t, "0", page.Data[0].MonthlyRent.String())
	threshold, ok := page.Data[1].Threshold()
	assert.True(t, ok)
	assert.Equal(t, int64(63000000), threshold)

	assert.Equal(t, "202512", got["contract_end"])
	assert.Equal(t, float64(2), got["page"])
	assert.Equal(t, float64(20), got["page_size"])
	assert.Equal(t, float64(50000), got["deposit_max"])
	assert.NotContains(t, got, "deposit_min")
	assert.Equal(t, true, got["include_dagagu"])
	assert.Equal(t, []any{"강남구", "서초구"}, got["sigungu"])
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"success false with error", 200, `{"success": false, "error": "잘못된 요청"}`, "잘못된 요청"},
		{"success false without message", 200, `{"success": false}`, DefaultErrorMessage},
		{"error body on 500", 500, `{"error": "DB 오류"}`, "DB 오류"},
		{"non json 502", 502, `<html>bad gateway</html>`, DefaultErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			f := model.DefaultFilterSet()
			_, err := client.Search(context.Background(), f)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrAPI)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, PathSearch, apiErr.Endpoint)
		})
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"sidos": ["서울특별시"]}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, RetryMax: 3, RetryWaitMin: time.Millisecond, RetryWaitMax: time.Millisecond})
	sidos, err := client.Sidos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"서울특별시"}, sidos)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New(Options{BaseURL: url, RetryMax: 0})
	_, err := client.Sidos(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.True(t, common.IsRetryable(err))
}

func TestClient_PayloadTooLarge(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sidos": ["`))
		_, _ = w.Write([]byte(strings.Repeat("가", maxPayload/3+1)))
		_, _ = w.Write([]byte(`"]}`))
	})

	_, err := client.Sidos(context.Background())
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestClient_Locations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathSigungu:
			assert.Equal(t, "서울특별시", r.URL.Query().Get("sido"))
			writeJSON(t, w, 200, map[string]any{"sigungus": []string{"강남구", "서초구"}})
		case PathUmd:
			assert.Equal(t, []string{"강남구", "서초구"}, r.URL.Query()["sigungu"])
			writeJSON(t, w, 200, map[string]any{"umds": map[string][]string{
				"강남구": {"대치동", "역삼동"},
				"서초구": {"반포동"},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	sigungus, err := client.Sigungus(context.Background(), "서울특별시")
	require.NoError(t, err)
	assert.Equal(t, []string{"강남구", "서초구"}, sigungus)

	umds, err := client.Umds(context.Background(), "서울특별시", sigungus)
	require.NoError(t, err)
	assert.Equal(t, []string{"대치동", "역삼동"}, umds["강남구"])
	assert.Equal(t, []string{"반포동"}, umds["서초구"])
}

type countingFetcher struct {
	store map[string][]byte
	loads int
}

func (f *countingFetcher) Fetch(ctx context.Context, key string, out any, load func(context.Context) (any, error)) error {
	if data, ok := f.store[key]; ok {
		return json.Unmarshal(data, out)
	}
	v, err := load(ctx)
	if err != nil {
		return err
	}
	f.loads++
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.store[key] = data
	return json.Unmarshal(data, out)
}

func TestClient_LocationsUseCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"sidos": ["서울특별시", "부산광역시"]}`))
	}))
	defer srv.Close()

	fetcher := &countingFetcher{store: map[string][]byte{}}
	client := New(Options{BaseURL: srv.URL, Cache: fetcher})

	for range 3 {
		sidos, err := client.Sidos(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"서울특별시", "부산광역시"}, sidos)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, fetcher.loads)
}

func TestClient_OwnerInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var q model.OwnerQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, model.OwnerQuery{SggCode: "11680", UmdName: "대치동", Jibun: "1"}, q)

		_, _ = w.Write([]byte(`{"data": {
			"102동 301호": [{"posesnSeCodeNm": "개인", "cnrsPsnCo": 1}],
			"101동 101호": [{"posesnSeCodeNm": "법인", "cnrsPsnCo": "0"}]
		}}`))
	})

	info, err := client.OwnerInfo(context.Background(), model.OwnerQuery{SggCode: "11680", UmdName: "대치동", Jibun: "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"102동 301호", "101동 101호"}, info.Data.Keys())

	_, err = client.OwnerInfo(context.Background(), model.OwnerQuery{SggCode: "11680"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestClient_OwnerInfoEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": {}, "message": "소유자 정보가 없습니다."}`))
	})

	info, err := client.OwnerInfo(context.Background(), model.OwnerQuery{SggCode: "1", UmdName: "a", Jibun: "1"})
	require.NoError(t, err)
	assert.Equal(t, 0, info.Data.Len())
	assert.Equal(t, "소유자 정보가 없습니다.", info.Message)
}

func TestClient_UnitInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathUnitInfo, r.URL.Path)
		_, _ = w.Write([]byte(`{"success": true, "unit": "101동 1001호", "all_units": ["101동 1001호", "102동 1001호"], "has_more": false}`))
	})

	info, err := client.UnitInfo(context.Background(), model.UnitQuery{
		SggCode: "11680", UmdName: "대치동", Jibun: "1", Floor: "10", Area: "84.9",
	})
	require.NoError(t, err)
	assert.Equal(t, "101동 1001호", info.Unit)
	assert.Len(t, info.AllUnits, 2)
}

func TestClient_SearchBuildings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "도곡동 544-5", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"success": true, "buildings": [
			{"building_name": "타워팰리스", "property_type": "아파트", "full_address": "서울특별시 강남구 도곡동 544-5",
			 "sgg_code": "11680", "umd_name": "도곡동", "jibun": "544-5", "sido": "서울특별시", "sigungu": "강남구"}
		]}`))
	})

	buildings, err := client.SearchBuildings(context.Background(), " 도곡동 544-5 ")
	require.NoError(t, err)
	require.Len(t, buildings, 1)
	assert.Equal(t, model.PropertyApartment, buildings[0].PropertyType)
	assert.Equal(t, "544-5", buildings[0].Jibun)

	_, err = client.SearchBuildings(context.Background(), "도")
	assert.ErrorIs(t, err, common.ErrQueryTooShort)
}

func TestClient_BuildingTransactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var q model.BuildingQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, 50, q.PageSize)
		assert.Equal(t, 2, q.Page)
		writeJSON(t, w, 200, map[string]any{"success": true, "count": 0, "has_more": false, "data": []any{}})
	})

	q := model.BuildingRef{BuildingName: "래미안", SggCode: "11680", UmdName: "대치동", Jibun: "1"}.BuildingQuery()
	q.Page = 2
	page, err := client.BuildingTransactions(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.Data)
}
