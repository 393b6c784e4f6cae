package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/leasetx/internal/pager"
)

func TestNewStatusView(t *testing.T) {
	tests := []struct {
		name        string
		state       pager.State
		total       int
		hasMore     bool
		wantLine    string
		wantLoading bool
	}{
		{name: "idle", state: pager.Idle, wantLine: "조건을 선택하고 검색하세요"},
		{name: "first page", state: pager.LoadingFirst, wantLine: "검색 중...", wantLoading: true},
		{name: "next page", state: pager.LoadingNext, total: 40, hasMore: true, wantLine: "총 40건 (더 많은 데이터 로드 중...)", wantLoading: true},
		{name: "ready", state: pager.Ready, total: 1234, hasMore: true, wantLine: "총 1,234건 (더 많은 데이터 로드 중...)"},
		{name: "exhausted", state: pager.Exhausted, total: 7, wantLine: "총 7건"},
		{name: "no results", state: pager.Exhausted, wantLine: "검색 결과가 없습니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewStatusView(tt.state, tt.total, tt.hasMore, "")
			assert.Equal(t, tt.wantLine, v.ResultLine)
			assert.Equal(t, tt.wantLoading, v.Loading)
			assert.False(t, v.HasError())
		})
	}
}

func TestSanitizeForDisplay(t *testing.T) {
	assert.Equal(t, "a b c", SanitizeForDisplay("a\n b\r\x00c"))
	assert.Empty(t, SanitizeForDisplay("  "))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"래미안대치팰리스", 5, "래미안대…"},
		{"abc", 1, "a"},
		{"abc", 3, "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateString(tt.in, tt.maxLen))
	}
}
