package viewmodel

import (
	"strings"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/pager"
)

// StatusView is the line under a result list.
type StatusView struct {
	State      pager.State
	ResultLine string
	Error      string
	Loading    bool
}

// NewStatusView summarizes a pager.
func NewStatusView(state pager.State, total int, hasMore bool, errMsg string) StatusView {
	v := StatusView{
		State:   state,
		Error:   errMsg,
		Loading: state == pager.LoadingFirst || state == pager.LoadingNext,
	}
	switch state {
	case pager.Idle:
		v.ResultLine = "조건을 선택하고 검색하세요"
	case pager.LoadingFirst:
		v.ResultLine = "검색 중..."
	default:
		v.ResultLine = format.ResultCount(total, hasMore)
	}
	return v
}

// HasError reports whether an error should be shown.
func (v StatusView) HasError() bool {
	return v.Error != ""
}

// SanitizeForDisplay removes control characters and collapses whitespace.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// TruncateString shortens s to at most maxLen runes, marking the cut with an
// ellipsis.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
