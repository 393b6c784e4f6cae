package format

import "fmt"

// wonPerMan converts 만원 to won.
const wonPerMan = 10000

// Risk grades a deposit against the 126% reference-price threshold.
type Risk int

// Risk grades.
const (
	RiskUnknown Risk = iota
	RiskSafe
	RiskOver
)

// String returns the Korean label for the grade.
func (r Risk) String() string {
	switch r {
	case RiskSafe:
		return "안전"
	case RiskOver:
		return "초과"
	default:
		return "-"
	}
}

// DepositRisk compares a deposit in 만원 against a threshold in won. A deposit
// equal to the threshold counts as over.
func DepositRisk(depositManWon string, thresholdWon int64) Risk {
	if thresholdWon <= 0 {
		return RiskUnknown
	}
	deposit, ok := parseAmount(depositManWon)
	if !ok {
		return RiskUnknown
	}
	if deposit*wonPerMan >= thresholdWon {
		return RiskOver
	}
	return RiskSafe
}

// WonAsManWon renders a won figure in 만원 currency form, dropping anything
// below 10,000 won.
func WonAsManWon(won int64) string {
	return CurrencyAmountInt(won / wonPerMan)
}

// ResultCount renders the result summary line.
func ResultCount(total int, hasMore bool) string {
	if total == 0 {
		return "검색 결과가 없습니다"
	}
	line := fmt.Sprintf("총 %s건", Thousands(int64(total)))
	if hasMore {
		line += " (더 많은 데이터 로드 중...)"
	}
	return line
}
