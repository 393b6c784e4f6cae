// Package format turns raw lease-transaction fields into display strings.
//
// Every function here is pure: no terminal, network or clock access unless the
// caller passes a time in. Amounts are in units of 10,000 won (만원) unless a
// name says otherwise.
package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// manPerEok is the number of 만원 in one 억.
const manPerEok = 10000

var printer = message.NewPrinter(language.Korean)

// Thousands renders n with Korean digit grouping ("14,000").
func Thousands(n int64) string {
	return printer.Sprintf("%d", n)
}

// CurrencyAmount renders a 만원 amount as "{억}억 {만원}".
//
// Zero, empty and unparseable input all render as "". Values that already
// contain 억 were formatted upstream and pass through unchanged.
func CurrencyAmount(value string) string {
	if strings.Contains(value, "억") {
		return strings.TrimSpace(value)
	}
	n, ok := parseAmount(value)
	if !ok {
		return ""
	}
	return CurrencyAmountInt(n)
}

// CurrencyAmountInt is CurrencyAmount for numeric input.
func CurrencyAmountInt(n int64) string {
	if n == 0 {
		return ""
	}
	if n < 0 {
		return "-" + CurrencyAmountInt(-n)
	}

	eok := n / manPerEok
	man := n % manPerEok

	switch {
	case eok > 0 && man > 0:
		return strconv.FormatInt(eok, 10) + "억 " + Thousands(man)
	case eok > 0:
		return strconv.FormatInt(eok, 10) + "억"
	default:
		return Thousands(man)
	}
}

// parseAmount reads the leading integer of a comma-formatted amount. Trailing
// junk after the digits is ignored ("84.5" reads as 84).
func parseAmount(value string) (int64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if s == "" {
		return 0, false
	}

	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
