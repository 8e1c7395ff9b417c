// Package format renders dates, amounts and domain labels for display.
//
// All functions are pure and never fail; inputs that cannot be formatted
// produce a best-effort string.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Date styles accepted by Date.
const (
	StyleDefault = "default"
	StyleISO     = "iso"
	StyleKorean  = "korean"
	StyleShort   = "short"
)

var printer = message.NewPrinter(language.Korean)

// Date formats t in one of the named styles. Unknown styles use the ISO date.
func Date(t time.Time, style string) string {
	switch style {
	case StyleKorean:
		return t.Format("2006년 01월 02일")
	case StyleShort:
		return t.Format("2006.01.02")
	default:
		return t.Format("2006-01-02")
	}
}

// DatePattern replaces the first occurrence of each of the tokens
// YYYY, MM, DD, HH, mm and ss in pattern with the zero-padded fields of t.
func DatePattern(t time.Time, pattern string) string {
	out := pattern
	for _, r := range []struct{ token, value string }{
		{"YYYY", strconv.Itoa(t.Year())},
		{"MM", fmt.Sprintf("%02d", int(t.Month()))},
		{"DD", fmt.Sprintf("%02d", t.Day())},
		{"HH", fmt.Sprintf("%02d", t.Hour())},
		{"mm", fmt.Sprintf("%02d", t.Minute())},
		{"ss", fmt.Sprintf("%02d", t.Second())},
	} {
		out = strings.Replace(out, r.token, r.value, 1)
	}
	return out
}

// ParseDate accepts the date and timestamp layouts the backend emits.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{
		"2006-01-02",
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006.01.02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Number formats n with Korean thousands grouping and up to three
// fraction digits.
func Number(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return printer.Sprintf("%d", int64(n))
	}
	return printer.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

// Currency formats an amount in won, e.g. "1,234원".
func Currency(amount float64) string {
	return Number(amount) + "원"
}

// CurrencySymbol prefixes the grouped amount with symbol, e.g. "₩1,234".
func CurrencySymbol(amount float64, symbol string) string {
	if symbol == "" {
		symbol = "₩"
	}
	return symbol + Number(amount)
}

// LargeCurrency formats amounts of at least 1억 as "12.3억원" and smaller
// amounts in units of 만원.
func LargeCurrency(amount float64) string {
	if eok := amount / 1e8; eok >= 1 {
		return strconv.FormatFloat(eok, 'f', 1, 64) + "억원"
	}
	return Number(amount/1e4) + "만원"
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FileSize formats a byte count with base-1024 units rounded to two decimals.
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Percentage returns value as a rounded percentage of total, or 0 when
// total is 0.
func Percentage(value, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(value / total * 100))
}

// GenerateID returns a new unique identifier.
func GenerateID() string {
	return uuid.NewString()
}
