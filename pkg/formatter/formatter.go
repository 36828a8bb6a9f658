package formatter

import (
	"strconv"
	"strings"
)

// Ellipsis marks content that was cut to fit a platform budget.
const Ellipsis = "..."

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		s = s[1:]
	}

	le := len(s)
	if le <= 3 {
		if n < 0 {
			return "-" + s
		}
		return s
	}

	sepCount := (le - 1) / 3

	res := make([]byte, le+sepCount)

	j := len(res) - 1
	for i := le - 1; i >= 0; i-- {
		res[j] = s[i]
		j--
		if (le-i)%3 == 0 && i > 0 {
			res[j] = ','
			j--
		}
	}

	if n < 0 {
		return "-" + string(res)
	}
	return string(res)
}

// FormatPrice renders a price with its currency code, dropping a
// trailing ".00" so captions stay short. Example: 52999, "TRY" ->
// "52,999 TRY"; 149.90, "TRY" -> "149.90 TRY".
func FormatPrice(price float64, currency string) string {
	whole := int(price)
	frac := price - float64(whole)
	s := FormatNumber(whole)
	if frac > 0.004 {
		cents := strconv.FormatFloat(frac, 'f', 2, 64)
		s += strings.TrimPrefix(cents, "0")
	}
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// Truncate cuts s to at most limit runes, replacing the tail with an
// ellipsis so the cut is visible. Counts runes, not bytes: captions
// carry emoji and non-ASCII text.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	marker := []rune(Ellipsis)
	if limit <= len(marker) {
		return string(marker[:limit])
	}
	return string(runes[:limit-len(marker)]) + Ellipsis
}
