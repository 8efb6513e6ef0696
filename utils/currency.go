package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR groups digits the Indian way (1,00,000) and keeps at most two
// decimals, dropping them for whole amounts.
func FormatINR(amount float64) string {
	neg := amount < 0
	amount = math.Abs(amount)
	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var out string
	if len(digits) <= 3 {
		out = digits
	} else {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		out = strings.Join(groups, ",") + "," + tail
	}

	if frac != 0 {
		f := strconv.FormatInt(frac, 10)
		if len(f) == 1 {
			f = "0" + f
		}
		out += "." + strings.TrimRight(f, "0")
	}
	if neg && (whole != 0 || frac != 0) {
		out = "-" + out
	}
	return out
}
