// Package format renders monetary amounts for the narrative summary lines.
package format

import (
	"strconv"
	"strings"
)

// Currency renders an amount as pounds with two decimal places and thousands
// separators, e.g. -1234.5 becomes "-£1,234.50".
func Currency(amount float64) string {
	if amount < 0 {
		return "-£" + grouped(-amount)
	}
	return "£" + grouped(amount)
}

func grouped(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	if dot <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + dot/3)
	lead := dot % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < dot; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	b.WriteString(s[dot:])
	return b.String()
}
