package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToInt parses a spreadsheet cell as an int. Decimals ("8.0", "12,5") are
// truncated toward zero. Anything that cannot be parsed yields 0.
func ToInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return floatToInt(ToFloat(s))
}

// ToFloat parses a spreadsheet cell as a float64. Unparseable input yields 0.
// A comma is accepted as decimal separator.
func ToFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func floatToInt(f float64) int {
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}
