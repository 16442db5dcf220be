package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether s is a decimal number such as "2", "-1", "0.5" or
// "1e3". Surrounding whitespace is ignored.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(strings.TrimSpace(s))
}

// ChoiceIndex converts a numeric argument to a list index, truncating
// fractions. ok is false for non-numeric input and values outside int range.
func ChoiceIndex(s string) (int, bool) {
	if !IsNumeric(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}

	return int(f), true
}
