package common

import (
	"math"
	"strconv"
)

// Round rounds v to the given number of decimal places. The decision is made
// on the exact binary value of v, and only exact ties go to the even digit:
// 6.25 rounds to 6.2, while 0.35 (stored just below) rounds to 0.3.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return 0
	}

	return r
}

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return part / total * 100
}

// FractionToPercent converts a 0-1 ratio to a percentage rounded to places.
func FractionToPercent(fraction float64, places int) float64 {
	return Round(fraction*100, places)
}
