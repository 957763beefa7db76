package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 converts a numeric cell to float64.
// Empty cells are missing values and become NaN.
func ToFloat64(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrParse, cell)
	}
	return v, nil
}

// BoolToFloat64 converts a boolean cell to 1 or 0. It accepts the
// strconv.ParseBool spellings: 1, t, T, TRUE, true, True and their false
// counterparts. Empty cells are missing values and become NaN.
func BoolToFloat64(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN(), nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not boolean", ErrParse, cell)
	}
	if b {
		return 1, nil
	}
	return 0, nil
}
