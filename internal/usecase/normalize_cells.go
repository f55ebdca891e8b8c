package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var digitRunRegex = regexp.MustCompile(`\d+`)

// parseIntCell reads integer ids that may have been exported as "580.0".
func parseIntCell(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	v := int64(f)
	return &v
}

// parseFloatCell is lenient numeric coercion: anything unparseable is missing.
func parseFloatCell(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// firstDigitRun keeps the games count of a set score, so "7(5)" becomes 7.
func firstDigitRun(raw string) *int {
	m := digitRunRegex.FindString(raw)
	if m == "" {
		return nil
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &v
}

// normalizeDuration renders "h:m" as "h:m:00" and keeps "h:m:s". Any other
// shape is missing.
func normalizeDuration(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	switch len(strings.Split(raw, ":")) {
	case 2:
		return raw + ":00"
	case 3:
		return raw
	default:
		return ""
	}
}

// parseFraction splits "won/played". ok is false for anything else.
func parseFraction(raw string) (num, den decimal.Decimal, ok bool) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return decimal.Zero, decimal.Zero, false
	}
	num, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	den, err = decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return num, den, true
}

// fractionRatio converts "12/20" to 0.60. A zero denominator is missing.
func fractionRatio(raw string) *float64 {
	num, den, ok := parseFraction(raw)
	if !ok || den.IsZero() {
		return nil
	}
	v, _ := num.DivRound(den, 2).Float64()
	return &v
}

// fractionParts converts "12/20" to (0.60, 20). "0/0" yields (0, 0) and
// malformed cells yield two missing values.
func fractionParts(raw string) (ratio, denominator *float64) {
	num, den, ok := parseFraction(raw)
	if !ok {
		return nil, nil
	}
	if den.IsZero() {
		zero, alsoZero := 0.0, 0.0
		return &zero, &alsoZero
	}
	r, _ := num.DivRound(den, 2).Float64()
	d, _ := den.Float64()
	return &r, &d
}

func formatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}
