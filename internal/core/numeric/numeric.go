// Package numeric coerces loosely typed request values into validated numbers
// and formats the fractions and percentages reported by the simulations.
//
// Every failure is a platform error carrying the offending field name, so
// transports can render a localized message without knowing which
// simulation produced it.
package numeric

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

// FormatValue renders v the way error messages quote numbers.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CoerceNumber converts raw into a finite float64.
//
// Accepted inputs are Go numeric kinds, json.Number and numeric strings with
// surrounding whitespace. nil means the field was not supplied.
func CoerceNumber(raw any, field string) (float64, error) {
	var value float64
	switch v := raw.(type) {
	case nil:
		return 0, apperrors.InvalidParameter(field, apperrors.RuleMissing, nil)
	case bool:
		return 0, notNumber(field, v)
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int8:
		value = float64(v)
	case int16:
		value = float64(v)
	case int32:
		value = float64(v)
	case int64:
		value = float64(v)
	case uint:
		value = float64(v)
	case uint8:
		value = float64(v)
	case uint16:
		value = float64(v)
	case uint32:
		value = float64(v)
	case uint64:
		value = float64(v)
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, notNumber(field, v)
		}
		value = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, notNumber(field, v)
		}
		value = parsed
	default:
		return 0, notNumber(field, v)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.InvalidParameter(field, apperrors.RuleNotFinite, nil)
	}
	return value, nil
}

// CoerceOptionalNumber returns fallback when raw is nil, else CoerceNumber.
func CoerceOptionalNumber(raw any, field string, fallback float64) (float64, error) {
	if raw == nil {
		return fallback, nil
	}
	return CoerceNumber(raw, field)
}

// CoerceInt converts raw into an integer. Floats are accepted only when they
// carry no fractional part.
func CoerceInt(raw any, field string) (int, error) {
	value, err := CoerceNumber(raw, field)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, apperrors.InvalidParameter(field, apperrors.RuleInteger, map[string]string{
			apperrors.MetaValue: FormatValue(value),
		})
	}
	return int(value), nil
}

// CoerceString returns raw as a string. nil is reported as missing.
func CoerceString(raw any, field string) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", apperrors.InvalidParameter(field, apperrors.RuleMissing, nil)
	case string:
		return v, nil
	default:
		return "", apperrors.InvalidParameter(field, apperrors.RuleText, nil)
	}
}

// CoerceOptionalString returns fallback when raw is nil, else CoerceString.
func CoerceOptionalString(raw any, field string, fallback string) (string, error) {
	if raw == nil {
		return fallback, nil
	}
	return CoerceString(raw, field)
}

// CoerceOptionalBool reads a boolean flag. Strings accepted by
// strconv.ParseBool are allowed; nil selects fallback.
func CoerceOptionalBool(raw any, field string, fallback bool) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return fallback, nil
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, apperrors.InvalidParameter(field, apperrors.RuleBoolean, map[string]string{
				apperrors.MetaValue: v,
			})
		}
		return parsed, nil
	default:
		return false, apperrors.InvalidParameter(field, apperrors.RuleBoolean, map[string]string{
			apperrors.MetaValue: fmt.Sprint(v),
		})
	}
}

// RequireRange checks min <= value <= max. Infinite bounds make the range
// one-sided.
func RequireRange(value, min, max float64, field string) error {
	if value >= min && value <= max {
		return nil
	}
	if math.IsInf(max, 1) {
		return apperrors.InvalidParameter(field, apperrors.RuleMin, map[string]string{
			apperrors.MetaMin:   FormatValue(min),
			apperrors.MetaValue: FormatValue(value),
		})
	}
	return apperrors.InvalidParameter(field, apperrors.RuleRange, map[string]string{
		apperrors.MetaMin:   FormatValue(min),
		apperrors.MetaMax:   FormatValue(max),
		apperrors.MetaValue: FormatValue(value),
	})
}

// RequireNonNegative checks value >= 0.
func RequireNonNegative(value float64, field string) error {
	return RequireRange(value, 0, math.Inf(1), field)
}

// RequirePositive checks value > 0.
func RequirePositive(value float64, field string) error {
	if value > 0 {
		return nil
	}
	return apperrors.InvalidParameter(field, apperrors.RulePositive, map[string]string{
		apperrors.MetaValue: FormatValue(value),
	})
}

// RequireFinite rejects a derived value that overflowed float64. field names
// the input that drove it out of range.
func RequireFinite(value float64, field string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return apperrors.InvalidParameter(field, apperrors.RuleOverflow, nil)
	}
	return nil
}

// Round rounds value to places decimals, halves away from zero.
//
// Rounding works on the shortest decimal form of value, so 1.005 rounds to
// 1.01 even though its binary value sits just below the half. Values with
// no more than places decimals, NaN and infinities are returned unchanged.
func Round(value float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	digits := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	point := strings.IndexByte(digits, '.')
	if point < 0 || len(digits)-point-1 <= places {
		return positiveZero(value)
	}

	kept := []byte(digits[:point] + digits[point+1:point+1+places])
	if digits[point+1+places] >= '5' {
		kept = incrementDecimal(kept)
	}
	text := string(kept)
	if places > 0 {
		split := len(kept) - places
		text = text[:split] + "." + text[split:]
	}
	rounded, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value
	}
	if value < 0 {
		rounded = -rounded
	}
	return positiveZero(rounded)
}

// incrementDecimal adds one unit in the last place of a digit string.
func incrementDecimal(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}

// positiveZero folds -0 into 0.
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// RoundPercentage converts a fraction in [0, 1] to a percentage with two
// decimals.
func RoundPercentage(fraction float64) float64 {
	return Round(fraction*100, 2)
}

// Fraction renders "numerator/denominator" without reducing.
func Fraction(numerator, denominator int) (string, error) {
	if denominator == 0 {
		return "", divisionByZero(numerator)
	}
	return fmt.Sprintf("%d/%d", numerator, denominator), nil
}

// ReduceFraction renders numerator/denominator in lowest terms with a
// positive denominator. A zero numerator reduces to "0/1".
func ReduceFraction(numerator, denominator int) (string, error) {
	if denominator == 0 {
		return "", divisionByZero(numerator)
	}
	if denominator < 0 {
		numerator, denominator = -numerator, -denominator
	}
	divisor := gcd(abs(numerator), denominator)
	return fmt.Sprintf("%d/%d", numerator/divisor, denominator/divisor), nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func notNumber(field string, raw any) error {
	return apperrors.InvalidParameter(field, apperrors.RuleNotNumber, map[string]string{
		apperrors.MetaValue: fmt.Sprint(raw),
	})
}

func divisionByZero(numerator int) error {
	return apperrors.WithMetadata(apperrors.CodeDivisionByZero,
		fmt.Sprintf("fraction %d/0 has a zero denominator", numerator), nil)
}
