package snowtype

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Primitive parse strategies. Each matches the ParseFunc signature so field
// declarations can name them directly.

func ParseString(raw string) (string, error) { return raw, nil }

func ParseInt64(raw string) (int64, error) { return strconv.ParseInt(raw, 10, 64) }

func ParseUint64(raw string) (uint64, error) { return strconv.ParseUint(raw, 10, 64) }

func ParseFloat64(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) }

// ParseBool accepts the forms strconv does, which covers the API's
// "true"/"TRUE" spellings.
func ParseBool(raw string) (bool, error) { return strconv.ParseBool(raw) }

// ParseDecimal converts a fixed-point cell with nonzero scale.
func ParseDecimal(raw string) (decimal.Decimal, error) { return decimal.NewFromString(raw) }

// timestampLayouts are tried in order for text-form timestamps. The SQL API
// emits fractional seconds of varying width, which the .999999999 layouts
// absorb.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTime converts a timestamp cell. Text layouts are tried first; a bare
// number is treated as epoch seconds with an optional fraction, the form
// the API uses for timestamp_ntz/ltz results.
func ParseTime(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	if t, ok := epochTime(raw); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as timestamp", raw)
}

// ParseDate converts a date cell: either "2006-01-02" text or the API's
// epoch form.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, ok := epochTime(raw); ok {
		return t.Truncate(24 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", raw)
}

// epochTime interprets a numeric cell as UTC epoch seconds with an optional
// fractional part.
func epochTime(raw string) (time.Time, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), true
}

// JSON is the delegate parse strategy for columns overridden with a
// structured type: the cell is a JSON-encoded payload decoded into V.
// Failures are reported as *DelegateError naming the target type.
func JSON[V any](raw string) (V, error) {
	var v V
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, &DelegateError{TypeRef: fmt.Sprintf("%T", v), Err: err}
	}
	return v, nil
}
