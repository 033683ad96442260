package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MinRangeBound and MaxRangeBound clamp every valid level range.
	MinRangeBound = 0.0
	MaxRangeBound = 5.0
)

// LevelRange is a validated low/high difficulty estimate. The zero value is invalid.
type LevelRange struct {
	low, high float64
	valid     bool
}

// InvalidRange is the sentinel for missing or malformed range data.
var InvalidRange = LevelRange{}

// NewLevelRange validates 0 <= low <= high <= 5.
func NewLevelRange(low, high float64) (LevelRange, bool) {
	if math.IsNaN(low) || math.IsNaN(high) {
		return InvalidRange, false
	}
	if low < MinRangeBound || high > MaxRangeBound || low > high {
		return InvalidRange, false
	}
	return LevelRange{low: low, high: high, valid: true}, true
}

// Valid reports whether the range carries usable bounds.
func (r LevelRange) Valid() bool {
	return r.valid
}

// Bounds returns low and high; ok is false for an invalid range.
func (r LevelRange) Bounds() (low, high float64, ok bool) {
	return r.low, r.high, r.valid
}

func (r LevelRange) String() string {
	if !r.valid {
		return "invalid"
	}
	return fmt.Sprintf("[%s, %s]",
		strconv.FormatFloat(r.low, 'f', -1, 64),
		strconv.FormatFloat(r.high, 'f', -1, 64))
}

// ParseLevelRange accepts a two-element pair, a bracketed list string
// ("[1.0, 2.0]", "['1.0', \"2.0\"]"), a Postgres array literal ("{1.0,2.0}")
// or a comma-separated pair ("1.0, 2.0").
// Anything else, or a pair failing validation, yields InvalidRange and false.
func ParseLevelRange(raw any) (LevelRange, bool) {
	switch v := raw.(type) {
	case nil:
		return InvalidRange, false
	case LevelRange:
		return v, v.valid
	case [2]float64:
		return NewLevelRange(v[0], v[1])
	case []float64:
		if len(v) != 2 {
			return InvalidRange, false
		}
		return NewLevelRange(v[0], v[1])
	case []string:
		return pairFromList(toAnySlice(v))
	case []any:
		return pairFromList(v)
	case []byte:
		return parseRangeString(string(v))
	case string:
		return parseRangeString(v)
	default:
		return InvalidRange, false
	}
}

func parseRangeString(s string) (LevelRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return InvalidRange, false
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var items []any
		if err := yaml.Unmarshal([]byte(s), &items); err != nil {
			return InvalidRange, false
		}
		return pairFromList(items)
	}

	// Postgres array literal, e.g. a numeric[] column exported as text.
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return InvalidRange, false
		}
		return pairFromList([]any{parts[0], parts[1]})
	}

	return InvalidRange, false
}

func pairFromList(items []any) (LevelRange, bool) {
	if len(items) != 2 {
		return InvalidRange, false
	}
	low, ok := toFloat(items[0])
	if !ok {
		return InvalidRange, false
	}
	high, ok := toFloat(items[1])
	if !ok {
		return InvalidRange, false
	}
	return NewLevelRange(low, high)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, ok := parseDecimal(n)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
