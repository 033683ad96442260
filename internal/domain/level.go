package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Level is a quantized ILR proficiency rating. The zero value is LevelUnknown.
type Level uint8

const (
	LevelUnknown Level = iota
	Level1
	Level1Plus
	Level2
	Level2Plus
	Level3
	Level3Plus
	Level4
	Level4Plus
)

// UnknownToken is the canonical spelling of LevelUnknown.
const UnknownToken = "unknown"

var levelTokens = [...]string{
	LevelUnknown: UnknownToken,
	Level1:       "1.0",
	Level1Plus:   "1.5",
	Level2:       "2.0",
	Level2Plus:   "2.5",
	Level3:       "3.0",
	Level3Plus:   "3.5",
	Level4:       "4.0",
	Level4Plus:   "4.5",
}

// labelPrefixes are checked in order, so longer labels sharing a first letter come first.
var labelPrefixes = []string{"ILR", "Level", "L"}

const labelSeparators = ":-= "

// Levels returns the fixed ordered level set, lowest first.
func Levels() []Level {
	return []Level{Level1, Level1Plus, Level2, Level2Plus, Level3, Level3Plus, Level4, Level4Plus}
}

func (l Level) String() string {
	if int(l) < len(levelTokens) {
		return levelTokens[l]
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// Known reports whether l is one of the canonical levels.
func (l Level) Known() bool {
	return l > LevelUnknown && l <= Level4Plus
}

// Value returns the numeric rating; ok is false for LevelUnknown.
func (l Level) Value() (float64, bool) {
	if !l.Known() {
		return 0, false
	}
	return float64(l+1) / 2, true
}

// LookupLevel matches token exactly against the canonical spellings, including "unknown".
func LookupLevel(token string) (Level, bool) {
	for i, t := range levelTokens {
		if t == token {
			return Level(i), true
		}
	}
	return LevelUnknown, false
}

// NormalizeLevel maps an arbitrary raw level value to a canonical Level.
// Rules are tried in order: exact token, numeric coercion to one decimal,
// then a known label prefix ("ILR 2", "Level: 2.5") stripped and re-checked.
func NormalizeLevel(raw any) Level {
	s, isNumber := levelText(raw)
	if s == "" {
		return LevelUnknown
	}
	if isNumber {
		if l, ok := numericLevel(s); ok {
			return l
		}
		return LevelUnknown
	}
	if l, ok := matchLevel(s); ok {
		return l
	}
	if rest, ok := stripLabel(s); ok {
		if l, ok := matchLevel(rest); ok {
			return l
		}
	}
	return LevelUnknown
}

func matchLevel(s string) (Level, bool) {
	if l, ok := LookupLevel(s); ok && l.Known() {
		return l, true
	}
	return numericLevel(s)
}

func numericLevel(s string) (Level, bool) {
	f, ok := parseDecimal(s)
	if !ok {
		return LevelUnknown, false
	}
	l, ok := LookupLevel(strconv.FormatFloat(f, 'f', 1, 64))
	if !ok || !l.Known() {
		return LevelUnknown, false
	}
	return l, true
}

// parseDecimal accepts finite decimal numbers only; hex floats, NaN and Inf are rejected.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stripLabel(s string) (string, bool) {
	for _, label := range labelPrefixes {
		if len(s) <= len(label) || !strings.EqualFold(s[:len(label)], label) {
			continue
		}
		if !strings.ContainsRune(labelSeparators, rune(s[len(label)])) {
			continue
		}
		rest := strings.TrimLeft(s[len(label):], labelSeparators)
		if rest != "" {
			return rest, true
		}
	}
	return "", false
}

func levelText(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(v), false
	case []byte:
		return strings.TrimSpace(string(v)), false
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case Level:
		if v.Known() {
			return v.String(), false
		}
		return "", false
	case fmt.Stringer:
		return strings.TrimSpace(v.String()), false
	default:
		return strings.TrimSpace(fmt.Sprint(v)), false
	}
}
