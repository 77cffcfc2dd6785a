package hpf

import (
	"fmt"
	"strconv"
	"strings"
)

// Timestamp is a recording timestamp decomposed from the instrument's
// "YYYY-MM-DD HH.MM.SS.sss" form. The zero value is the "unset" sentinel.
type Timestamp struct {
	Raw    string
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	Subsec int
	// FracSecond is the seconds field including its fractional part.
	FracSecond float64
}

// ParseTimestamp decomposes s positionally. An empty string, or one whose
// leading integer is zero, yields the zero timestamp.
func ParseTimestamp(s string) Timestamp {
	t := Timestamp{Raw: s}
	if s == "" || leadingInt(s) == 0 {
		return t
	}
	t.Year = leadingInt(field(s, 0, 4))
	t.Month = leadingInt(field(s, 5, 2))
	t.Day = leadingInt(field(s, 8, 2))
	t.Hour = leadingInt(field(s, 11, 2))
	t.Minute = leadingInt(field(s, 14, 2))
	t.Second = leadingInt(field(s, 17, 2))
	t.Subsec = leadingInt(field(s, 20, len(s)))
	t.FracSecond = leadingFloat(field(s, 17, len(s)))
	return t
}

// IsZero reports whether t is the unset sentinel.
func (t Timestamp) IsZero() bool {
	return t.Year == 0 && t.Month == 0 && t.Day == 0 &&
		t.Hour == 0 && t.Minute == 0 && t.Second == 0 && t.Subsec == 0
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d|%02d.%02d.%02d.%d",
		t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Subsec)
}

// field returns up to n characters of s starting at off, empty when off is
// past the end. Short timestamp strings decompose to zero fields instead of
// failing.
func field(s string, off, n int) string {
	if off >= len(s) {
		return ""
	}
	if off+n > len(s) {
		return s[off:]
	}
	return s[off : off+n]
}

// leadingInt parses the leading decimal digits of s, ignoring anything after
// them. No digits means zero.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

// leadingFloat parses the leading decimal number of s, ignoring trailing text.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		ch := s[end]
		if ch == '.' && !seenDot {
			seenDot = true
		} else if ch < '0' || ch > '9' {
			break
		}
		end++
	}
	if end == 0 {
		return 0
	}
	f, _ := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	return f
}
