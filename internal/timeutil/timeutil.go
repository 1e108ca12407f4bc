// Package timeutil parses the timestamp shapes the upstream API emits and
// formats them for display.
package timeutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ISOLayout is the canonical wire form used for locally generated timestamps.
const ISOLayout = "2006-01-02T15:04:05.000Z"

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
}

// Server LocalDateTime values carry no zone and are read as local time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// Parse reads an ISO-8601 timestamp. Date-only values are UTC midnight, zone-less
// date-times are local. ok is false for empty or unparseable input.
func Parse(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ISO renders t the way locally created entries are stamped.
func ISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

var fractionRe = regexp.MustCompile(`\.\d{3,}`)

// FormatDateTime turns 2026-01-30T13:02:09.123 into 2026-01-30-13:02:09.
func FormatDateTime(iso string) string {
	if iso == "" {
		return ""
	}
	return fractionRe.ReplaceAllString(strings.Replace(iso, "T", "-", 1), "")
}

// FormatDate renders a date as 2026年1月30日; unparseable input is returned as is.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	t, ok := Parse(s)
	if !ok {
		return s
	}
	if len(strings.TrimSpace(s)) != len("2006-01-02") {
		t = t.Local()
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}

// Flexible accepts either an ISO string or the legacy numeric tuple
// [year, month(1-based), day, hour, minute, second(, nanos)] that older
// server builds serialize LocalDateTime as.
type Flexible struct {
	Text  string
	Parts []int
}

func (f *Flexible) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = Flexible{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Flexible{Text: s}
		return nil
	}
	var nums []float64
	if err := json.Unmarshal(b, &nums); err != nil {
		return fmt.Errorf("timestamp must be a string or numeric tuple: %w", err)
	}
	parts := make([]int, len(nums))
	for i, n := range nums {
		parts[i] = int(n)
	}
	*f = Flexible{Parts: parts}
	return nil
}

func (f Flexible) MarshalJSON() ([]byte, error) {
	if f.Parts != nil {
		return json.Marshal(f.Parts)
	}
	return json.Marshal(f.Text)
}

// Time resolves the value. Tuples need at least year, month and day; missing
// trailing components are 0. Anything unusable resolves to now().
func (f Flexible) Time(now func() time.Time) time.Time {
	if f.Parts != nil {
		if len(f.Parts) < 3 {
			return now()
		}
		p := make([]int, 7)
		copy(p, f.Parts)
		return time.Date(p[0], time.Month(p[1]), p[2], p[3], p[4], p[5], p[6], time.Local)
	}
	if t, ok := Parse(f.Text); ok {
		return t
	}
	return now()
}
