package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

func TestParse(t *testing.T) {
	got, ok := Parse("2024-03-05T09:30:00Z")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)))

	got, ok = Parse("2024-03-05T09:30:00")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local)))

	got, ok = Parse("2024-03-05")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))

	_, ok = Parse("")
	assert.False(t, ok)
	_, ok = Parse("yesterday")
	assert.False(t, ok)
}

func TestFlexibleTuple(t *testing.T) {
	var f Flexible
	require.NoError(t, json.Unmarshal([]byte(`[2024,3,5,9,30,0]`), &f))
	assert.True(t, f.Time(fixedNow).Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local)))

	require.NoError(t, json.Unmarshal([]byte(`[2024,3,5]`), &f))
	assert.True(t, f.Time(fixedNow).Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)))

	require.NoError(t, json.Unmarshal([]byte(`[2024,3]`), &f))
	assert.Equal(t, fixedNow(), f.Time(fixedNow))
}

func TestFlexibleString(t *testing.T) {
	var f Flexible
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T09:30:00Z"`), &f))
	assert.True(t, f.Time(fixedNow).Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)))

	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.Equal(t, fixedNow(), f.Time(fixedNow))

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "2026-01-30-13:02:09", FormatDateTime("2026-01-30T13:02:09.123"))
	assert.Equal(t, "", FormatDateTime(""))
	assert.Equal(t, "2026年1月30日", FormatDate("2026-01-30"))
	assert.Equal(t, "not a date", FormatDate("not a date"))
	assert.Equal(t, "2024-03-05T09:30:00.000Z", ISO(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)))
}
