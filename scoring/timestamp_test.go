package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_SpaceSeparated(t *testing.T) {
	parsed := ParseTimestamp("2024-01-05 23:10")

	require.NotNil(t, parsed.Hour)
	assert.Equal(t, 23, *parsed.Hour)
	assert.Equal(t, 83400, parsed.Seconds)
	assert.Equal(t, "2024-01-05 23:10:00", parsed.Raw)
}

func TestParseTimestamp_Empty(t *testing.T) {
	parsed := ParseTimestamp("")

	assert.Nil(t, parsed.Hour)
	assert.Equal(t, 0, parsed.Seconds)
	assert.Equal(t, "", parsed.Raw)
}

func TestParseTimestamp_ISOForms(t *testing.T) {
	cases := []struct {
		in      string
		hour    int
		seconds int
		raw     string
	}{
		{"2024-03-01T02:15", 2, 2*3600 + 15*60, "2024-03-01 02:15:00"},
		{"2024-03-01T02:15:30", 2, 2*3600 + 15*60 + 30, "2024-03-01 02:15:30"},
		{"2024-03-01T02:15:30.250", 2, 2*3600 + 15*60 + 30, "2024-03-01 02:15:30"},
		{"2024-03-01T18:00:00+05:30", 18, 18 * 3600, "2024-03-01 18:00:00"},
		{"2024-03-01T18:00:00Z", 18, 18 * 3600, "2024-03-01 18:00:00"},
		{"2024-03-01 07:45:10", 7, 7*3600 + 45*60 + 10, "2024-03-01 07:45:10"},
		{"2024-03-01", 0, 0, "2024-03-01 00:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			parsed := ParseTimestamp(tc.in)
			require.NotNil(t, parsed.Hour)
			assert.Equal(t, tc.hour, *parsed.Hour)
			assert.Equal(t, tc.seconds, parsed.Seconds)
			assert.Equal(t, tc.raw, parsed.Raw)
		})
	}
}

func TestParseTimestamp_Unparseable(t *testing.T) {
	for _, in := range []string{"not a date", "2024-13-01 10:00", "2024-01-05 25:00", "10:30"} {
		parsed := ParseTimestamp(in)
		assert.Nil(t, parsed.Hour, in)
		assert.Equal(t, 0, parsed.Seconds, in)
		assert.Equal(t, in, parsed.Raw, in)
	}
}

func TestParseTimestamp_WhitespaceOnlyIsEchoed(t *testing.T) {
	parsed := ParseTimestamp("   ")

	assert.Nil(t, parsed.Hour)
	assert.Equal(t, 0, parsed.Seconds)
	assert.Equal(t, "   ", parsed.Raw)
}
