package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinute(t *testing.T) {
	assert.Equal(t, "08:00", FormatMinute(480))
	assert.Equal(t, "13:30", FormatMinute(810))
	assert.Equal(t, "19:30", FormatMinute(1170))
}

func TestParseTimeOfDay(t *testing.T) {
	m, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, m)

	for _, bad := range []string{"8h30", "25:00", "10:75", ""} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}
