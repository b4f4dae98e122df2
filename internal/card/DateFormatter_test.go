package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFormatter_Format(t *testing.T) {
	f := newTestFormatter(t)

	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"midnight shows 12", time.Date(2024, 1, 5, 0, 7, 0, 0, time.UTC), "2024. 1. 5. at 오전 12:07"},
		{"morning", time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC), "2024. 1. 5. at 오전 9:30"},
		{"last morning minute", time.Date(2024, 1, 5, 11, 59, 0, 0, time.UTC), "2024. 1. 5. at 오전 11:59"},
		{"noon", time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), "2024. 1. 5. at 오후 12:00"},
		{"afternoon", time.Date(2024, 12, 25, 13, 5, 0, 0, time.UTC), "2024. 12. 25. at 오후 1:05"},
		{"late evening", time.Date(2024, 12, 25, 23, 45, 0, 0, time.UTC), "2024. 12. 25. at 오후 11:45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Format(tt.at))
		})
	}
}

func TestDateFormatter_ConvertsToConfiguredZone(t *testing.T) {
	conf := testCardConfig()
	conf.Timezone = "Asia/Seoul"
	f, err := NewDateFormatter(conf)
	require.NoError(t, err)

	// 15:10 UTC is 00:10 the next day in Seoul
	assert.Equal(t, "2024. 1. 6. at 오전 12:10", f.Format(time.Date(2024, 1, 5, 15, 10, 0, 0, time.UTC)))
}

func TestDateFormatter_CustomMarkers(t *testing.T) {
	conf := testCardConfig()
	conf.MorningMarker = "AM"
	conf.AfternoonMarker = "PM"
	conf.DateLayout = "2006/1/2"
	f, err := NewDateFormatter(conf)
	require.NoError(t, err)

	assert.Equal(t, "2024/3/9 at PM 6:04", f.Format(time.Date(2024, 3, 9, 18, 4, 0, 0, time.UTC)))
}

func TestNewDateFormatter_InvalidTimezone(t *testing.T) {
	conf := testCardConfig()
	conf.Timezone = "Not/AZone"
	_, err := NewDateFormatter(conf)
	assert.Error(t, err)
}
