package card

import (
	"fmt"
	"stampcard/internal/structures"
	"time"
)

// DateFormatter renders capture instants as "{date} at {marker} {h}:{mm}".
type DateFormatter struct {
	layout    string
	morning   string
	afternoon string
	loc       *time.Location
}

func NewDateFormatter(conf structures.CardConfig) (*DateFormatter, error) {
	loc := time.Local
	if conf.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(conf.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", conf.Timezone, err)
		}
	}
	return &DateFormatter{
		layout:    conf.DateLayout,
		morning:   conf.MorningMarker,
		afternoon: conf.AfternoonMarker,
		loc:       loc,
	}, nil
}

func (f *DateFormatter) Format(t time.Time) string {
	t = t.In(f.loc)

	hours := t.Hour()
	marker := f.morning
	if hours >= 12 {
		marker = f.afternoon
	}
	hours %= 12
	if hours == 0 {
		hours = 12
	}

	return fmt.Sprintf("%s at %s %d:%02d", t.Format(f.layout), marker, hours, t.Minute())
}
