package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

func TestFixedSlotTimes(t *testing.T) {
	weekly := domain.WeeklyAvailability{
		"thursday": {
			{Time: "18:00", Technique: domain.TechniquePottersWheel},
			{Time: "10:00", Technique: domain.TechniquePottersWheel},
			{Time: "10:00", Technique: domain.TechniquePottersWheel},
			{Time: "9:30", Technique: domain.TechniquePottersWheel},
			{Time: "11:00", Technique: domain.TechniquePainting},
			{Time: "not a time", Technique: domain.TechniquePottersWheel},
		},
		"tuesday": {
			{Time: "10:00", Technique: domain.TechniquePottersWheel},
		},
		"wednesday": {
			{Time: "17:00", Technique: domain.TechniqueHandModeling},
		},
	}

	tests := []struct {
		name      string
		date      string
		technique domain.Technique
		overrides domain.ScheduleOverrides
		want      []types.TimeString
	}{
		{
			name:      "weekday default is filtered, normalized, deduplicated and sorted",
			date:      "2025-03-13",
			technique: domain.TechniquePottersWheel,
			want:      []types.TimeString{"09:30", "10:00", "18:00"},
		},
		{
			name:      "other technique on same day",
			date:      "2025-03-13",
			technique: domain.TechniquePainting,
			want:      []types.TimeString{"11:00"},
		},
		{
			name:      "tuesday adds 19:00 for potters wheel",
			date:      "2025-03-11",
			technique: domain.TechniquePottersWheel,
			want:      []types.TimeString{"10:00", "19:00"},
		},
		{
			name:      "wednesday adds 11:00 for potters wheel even without configured slots",
			date:      "2025-03-12",
			technique: domain.TechniquePottersWheel,
			want:      []types.TimeString{"11:00"},
		},
		{
			name:      "wednesday addition does not apply to other techniques",
			date:      "2025-03-12",
			technique: domain.TechniqueHandModeling,
			want:      []types.TimeString{"17:00"},
		},
		{
			name:      "closed override with nil slots",
			date:      "2025-03-11",
			technique: domain.TechniquePottersWheel,
			overrides: domain.ScheduleOverrides{"2025-03-11": {Slots: nil}},
			want:      []types.TimeString{},
		},
		{
			name:      "closed override with nil entry",
			date:      "2025-03-13",
			technique: domain.TechniquePottersWheel,
			overrides: domain.ScheduleOverrides{"2025-03-13": nil},
			want:      []types.TimeString{},
		},
		{
			name:      "replacement override ignores weekday default but keeps the tuesday addition",
			date:      "2025-03-11",
			technique: domain.TechniquePottersWheel,
			overrides: domain.ScheduleOverrides{"2025-03-11": {Slots: []domain.SlotDefinition{
				{Time: "12:00", Technique: domain.TechniquePottersWheel},
			}}},
			want: []types.TimeString{"12:00", "19:00"},
		},
		{
			name:      "override for another date has no effect",
			date:      "2025-03-13",
			technique: domain.TechniquePottersWheel,
			overrides: domain.ScheduleOverrides{"2025-03-14": nil},
			want:      []types.TimeString{"09:30", "10:00", "18:00"},
		},
		{
			name:      "day without configuration",
			date:      "2025-03-16",
			technique: domain.TechniquePainting,
			want:      []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := parseDate(tt.date)
			assert.NoError(t, err)

			got := FixedSlotTimes(date, tt.technique, weekly, tt.overrides)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFixedSlotTimes_EmptyInput(t *testing.T) {
	got := FixedSlotTimes(thursday, domain.TechniquePainting, nil, nil)
	assert.Empty(t, got)
}
