package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

func TestDecodeOverrides_DistinguishesClosedAndEmpty(t *testing.T) {
	data := []byte(`{
		"2025-03-11": null,
		"2025-03-12": {"slots": null},
		"2025-03-13": {"slots": []},
		"2025-03-14": {"slots": [{"time": "9:00", "technique": "painting"}]}
	}`)

	overrides, err := decodeOverrides(data)
	require.NoError(t, err)
	require.Len(t, overrides, 4)

	assert.Nil(t, overrides["2025-03-11"])
	assert.True(t, overrides["2025-03-12"].IsClosed())

	require.NotNil(t, overrides["2025-03-13"])
	assert.False(t, overrides["2025-03-13"].IsClosed())
	assert.Empty(t, overrides["2025-03-13"].Slots)

	assert.Equal(t, []domain.SlotDefinition{{Time: "9:00", Technique: domain.TechniquePainting}},
		overrides["2025-03-14"].Slots)
}

func TestEncodeOverrides_KeepsClosedDays(t *testing.T) {
	data, err := encodeOverrides(domain.ScheduleOverrides{
		"2025-03-11": nil,
		"2025-03-13": {Slots: []domain.SlotDefinition{}},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"2025-03-11": {"slots": null}, "2025-03-13": {"slots": []}}`, string(data))
}

func TestDecodeAvailability(t *testing.T) {
	availability, err := decodeAvailability([]byte(`{"thursday": [{"time": "10:00", "technique": "potters_wheel"}]}`))
	require.NoError(t, err)

	assert.Equal(t, domain.WeeklyAvailability{
		"thursday": {{Time: "10:00", Technique: domain.TechniquePottersWheel}},
	}, availability)

	_, err = decodeAvailability([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrDecode)
}
