package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// Постоянные занятия на гончарном круге, которые идут вне зависимости от настроек расписания
var pottersWheelAdditions = map[time.Weekday]types.TimeString{
	time.Tuesday:   "19:00",
	time.Wednesday: "11:00",
}

// FixedSlotTimes возвращает отсортированный список времени постоянных занятий
// для техники technique на дату date.
//
// Правила:
// - override на дату со slots=nil (или сам override=nil) - постоянных занятий нет
// - иначе берем slots из override, если он есть, либо расписание дня недели
// - фильтруем по технике, нормализуем "H:MM" -> "HH:MM", убираем дубли
// - для гончарного круга добавляем вторник 19:00 и среду 11:00
//
// Некорректное время в настройках пропускается.
func FixedSlotTimes(
	date time.Time,
	technique domain.Technique,
	availability domain.WeeklyAvailability,
	overrides domain.ScheduleOverrides,
) []types.TimeString {
	dateKey := date.Format(domain.DateFormat)

	var definitions []domain.SlotDefinition
	override, hasOverride := overrides[dateKey]
	switch {
	case hasOverride && override.IsClosed():
		return []types.TimeString{}
	case hasOverride:
		definitions = override.Slots
	default:
		definitions = availability[domain.WeekdayKey(date)]
	}

	seen := make(map[types.TimeString]struct{}, len(definitions)+1)
	for _, def := range definitions {
		if def.Technique != technique {
			continue
		}
		normalized, ok := types.Normalize(def.Time)
		if !ok {
			continue
		}
		seen[normalized] = struct{}{}
	}

	if technique == domain.TechniquePottersWheel {
		if extra, ok := pottersWheelAdditions[date.Weekday()]; ok {
			seen[extra] = struct{}{}
		}
	}

	result := make([]types.TimeString, 0, len(seen))
	for t := range seen {
		result = append(result, t)
	}
	// Нормализованные "HH:MM" сортируются лексикографически
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	return result
}
