package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// generateGrid генерирует время начала занятий с шагом step от открытия до закрытия
// Занятие должно закончиться не позже закрытия
func generateGrid(hours StudioHours) []types.TimeString {
	if hours.StepMinutes <= 0 || hours.OpenTime.IsZero() || hours.CloseTime.IsZero() {
		return []types.TimeString{}
	}

	duration := hours.ClassDurationMinutes
	if duration <= 0 {
		duration = hours.StepMinutes
	}

	grid := make([]types.TimeString, 0)
	current := hours.OpenTime

	for current.IsBefore(hours.CloseTime) {
		end, err := current.AddMinutes(duration)
		if err != nil || end.IsAfter(hours.CloseTime) {
			break
		}
		grid = append(grid, current)

		current, err = current.AddMinutes(hours.StepMinutes)
		if err != nil {
			break
		}
	}

	return grid
}

// mergeTimes объединяет списки времени без дублей, результат отсортирован
func mergeTimes(lists ...[]types.TimeString) []types.TimeString {
	seen := make(map[types.TimeString]struct{})
	for _, list := range lists {
		for _, t := range list {
			if normalized, ok := types.Normalize(t.String()); ok {
				seen[normalized] = struct{}{}
			}
		}
	}

	result := make([]types.TimeString, 0, len(seen))
	for t := range seen {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// dropPastTimes убирает время, до которого осталось меньше minNoticeMinutes
// Для дат после сегодняшней возвращает список без изменений
func dropPastTimes(times []types.TimeString, date, now time.Time, minNoticeMinutes int) []types.TimeString {
	if !isSameDay(date, now) {
		return times
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	threshold := nowMinutes + minNoticeMinutes

	result := make([]types.TimeString, 0, len(times))
	for _, t := range times {
		minutes, err := t.Minutes()
		if err != nil {
			continue
		}
		if minutes >= threshold {
			result = append(result, t)
		}
	}
	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
