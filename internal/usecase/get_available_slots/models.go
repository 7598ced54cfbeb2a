package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// StudioHours сетка времени мастерской, из которой строятся варианты для проверки
type StudioHours struct {
	OpenTime                types.TimeString // Начало первого занятия
	CloseTime               types.TimeString // Время закрытия, занятие должно закончиться до него
	StepMinutes             int              // Шаг сетки
	ClassDurationMinutes    int              // Длительность занятия
	AdvanceBookingDays      int              // 0 = без ограничения
	MinBookingNoticeMinutes int              // Минимальное время до начала занятия
}

// Request модель запроса на получение доступности
type Request struct {
	Date         time.Time          // Дата (без времени)
	Technique    domain.Technique   // Техника
	Participants int                // Сколько мест нужно
	Times        []types.TimeString // Проверяемое время (опционально, по умолчанию - вся сетка дня)
}

// Response модель ответа с доступностью
type Response struct {
	Date         time.Time
	Technique    domain.Technique
	Participants int
	FixedTimes   []types.TimeString        // Постоянные занятия этой техники на дату
	Slots        []domain.SlotAvailability // Решение по каждому времени
}
