package get_day_bookings

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/bookings/models"
)

var errMissingDate = errors.New("date is required")

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(dateStr, statusStr, includeInactiveStr string) (*models.GetDayBookingsRequest, error) {
	if dateStr == "" {
		return nil, errMissingDate
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.GetDayBookingsRequest{
		Date:            date,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
