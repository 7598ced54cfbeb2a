package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CeramicsBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Product              ProductRequest      `json:"product"`
	Technique            *string             `json:"technique,omitempty" validate:"omitempty,oneof=potters_wheel hand_modeling painting"`
	ParticipantCount     int                 `json:"participantCount" validate:"required,min=1,max=30"`
	Slots                []SlotRequest       `json:"slots" validate:"required,min=1,max=12,dive"`
	TechniqueAssignments []AssignmentRequest `json:"techniqueAssignments,omitempty" validate:"omitempty,dive"`
	CustomerName         string              `json:"customerName" validate:"required,max=200"`
	CustomerEmail        string              `json:"customerEmail" validate:"required,email"`
	CustomerPhone        *string             `json:"customerPhone,omitempty" validate:"omitempty,max=32"`
	Notes                *string             `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ProductRequest продукт, для которого создается бронирование
type ProductRequest struct {
	Type      string  `json:"type" validate:"required"`
	Name      string  `json:"name" validate:"required,max=200"`
	Technique *string `json:"technique,omitempty"`
}

// SlotRequest дата и время занятия
type SlotRequest struct {
	Date string `json:"date" validate:"required"` // "2025-03-13"
	Time string `json:"time" validate:"required"` // "10:00"
}

// AssignmentRequest техника участника группового занятия
type AssignmentRequest struct {
	ParticipantNumber int    `json:"participantNumber" validate:"required,min=1"`
	Technique         string `json:"technique" validate:"required,oneof=potters_wheel hand_modeling painting"`
}

// SlotUnavailableResponse тело ответа 409
type SlotUnavailableResponse struct {
	Error         string `json:"error"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	BlockedReason string `json:"blockedReason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат и времени)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	slots := make([]createBooking.SlotRequest, 0, len(r.Slots))
	for _, s := range r.Slots {
		date, err := time.Parse(domain.DateFormat, s.Date)
		if err != nil {
			return nil, fmt.Errorf("slot date %q: %w", s.Date, err)
		}
		at, err := types.NewTimeStringFromString(s.Time)
		if err != nil {
			return nil, fmt.Errorf("slot time %q: %w", s.Time, err)
		}
		slots = append(slots, createBooking.SlotRequest{Date: date, Time: at})
	}

	assignments := make([]domain.ParticipantTechnique, 0, len(r.TechniqueAssignments))
	for _, a := range r.TechniqueAssignments {
		assignments = append(assignments, domain.ParticipantTechnique{
			ParticipantNumber: a.ParticipantNumber,
			Technique:         domain.Technique(a.Technique),
		})
	}

	return &createBooking.Request{
		Product: domain.Product{
			Type:    domain.ProductType(r.Product.Type),
			Name:    r.Product.Name,
			Details: domain.ProductDetails{Technique: toTechnique(r.Product.Technique)},
		},
		Technique:            toTechnique(r.Technique),
		ParticipantCount:     r.ParticipantCount,
		Slots:                slots,
		TechniqueAssignments: assignments,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		Notes:                r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}

func toTechnique(s *string) *domain.Technique {
	if s == nil {
		return nil
	}
	t := domain.Technique(*s)
	return &t
}
