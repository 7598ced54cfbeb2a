package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	AdminID            int64  `json:"adminId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetDayBookingsRequest запрос на получение бронирований на дату
type GetDayBookingsRequest struct {
	Date            time.Time `json:"date"`
	Status          *string   `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отмененные и истекшие
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDayBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	date := r.Date
	filter := domain.BookingsFilter{
		Date:            &date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SlotResponse слот бронирования
type SlotResponse struct {
	Date string `json:"date"` // "2025-03-13"
	Time string `json:"time"` // "10:00"
}

// AssignmentResponse техника участника группового занятия
type AssignmentResponse struct {
	ParticipantNumber int    `json:"participantNumber"`
	Technique         string `json:"technique"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                   int64                `json:"id"`
	Reference            string               `json:"reference"`
	ProductType          string               `json:"productType"`
	ProductName          string               `json:"productName"`
	Technique            *string              `json:"technique,omitempty"`
	ParticipantCount     int                  `json:"participantCount"`
	Slots                []SlotResponse       `json:"slots"`
	TechniqueAssignments []AssignmentResponse `json:"techniqueAssignments,omitempty"`
	Status               string               `json:"status"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		ProductType:        string(b.Product.Type),
		ProductName:        b.Product.Name,
		ParticipantCount:   b.ParticipantCount,
		Slots:              make([]SlotResponse, 0, len(b.Slots)),
		Status:             string(b.Status),
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Для старых записей техника не сохранена, показываем выведенную
	if technique, ok := domain.ResolveTechnique(b); ok {
		t := string(technique)
		resp.Technique = &t
	}

	for _, s := range b.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{Date: s.Date, Time: s.Time})
	}

	for _, a := range b.TechniqueAssignments {
		resp.TechniqueAssignments = append(resp.TechniqueAssignments, AssignmentResponse{
			ParticipantNumber: a.ParticipantNumber,
			Technique:         string(a.Technique),
		})
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
