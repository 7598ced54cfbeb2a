package booking

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

// slotJSON элемент колонки slots
type slotJSON struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// assignmentJSON элемент колонки technique_assignments
type assignmentJSON struct {
	ParticipantNumber int    `json:"participantNumber"`
	Technique         string `json:"technique"`
}

func encodeSlots(slots []domain.BookingSlot) ([]byte, error) {
	rows := make([]slotJSON, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, slotJSON{Date: s.Date, Time: s.Time})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: slots: %w", ErrEncode, err)
	}
	return data, nil
}

func decodeSlots(data []byte) ([]domain.BookingSlot, error) {
	if len(data) == 0 {
		return []domain.BookingSlot{}, nil
	}
	var rows []slotJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: slots: %w", ErrDecode, err)
	}
	slots := make([]domain.BookingSlot, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, domain.BookingSlot{Date: r.Date, Time: r.Time})
	}
	return slots, nil
}

func encodeAssignments(assignments []domain.ParticipantTechnique) ([]byte, error) {
	rows := make([]assignmentJSON, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, assignmentJSON{ParticipantNumber: a.ParticipantNumber, Technique: string(a.Technique)})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: technique_assignments: %w", ErrEncode, err)
	}
	return data, nil
}

func decodeAssignments(data []byte) ([]domain.ParticipantTechnique, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows []assignmentJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: technique_assignments: %w", ErrDecode, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	assignments := make([]domain.ParticipantTechnique, 0, len(rows))
	for _, r := range rows {
		assignments = append(assignments, domain.ParticipantTechnique{
			ParticipantNumber: r.ParticipantNumber,
			Technique:         domain.Technique(r.Technique),
		})
	}
	return assignments, nil
}

// dateContainment фильтр для GIN индекса: [{"date": "YYYY-MM-DD"}]
func dateContainment(date string) (string, error) {
	data, err := json.Marshal([]map[string]string{{"date": date}})
	if err != nil {
		return "", fmt.Errorf("%w: date filter: %w", ErrEncode, err)
	}
	return string(data), nil
}
