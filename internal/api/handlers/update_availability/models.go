package update_availability

import (
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

// UpdateAvailabilityRequest HTTP request model
// Ключи - дни недели в нижнем регистре ("monday" ... "sunday")
type UpdateAvailabilityRequest struct {
	Availability map[string][]models.SlotDefinition `json:"availability" validate:"required"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(adminID int64) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		AdminID:      adminID,
		Availability: r.Availability,
	}
}
