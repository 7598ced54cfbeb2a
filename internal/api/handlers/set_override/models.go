package set_override

import (
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

// SetOverrideRequest HTTP request model
// {"slots": null} закрывает день, {"slots": [...]} заменяет расписание дня недели
type SetOverrideRequest struct {
	Slots []models.SlotDefinition `json:"slots"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetOverrideRequest) ToServiceRequest(adminID int64, date string) *models.SetOverrideRequest {
	return &models.SetOverrideRequest{
		AdminID: adminID,
		Date:    date,
		Slots:   r.Slots,
	}
}
