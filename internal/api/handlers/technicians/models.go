package technicians

import (
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

// TechnicianRequest HTTP request model
type TechnicianRequest struct {
	Name     string          `json:"name"`
	Cities   []string        `json:"cities"`
	Capacity domain.Capacity `json:"capacity"`
}

// TechnicianResponse техник после изменения
type TechnicianResponse struct {
	Technician domain.Technician `json:"technician"`
	Warning    string            `json:"warning,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *TechnicianRequest) ToServiceRequest(id string) *admin.TechnicianRequest {
	return &admin.TechnicianRequest{
		ID:       id,
		Name:     r.Name,
		Cities:   r.Cities,
		Capacity: r.Capacity,
	}
}
