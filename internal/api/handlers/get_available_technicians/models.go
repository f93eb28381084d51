package get_available_technicians

import (
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	getAvailableTechnicians "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_available_technicians"
)

// AvailableTechniciansResponse HTTP response model
type AvailableTechniciansResponse struct {
	City        string               `json:"city"`
	Date        string               `json:"date"`
	Period      string               `json:"period"`
	DayType     string               `json:"dayType"`
	Bookable    bool                 `json:"bookable"`
	Technicians []TechnicianResponse `json:"technicians"`
}

// TechnicianResponse техник со свободными слотами
type TechnicianResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	Used      int     `json:"used"`
	Remaining int     `json:"remaining"`
	Occupancy float64 `json:"occupancy"`
}

// ToUseCaseRequest парсит query параметры
func ToUseCaseRequest(city, dateStr, periodStr string) (*getAvailableTechnicians.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	period, err := domain.ParsePeriod(periodStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableTechnicians.Request{
		City:   city,
		Date:   date,
		Period: period,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTechnicians.Response) *AvailableTechniciansResponse {
	out := &AvailableTechniciansResponse{
		City:        resp.City,
		Date:        domain.FormatDate(resp.Date),
		Period:      string(resp.Period),
		DayType:     resp.DayType.String(),
		Bookable:    resp.Bookable,
		Technicians: make([]TechnicianResponse, 0, len(resp.Technicians)),
	}
	for _, t := range resp.Technicians {
		out.Technicians = append(out.Technicians, TechnicianResponse{
			ID:        t.ID,
			Name:      t.Name,
			Capacity:  t.Capacity,
			Used:      t.Used,
			Remaining: t.Remaining,
			Occupancy: t.Occupancy,
		})
	}
	return out
}
