package analytics

import (
	"net/url"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/analytics/models"
)

// ReportResponse HTTP response model
type ReportResponse struct {
	From        string                   `json:"from"`
	To          string                   `json:"to"`
	City        string                   `json:"city,omitempty"`
	Total       int                      `json:"total"`
	ByStatus    map[string]int           `json:"byStatus"`
	ByExecution map[string]int           `json:"byExecution"`
	ByKind      map[string]int           `json:"byKind"`
	ByCity      map[string]int           `json:"byCity"`
	ByPeriod    map[string]int           `json:"byPeriod"`
	Technicians []TechnicianLoadResponse `json:"technicians"`
	Load        LoadStatsResponse        `json:"load"`
}

// TechnicianLoadResponse загрузка техника
type TechnicianLoadResponse struct {
	TechnicianID   string  `json:"technicianId"`
	TechnicianName string  `json:"technicianName"`
	Bookings       int     `json:"bookings"`
	Completed      int     `json:"completed"`
	Unfinished     int     `json:"unfinished"`
	CompletionRate float64 `json:"completionRate"`
	Capacity       int     `json:"capacity"`
	Utilisation    float64 `json:"utilisation"`
}

// LoadStatsResponse распределение загрузки
type LoadStatsResponse struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// ToServiceRequest парсит query параметры from, to, city
func ToServiceRequest(q url.Values) (*models.ReportRequest, error) {
	req := &models.ReportRequest{City: q.Get("city")}
	if v := q.Get("from"); v != "" {
		from, err := domain.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := domain.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}
	return req, nil
}

// FromServiceResponse конвертирует отчет в HTTP response
func FromServiceResponse(r *models.Report) *ReportResponse {
	out := &ReportResponse{
		From:        r.From,
		To:          r.To,
		City:        r.City,
		Total:       r.Total,
		ByStatus:    r.ByStatus,
		ByExecution: r.ByExecution,
		ByKind:      r.ByKind,
		ByCity:      r.ByCity,
		ByPeriod:    r.ByPeriod,
		Technicians: make([]TechnicianLoadResponse, 0, len(r.Technicians)),
		Load: LoadStatsResponse{
			Mean:   r.Load.Mean,
			StdDev: r.Load.StdDev,
			Min:    r.Load.Min,
			Max:    r.Load.Max,
		},
	}
	for _, t := range r.Technicians {
		out.Technicians = append(out.Technicians, TechnicianLoadResponse(t))
	}
	return out
}
