package list_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-FieldScheduler/pkg/ptr"
)

// ToServiceRequest формирует фильтр из query параметров
func ToServiceRequest(q url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{
		City:         q.Get("city"),
		TechnicianID: q.Get("technicianId"),
	}

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
	if v := q.Get("date"); v != "" {
		day, err := domain.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.From, req.To = ptr.Ptr(day), ptr.Ptr(day)
	}
	if v := q.Get("status"); v != "" {
		req.Status = ptr.Ptr(v)
	}
	return req, nil
}
