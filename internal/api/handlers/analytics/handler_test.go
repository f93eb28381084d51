package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/analytics"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/analytics/models"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
)

type fakeAnalytics struct {
	req *models.ReportRequest
	err error
}

func (f *fakeAnalytics) Report(_ context.Context, req *models.ReportRequest) (*models.Report, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Report{
		From:  "2025-03-01",
		To:    "2025-03-31",
		Total: 3,
		Technicians: []models.TechnicianLoad{
			{TechnicianID: "A", Bookings: 3, Completed: 1, CompletionRate: 1.0 / 3},
		},
	}, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeAnalytics{}
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/report?from=2025-03-01&to=2025-03-31&city=Campinas", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.req.From)
	require.NotNil(t, svc.req.To)
	assert.Equal(t, "Campinas", svc.req.City)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Technicians, 1)
	assert.Equal(t, "A", resp.Technicians[0].TechnicianID)
}

func TestHandle_DefaultsLeaveRangeOpen(t *testing.T) {
	svc := &fakeAnalytics{}
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/report", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.req.From)
	assert.Nil(t, svc.req.To)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeAnalytics{}, logger.Nop())
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/report?from=03/01/2025", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h = NewHandler(&fakeAnalytics{err: analytics.ErrInvalidRange}, logger.Nop())
	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/report", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h = NewHandler(&fakeAnalytics{err: analytics.ErrInternal}, logger.Nop())
	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/report", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
