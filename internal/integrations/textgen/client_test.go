package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
)

type counter struct{ n int }

func (c *counter) Inc() { c.n++ }

var testBooking = domain.Booking{
	ID:             "b1",
	ClientName:     "Jane",
	City:           "Campinas",
	Date:           "2025-03-10",
	Period:         domain.PeriodMorning,
	TechnicianName: "Bob",
	Activity:       "Installation",
	Kind:           domain.KindStandard,
}

func TestGenerate_Success(t *testing.T) {
	var got GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(GenerateResponse{Text: "  Hi Jane!  "})
	}))
	defer srv.Close()

	fallbacks := &counter{}
	c := NewClient(srv.URL, "key", "small", time.Second, logger.Nop(), fallbacks)

	assert.Equal(t, "Hi Jane!", c.Generate(context.Background(), testBooking))
	assert.Equal(t, "small", got.Model)
	assert.Contains(t, got.Prompt, "Jane")
	assert.Contains(t, got.Prompt, "Installation")
	assert.Equal(t, 0, fallbacks.n)
}

func TestGenerate_FallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		apiKey  string
	}{
		{
			name:    "missing api key",
			handler: func(w http.ResponseWriter, r *http.Request) { t.Error("should not be called") },
		},
		{
			name:    "server error",
			apiKey:  "key",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		},
		{
			name:    "empty answer",
			apiKey:  "key",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"text":"   "}`)) },
		},
		{
			name:    "garbage",
			apiKey:  "key",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`nope`)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			fallbacks := &counter{}
			c := NewClient(srv.URL, tt.apiKey, "", time.Second, logger.Nop(), fallbacks)

			assert.Equal(t, FallbackMessage(testBooking), c.Generate(context.Background(), testBooking))
			assert.Equal(t, 1, fallbacks.n)
		})
	}
}

func TestFallbackMessage(t *testing.T) {
	msg := FallbackMessage(testBooking)
	assert.Contains(t, msg, "Jane")
	assert.Contains(t, msg, "installation")
	assert.Contains(t, msg, "2025-03-10")
	assert.NotContains(t, msg, "on hold")

	provisional := testBooking
	provisional.Kind = domain.KindProvisional
	provisional.Activity = ""
	msg = FallbackMessage(provisional)
	assert.Contains(t, msg, "service visit")
	assert.Contains(t, msg, "on hold")
}
