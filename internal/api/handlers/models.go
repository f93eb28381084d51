package handlers

import "github.com/m04kA/SMC-FieldScheduler/internal/domain"

// BookingResponse бронирование после изменения. Warning заполняется, если
// изменение принято, но не сохранено в хранилище.
type BookingResponse struct {
	Booking domain.Booking `json:"booking"`
	Warning string         `json:"warning,omitempty"`
}

// MutationResponse ответ на изменение без возвращаемых данных
type MutationResponse struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

// NewMutationResponse формирует ответ об успешном изменении
func NewMutationResponse(warning string) MutationResponse {
	return MutationResponse{Status: "ok", Warning: warning}
}
