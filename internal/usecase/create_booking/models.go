package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName   string
	ClientPhone  string
	City         string
	Date         time.Time // Дата бронирования (без времени)
	Period       domain.Period
	TechnicianID string
	Activity     string
	Notes        string
	Provisional  bool   // Предварительное бронирование, истекает через 30 минут
	Actor        string // Пользователь, создающий бронирование
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking domain.Booking
	Warning string // непустое, если состояние не удалось сохранить в хранилище
}
