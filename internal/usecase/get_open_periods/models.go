package get_open_periods

import (
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// Request модель запроса на получение открытых периодов
type Request struct {
	City string
	Date time.Time
}

// Response модель ответа
type Response struct {
	City    string
	Date    time.Time
	DayType domain.DayType
	Periods []domain.Period // в порядке следования в течение дня
}
