package get_available_technicians

import (
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// Request модель запроса на получение свободных техников
type Request struct {
	City   string        // Город (без учёта регистра и пробелов)
	Date   time.Time     // Дата (без времени)
	Period domain.Period // Период дня
}

// Response модель ответа со списком техников
type Response struct {
	City        string
	Date        time.Time
	Period      domain.Period
	DayType     domain.DayType
	Bookable    bool // false, если дата в прошлом или период уже закрыт сегодня
	Technicians []Technician
}

// Technician техник со свободными слотами
type Technician struct {
	ID        string
	Name      string
	Capacity  int // ёмкость на день (спец. дни) или на период (будни)
	Used      int
	Remaining int
	Occupancy float64 // процент занятых слотов
}
