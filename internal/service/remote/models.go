package remote

// Sync directions and outcomes reported to metrics
const (
	DirectionPush = "push"
	DirectionPull = "pull"

	ResultOK           = "ok"
	ResultUnauthorized = "unauthorized"
	ResultError        = "error"
)

// ActionSyncPull audit label of a state replaced by a pull
const ActionSyncPull = "sync.pull"

// Result итог синхронизации
type Result struct {
	Direction   string
	Technicians int
	Bookings    int
	Warning     string // непустое, если состояние не удалось сохранить в хранилище
}
