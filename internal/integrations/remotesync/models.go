package remotesync

// ErrorResponse модель ошибки удалённого хранилища
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
