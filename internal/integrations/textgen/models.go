package textgen

// GenerateRequest запрос к сервису генерации текста
type GenerateRequest struct {
	Model     string `json:"model,omitempty"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

// GenerateResponse ответ сервиса генерации текста
type GenerateResponse struct {
	Text string `json:"text"`
}
