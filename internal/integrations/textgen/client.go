package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

const maxTokens = 300

var (
	errNotConfigured = errors.New("textgen: api key or endpoint not configured")
	errEmptyAnswer   = errors.New("textgen: empty answer")
)

// Client генерирует текст подтверждения бронирования для клиента.
// Generate никогда не возвращает ошибку: при любом сбое используется шаблон.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	log        Logger
	fallbacks  FallbackCounter
}

// NewClient создает новый экземпляр клиента. fallbacks может быть nil.
func NewClient(endpoint, apiKey, model string, timeout time.Duration, log Logger, fallbacks FallbackCounter) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:       log,
		fallbacks: fallbacks,
	}
}

// Generate возвращает сгенерированный текст или FallbackMessage
func (c *Client) Generate(ctx context.Context, booking domain.Booking) string {
	text, err := c.generate(ctx, booking)
	if err != nil {
		if !errors.Is(err, errNotConfigured) {
			c.log.Warn("Text generation failed for booking=%s, using fallback: %v", booking.ID, err)
		}
		if c.fallbacks != nil {
			c.fallbacks.Inc()
		}
		return FallbackMessage(booking)
	}
	return text
}

func (c *Client) generate(ctx context.Context, booking domain.Booking) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" || strings.TrimSpace(c.endpoint) == "" {
		return "", errNotConfigured
	}

	body, err := json.Marshal(GenerateRequest{
		Model:     c.model,
		Prompt:    buildPrompt(booking),
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", errEmptyAnswer
	}
	return text, nil
}

func buildPrompt(b domain.Booking) string {
	var sb strings.Builder
	sb.WriteString("Write a short, friendly confirmation message for a field service visit.\n")
	fmt.Fprintf(&sb, "Client: %s\n", b.ClientName)
	fmt.Fprintf(&sb, "Service: %s\n", activityOrDefault(b.Activity))
	fmt.Fprintf(&sb, "City: %s\n", b.City)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	fmt.Fprintf(&sb, "Period: %s\n", periodLabel(b.Period))
	fmt.Fprintf(&sb, "Technician: %s\n", b.TechnicianName)
	if b.IsProvisional() {
		sb.WriteString("The slot is held for 30 minutes and must be confirmed by the client.\n")
	}
	return sb.String()
}

// FallbackMessage шаблонный текст подтверждения
func FallbackMessage(b domain.Booking) string {
	msg := fmt.Sprintf("Hello %s, your %s visit in %s on %s (%s) is scheduled with technician %s.",
		strings.TrimSpace(b.ClientName), strings.ToLower(activityOrDefault(b.Activity)), b.City, b.Date,
		periodLabel(b.Period), b.TechnicianName)
	if b.IsProvisional() {
		msg += " This slot is on hold for 30 minutes, please confirm to keep it."
	}
	return msg
}

func activityOrDefault(activity string) string {
	if strings.TrimSpace(activity) == "" {
		return "Service"
	}
	return strings.TrimSpace(activity)
}

func periodLabel(p domain.Period) string {
	switch p {
	case domain.PeriodMorning:
		return "morning, 8:00-12:00"
	case domain.PeriodAfternoon:
		return "afternoon, 13:00-18:00"
	case domain.PeriodEvening:
		return "evening"
	}
	return string(p)
}
