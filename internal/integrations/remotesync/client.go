package remotesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/infra/storage/snapshot"
)

// Client клиент удалённого хранилища снапшота.
// Повторных попыток нет: вызывающий решает, повторять ли операцию.
type Client struct {
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(timeout time.Duration, log Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Push отправляет снапшот целиком (PUT endpoint)
func (c *Client) Push(ctx context.Context, endpoint, token string, snap *domain.Snapshot) error {
	if strings.TrimSpace(endpoint) == "" {
		return ErrNotConfigured
	}

	body, err := snapshot.Encode(snap)
	if err != nil {
		return fmt.Errorf("%w: failed to encode snapshot: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	c.log.Info("Snapshot pushed to %s (bookings=%d, technicians=%d)", endpoint, len(snap.Bookings), len(snap.Technicians))
	return nil
}

// Pull загружает снапшот (GET endpoint). Старые версии схемы мигрируются.
func (c *Client) Pull(ctx context.Context, endpoint, token string) (*domain.Snapshot, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrUnavailable, err)
	}

	snap, migrated, err := snapshot.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if migrated {
		c.log.Info("Pulled snapshot migrated to schema version %d", domain.CurrentSchemaVersion)
	}

	c.log.Info("Snapshot pulled from %s (bookings=%d, technicians=%d)", endpoint, len(snap.Bookings), len(snap.Technicians))
	return snap, nil
}

func setAuth(req *http.Request, token string) {
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// checkStatus обработка статус-кодов
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, resp.StatusCode, errorMessage(resp))
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, errorMessage(resp))
	}
}

func errorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}
