package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для публикации событий в NotificationService.
//
// Доставка уведомлений best-effort: ошибки логируются и никогда не
// влияют на результат уже зафиксированного бронирования. Вызывается
// строго ПОСЛЕ коммита транзакции, чтобы не держать блокировки БД на
// время сетевого вызова.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Emit публикует событие. Возвращаемая ошибка предназначена только для
// логирования вызывающей стороной, бизнес-результат от неё не зависит.
func (c *Client) Emit(ctx context.Context, eventType string, payload BookingPayload) error {
	event := Event{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notifyservice client: failed to marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notifyservice client: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notifyservice client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notifyservice client: unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}

	c.log.Info("Emitted event %s id=%s booking_id=%d", eventType, event.EventID, payload.BookingID)
	return nil
}
