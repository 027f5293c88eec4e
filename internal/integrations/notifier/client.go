package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений
//
// Доставка уведомлений никогда не влияет на основную операцию:
// Publish логирует ошибку и возвращает nil при любой проблеме доставки.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Publish отправляет событие жизненного цикла слота
// Ошибки доставки логируются и не пробрасываются наверх
func (c *Client) Publish(ctx context.Context, event Event) error {
	if err := c.send(ctx, event); err != nil {
		c.log.Error("Notifier unavailable, event %s for slot=%d dropped: %v", event.Type, event.SlotID, err)
		return nil
	}

	c.log.Info("Published event %s for slot=%d", event.Type, event.SlotID)
	return nil
}

func (c *Client) send(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return nil
}
