package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChangeKind вид изменения бронирования для уведомления
type ChangeKind string

const (
	ChangeCreated     ChangeKind = "created"
	ChangeRescheduled ChangeKind = "rescheduled"
	ChangeCancelled   ChangeKind = "cancelled"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений.
// Уведомления это best-effort побочный эффект после коммита: ошибки
// логируются и никогда не влияют на результат бронирования.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type notifyRequest struct {
	EncounterID int64      `json:"encounter_id"`
	ChangeKind  ChangeKind `json:"change_kind"`
}

// NotifyBookingChange отправляет уведомление об изменении бронирования.
// Вызывается в отдельной горутине после коммита транзакции.
func (c *Client) NotifyBookingChange(ctx context.Context, encounterID int64, kind ChangeKind) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-change", c.baseURL)

	payload, err := json.Marshal(notifyRequest{EncounterID: encounterID, ChangeKind: kind})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	return nil
}
