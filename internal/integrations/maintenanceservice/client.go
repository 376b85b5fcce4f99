package maintenanceservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса обслуживания оборудования.
// Статус ресурса запрашивается перед тем, как предложить его для бронирования.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса обслуживания
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ResourceMaintenanceStatus возвращает актуальный статус ресурса
func (c *Client) ResourceMaintenanceStatus(ctx context.Context, resourceID int64) (ResourceStatus, error) {
	url := fmt.Sprintf("%s/internal/resources/%d/status", c.baseURL, resourceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return "", ErrResourceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return payload.Status, nil
}

// ResourceStatusWithGracefulDegradation запрашивает статус ресурса с graceful
// degradation: при недоступности сервиса возвращает ErrServiceDegraded,
// и вызывающий код опирается на статус ресурса из БД.
func (c *Client) ResourceStatusWithGracefulDegradation(ctx context.Context, resourceID int64) (ResourceStatus, error) {
	status, err := c.ResourceMaintenanceStatus(ctx, resourceID)
	if err != nil {
		if err == ErrResourceNotFound {
			return "", err
		}

		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("MaintenanceService unavailable, applying graceful degradation for resource_id=%d: %v", resourceID, err)
		return "", fmt.Errorf("%w: resource_id=%d, error=%v", ErrServiceDegraded, resourceID, err)
	}

	return status, nil
}
