package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fdg312/meal-hub/internal/config"
	"github.com/fdg312/meal-hub/internal/storage"
)

// ErrGone означает, что endpoint подписки больше не существует
// (push-сервис ответил 404/410). Такая подписка удаляется навсегда.
var ErrGone = errors.New("subscription endpoint is gone")

// Sender доставляет уведомление одному подписчику.
type Sender interface {
	Send(ctx context.Context, sub storage.Subscription, payload Payload) error
}

// HTTPSender отправляет уведомление POST-запросом на endpoint подписки.
type HTTPSender struct {
	cfg        config.PushConfig
	httpClient *http.Client
}

func NewHTTPSender(cfg config.PushConfig) *HTTPSender {
	return &HTTPSender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (s *HTTPSender) Send(ctx context.Context, sub storage.Subscription, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("TTL", strconv.Itoa(s.cfg.TTLSeconds))
	req.Header.Set("Authorization", "vapid t="+s.cfg.VAPIDPrivateKey+", k="+s.cfg.VAPIDPublicKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	return nil
}
