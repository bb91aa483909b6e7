// Package push управляет push-подписками и рассылкой уведомлений.
package push

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fdg312/meal-hub/internal/config"
	"github.com/fdg312/meal-hub/internal/storage"
)

var (
	ErrInvalidSubscription = errors.New("subscription endpoint is required")
	ErrNotConfigured       = errors.New("push credentials are not configured")
)

type Service struct {
	storage storage.SubscriptionsStorage
	sender  Sender
	cfg     config.PushConfig
}

func NewService(subsStorage storage.SubscriptionsStorage, sender Sender, cfg config.PushConfig) *Service {
	return &Service{
		storage: subsStorage,
		sender:  sender,
		cfg:     cfg,
	}
}

// IsConfigured сообщает, заданы ли push-учётные данные.
func (s *Service) IsConfigured() bool {
	return s.cfg.IsConfigured()
}

// Subscribe регистрирует подписку. Повторная подписка того же endpoint
// перезаписывает ключи без создания дубликата.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (SubscribeResponse, error) {
	endpoint := strings.TrimSpace(req.Endpoint)
	if endpoint == "" {
		return SubscribeResponse{}, ErrInvalidSubscription
	}

	sub := storage.Subscription{
		ID:        storage.SubscriptionID(endpoint),
		Endpoint:  endpoint,
		P256dh:    strings.TrimSpace(req.Keys.P256dh),
		Auth:      strings.TrimSpace(req.Keys.Auth),
		CreatedAt: time.Now(),
	}

	if err := s.storage.UpsertSubscription(ctx, sub); err != nil {
		return SubscribeResponse{}, err
	}

	count, err := s.count(ctx)
	if err != nil {
		return SubscribeResponse{}, err
	}

	return SubscribeResponse{OK: true, ID: sub.ID, Count: count}, nil
}

// Unsubscribe удаляет подписку по endpoint. Неизвестный endpoint не ошибка.
func (s *Service) Unsubscribe(ctx context.Context, req UnsubscribeRequest) (UnsubscribeResponse, error) {
	endpoint := strings.TrimSpace(req.Endpoint)
	if endpoint == "" {
		return UnsubscribeResponse{}, ErrInvalidSubscription
	}

	if err := s.storage.DeleteSubscription(ctx, storage.SubscriptionID(endpoint)); err != nil {
		return UnsubscribeResponse{}, err
	}

	count, err := s.count(ctx)
	if err != nil {
		return UnsubscribeResponse{}, err
	}

	return UnsubscribeResponse{OK: true, Count: count}, nil
}

func (s *Service) count(ctx context.Context) (int, error) {
	subs, err := s.storage.ListSubscriptions(ctx)
	if err != nil {
		return 0, err
	}
	return len(subs), nil
}

// Dispatch рассылает payload всем подпискам. Доставка best-effort:
// сбой одного подписчика не прерывает остальных. Подписки с ответом
// 404/410 удаляются из хранилища.
func (s *Service) Dispatch(ctx context.Context, payload Payload) (DispatchResult, error) {
	subs, err := s.storage.ListSubscriptions(ctx)
	if err != nil {
		return DispatchResult{}, err
	}
	if len(subs) == 0 {
		return DispatchResult{}, nil
	}

	type outcome struct {
		sub storage.Subscription
		err error
	}

	outcomes := make([]outcome, len(subs))
	var wg sync.WaitGroup
	wg.Add(len(subs))
	for i, sub := range subs {
		go func(i int, sub storage.Subscription) {
			defer wg.Done()
			outcomes[i] = outcome{sub: sub, err: s.sender.Send(ctx, sub, payload)}
		}(i, sub)
	}
	wg.Wait()

	var result DispatchResult
	for _, o := range outcomes {
		switch {
		case o.err == nil:
			result.Sent++
		case errors.Is(o.err, ErrGone):
			result.Pruned++
			if delErr := s.storage.DeleteSubscription(ctx, o.sub.ID); delErr != nil {
				log.Printf("WARN push: prune subscription %s failed: %v", o.sub.ID, delErr)
			}
		default:
			result.Failed++
			log.Printf("WARN push: delivery to %s failed: %v", o.sub.ID, o.err)
		}
	}

	return result, nil
}

// PushTest отправляет проверочное уведомление. В отличие от тиков
// nag-движка, отсутствие конфигурации здесь — явная ошибка.
func (s *Service) PushTest(ctx context.Context) (DispatchResult, error) {
	if !s.IsConfigured() {
		return DispatchResult{}, ErrNotConfigured
	}

	return s.Dispatch(ctx, Payload{
		Title: "Проверка уведомлений",
		Body:  fmt.Sprintf("Тестовое уведомление, %s", time.Now().Format("15:04")),
		Tag:   "push-test",
	})
}
