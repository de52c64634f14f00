// Package services реализует бизнес-логику чтения истории платежей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

// PaymentRepository описывает контракт хранилища платежей.
type PaymentRepository interface {
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
}

// Cache описывает контракт кэша истории платежей.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PaymentService возвращает историю платежей пользователя.
type PaymentService struct {
	repo  PaymentRepository
	cache Cache
	log   *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, cache Cache, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает платежи пользователя, новые первыми.
func (s *PaymentService) List(ctx context.Context, userUID string) ([]*models.Payment, error) {
	var payments []*models.Payment
	cacheKey := fmt.Sprintf("payments:%s", userUID)
	found, err := s.cache.Get(cacheKey, &payments)
	if err != nil {
		s.log.Warn("failed to read payments from cache", slog.String("key", cacheKey), slog.Any("err", err))
		found = false
	}
	if found {
		return payments, nil
	}
	payments, err = s.repo.ListPayments(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, payments, time.Hour); err != nil {
		s.log.Warn("failed to cache payments", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return payments, nil
}
