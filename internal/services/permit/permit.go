// Package services реализует бизнес-логику покупки и чтения парковочных разрешений.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/magabrotheeeer/parking-permits/internal/lib/token"
	"github.com/magabrotheeeer/parking-permits/internal/models"
	"github.com/magabrotheeeer/parking-permits/internal/storage"
)

// maxPurchaseAttempts ограничивает число повторов покупки при коллизии
// сгенерированного идентификатора. Вероятность коллизии ничтожна, лимит
// защищает от бесконечного цикла при деградации генератора.
const maxPurchaseAttempts = 3

// ErrInvalidCard возвращается, когда номер карты после очистки от
// разделителей содержит недопустимое число цифр.
var ErrInvalidCard = errors.New("invalid card number")

// ErrBlankField возвращается, когда обязательное текстовое поле
// после обрезки пробелов оказывается пустым.
var ErrBlankField = errors.New("required field is blank")

// PermitRepository описывает контракт хранилища разрешений.
type PermitRepository interface {
	// CreatePermitWithPayment атомарно создает транспортное средство
	// (при необходимости), разрешение и платеж.
	CreatePermitWithPayment(ctx context.Context, permit models.Permit, payment models.Payment) (int, error)

	// ListPermits возвращает разрешения пользователя, новые первыми.
	ListPermits(ctx context.Context, userUID string) ([]*models.Permit, error)
}

// Cache описывает контракт кэша списков разрешений.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PermitService реализует покупку и чтение парковочных разрешений.
type PermitService struct {
	repo  PermitRepository
	cache Cache
	log   *slog.Logger
}

// NewPermitService создает новый экземпляр PermitService.
func NewPermitService(repo PermitRepository, cache Cache, log *slog.Logger) *PermitService {
	return &PermitService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Purchase выполняет покупку разрешения: нормализует входные данные,
// генерирует идентификаторы, вычисляет дату истечения и записывает
// разрешение вместе с платежом одной транзакцией. При коллизии
// сгенерированного идентификатора операция повторяется целиком с новой
// парой идентификаторов, не более maxPurchaseAttempts раз.
func (s *PermitService) Purchase(ctx context.Context, userUID string, req models.DummyPurchase) (*models.PurchaseConfirmation, error) {
	cardDigits := digitsOnly(req.CardNumber)
	if len(cardDigits) < 13 || len(cardDigits) > 19 {
		return nil, ErrInvalidCard
	}
	cardLast4 := cardDigits[len(cardDigits)-4:]

	fullName := strings.TrimSpace(req.FullName)
	studentID := strings.TrimSpace(req.StudentID)
	vehicleMake := strings.TrimSpace(req.VehicleMake)
	licensePlate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	if fullName == "" || studentID == "" || vehicleMake == "" || licensePlate == "" {
		return nil, ErrBlankField
	}

	now := time.Now().UTC()
	expiry := expiryFor(req.Category, now)

	var lastErr error
	for range maxPurchaseAttempts {
		permitUID, err := token.NewPermitID()
		if err != nil {
			return nil, err
		}
		transactionUID, err := token.NewTransactionID()
		if err != nil {
			return nil, err
		}

		permit := models.Permit{
			PermitUID:    permitUID,
			UserUID:      userUID,
			FullName:     fullName,
			StudentID:    studentID,
			VehicleMake:  vehicleMake,
			LicensePlate: licensePlate,
			Category:     req.Category,
			Price:        req.Price,
			PurchaseDate: now,
			ExpiryDate:   expiry,
		}
		payment := models.Payment{
			TransactionUID: transactionUID,
			UserUID:        userUID,
			Amount:         req.Price,
			CardLast4:      cardLast4,
			PaymentDate:    now,
			Status:         "completed",
		}

		_, err = s.repo.CreatePermitWithPayment(ctx, permit, payment)
		if err == nil {
			s.log.Info("permit purchased", slog.String("permit_uid", permitUID))
			s.invalidateUserCaches(userUID)
			return &models.PurchaseConfirmation{
				PermitID:      permitUID,
				TransactionID: transactionUID,
				FullName:      permit.FullName,
				StudentID:     permit.StudentID,
				VehicleMake:   permit.VehicleMake,
				LicensePlate:  permit.LicensePlate,
				Category:      permit.Category,
				Price:         permit.Price,
				PurchaseDate:  permit.PurchaseDate,
				ExpiryDate:    permit.ExpiryDate,
			}, nil
		}
		lastErr = err
		if !storage.IsUniqueViolation(err) {
			return nil, err
		}
		s.log.Warn("generated id collided, retrying purchase", slog.Any("err", err))
	}
	return nil, fmt.Errorf("purchase failed after %d attempts: %w", maxPurchaseAttempts, lastErr)
}

// List возвращает разрешения пользователя со статусом, вычисленным на
// момент вызова. В кэше лежат только сырые строки, статус к ним
// дописывается после каждого чтения.
func (s *PermitService) List(ctx context.Context, userUID string) ([]*models.Permit, error) {
	var permits []*models.Permit
	cacheKey := fmt.Sprintf("permits:%s", userUID)
	found, err := s.cache.Get(cacheKey, &permits)
	if err != nil {
		s.log.Warn("failed to read permits from cache", slog.String("key", cacheKey), slog.Any("err", err))
		found = false
	}
	if !found {
		permits, err = s.repo.ListPermits(ctx, userUID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, permits, time.Hour); err != nil {
			s.log.Warn("failed to cache permits", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	now := time.Now().UTC()
	for _, p := range permits {
		p.Status = statusAt(p.ExpiryDate, now)
	}
	return permits, nil
}

func (s *PermitService) invalidateUserCaches(userUID string) {
	for _, key := range []string{
		fmt.Sprintf("permits:%s", userUID),
		fmt.Sprintf("vehicles:%s", userUID),
		fmt.Sprintf("payments:%s", userUID),
	} {
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}

// expiryFor вычисляет дату истечения календарной арифметикой:
// 4 месяца для семестрового разрешения, год для годового.
func expiryFor(category string, purchase time.Time) time.Time {
	if category == models.CategoryAnnual {
		return purchase.AddDate(1, 0, 0)
	}
	return purchase.AddDate(0, 4, 0)
}

// statusAt возвращает active, пока дата истечения не прошла.
func statusAt(expiry, now time.Time) string {
	if now.After(expiry) {
		return models.StatusExpired
	}
	return models.StatusActive
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
