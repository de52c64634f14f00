// Package services реализует бизнес-логику управления транспортными средствами.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/parking-permits/internal/models"
	"github.com/magabrotheeeer/parking-permits/internal/storage"
)

// Ошибки бизнес-уровня работы с транспортными средствами.
var (
	ErrDuplicatePlate  = errors.New("vehicle with this license plate is already registered")
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// VehicleRepository описывает контракт хранилища транспортных средств.
type VehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	ListVehicles(ctx context.Context, userUID string) ([]*models.Vehicle, error)
	RemoveVehicle(ctx context.Context, userUID, vehicleUID string) (int, error)
}

// Cache описывает контракт кэша списков транспортных средств.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// VehicleService реализует добавление, чтение и удаление транспортных средств.
type VehicleService struct {
	repo  VehicleRepository
	cache Cache
	log   *slog.Logger
}

// NewVehicleService создает новый экземпляр VehicleService.
func NewVehicleService(repo VehicleRepository, cache Cache, log *slog.Logger) *VehicleService {
	return &VehicleService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Add регистрирует новое транспортное средство пользователя.
// Номерной знак нормализуется к верхнему регистру, повторная регистрация
// того же знака одним пользователем отклоняется.
func (s *VehicleService) Add(ctx context.Context, userUID string, req models.DummyVehicle) (string, error) {
	vehicle := models.Vehicle{
		UserUID:      userUID,
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Color:        strings.TrimSpace(req.Color),
		LicensePlate: strings.ToUpper(strings.TrimSpace(req.LicensePlate)),
	}
	uid, err := s.repo.CreateVehicle(ctx, vehicle)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return "", ErrDuplicatePlate
		}
		return "", err
	}
	s.log.Info("vehicle registered", slog.String("vehicle_uid", uid))
	s.invalidateCache(userUID)
	return uid, nil
}

// List возвращает транспортные средства пользователя, новые первыми.
func (s *VehicleService) List(ctx context.Context, userUID string) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	cacheKey := fmt.Sprintf("vehicles:%s", userUID)
	found, err := s.cache.Get(cacheKey, &vehicles)
	if err != nil {
		s.log.Warn("failed to read vehicles from cache", slog.String("key", cacheKey), slog.Any("err", err))
		found = false
	}
	if found {
		return vehicles, nil
	}
	vehicles, err = s.repo.ListVehicles(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, vehicles, time.Hour); err != nil {
		s.log.Warn("failed to cache vehicles", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return vehicles, nil
}

// Remove удаляет транспортное средство пользователя. Чужое или
// несуществующее средство дает одну и ту же ошибку ErrVehicleNotFound.
func (s *VehicleService) Remove(ctx context.Context, userUID, vehicleUID string) error {
	count, err := s.repo.RemoveVehicle(ctx, userUID, vehicleUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrVehicleNotFound
	}
	s.invalidateCache(userUID)
	return nil
}

func (s *VehicleService) invalidateCache(userUID string) {
	cacheKey := fmt.Sprintf("vehicles:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
