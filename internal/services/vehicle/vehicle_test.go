package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	args := m.Called(ctx, vehicle)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) ListVehicles(ctx context.Context, userUID string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}
func (m *RepoMock) RemoveVehicle(ctx context.Context, userUID, vehicleUID string) (int, error) {
	args := m.Called(ctx, userUID, vehicleUID)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestVehicleService_Add(t *testing.T) {
	const userUID = "user-uid-1"

	t.Run("success uppercases license plate", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewVehicleService(repo, cache, newNoopLogger())

		repo.On("CreateVehicle", mock.Anything, mock.MatchedBy(func(v models.Vehicle) bool {
			return v.LicensePlate == "ABC123" && v.UserUID == userUID
		})).Return("vehicle-uid", nil).Once()
		cache.On("Invalidate", "vehicles:"+userUID).Return(nil).Once()

		uid, err := svc.Add(context.Background(), userUID, models.DummyVehicle{
			Make:         "Toyota",
			LicensePlate: " abc123 ",
		})
		require.NoError(t, err)
		assert.Equal(t, "vehicle-uid", uid)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate plate maps to ErrDuplicatePlate", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewVehicleService(repo, cache, newNoopLogger())

		repo.On("CreateVehicle", mock.Anything, mock.Anything).
			Return("", &pgconn.PgError{Code: pgerrcode.UniqueViolation}).Once()

		_, err := svc.Add(context.Background(), userUID, models.DummyVehicle{
			Make:         "Toyota",
			LicensePlate: "ABC123",
		})
		require.ErrorIs(t, err, ErrDuplicatePlate)
	})
}

func TestVehicleService_List(t *testing.T) {
	const userUID = "user-uid-1"

	t.Run("cache miss falls back to storage", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewVehicleService(repo, cache, newNoopLogger())

		vehicles := []*models.Vehicle{{UID: "v1", LicensePlate: "ABC123"}}
		cache.On("Get", "vehicles:"+userUID, mock.Anything).Return(false, nil).Once()
		repo.On("ListVehicles", mock.Anything, userUID).Return(vehicles, nil).Once()
		cache.On("Set", "vehicles:"+userUID, vehicles, time.Hour).Return(nil).Once()

		got, err := svc.List(context.Background(), userUID)
		require.NoError(t, err)
		assert.Equal(t, vehicles, got)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewVehicleService(repo, cache, newNoopLogger())

		cache.On("Get", "vehicles:"+userUID, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(1).(*[]*models.Vehicle)
				*out = []*models.Vehicle{{UID: "v1"}}
			}).Return(true, nil).Once()

		got, err := svc.List(context.Background(), userUID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		repo.AssertNotCalled(t, "ListVehicles", mock.Anything, mock.Anything)
	})
}

func TestVehicleService_Remove(t *testing.T) {
	const userUID = "user-uid-1"

	t.Run("success invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewVehicleService(repo, cache, newNoopLogger())

		repo.On("RemoveVehicle", mock.Anything, userUID, "v1").Return(1, nil).Once()
		cache.On("Invalidate", "vehicles:"+userUID).Return(nil).Once()

		err := svc.Remove(context.Background(), userUID, "v1")
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("missing and foreign vehicles give the same error", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewVehicleService(repo, cache, newNoopLogger())

		repo.On("RemoveVehicle", mock.Anything, userUID, mock.Anything).Return(0, nil).Twice()

		errMissing := svc.Remove(context.Background(), userUID, "no-such-vehicle")
		errForeign := svc.Remove(context.Background(), userUID, "someone-elses-vehicle")
		require.ErrorIs(t, errMissing, ErrVehicleNotFound)
		require.ErrorIs(t, errForeign, ErrVehicleNotFound)
		assert.Equal(t, errMissing.Error(), errForeign.Error())
	})

	t.Run("storage error bubbles up", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewVehicleService(repo, cache, newNoopLogger())

		repo.On("RemoveVehicle", mock.Anything, userUID, "v1").
			Return(0, errors.New("boom")).Once()

		err := svc.Remove(context.Background(), userUID, "v1")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrVehicleNotFound)
	})
}
