package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindPermitsExpiringTomorrow(ctx context.Context) ([]*models.PermitInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PermitInfo), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_runFindPermitsExpiringDueTomorrow(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockRepository)
	}{
		{
			name: "no expiring permits",
			setupMocks: func(r *MockRepository) {
				r.On("FindPermitsExpiringTomorrow", mock.Anything).
					Return([]*models.PermitInfo{}, nil).Once()
			},
		},
		{
			name: "repository error is logged, not returned",
			setupMocks: func(r *MockRepository) {
				r.On("FindPermitsExpiringTomorrow", mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewSchedulerService(repo, newNoopLogger())

			tt.setupMocks(repo)

			service.runFindPermitsExpiringDueTomorrow(context.Background(), nil)

			repo.AssertExpectations(t)
		})
	}
}
