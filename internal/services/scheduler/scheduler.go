// Package services реализует периодический поиск истекающих разрешений
// и публикацию напоминаний в очередь уведомлений.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/parking-permits/internal/lib/sl"
	"github.com/magabrotheeeer/parking-permits/internal/models"
	"github.com/magabrotheeeer/parking-permits/internal/rabbitmq"
)

// PermitRepository описывает контракт хранилища для поиска истекающих разрешений.
type PermitRepository interface {
	FindPermitsExpiringTomorrow(ctx context.Context) ([]*models.PermitInfo, error)
}

// SchedulerService периодически находит истекающие разрешения и
// публикует напоминания в RabbitMQ.
type SchedulerService struct {
	repo PermitRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo PermitRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindPermitsExpiringDueTomorrow запускает поиск сразу и затем каждые 12 часов.
func (s *SchedulerService) FindPermitsExpiringDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindPermitsExpiringDueTomorrow(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindPermitsExpiringDueTomorrow(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindPermitsExpiringDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find permits expiring tomorrow")
	permitsInfo, err := s.repo.FindPermitsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find permits", sl.Err(err))
		return
	}
	if len(permitsInfo) == 0 {
		s.log.Info("no expiring permits found")
		return
	}
	s.log.Info("found expiring permits", "count", len(permitsInfo))
	for _, permitInfo := range permitsInfo {
		err = rabbitmq.PublishMessage(channel, "notifications", "expiring", permitInfo)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
