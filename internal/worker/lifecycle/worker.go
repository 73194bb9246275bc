package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/reservation"
)

const (
	defaultInterval  = time.Minute
	defaultBatchSize = 100
)

// Settings параметры фонового обработчика
type Settings struct {
	Interval  time.Duration
	BatchSize int
	Location  *time.Location // часовой пояс площадки, в нём хранятся даты и время бронирований
}

// step один переход по расписанию
type step struct {
	from domain.ReservationStatus
	to   domain.ReservationStatus
}

// Начало переводит confirmed в in_progress, окончание - in_progress в completed.
// Порядок важен: пропущенное целиком бронирование завершается за один проход.
var steps = []step{
	{from: domain.StatusConfirmed, to: domain.StatusInProgress},
	{from: domain.StatusInProgress, to: domain.StatusCompleted},
}

// Worker выполняет переходы жизненного цикла, наступающие по времени
type Worker struct {
	reservationRepo ReservationRepository
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewWorker создает фоновый обработчик переходов по расписанию
func NewWorker(reservationRepo ReservationRepository, metrics Metrics, settings Settings, logger Logger) *Worker {
	if settings.Interval <= 0 {
		settings.Interval = defaultInterval
	}
	if settings.BatchSize <= 0 {
		settings.BatchSize = defaultBatchSize
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Worker{
		reservationRepo: reservationRepo,
		metrics:         metrics,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Run выполняет проход сразу и затем с интервалом Settings.Interval.
// Блокируется до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("LifecycleWorker: started, interval=%s, batch=%d", w.settings.Interval, w.settings.BatchSize)

	ticker := time.NewTicker(w.settings.Interval)
	defer ticker.Stop()

	w.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("LifecycleWorker: stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick выполняет один проход и возвращает число выполненных переходов
func (w *Worker) Tick(ctx context.Context) int {
	now := w.timeProvider.Now().In(w.settings.Location)

	total := 0
	for _, s := range steps {
		if ctx.Err() != nil {
			return total
		}
		total += w.advance(ctx, s, now)
	}

	if total > 0 {
		w.logger.Info("LifecycleWorker: %d reservations advanced", total)
	}
	return total
}

func (w *Worker) advance(ctx context.Context, s step, now time.Time) int {
	due, err := w.reservationRepo.ListDue(ctx, s.from, now, w.settings.BatchSize)
	if err != nil {
		w.logger.Error("LifecycleWorker: failed to list due %s reservations: %v", s.from, err)
		return 0
	}

	advanced := 0
	for _, r := range due {
		trigger, err := domain.AuthorizeTransition(r, domain.SystemActor, s.to)
		if err != nil {
			w.logger.Warn("LifecycleWorker: reservation id=%d skipped: %v", r.ID, err)
			continue
		}

		if err := w.reservationRepo.UpdateStatus(ctx, r.ID, s.from, s.to); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusChanged) || errors.Is(err, reservationRepo.ErrReservationNotFound) {
				w.logger.Info("LifecycleWorker: reservation id=%d changed meanwhile, skipped", r.ID)
				continue
			}
			w.logger.Error("LifecycleWorker: failed to move reservation id=%d %s -> %s: %v", r.ID, s.from, s.to, err)
			continue
		}

		w.metrics.ObserveTransition(string(s.from), string(s.to), string(trigger))
		advanced++
	}

	return advanced
}
