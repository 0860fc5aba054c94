package workers

import (
	"context"
	"time"

	"mural_backend/internal/logger"
	"mural_backend/internal/repositories"

	"gorm.io/gorm"
)

const cleanupWorkerName = "cleanup"

// Sweeper - лимитер, который умеет удалять истекшие окна (MemoryLimiter)
type Sweeper interface {
	Sweep() int
}

// CleanupResult - сколько записей убрал один проход
type CleanupResult struct {
	Sessions    int64
	Codes       int64
	RateWindows int
}

type CleanupWorker struct {
	db       *gorm.DB
	sessions repositories.SessionRepository
	users    repositories.UserRepository
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
}

// NewCleanupWorker: sweeper может быть nil (redis сам удаляет ключи по TTL)
func NewCleanupWorker(db *gorm.DB, sessions repositories.SessionRepository, users repositories.UserRepository, sweeper Sweeper, interval time.Duration) *CleanupWorker {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &CleanupWorker{
		db:       db,
		sessions: sessions,
		users:    users,
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock подменяет часы (для тестов)
func (w *CleanupWorker) WithClock(now func() time.Time) *CleanupWorker {
	w.now = now
	return w
}

// Start блокирует до отмены ctx. Первый проход сразу при старте.
func (w *CleanupWorker) Start(ctx context.Context) error {
	logger.Info("Cleanup worker started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return nil
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход. Ошибка одной операции не отменяет остальные.
func (w *CleanupWorker) RunOnce(ctx context.Context) CleanupResult {
	var res CleanupResult
	db := w.db.WithContext(ctx)
	now := w.now()

	n, err := w.sessions.DeleteExpired(db, now)
	logger.WorkerLog(cleanupWorkerName, "delete_expired_sessions", n, err)
	if err == nil {
		res.Sessions = n
	}

	n, err = w.users.ClearExpiredCodes(db, now)
	logger.WorkerLog(cleanupWorkerName, "clear_expired_codes", n, err)
	if err == nil {
		res.Codes = n
	}

	if w.sweeper != nil {
		res.RateWindows = w.sweeper.Sweep()
		logger.WorkerLog(cleanupWorkerName, "sweep_rate_windows", int64(res.RateWindows), nil)
	}

	return res
}
