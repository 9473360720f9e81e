package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// StatusAdvancer продвижение статусов бронирований по времени
type StatusAdvancer interface {
	AutoAdvanceStatuses(ctx context.Context) (int, error)
}

// Logger логгер фоновых задач
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// statusJob cron задача: RESERVED -> IN_PROGRESS -> FINISHED
type statusJob struct {
	advancer StatusAdvancer
	timeout  time.Duration
	logger   Logger
}

func (j *statusJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	n, err := j.advancer.AutoAdvanceStatuses(ctx)
	if err != nil {
		j.logger.Error("Cron Job: failed to advance reservation statuses: %v", err)
		return
	}
	if n > 0 {
		j.logger.Info("Cron Job: advanced %d reservations", n)
	}
}

// scheduler фоновые задачи сервиса
type scheduler struct {
	cron *cron.Cron
}

func newScheduler() *scheduler {
	return &scheduler{cron: cron.New()}
}

func (s *scheduler) add(spec string, job cron.Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	return nil
}

func (s *scheduler) addFunc(spec string, fn func()) error {
	return s.add(spec, cron.FuncJob(fn))
}

func (s *scheduler) start() {
	s.cron.Start()
}

// stop останавливает планировщик и ждет завершения выполняющихся задач
func (s *scheduler) stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
