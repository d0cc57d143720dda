package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/phrazzld/lexicon-srs/internal/events"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/redact"
	"github.com/phrazzld/lexicon-srs/internal/service/study"
)

// ThresholdChecker computes threshold reports. study.Service satisfies it.
type ThresholdChecker interface {
	Thresholds(ctx context.Context, thresholds []int) (*study.ThresholdReport, error)
}

// Config configures a Scheduler.
type Config struct {
	Thresholds    []int
	CheckInterval time.Duration
	// CheckTimeout bounds a single scheduled check. Defaults to 10s.
	CheckTimeout time.Duration
}

// ErrInvalidInterval is returned when the check interval is not positive.
var ErrInvalidInterval = errors.New("reminder check interval must be positive")

// Scheduler runs threshold checks periodically and on StudyRecorded events.
type Scheduler struct {
	scheduler *gocron.Scheduler
	checker   ThresholdChecker
	notifier  Notifier
	cfg       Config
	logger    *slog.Logger

	// mu serializes checks so each report is compared against the one
	// evaluated just before it.
	mu   sync.Mutex
	last map[int]bool
}

// Ensure Scheduler can subscribe to the event emitter
var _ events.EventHandler = (*Scheduler)(nil)

// NewScheduler creates a Scheduler. Call Start to begin periodic checks.
func NewScheduler(checker ThresholdChecker, notifier Notifier, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	if checker == nil {
		panic("checker cannot be nil")
	}
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if cfg.CheckInterval <= 0 {
		return nil, ErrInvalidInterval
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		checker:   checker,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "reminder_scheduler")),
	}, nil
}

// Start schedules the periodic check and starts the scheduler in a
// non-blocking manner. The first check runs immediately.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.cfg.CheckInterval).Do(s.runScheduled); err != nil {
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started",
		slog.Duration("check_interval", s.cfg.CheckInterval),
		slog.Any("thresholds", s.cfg.Thresholds))
	return nil
}

// Stop terminates scheduled checks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("reminder scheduler stopped")
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CheckTimeout)
	defer cancel()

	if _, err := s.Check(ctx); err != nil {
		s.logger.Error("scheduled reminder check failed", slog.String("error", redact.Error(err)))
	}
}

// HandleEvent implements events.EventHandler. A recorded answer moves a
// word's due time, so thresholds are re-evaluated.
func (s *Scheduler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeStudyRecorded {
		return nil
	}
	_, err := s.Check(ctx)
	return err
}

// Check evaluates the configured thresholds and notifies when any result
// differs from the previous check. It returns the report either way.
// Concurrent calls run one at a time.
func (s *Scheduler) Check(ctx context.Context) (*study.ThresholdReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.checker.Thresholds(ctx, s.cfg.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate thresholds: %w", err)
	}

	if s.last != nil && maps.Equal(s.last, report.Reached) {
		log.Debug("reminder thresholds unchanged")
		return report, nil
	}

	if err := s.notifier.NotifyThresholds(ctx, report); err != nil {
		// Keep the old state so the next check retries the notification.
		return report, fmt.Errorf("failed to notify thresholds: %w", err)
	}
	s.last = maps.Clone(report.Reached)
	return report, nil
}

func thresholdKey(t int) string {
	return "threshold_" + strconv.Itoa(t)
}
