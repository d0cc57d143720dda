package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/domain/activity"
	"github.com/phrazzld/lexicon-srs/internal/domain/due"
	"github.com/phrazzld/lexicon-srs/internal/domain/srs"
	"github.com/phrazzld/lexicon-srs/internal/events"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/redact"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

// Defaults applied by NewService when Options leaves a field zero.
const (
	DefaultActivityDays = 7
	DefaultStoreTimeout = 5 * time.Second
)

// DefaultThresholds are the reminder thresholds used when none are configured.
var DefaultThresholds = []int{5, 10, 20}

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	Clock        Clock
	Emitter      events.EventEmitter
	Location     *time.Location // calendar used for activity buckets
	ActivityDays int
	Thresholds   []int
	StoreTimeout time.Duration
}

// Verify interface compliance at compile time
var _ Service = (*studyServiceImpl)(nil)

type studyServiceImpl struct {
	txr          store.Transactor
	stores       store.Stores
	engine       srs.Service
	clock        Clock
	emitter      events.EventEmitter
	loc          *time.Location
	activityDays int
	thresholds   []int
	storeTimeout time.Duration
	locks        *keyedMutex
	logger       *slog.Logger
}

// NewService creates a study Service. txr runs answer transactions; stores
// serve snapshot reads outside of them.
func NewService(
	txr store.Transactor,
	stores store.Stores,
	engine srs.Service,
	opts Options,
	logger *slog.Logger,
) Service {
	if txr == nil {
		panic("txr cannot be nil")
	}
	if stores.Words == nil || stores.Events == nil {
		panic("stores cannot be nil")
	}
	if engine == nil {
		panic("engine cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.ActivityDays <= 0 {
		opts.ActivityDays = DefaultActivityDays
	}
	if len(opts.Thresholds) == 0 {
		opts.Thresholds = DefaultThresholds
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = DefaultStoreTimeout
	}

	return &studyServiceImpl{
		txr:          txr,
		stores:       stores,
		engine:       engine,
		clock:        opts.Clock,
		emitter:      opts.Emitter,
		loc:          opts.Location,
		activityDays: opts.ActivityDays,
		thresholds:   append([]int(nil), opts.Thresholds...),
		storeTimeout: opts.StoreTimeout,
		locks:        newKeyedMutex(),
		logger:       logger.With(slog.String("component", "study_service")),
	}
}

// RegisterWords implements Service.RegisterWords.
func (s *studyServiceImpl) RegisterWords(ctx context.Context, ids []string) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, domain.NewValidationError("id", "cannot be empty", nil)
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, ErrNoWordIDs
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	now := s.clock.Now()
	var created []*domain.Word
	err := s.txr.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		created = created[:0]
		for _, id := range unique {
			if _, err := stores.Words.Get(ctx, id); err == nil {
				continue
			} else if !errors.Is(err, store.ErrWordNotFound) {
				return store.NewStoreError("word", "get", "failed to check word", err)
			}

			w, err := domain.NewWord(id, now)
			if err != nil {
				return err
			}
			if err := stores.Words.Create(ctx, w); err != nil {
				return store.NewStoreError("word", "create", "failed to create word", err)
			}
			created = append(created, w)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to register words",
			slog.String("error", redact.Error(err)),
			slog.Int("requested", len(unique)))
		return nil, err
	}

	log.Info("registered words",
		slog.Int("requested", len(unique)),
		slog.Int("created", len(created)))
	return created, nil
}

// Answer implements Service.Answer.
func (s *studyServiceImpl) Answer(
	ctx context.Context,
	wordID string,
	quality domain.AnswerQuality,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("word_id", wordID))

	if !quality.Valid() {
		log.Warn("invalid answer quality", slog.String("quality", string(quality)))
		return nil, domain.ErrInvalidQuality
	}

	result, err := s.recordAnswer(ctx, wordID, quality, log)
	if err != nil {
		return nil, err
	}

	// Handlers see the committed answer with the word lock released and get a
	// deadline of their own.
	emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()
	s.emitRecorded(emitCtx, result, log)
	return result, nil
}

// recordAnswer applies one answer under the word's lock and a single
// transaction.
func (s *studyServiceImpl) recordAnswer(
	ctx context.Context,
	wordID string,
	quality domain.AnswerQuality,
	log *slog.Logger,
) (*AnswerResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	unlock, err := s.locks.Lock(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for word %s: %w", wordID, err)
	}
	defer unlock()

	now := s.clock.Now()
	result := &AnswerResult{}

	err = s.txr.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		word, err := stores.Words.GetForUpdate(ctx, wordID)
		if err != nil {
			if errors.Is(err, store.ErrWordNotFound) {
				return err
			}
			return store.NewStoreError("word", "get", "failed to load word", err)
		}

		last, err := stores.Events.LastForWord(ctx, wordID)
		if err != nil && !errors.Is(err, store.ErrEventNotFound) {
			return store.NewStoreError("study_event", "last", "failed to load last event", err)
		}
		hasPrior := last != nil

		if hasPrior && now.Before(last.StudiedAt) {
			result.ClockSkew = true
			log.Warn("clock skew detected: answer time precedes previous event",
				slog.Time("now", now),
				slog.Time("last_studied_at", last.StudiedAt),
				slog.Duration("skew", last.StudiedAt.Sub(now)))
		}

		next, err := s.engine.CalculateNextReview(word, quality, now)
		if err != nil {
			log.Error("failed to calculate next review",
				slog.String("error", err.Error()),
				slog.Int("interval_index", word.IntervalIndex))
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		event, err := domain.NewStudyEvent(
			wordID,
			word.IntervalIndex,
			next.IntervalIndex,
			quality,
			now,
			word.IntervalIndex == 0 && !hasPrior,
		)
		if err != nil {
			return err
		}

		if err := stores.Words.Update(ctx, next); err != nil {
			return store.NewStoreError("word", "update", "failed to update word", err)
		}
		if err := stores.Events.Append(ctx, event); err != nil {
			return store.NewStoreError("study_event", "append", "failed to append event", err)
		}

		result.Word = next
		result.Event = event
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			log.Debug("answer for unknown word")
		} else {
			log.Error("failed to record answer",
				slog.String("error", redact.Error(err)),
				slog.String("quality", string(quality)))
		}
		return nil, err
	}

	log.Debug("answer recorded",
		slog.String("quality", string(quality)),
		slog.Int("previous_index", result.Event.PreviousIndex),
		slog.Int("new_index", result.Event.NewIndex),
		slog.Bool("first_exposure", result.Event.FirstExposure),
		slog.Time("due_at", result.Word.DueAt))
	return result, nil
}

// emitRecorded publishes the committed answer. Emission failures are logged;
// the answer itself has already been stored.
func (s *studyServiceImpl) emitRecorded(ctx context.Context, result *AnswerResult, log *slog.Logger) {
	if s.emitter == nil {
		return
	}
	event, err := events.NewStudyRecordedEvent(result.Event, result.Word.DueAt)
	if err != nil {
		log.Error("failed to build study recorded event", slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("study recorded event handler failed", slog.String("error", redact.Error(err)))
	}
}

// GetWord implements Service.GetWord.
func (s *studyServiceImpl) GetWord(ctx context.Context, id string) (*domain.Word, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	w, err := s.stores.Words.Get(ctx, id)
	if err != nil {
		return nil, s.wrapRead(ctx, err, "word", "get")
	}
	return w, nil
}

// WordHistory implements Service.WordHistory.
func (s *studyServiceImpl) WordHistory(ctx context.Context, id string) ([]domain.StudyEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.stores.Words.Get(ctx, id); err != nil {
		return nil, s.wrapRead(ctx, err, "word", "get")
	}
	history, err := s.stores.Events.ListForWord(ctx, id)
	if err != nil {
		return nil, s.wrapRead(ctx, err, "study_event", "list")
	}
	return history, nil
}

// DueWords implements Service.DueWords.
func (s *studyServiceImpl) DueWords(ctx context.Context) ([]*domain.Word, error) {
	words, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return due.DueWords(words, s.clock.Now()), nil
}

// NewWords implements Service.NewWords.
func (s *studyServiceImpl) NewWords(ctx context.Context, limit int) ([]*domain.Word, error) {
	words, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return due.NewWords(words, limit), nil
}

// Activity implements Service.Activity.
func (s *studyServiceImpl) Activity(ctx context.Context, days int) (*ActivityReport, error) {
	if days <= 0 {
		days = s.activityDays
	}

	now := s.clock.Now()
	local := now.In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	from := today.AddDate(0, 0, -days)
	to := today.AddDate(0, 0, 1)

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	evs, err := s.stores.Events.Query(ctx, from, to)
	if err != nil {
		return nil, s.wrapRead(ctx, err, "study_event", "query")
	}

	groups := activity.GroupByDay(evs, now, days, s.loc)
	return &ActivityReport{
		Groups:  groups,
		Summary: activity.Summarize(groups),
	}, nil
}

// Thresholds implements Service.Thresholds.
func (s *studyServiceImpl) Thresholds(ctx context.Context, thresholds []int) (*ThresholdReport, error) {
	if len(thresholds) == 0 {
		thresholds = s.thresholds
	}

	words, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	report := &ThresholdReport{
		Reached:   due.CountAtThreshold(words, now, thresholds),
		DueAt:     make(map[int]time.Time, len(thresholds)),
		DueNow:    len(due.DueWords(words, now)),
		CheckedAt: now,
	}
	for _, t := range thresholds {
		if at, ok := due.ThresholdDueAt(words, t); ok {
			report.DueAt[t] = at
		}
	}
	if next, ok := due.NextDueAt(words, now); ok {
		report.NextDueAt = &next
	}
	return report, nil
}

// snapshot lists every word.
func (s *studyServiceImpl) snapshot(ctx context.Context) ([]*domain.Word, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	words, err := s.stores.Words.List(ctx)
	if err != nil {
		return nil, s.wrapRead(ctx, err, "word", "list")
	}
	return words, nil
}

// wrapRead passes not-found errors through and wraps everything else as a
// StoreError.
func (s *studyServiceImpl) wrapRead(ctx context.Context, err error, entity, op string) error {
	if store.IsNotFoundError(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("store read failed",
		slog.String("entity", entity),
		slog.String("operation", op),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError(entity, op, "read failed", err)
}
