package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexicon-srs/internal/api"
	"github.com/phrazzld/lexicon-srs/internal/config"
	"github.com/phrazzld/lexicon-srs/internal/domain/srs"
	"github.com/phrazzld/lexicon-srs/internal/events"
	"github.com/phrazzld/lexicon-srs/internal/importer"
	"github.com/phrazzld/lexicon-srs/internal/service/reminder"
	"github.com/phrazzld/lexicon-srs/internal/service/study"
)

// application holds the shared application dependencies so they can be
// stopped together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *database

	studyService study.Service
	eventEmitter *events.InMemoryEventEmitter
	reminders    *reminder.Scheduler // nil when reminders are disabled
}

// newApplication builds the services on top of an open, migrated database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *database) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	params, err := srs.NewParams(srs.ParamsConfig{
		IntervalSeconds: cfg.Schedule.Intervals,
		WrongPolicy:     srs.WrongPolicy(cfg.Schedule.WrongPolicy),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule parameters: %w", err)
	}
	engine, err := srs.NewServiceWithParams(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}
	logger.Info("scheduling engine initialized",
		slog.Int("interval_count", params.Table.Len()),
		slog.String("wrong_policy", string(params.WrongPolicy)))

	loc, err := cfg.Activity.Location()
	if err != nil {
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.studyService = study.NewService(db.txr, db.stores, engine, study.Options{
		Emitter:      app.eventEmitter,
		Location:     loc,
		ActivityDays: cfg.Activity.Days,
		Thresholds:   cfg.Reminder.Thresholds,
		StoreTimeout: cfg.Schedule.StoreTimeout,
	}, logger)

	if cfg.Reminder.Enabled {
		app.reminders, err = reminder.NewScheduler(
			app.studyService,
			reminder.NewLogNotifier(logger),
			reminder.Config{
				Thresholds:    cfg.Reminder.Thresholds,
				CheckInterval: cfg.Reminder.CheckInterval,
			},
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create reminder scheduler: %w", err)
		}
		app.eventEmitter.Subscribe(events.TypeStudyRecorded, app.reminders)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts background jobs and serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if app.reminders != nil {
		if err := app.reminders.Start(); err != nil {
			return err
		}
	}
	defer app.cleanup()

	router := api.NewRouter(app.studyService, app.logger)
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// importWords registers the word IDs found in the file named by flags.
func (app *application) importWords(ctx context.Context, flags *cliFlags) error {
	im := importer.New(app.studyService, importer.Config{
		Column:    flags.importColumn,
		SheetName: flags.importSheet,
		StartRow:  flags.importStart,
	}, app.logger)

	result, err := im.ImportFile(ctx, flags.importPath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("imported %d rows: %d new words, %d already registered, %d duplicates, %d blank\n",
		result.Rows, result.Created, result.Existing, result.Duplicates, result.Blank)
	return nil
}

// cleanup stops background jobs. The database is closed by run.
func (app *application) cleanup() {
	if app.reminders != nil {
		app.reminders.Stop()
	}
	app.logger.Info("application shutdown completed")
}
