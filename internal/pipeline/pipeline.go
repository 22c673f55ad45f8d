package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sparkify/etl/config"
	"github.com/sparkify/etl/internal/db"
	"github.com/sparkify/etl/internal/mq"
	"github.com/sparkify/etl/internal/services"
	"github.com/sparkify/etl/internal/source"
	"github.com/sparkify/etl/internal/store"
	"github.com/sparkify/etl/types"
	"go.uber.org/zap"
)

// CategoryError reports the category whose load was rolled back.
type CategoryError struct {
	Category types.Category
	Err      error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Category, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// Notifier receives a summary after each committed category.
type Notifier interface {
	PublishLoad(ctx context.Context, event types.LoadEvent) (string, error)
}

// enabler is implemented by notifiers that can be switched off, such as
// an mq.MQ built with MQ_BACKEND=none.
type enabler interface {
	Enabled() bool
}

// Summary collects the results of a full run.
type Summary struct {
	Songs services.SongResult
	Logs  services.LogResult
}

// Pipeline runs the song and log loads against one database.
type Pipeline struct {
	db       *sql.DB
	source   source.Source
	notifier Notifier
	paths    config.PathsConfig
	workers  int
	logger   *zap.SugaredLogger
	now      func() time.Time

	closers []func() error
}

// New wires a Pipeline from already opened collaborators. A notifier that
// reports itself disabled is dropped.
func New(conn *sql.DB, src source.Source, notifier Notifier, cfg config.Config, logger *zap.SugaredLogger) *Pipeline {
	if e, ok := notifier.(enabler); ok && !e.Enabled() {
		logger.Infow("load notifications disabled")
		notifier = nil
	}
	return &Pipeline{
		db:       conn,
		source:   src,
		notifier: notifier,
		paths:    cfg.Paths,
		workers:  cfg.ParseWorkers,
		logger:   logger,
		now:      time.Now,
	}
}

// Open connects the database, the file source and the notifier described
// by cfg. The caller must Close the returned Pipeline.
func Open(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*Pipeline, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	src, err := source.New(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("open source: %w", err)
	}

	notifier, err := mq.Connect(ctx, cfg)
	if err != nil {
		_ = src.Close()
		_ = dbConn.Close()
		return nil, fmt.Errorf("open notifier: %w", err)
	}

	p := New(dbConn, src, notifier, cfg, logger)
	p.closers = []func() error{notifier.Close, src.Close, dbConn.Close}
	return p, nil
}

// Close releases everything Open acquired.
func (p *Pipeline) Close() error {
	var errs []error
	for _, closeFn := range p.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	p.closers = nil
	return errors.Join(errs...)
}

// Run loads songs and then logs. A failing category is rolled back and
// stops the run; a category committed before it stays committed.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	songs, err := p.LoadSongs(ctx)
	if err != nil {
		return summary, err
	}
	summary.Songs = songs

	logs, err := p.LoadLogs(ctx)
	if err != nil {
		return summary, err
	}
	summary.Logs = logs

	return summary, nil
}

// LoadSongs loads every song-metadata file in one transaction.
func (p *Pipeline) LoadSongs(ctx context.Context) (services.SongResult, error) {
	var result services.SongResult
	err := p.processCategory(ctx, types.CategorySongs, p.paths.SongData, func(tx *sql.Tx, files []string) (map[string]int64, error) {
		svc := services.NewSongService(p.source, store.NewSongRepository(tx), store.NewArtistRepository(tx), p.workers)

		var err error
		result, err = svc.Load(ctx, files)
		return result.Rows(), err
	})
	return result, err
}

// LoadLogs loads every activity-log file in one transaction.
func (p *Pipeline) LoadLogs(ctx context.Context) (services.LogResult, error) {
	var result services.LogResult
	err := p.processCategory(ctx, types.CategoryLogs, p.paths.LogData, func(tx *sql.Tx, files []string) (map[string]int64, error) {
		svc := services.NewLogService(
			p.source,
			store.NewTimeRepository(tx),
			store.NewUserRepository(tx),
			store.NewSongplayRepository(tx),
			p.workers,
		)

		var err error
		result, err = svc.Load(ctx, files)
		return result.Rows(), err
	})
	return result, err
}

type loadFunc func(tx *sql.Tx, files []string) (map[string]int64, error)

func (p *Pipeline) processCategory(ctx context.Context, category types.Category, root string, load loadFunc) error {
	started := p.now()

	files, err := p.source.List(ctx, root)
	if err != nil {
		return &CategoryError{Category: category, Err: err}
	}
	p.logger.Infof("%d files found in %s", len(files), root)

	var rows map[string]int64
	err = store.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		var err error
		rows, err = load(tx, files)
		return err
	})
	if err != nil {
		p.logger.Errorw("category rolled back", "category", category, "error", err)
		return &CategoryError{Category: category, Err: err}
	}

	event := types.LoadEvent{
		Category:    category,
		Root:        root,
		Files:       len(files),
		Rows:        rows,
		StartedAt:   started,
		CompletedAt: p.now(),
	}
	p.logger.Infow("category committed",
		"category", category,
		"files", len(files),
		"rows", rows,
		"elapsed", event.CompletedAt.Sub(started),
	)

	if p.notifier != nil {
		if _, err := p.notifier.PublishLoad(ctx, event); err != nil {
			p.logger.Warnw("failed to publish load event", "category", category, "error", err)
		}
	}
	return nil
}
