package seed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/db"
	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/entity"
	"github.com/fightgraphs/pipeline/internal/identity"
	"github.com/fightgraphs/pipeline/internal/metrics"
	"github.com/fightgraphs/pipeline/internal/transform"
)

// Source yields raw documents. *source.Client satisfies it.
type Source interface {
	EachFighter(ctx context.Context, fn func(document.FighterDocument) error) error
	FighterImages(ctx context.Context) ([]document.FighterImageDocument, error)
	Events(ctx context.Context) ([]document.EventDocument, error)
	EachFight(ctx context.Context, fn func(document.FightDocument) error) error
}

// Loader maps source documents and writes them to Postgres. Each document
// is written in its own transaction; a document that fails validation or
// whose write fails is counted and reported without stopping the load.
type Loader struct {
	db      db.Beginner
	source  Source
	workers int
	logger  *zap.Logger

	// One registry per id space: a fighter and an event may share an id.
	registries map[string]*identity.Registry
}

// NewLoader creates a Loader running workers goroutines per collection.
func NewLoader(pool db.Beginner, src Source, workers int, logger *zap.Logger) *Loader {
	return &Loader{
		db:      pool,
		source:  src,
		workers: workers,
		logger:  logger,
		registries: map[string]*identity.Registry{
			transform.EntityFighter: identity.NewRegistry(identity.DefaultDigits),
			transform.EntityEvent:   identity.NewRegistry(identity.DefaultDigits),
			transform.EntityFight:   identity.NewRegistry(identity.DefaultDigits),
		},
	}
}

// batch collects a stage's result from concurrent workers.
type batch struct {
	mu     sync.Mutex
	result SeedResult
}

func (b *batch) update(fn func(r *SeedResult)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.result)
}

func (l *Loader) reject(b *batch, kind, reason string, err error) {
	metrics.DocumentsRejected.WithLabelValues(kind, reason).Inc()
	l.logger.Warn("Document rejected",
		zap.String("kind", kind),
		zap.String("reason", reason),
		zap.Error(err))
	b.update(func(r *SeedResult) {
		r.Rejected++
		r.AddErrorf("%s: %s: %v", kind, reason, err)
	})
}

// observe checks a natural key against the load's registry for kind.
func (l *Loader) observe(b *batch, kind, key string) bool {
	if _, err := l.registries[kind].Observe(key); err != nil {
		reason := metrics.ReasonValidation
		if errors.Is(err, identity.ErrCollision) {
			reason = metrics.ReasonCollision
		}
		l.reject(b, kind, reason, err)
		return false
	}
	return true
}

func (l *Loader) written(b *batch, kind string, rows int, count func(r *SeedResult)) {
	metrics.RowsUpserted.WithLabelValues(kind).Add(float64(rows))
	b.update(func(r *SeedResult) {
		count(r)
		r.RowsUpserted += rows
	})
}

func observeStage(stage string, start time.Time) {
	metrics.RunDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// --------------------------------------------------------------------------
// Stages
// --------------------------------------------------------------------------

// SeedPromotion writes the promotion row every event references.
func (l *Loader) SeedPromotion(ctx context.Context) error {
	return db.WithTx(ctx, l.db, func(tx pgx.Tx) error {
		return UpsertPromotion(ctx, tx, entity.Promotion{ID: entity.PromotionID, Name: entity.PromotionName})
	})
}

// SeedFighters loads every fighter with its record and image.
func (l *Loader) SeedFighters(ctx context.Context) SeedResult {
	defer observeStage("fighters", time.Now())
	var b batch

	images, err := l.source.FighterImages(ctx)
	if err != nil {
		b.result.AddErrorf("fetch fighter images: %v", err)
		return b.result
	}
	idx := transform.NewImageIndex(images)
	l.logger.Info("Fighter images indexed", zap.Int("count", len(idx)))

	err = process(ctx, l.workers, l.source.EachFighter, func(ctx context.Context, doc document.FighterDocument) {
		f, rec, err := transform.MapFighter(doc, idx.ForFighter(doc.FighterURL))
		if err != nil {
			l.reject(&b, transform.EntityFighter, metrics.ReasonValidation, err)
			return
		}
		if !l.observe(&b, transform.EntityFighter, doc.FighterURL) {
			return
		}
		metrics.DocumentsMapped.WithLabelValues(transform.EntityFighter).Inc()

		err = db.WithTx(ctx, l.db, func(tx pgx.Tx) error {
			if err := UpsertFighter(ctx, tx, f); err != nil {
				return err
			}
			return UpsertFighterRecord(ctx, tx, rec)
		})
		if err != nil {
			l.reject(&b, transform.EntityFighter, metrics.ReasonWrite, err)
			return
		}
		l.written(&b, transform.EntityFighter, 2, func(r *SeedResult) { r.FightersUpserted++ })
	})
	if err != nil {
		b.result.AddErrorf("read fighters: %v", err)
	}

	l.logger.Info("Fighters done", zap.String("summary", b.result.Summary()))
	return b.result
}

// SeedEvents loads every event and its card. The returned index places
// fights on their events for SeedFights; it is nil when events could not
// be read.
func (l *Loader) SeedEvents(ctx context.Context) (SeedResult, *transform.EventIndex) {
	defer observeStage("events", time.Now())
	var b batch

	events, err := l.source.Events(ctx)
	if err != nil {
		b.result.AddErrorf("fetch events: %v", err)
		return b.result, nil
	}

	// Only events whose rows exist may be referenced by fights.
	var stored []document.EventDocument
	err = process(ctx, l.workers, fromSlice(events), func(ctx context.Context, doc document.EventDocument) {
		ev, card, err := transform.MapEvent(doc)
		if err != nil {
			l.reject(&b, transform.EntityEvent, metrics.ReasonValidation, err)
			return
		}
		if !l.observe(&b, transform.EntityEvent, doc.Name) {
			return
		}
		metrics.DocumentsMapped.WithLabelValues(transform.EntityEvent).Inc()

		rows := 0
		err = db.WithTx(ctx, l.db, func(tx pgx.Tx) error {
			if err := UpsertEvent(ctx, tx, ev); err != nil {
				return err
			}
			n, err := ReplaceEventCard(ctx, tx, ev.ID, card)
			rows = n + 1
			return err
		})
		if err != nil {
			l.reject(&b, transform.EntityEvent, metrics.ReasonWrite, err)
			return
		}
		l.written(&b, transform.EntityEvent, rows, func(r *SeedResult) {
			r.EventsUpserted++
			stored = append(stored, doc)
		})
	})
	if err != nil {
		b.result.AddErrorf("load events: %v", err)
	}
	idx := transform.NewEventIndex(stored)

	l.logger.Info("Events done",
		zap.String("summary", b.result.Summary()),
		zap.Int("fights_placed", idx.Len()))
	return b.result, idx
}

// SeedFights loads every fight with its stats, scorecards and bonuses.
// When idx is nil the event index is rebuilt from the source.
func (l *Loader) SeedFights(ctx context.Context, idx *transform.EventIndex) SeedResult {
	defer observeStage("fights", time.Now())
	var b batch

	if idx == nil {
		events, err := l.source.Events(ctx)
		if err != nil {
			b.result.AddErrorf("fetch events for fight index: %v", err)
			return b.result
		}
		idx = transform.NewEventIndex(events)
	}

	err := process(ctx, l.workers, l.source.EachFight, func(ctx context.Context, doc document.FightDocument) {
		m, err := transform.MapFight(doc, idx.EventFor(doc))
		if err != nil {
			l.reject(&b, transform.EntityFight, metrics.ReasonValidation, err)
			return
		}
		if !l.observe(&b, transform.EntityFight, doc.FightURL) {
			return
		}
		metrics.DocumentsMapped.WithLabelValues(transform.EntityFight).Inc()

		rows := 0
		err = db.WithTx(ctx, l.db, func(tx pgx.Tx) error {
			n, err := WriteFight(ctx, tx, m)
			rows = n
			return err
		})
		if err != nil {
			l.reject(&b, transform.EntityFight, metrics.ReasonWrite, err)
			return
		}
		l.written(&b, transform.EntityFight, rows, func(r *SeedResult) { r.FightsUpserted++ })
	})
	if err != nil {
		b.result.AddErrorf("read fights: %v", err)
	}

	l.logger.Info("Fights done", zap.String("summary", b.result.Summary()))
	return b.result
}

// RunAll loads promotion, fighters, events and fights in dependency order.
func (l *Loader) RunAll(ctx context.Context) SeedResult {
	defer observeStage("all", time.Now())
	var result SeedResult

	if err := l.SeedPromotion(ctx); err != nil {
		result.AddErrorf("upsert promotion: %v", err)
		return result
	}
	result.RowsUpserted++

	result.Add(l.SeedFighters(ctx))
	events, idx := l.SeedEvents(ctx)
	result.Add(events)
	if ctx.Err() != nil {
		return result
	}
	result.Add(l.SeedFights(ctx, idx))
	return result
}
