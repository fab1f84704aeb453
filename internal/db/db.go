// Package db provides a pgxpool-based connection pool with prepared statement
// registration, health checking and scoped transactions.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fightgraphs/pipeline/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// statements is every prepared statement by name. The read API refers to
// them by name; queries return complete JSON built in Postgres.
var statements = map[string]string{
	"health_check": "SELECT 1",

	"api_fighter_profile": `SELECT row_to_json(p) FROM mv_fighter_profile p WHERE p.id = $1`,

	"api_event": `
		SELECT json_build_object(
			'event', row_to_json(e),
			'card', COALESCE((
				SELECT json_agg(json_build_object(
					'fight_id', ef.fight_id,
					'card_position', ef.card_position,
					'fighter1_id', f.fighter1_id,
					'fighter2_id', f.fighter2_id,
					'winner_id', f.winner_id,
					'method', f.method
				) ORDER BY ef.position)
				FROM eventfight ef
				LEFT JOIN fight f ON f.id = ef.fight_id
				WHERE ef.event_id = e.id
			), '[]'::json)
		)
		FROM event e WHERE e.id = $1`,

	"api_fight": `
		SELECT json_build_object(
			'fight', row_to_json(f),
			'stats', COALESCE((
				SELECT json_agg(row_to_json(s) ORDER BY s.round, s.fighter_id)
				FROM fightstat s WHERE s.fight_id = f.id
			), '[]'::json),
			'scorecards', COALESCE((
				SELECT json_agg(json_build_object('judge', j.name, 'fighter_id', sc.fighter_id, 'score', sc.scorecard))
				FROM scorecard sc JOIN judge j ON j.id = sc.judge_id
				WHERE sc.fight_id = f.id
			), '[]'::json),
			'bonuses', COALESCE((
				SELECT json_agg(json_build_object('bonus', b.name, 'fighter_id', fb.fighter_id))
				FROM fightbonus fb JOIN bonus b ON b.id = fb.bonus_id
				WHERE fb.fight_id = f.id
			), '[]'::json)
		)
		FROM fight f WHERE f.id = $1`,

	"api_fighter_fights": `
		SELECT COALESCE(json_agg(row_to_json(f) ORDER BY e.date DESC NULLS LAST), '[]'::json)
		FROM fight f
		LEFT JOIN event e ON e.id = f.event_id
		WHERE f.fighter1_id = $1 OR f.fighter2_id = $1`,
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Transactions
// --------------------------------------------------------------------------

// Beginner starts transactions. *pgxpool.Pool and pgx.Conn satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func WithTx(ctx context.Context, db Beginner, fn func(pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
			return
		}
		if err = tx.Commit(ctx); err != nil {
			err = fmt.Errorf("commit transaction: %w", err)
		}
	}()

	return fn(tx)
}
