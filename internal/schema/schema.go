// Package schema owns the relational schema: the embedded migrations and
// the ordered list of tables they create.
//
// A Registry is built explicitly with New and handed to whatever needs the
// schema (the migrator, the truncate command); nothing here is a package
// level mutable value.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/fightgraphs/pipeline/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Registry describes the schema. Tables are in dependency order: every
// table appears after the tables it references.
type Registry struct {
	migrations fs.FS
	tables     []string
	views      []string
}

// New returns the registry for the embedded migrations.
func New() (*Registry, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	return &Registry{
		migrations: sub,
		tables: []string{
			config.PromotionTable,
			config.FighterTable,
			config.FighterRecordTable,
			config.EventTable,
			config.EventFightTable,
			config.TimeFormatTable,
			config.RefereeTable,
			config.WeightClassTable,
			config.TitleTable,
			config.FightTable,
			config.TitleFightTable,
			config.FightStatTable,
			config.BonusTable,
			config.FightBonusTable,
			config.JudgeTable,
			config.ScorecardTable,
		},
		views: []string{"mv_fighter_profile"},
	}, nil
}

// Tables returns the tables in dependency order.
func (r *Registry) Tables() []string {
	return append([]string(nil), r.tables...)
}

// Views returns the materialized views.
func (r *Registry) Views() []string {
	return append([]string(nil), r.views...)
}

// Migrations returns the migration files.
func (r *Registry) Migrations() fs.FS {
	return r.migrations
}

// TruncateSQL empties every table in one statement.
func (r *Registry) TruncateSQL() string {
	sql := "TRUNCATE TABLE "
	for i := len(r.tables) - 1; i >= 0; i-- {
		sql += r.tables[i]
		if i > 0 {
			sql += ", "
		}
	}
	return sql + " CASCADE"
}

// --------------------------------------------------------------------------
// Migrator
// --------------------------------------------------------------------------

// Migrator applies a Registry's migrations to a database.
type Migrator struct {
	migrate *migrate.Migrate
}

// NewMigrator connects to databaseURL, which must use the pgx5:// scheme
// (see config.Config.MigrateURL).
func NewMigrator(reg *Registry, databaseURL string) (*Migrator, error) {
	src, err := iofs.New(reg.migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Migrator{migrate: m}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up() error {
	if err := m.migrate.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down rolls back every migration.
func (m *Migrator) Down() error {
	if err := m.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	return nil
}

// Version returns the applied version and dirty flag; 0 when nothing is
// applied.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return v, dirty, nil
}

// Close releases the source and database handles.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	return errors.Join(srcErr, dbErr)
}
