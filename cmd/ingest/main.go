// Command ingest is the FightGraphs pipeline CLI.
//
// Usage:
//
//	fightgraphs-ingest schema up
//	fightgraphs-ingest indexes
//	fightgraphs-ingest seed all --workers 8
//	fightgraphs-ingest seed fights
//	fightgraphs-ingest preview fight --key http://ufcstats.com/fight-details/... --format yaml
//	fightgraphs-ingest id "UFC 300: Pereira vs. Hill"
//	fightgraphs-ingest refresh
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/config"
	"github.com/fightgraphs/pipeline/internal/db"
	"github.com/fightgraphs/pipeline/internal/logger"
	"github.com/fightgraphs/pipeline/internal/maintenance"
	"github.com/fightgraphs/pipeline/internal/schema"
	"github.com/fightgraphs/pipeline/internal/seed"
	"github.com/fightgraphs/pipeline/internal/source"
)

var log = zap.NewNop()

func main() {
	root := &cobra.Command{
		Use:          "fightgraphs-ingest",
		Short:        "FightGraphs document-to-relational pipeline",
		SilenceUsage: true,
	}

	root.AddCommand(seedCmd())
	root.AddCommand(schemaCmd())
	root.AddCommand(indexesCmd())
	root.AddCommand(previewCmd())
	root.AddCommand(idCmd())
	root.AddCommand(refreshCmd())

	err := root.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load documents from MongoDB into Postgres",
	}
	cmd.PersistentFlags().IntVar(&workers, "workers", 0, "Concurrent workers per collection (default PIPELINE_WORKERS)")

	stage := func(use, short string, run func(ctx context.Context, l *seed.Loader, pool *db.Pool) seed.SeedResult) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStores(func(ctx context.Context, cfg *config.Config, pool *db.Pool, src *source.Client) error {
					if workers <= 0 {
						workers = cfg.PipelineWorkers
					}
					loader := seed.NewLoader(pool, src, workers, log)
					start := time.Now()
					result := run(ctx, loader, pool)
					log.Info("Seed finished",
						zap.String("stage", use),
						zap.Int("workers", workers),
						zap.Duration("duration", time.Since(start).Round(time.Second)),
						zap.String("summary", result.Summary()))
					for _, e := range result.Errors {
						log.Error("seed error", zap.String("error", e))
					}
					return seedError(result)
				})
			},
		}
	}

	cmd.AddCommand(stage("fighters", "Load fighters, records and images", func(ctx context.Context, l *seed.Loader, _ *db.Pool) seed.SeedResult {
		if err := l.SeedPromotion(ctx); err != nil {
			var r seed.SeedResult
			r.AddErrorf("upsert promotion: %v", err)
			return r
		}
		return l.SeedFighters(ctx)
	}))
	cmd.AddCommand(stage("events", "Load events and their cards", func(ctx context.Context, l *seed.Loader, _ *db.Pool) seed.SeedResult {
		if err := l.SeedPromotion(ctx); err != nil {
			var r seed.SeedResult
			r.AddErrorf("upsert promotion: %v", err)
			return r
		}
		r, _ := l.SeedEvents(ctx)
		return r
	}))
	cmd.AddCommand(stage("fights", "Load fights with stats, scorecards and bonuses", func(ctx context.Context, l *seed.Loader, _ *db.Pool) seed.SeedResult {
		return l.SeedFights(ctx, nil)
	}))
	cmd.AddCommand(stage("all", "Load every collection and refresh the views", func(ctx context.Context, l *seed.Loader, pool *db.Pool) seed.SeedResult {
		result := l.RunAll(ctx)
		reg, err := schema.New()
		if err != nil {
			result.AddErrorf("schema registry: %v", err)
			return result
		}
		if err := maintenance.RefreshMaterializedViews(ctx, pool, reg.Views(), log); err != nil {
			result.AddErrorf("%v", err)
		}
		return result
	}))
	return cmd
}

// seedError turns a load that rejected documents or hit errors into a
// non-zero exit.
func seedError(result seed.SeedResult) error {
	if result.Rejected == 0 && len(result.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("seed finished with %d rejected documents and %d errors", result.Rejected, len(result.Errors))
}

// --------------------------------------------------------------------------
// schema command
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the relational schema",
	}

	migration := func(use, short string, fn func(m *schema.Migrator) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				reg, err := schema.New()
				if err != nil {
					return err
				}
				url, err := cfg.MigrateURL()
				if err != nil {
					return err
				}
				m, err := schema.NewMigrator(reg, url)
				if err != nil {
					return err
				}
				defer m.Close()
				return fn(m)
			},
		}
	}

	cmd.AddCommand(migration("up", "Apply pending migrations", func(m *schema.Migrator) error {
		if err := m.Up(); err != nil {
			return err
		}
		log.Info("Schema up to date")
		return nil
	}))
	cmd.AddCommand(migration("down", "Roll back every migration", func(m *schema.Migrator) error {
		if err := m.Down(); err != nil {
			return err
		}
		log.Info("Schema rolled back")
		return nil
	}))
	cmd.AddCommand(migration("version", "Print the applied migration version", func(m *schema.Migrator) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", v, dirty)
		return nil
	}))
	cmd.AddCommand(&cobra.Command{
		Use:   "truncate",
		Short: "Empty every pipeline table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPostgres(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				reg, err := schema.New()
				if err != nil {
					return err
				}
				if _, err := pool.Exec(ctx, reg.TruncateSQL()); err != nil {
					return fmt.Errorf("truncate: %w", err)
				}
				log.Info("Tables truncated", zap.Strings("tables", reg.Tables()))
				return nil
			})
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// indexes and refresh commands
// --------------------------------------------------------------------------

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes the pipeline reads by",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSource(func(ctx context.Context, cfg *config.Config, src *source.Client) error {
				return src.EnsureIndexes(ctx, source.DefaultIndexes())
			})
		},
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh materialized views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPostgres(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				reg, err := schema.New()
				if err != nil {
					return err
				}
				return maintenance.RefreshMaterializedViews(ctx, pool, reg.Views(), log)
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// loadConfig loads configuration and builds the logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log = logger.Must(cfg.LogLevel, cfg.Environment)
	return cfg, nil
}

// runPostgres handles config loading, DB connection, and context cancellation.
func runPostgres(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// runSource is runPostgres for the document store.
func runSource(fn func(ctx context.Context, cfg *config.Config, src *source.Client) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := source.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = src.Close(closeCtx)
	}()

	return fn(ctx, cfg, src)
}

// runStores connects to both stores.
func runStores(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool, src *source.Client) error) error {
	return runSource(func(ctx context.Context, cfg *config.Config, src *source.Client) error {
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		return fn(ctx, cfg, pool, src)
	})
}
