package maintenance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/seed"
)

// RefreshMaterializedViews refreshes the given views after a load.
// Uses CONCURRENTLY so reads are not blocked during refresh; each view
// needs a unique index for that.
func RefreshMaterializedViews(ctx context.Context, db seed.Execer, views []string, logger *zap.Logger) error {
	for _, v := range views {
		start := time.Now()
		_, err := db.Exec(ctx, fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY %s", v))
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to refresh materialized view",
				zap.String("view", v), zap.Duration("duration", dur), zap.Error(err))
			return fmt.Errorf("refresh %s: %w", v, err)
		}
		logger.Info("Refreshed materialized view", zap.String("view", v), zap.Duration("duration", dur))
	}
	return nil
}
