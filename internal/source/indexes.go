package source

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/config"
)

// IndexSpec is one index to create on a collection.
type IndexSpec struct {
	Collection string
	Name       string
	Keys       bson.D
}

// DefaultIndexes covers the natural-key lookups and the fight-to-event join.
// None are unique: the store may hold duplicates and the pipeline does not
// deduplicate.
func DefaultIndexes() []IndexSpec {
	return []IndexSpec{
		{config.FightersCollection, "fighter_url", bson.D{{Key: "fighter_ufcstats_url", Value: 1}}},
		{config.FighterImagesCollection, "fighter_url", bson.D{{Key: "fighter_ufcstats_url", Value: 1}}},
		{config.EventsCollection, "event_name", bson.D{{Key: "event_name", Value: 1}}},
		{config.EventsCollection, "event_url", bson.D{{Key: "event_ufcstats_url", Value: 1}}},
		{config.FightsCollection, "fight_url", bson.D{{Key: "fight_ufcstats_url", Value: 1}}},
		{config.FightsCollection, "event_url", bson.D{{Key: "fight_details.event_ufcstats_url", Value: 1}}},
	}
}

// EnsureIndexes creates every index in specs. Creating an index that
// already exists with the same definition is a no-op on the server.
func (c *Client) EnsureIndexes(ctx context.Context, specs []IndexSpec) error {
	for _, spec := range specs {
		model := mongo.IndexModel{
			Keys:    spec.Keys,
			Options: options.Index().SetName(spec.Name),
		}
		name, err := c.db.Collection(spec.Collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			return fmt.Errorf("create index %s.%s: %w", spec.Collection, spec.Name, err)
		}
		c.logger.Info("Index ensured", zap.String("collection", spec.Collection), zap.String("index", name))
	}
	return nil
}
