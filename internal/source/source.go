// Package source reads raw scraper documents out of MongoDB.
//
// Collections are streamed through callbacks so a full collection never has
// to sit in memory; only the small lookup collections (images, events) are
// returned as slices.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/config"
	"github.com/fightgraphs/pipeline/internal/document"
)

// ErrNotFound is returned by the single-document lookups.
var ErrNotFound = errors.New("document not found")

// Client reads the scraper's collections.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string, logger *zap.Logger) (*Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	c := New(client.Database(database), logger)
	c.client = client
	return c, nil
}

// New wraps an existing database handle.
func New(db *mongo.Database, logger *zap.Logger) *Client {
	return &Client{db: db, logger: logger}
}

// Close disconnects a client created by Connect.
func (c *Client) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

// --------------------------------------------------------------------------
// Streaming reads
// --------------------------------------------------------------------------

// EachFighter calls fn for every fighter document.
func (c *Client) EachFighter(ctx context.Context, fn func(document.FighterDocument) error) error {
	return each(ctx, c, config.FightersCollection, fn)
}

// EachEvent calls fn for every event document.
func (c *Client) EachEvent(ctx context.Context, fn func(document.EventDocument) error) error {
	return each(ctx, c, config.EventsCollection, fn)
}

// EachFight calls fn for every fight document.
func (c *Client) EachFight(ctx context.Context, fn func(document.FightDocument) error) error {
	return each(ctx, c, config.FightsCollection, fn)
}

// FighterImages returns every fighter image document.
func (c *Client) FighterImages(ctx context.Context) ([]document.FighterImageDocument, error) {
	var out []document.FighterImageDocument
	err := each(ctx, c, config.FighterImagesCollection, func(d document.FighterImageDocument) error {
		out = append(out, d)
		return nil
	})
	return out, err
}

// Events returns every event document.
func (c *Client) Events(ctx context.Context) ([]document.EventDocument, error) {
	var out []document.EventDocument
	err := c.EachEvent(ctx, func(d document.EventDocument) error {
		out = append(out, d)
		return nil
	})
	return out, err
}

// each decodes every document of a collection into T. Documents that do
// not decode are logged and skipped; fn's error stops the scan.
func each[T any](ctx context.Context, c *Client, collection string, fn func(T) error) error {
	cur, err := c.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			c.logger.Warn("Skipping undecodable document",
				zap.String("collection", collection),
				zap.String("_id", cur.Current.Lookup("_id").String()),
				zap.Error(err))
			continue
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", collection, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Single-document lookups
// --------------------------------------------------------------------------

// Fighter finds a fighter by profile url.
func (c *Client) Fighter(ctx context.Context, fighterURL string) (document.FighterDocument, error) {
	return findOne[document.FighterDocument](ctx, c, config.FightersCollection, "fighter_ufcstats_url", fighterURL)
}

// FighterImage finds a fighter's image document; nil when there is none.
func (c *Client) FighterImage(ctx context.Context, fighterURL string) (*document.FighterImageDocument, error) {
	img, err := findOne[document.FighterImageDocument](ctx, c, config.FighterImagesCollection, "fighter_ufcstats_url", fighterURL)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Event finds an event by name.
func (c *Client) Event(ctx context.Context, name string) (document.EventDocument, error) {
	return findOne[document.EventDocument](ctx, c, config.EventsCollection, "event_name", name)
}

// Fight finds a fight by url.
func (c *Client) Fight(ctx context.Context, fightURL string) (document.FightDocument, error) {
	return findOne[document.FightDocument](ctx, c, config.FightsCollection, "fight_ufcstats_url", fightURL)
}

func findOne[T any](ctx context.Context, c *Client, collection, field, value string) (T, error) {
	var doc T
	err := c.db.Collection(collection).FindOne(ctx, bson.D{{Key: field, Value: value}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, fmt.Errorf("%s %s=%q: %w", collection, field, value, ErrNotFound)
	}
	if err != nil {
		return doc, fmt.Errorf("find %s: %w", collection, err)
	}
	return doc, nil
}
