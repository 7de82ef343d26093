package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "tracking_system"

	// appName shows up in the server logs and currentOp output, so a
	// misbehaving scraper connection is traceable back to this service.
	appName = "tracking-system"
)

// Config captures the settings for the scrape-history connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// clientOptions translates Config into driver options.
func clientOptions(cfg Config) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName)
}

// databaseName returns the configured database, falling back to the
// engine default.
func databaseName(cfg Config) string {
	if cfg.Database == "" {
		return defaultDatabase
	}
	return cfg.Database
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the history database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(databaseName(cfg))
	return client, db, nil
}
