package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds MongoDB client settings.
type MongoConfig struct {
	URI                    string
	Database               string
	AppName                string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	MaxPoolSize            uint64
}

func (c MongoConfig) clientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(c.URI)
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	if c.ConnectTimeout > 0 {
		opts.SetConnectTimeout(c.ConnectTimeout)
	}
	if c.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(c.ServerSelectionTimeout)
	}
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}
	return opts
}

// NewMongoClient builds a client for cfg.URI and pings the primary.
//
// A failed ping is logged but the client is still returned. The driver
// reconnects on its own, and the status endpoint reports the error until
// then. Only an unusable URI is fatal.
func NewMongoClient(ctx context.Context, cfg MongoConfig, logger *slog.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, cfg.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	err = newRetrier(logger).do(ctx, "mongodb", func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil && logger != nil {
		logger.Warn("mongodb not reachable at startup, continuing",
			slog.String("database", cfg.Database),
			slog.String("error", err.Error()),
		)
	}

	return client, nil
}
