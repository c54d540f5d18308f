package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maxviazov/basketball-team-service/internal/config"
)

// Store encapsulates the Mongo client and the service database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB using the given config and verifies the connection
// with a timeboxed ping before handing the store out.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	// Assemble the URI through url.URL so credentials are escaped correctly.
	// An explicit mongo.uri in the config wins over the discrete fields.
	uri := cfg.Mongo.URI
	if uri == "" {
		u := url.URL{
			Scheme: "mongodb",
			Host:   fmt.Sprintf("%s:%d", cfg.Mongo.Host, cfg.Mongo.Port),
			Path:   "/",
		}
		if cfg.Mongo.User != "" || cfg.Mongo.Password != "" {
			u.User = url.UserPassword(cfg.Mongo.User, cfg.Mongo.Password)
		}
		if cfg.Mongo.AuthSource != "" {
			q := u.Query()
			q.Set("authSource", cfg.Mongo.AuthSource)
			u.RawQuery = q.Encode()
		}
		uri = u.String()
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(time.Duration(cfg.Mongo.ConnectTimeout) * time.Second).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	// Verify the connection with a timeout so startup cannot hang.
	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Mongo.PingTimeout)*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().
		Str("host", cfg.Mongo.Host).
		Int("port", cfg.Mongo.Port).
		Str("db", cfg.Mongo.DBName).
		Msg("Successfully connected to MongoDB")

	return &Store{client: client, db: client.Database(cfg.Mongo.DBName)}, nil
}

// Database exposes the service database for repository constructors.
func (s *Store) Database() *mongo.Database { return s.db }

// Ping satisfies Pinger for readiness probes.
func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, nil) }

// Close releases the underlying client connections.
func (s *Store) Close(ctx context.Context) {
	if s.client != nil {
		_ = s.client.Disconnect(ctx)
	}
}

var _ Pinger = (*Store)(nil)
