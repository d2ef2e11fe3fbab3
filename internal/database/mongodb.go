package database

import (
	"context"
	"fmt"
	"time"

	"github.com/wordbook/wordbook/internal/word"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Store holds the process-wide Mongo client. The connection is established on
// the first successful Client call and reused afterwards; a failed attempt is
// not remembered, so the next caller tries again. Callers waiting on another
// caller's attempt give up when their own context is done.
type Store struct {
	uri      string
	database string
	timeout  time.Duration

	connect func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error)

	// 1-slot semaphore guarding client
	sem    chan struct{}
	client *mongo.Client
}

func NewStore(uri, database string, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{uri: uri, database: database, timeout: timeout, connect: ConnectMongo, sem: make(chan struct{}, 1)}
}

// Client returns the shared client, connecting on first use.
func (s *Store) Client(ctx context.Context) (*mongo.Client, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", word.ErrConnection, err)
	}
	defer s.release()
	if s.client != nil {
		return s.client, nil
	}
	if s.uri == "" {
		return nil, fmt.Errorf("%w: MONGODB_URI is not set", word.ErrConnection)
	}
	c, err := s.connect(ctx, s.uri, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", word.ErrConnection, err)
	}
	s.client = c
	return c, nil
}

// Collection resolves a collection in the configured database.
func (s *Store) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	c, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(s.database).Collection(name), nil
}

// Timeout is the default deadline applied to store operations.
func (s *Store) Timeout() time.Duration { return s.timeout }

// Ping checks that the store is reachable, connecting first if needed.
func (s *Store) Ping(ctx context.Context) error {
	c, err := s.Client(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return c.Ping(ctx, nil)
}

// Disconnect closes the client if one was established.
func (s *Store) Disconnect(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	return err
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() { <-s.sem }
