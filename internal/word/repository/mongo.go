package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wordbook/wordbook/internal/word"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the name of the collection holding word records.
const Collection = "words"

// CollectionProvider resolves the words collection on demand so the connection
// is only established when a request first needs it.
type CollectionProvider interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
}

// CollectionFunc adapts a function to CollectionProvider.
type CollectionFunc func(ctx context.Context, name string) (*mongo.Collection, error)

func (f CollectionFunc) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	return f(ctx, name)
}

// MongoRepo implements Repository on a MongoDB collection. The collection has
// no index on "origin"; a full scan per lookup is fine for a personal word list.
type MongoRepo struct {
	provider CollectionProvider
	timeout  time.Duration
}

func NewMongoRepo(provider CollectionProvider, timeout time.Duration) *MongoRepo {
	return &MongoRepo{provider: provider, timeout: timeout}
}

func (m *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || m.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.timeout)
}

func (m *MongoRepo) Insert(ctx context.Context, w *word.Word) (*word.Word, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	col, err := m.provider.Collection(ctx, Collection)
	if err != nil {
		return nil, err
	}
	res, err := col.InsertOne(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", word.ErrStoreWrite, err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		w.ID = id
	}
	return w, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*word.Word, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	col, err := m.provider.Collection(ctx, Collection)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", word.ErrStoreRead, err)
	}
	defer cur.Close(ctx)
	out := []*word.Word{}
	for cur.Next(ctx) {
		var w word.Word
		if err := cur.Decode(&w); err != nil {
			return nil, fmt.Errorf("%w: %w", word.ErrStoreRead, err)
		}
		out = append(out, &w)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", word.ErrStoreRead, err)
	}
	return out, nil
}

func (m *MongoRepo) FindByOrigin(ctx context.Context, origin string) (*word.Word, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	col, err := m.provider.Collection(ctx, Collection)
	if err != nil {
		return nil, err
	}
	var w word.Word
	if err := col.FindOne(ctx, bson.M{"origin": origin}).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, word.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", word.ErrStoreRead, err)
	}
	return &w, nil
}
