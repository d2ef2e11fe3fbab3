package repository

import (
	"context"
	"sync"

	"github.com/wordbook/wordbook/internal/word"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps words in insertion order. Used by tests and the importer dry run.
type MemoryRepo struct {
	mu    sync.RWMutex
	words []*word.Word
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(ctx context.Context, w *word.Word) (*word.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	stored := clone(w)
	m.words = append(m.words, stored)
	return clone(stored), nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*word.Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*word.Word, 0, len(m.words))
	for _, w := range m.words {
		out = append(out, clone(w))
	}
	return out, nil
}

func (m *MemoryRepo) FindByOrigin(ctx context.Context, origin string) (*word.Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.words {
		if w.Origin == origin {
			return clone(w), nil
		}
	}
	return nil, word.ErrNotFound
}

func clone(w *word.Word) *word.Word {
	c := *w
	if w.Definitions != nil {
		c.Definitions = make([]word.PartOfSpeech, len(w.Definitions))
		for i, p := range w.Definitions {
			c.Definitions[i] = word.PartOfSpeech{
				PartOfSpeech: p.PartOfSpeech,
				Definitions:  append([]word.Definition(nil), p.Definitions...),
			}
		}
	}
	return &c
}
