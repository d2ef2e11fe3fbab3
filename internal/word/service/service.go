package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wordbook/wordbook/internal/word"
	"github.com/wordbook/wordbook/internal/word/repository"
	"github.com/wordbook/wordbook/pkg/metrics"
)

// Service defines the word operations used by the API handler and the pages.
type Service interface {
	Create(ctx context.Context, in word.Input) (*word.Word, error)
	Import(ctx context.Context, w *word.Word) (*word.Word, error)
	ListAll(ctx context.Context) ([]*word.Word, error)
	FindByOrigin(ctx context.Context, origin string) (*word.Word, error)
}

// New returns a Service backed by the given repository.
func New(repo repository.Repository) Service {
	return &wordService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

type wordService struct {
	repo repository.Repository
}

// Create stores a submission. Only origin and translation are copied from the
// input; both must be non-blank.
func (s *wordService) Create(ctx context.Context, in word.Input) (*word.Word, error) {
	w := &word.Word{
		Origin:      strings.TrimSpace(in.Origin),
		Translation: strings.TrimSpace(in.Translation),
	}
	return s.Import(ctx, w)
}

// Import stores a full record, including the optional fields the API never sets.
func (s *wordService) Import(ctx context.Context, w *word.Word) (*word.Word, error) {
	if w == nil || strings.TrimSpace(w.Origin) == "" || strings.TrimSpace(w.Translation) == "" {
		return nil, word.ErrInvalidInput
	}
	out, err := s.repo.Insert(ctx, w)
	observe("insert", err)
	if err != nil {
		return nil, fmt.Errorf("insert word %q: %w", w.Origin, err)
	}
	return out, nil
}

func (s *wordService) ListAll(ctx context.Context) ([]*word.Word, error) {
	list, err := s.repo.List(ctx)
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return list, nil
}

func (s *wordService) FindByOrigin(ctx context.Context, origin string) (*word.Word, error) {
	w, err := s.repo.FindByOrigin(ctx, origin)
	observe("find", err)
	if err != nil {
		if errors.Is(err, word.ErrNotFound) {
			return nil, word.ErrNotFound
		}
		return nil, fmt.Errorf("find word %q: %w", origin, err)
	}
	return w, nil
}

func observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, word.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(op, result).Inc()
}
