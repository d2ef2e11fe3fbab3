package repository

import (
	"context"

	"github.com/wordbook/wordbook/internal/word"
)

// Repository is the data-access contract for word records.
type Repository interface {
	Insert(ctx context.Context, w *word.Word) (*word.Word, error)
	List(ctx context.Context) ([]*word.Word, error)
	FindByOrigin(ctx context.Context, origin string) (*word.Word, error)
}
