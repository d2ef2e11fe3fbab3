package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/wordbook/wordbook/internal/word"
	"github.com/wordbook/wordbook/pkg/metrics"
)

// fake repo for failure paths
type failingRepo struct {
	err error
}

func (f *failingRepo) Insert(ctx context.Context, w *word.Word) (*word.Word, error) {
	return nil, f.err
}
func (f *failingRepo) List(ctx context.Context) ([]*word.Word, error) { return nil, f.err }
func (f *failingRepo) FindByOrigin(ctx context.Context, origin string) (*word.Word, error) {
	return nil, f.err
}

func TestCreateThenListAndFind(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()

	w, err := svc.Create(ctx, word.Input{Origin: " casa ", Translation: "house"})
	require.NoError(t, err)
	require.Equal(t, "casa", w.Origin)
	require.False(t, w.ID.IsZero())

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "house", list[0].Translation)

	got, err := svc.FindByOrigin(ctx, "casa")
	require.NoError(t, err)
	require.Equal(t, w.ID, got.ID)
}

func TestCreateRejectsBlankFields(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, word.Input{Origin: "", Translation: "house"})
	require.ErrorIs(t, err, word.ErrInvalidInput)
	_, err = svc.Create(ctx, word.Input{Origin: "casa", Translation: "   "})
	require.ErrorIs(t, err, word.ErrInvalidInput)

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestImportKeepsOptionalFields(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()
	in := &word.Word{
		Origin:      "test",
		Translation: "prueba",
		Phonetic:    "/test/",
		ImgURL:      "http://img/test.png",
		Definitions: []word.PartOfSpeech{{PartOfSpeech: "noun", Definitions: []word.Definition{{Definition: "a test", Example: "this is a test"}}}},
	}
	_, err := svc.Import(ctx, in)
	require.NoError(t, err)

	got, err := svc.FindByOrigin(ctx, "test")
	require.NoError(t, err)
	require.Equal(t, in.Definitions, got.Definitions)
	require.Equal(t, "/test/", got.Phonetic)
	require.Equal(t, "http://img/test.png", got.ImgURL)
}

func TestFindByOriginNotFound(t *testing.T) {
	svc := NewMemoryService()
	before := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("find", "not_found"))

	_, err := svc.FindByOrigin(context.Background(), "doesnotexist")
	require.ErrorIs(t, err, word.ErrNotFound)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("find", "not_found")))
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	svc := New(&failingRepo{err: errors.Join(word.ErrStoreRead, errors.New("socket closed"))})
	ctx := context.Background()
	before := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("list", "error"))

	_, err := svc.ListAll(ctx)
	require.ErrorIs(t, err, word.ErrStoreRead)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("list", "error")))

	_, err = svc.FindByOrigin(ctx, "casa")
	require.ErrorIs(t, err, word.ErrStoreRead)
	require.NotErrorIs(t, err, word.ErrNotFound)

	wsvc := New(&failingRepo{err: errors.Join(word.ErrStoreWrite, errors.New("socket closed"))})
	_, err = wsvc.Create(ctx, word.Input{Origin: "casa", Translation: "house"})
	require.ErrorIs(t, err, word.ErrStoreWrite)
}
