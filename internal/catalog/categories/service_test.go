package categories

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

type stubCounter struct {
	counts map[string]int
}

func (s stubCounter) CountByCategory(ctx context.Context, category string) (int, error) {
	return s.counts[category], nil
}

func newTestService(counts map[string]int) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewMemoryRepository(nil), stubCounter{counts: counts}, logger)
}

func TestDeleteRejectedWhileProductsReference(t *testing.T) {
	svc := newTestService(map[string]int{"Beverages": 3})
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateInput{Name: "Beverages", Color: "bg-blue-500"})
	require.NoError(t, err)

	err = svc.Delete(ctx, c.ID)
	require.ErrorIs(t, err, httpx.ErrConflict)
	require.Contains(t, err.Error(), "3 product(s)")

	// The category survives the rejected delete.
	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Beverages", got.Name)
}

func TestDeleteSucceedsWithoutReferences(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateInput{Name: "Seasonal"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, c.ID))

	_, err = svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateAppliesProvidedFields(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateInput{Name: "Snacks", Color: "bg-yellow-500"})
	require.NoError(t, err)

	desc := "Snacks and chips"
	updated, err := svc.Update(ctx, c.ID, Update{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Snacks", updated.Name)
	require.Equal(t, "bg-yellow-500", updated.Color)
	require.Equal(t, "Snacks and chips", updated.Description)
}

func TestDeleteMissingCategory(t *testing.T) {
	svc := newTestService(nil)
	err := svc.Delete(context.Background(), "missing")
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}
