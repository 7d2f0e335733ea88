package suppliers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

type stubCounter struct {
	counts map[string]int
}

func (s stubCounter) CountBySupplier(ctx context.Context, supplier string) (int, error) {
	return s.counts[supplier], nil
}

func newTestService(counts map[string]int) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewMemoryRepository(nil), stubCounter{counts: counts}, logger)
}

func TestDeleteRejectedWhileProductsReference(t *testing.T) {
	svc := newTestService(map[string]int{"ABC Distributors": 4})
	ctx := context.Background()

	sup, err := svc.Create(ctx, CreateInput{Name: "ABC Distributors", ContactPerson: "John Doe"})
	require.NoError(t, err)

	err = svc.Delete(ctx, sup.ID)
	require.ErrorIs(t, err, httpx.ErrConflict)
	require.Contains(t, err.Error(), "4 product(s)")
}

func TestDeleteSucceedsWithoutReferences(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sup, err := svc.Create(ctx, CreateInput{Name: "Tech Supply Co"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, sup.ID))

	_, err = svc.Get(ctx, sup.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateAppliesProvidedFields(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sup, err := svc.Create(ctx, CreateInput{Name: "XYZ Wholesale", Email: "jane@xyz.com"})
	require.NoError(t, err)

	phone := "098-765-4321"
	updated, err := svc.Update(ctx, sup.ID, Update{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, "XYZ Wholesale", updated.Name)
	require.Equal(t, "jane@xyz.com", updated.Email)
	require.Equal(t, "098-765-4321", updated.Phone)
}
