package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winestore/internal/domain"
	apperror "winestore/internal/errors"
	"winestore/internal/repository/memory"
)

func seed(t *testing.T, s *memory.Store, products int) {
	t.Helper()
	ctx := context.Background()
	w, err := s.Wineries().Save(ctx, domain.Winery{Name: "Cono Sur"})
	require.NoError(t, err)
	v, err := s.Varieties().Save(ctx, domain.Variety{Name: "Carmenere"})
	require.NoError(t, err)
	ty, err := s.Types().Save(ctx, domain.Type{Name: "Red"})
	require.NoError(t, err)

	for i := 0; i < products; i++ {
		_, err := s.Products().Save(ctx, domain.Product{Name: "Reserva", Year: 2019, Winery: w, Variety: v, Type: ty})
		require.NoError(t, err)
	}
}

func TestRepository_CRUD(t *testing.T) {
	s := memory.NewStore()
	repo := s.Orders()
	ctx := context.Background()

	first, err := repo.Save(ctx, domain.Order{IDCustomer: 5})
	require.NoError(t, err)
	second, err := repo.Save(ctx, domain.Order{IDCustomer: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Order{first, second}, all)

	second.Amount = 10
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)
	got, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Amount)

	require.NoError(t, repo.Delete(ctx, 1))
	_, err = repo.FindByID(ctx, 1)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.IsType(t, &apperror.NotFoundError{}, repo.Delete(ctx, 1))

	_, err = repo.Save(ctx, domain.Order{ID: 42})
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestRepository_EmptyFindAll(t *testing.T) {
	all, err := memory.NewStore().Wineries().FindAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductRepository_ProjectionUsesCurrentNames(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	_, err := s.Wineries().Save(ctx, domain.Winery{ID: 1, Name: "Cono Sur Bicicleta"})
	require.NoError(t, err)

	proj, err := s.Products().FindProjectionByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cono Sur Bicicleta", proj.WineryName)
	assert.Equal(t, "Carmenere", proj.VarietyName)
	assert.Equal(t, "Red", proj.TypeName)
}

func TestProductRepository_SaveRejectsMissingReference(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 0)

	_, err := s.Products().Save(context.Background(), domain.Product{
		Name:    "Órfão",
		Winery:  domain.Winery{ID: 1},
		Variety: domain.Variety{ID: 1},
		Type:    domain.Type{ID: 9},
	})

	assert.Error(t, err)
}

func TestProductRepository_Filters(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 3)
	ctx := context.Background()

	byWinery, err := s.Products().FindProjectionsByWineryID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byWinery, 3)

	byVariety, err := s.Products().FindProjectionsByVarietyID(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, byVariety)

	byType, err := s.Products().FindProjectionsByTypeID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byType, 3)
}

func TestProductRepository_Random(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 10)
	ctx := context.Background()

	sample, err := s.Products().FindRandomProjections(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, sample, 8)

	seen := map[int]bool{}
	for _, p := range sample {
		assert.False(t, seen[p.ID], "id repetido na amostra")
		seen[p.ID] = true
	}

	small := memory.NewStore()
	seed(t, small, 3)
	all, err := small.Products().FindRandomProjections(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_DeleteReferencedIsRejected(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	err := s.Wineries().Delete(ctx, 1)
	require.Error(t, err)
	assert.False(t, apperror.IsNotFound(err))
	_, err = s.Wineries().FindByID(ctx, 1)
	assert.NoError(t, err)

	require.NoError(t, s.Products().Delete(ctx, 1))
	assert.NoError(t, s.Types().Delete(ctx, 1))
}
