package productservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"winestore/internal/domain"
	apperror "winestore/internal/errors"
	"winestore/internal/mapper"
	"winestore/internal/pkg/logger"
	"winestore/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) FindAllProjections(ctx context.Context) ([]domain.ProductProjection, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProductProjection), args.Error(1)
}

func (m *MockProductRepository) FindProjectionByID(ctx context.Context, id int) (domain.ProductProjection, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ProductProjection), args.Error(1)
}

func (m *MockProductRepository) FindProjectionsByWineryID(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.ProductProjection), args.Error(1)
}

func (m *MockProductRepository) FindProjectionsByVarietyID(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.ProductProjection), args.Error(1)
}

func (m *MockProductRepository) FindProjectionsByTypeID(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.ProductProjection), args.Error(1)
}

func (m *MockProductRepository) FindRandomProjections(ctx context.Context, limit int) ([]domain.ProductProjection, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.ProductProjection), args.Error(1)
}

// MockFinder resolve referências por ID.
type MockFinder[E any] struct {
	mock.Mock
}

func (m *MockFinder[E]) FindByID(ctx context.Context, id int) (E, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(E), args.Error(1)
}

type fixture struct {
	repo      *MockProductRepository
	wineries  *MockFinder[domain.Winery]
	varieties *MockFinder[domain.Variety]
	types     *MockFinder[domain.Type]
	svc       *productservice.Service
}

func newFixture() fixture {
	f := fixture{
		repo:      new(MockProductRepository),
		wineries:  new(MockFinder[domain.Winery]),
		varieties: new(MockFinder[domain.Variety]),
		types:     new(MockFinder[domain.Type]),
	}
	f.svc = productservice.NewService(f.repo, productservice.References{
		Wineries:  f.wineries,
		Varieties: f.varieties,
		Types:     f.types,
	}, logger.NewLogger("debug"))
	return f
}

var (
	coneSur   = domain.Winery{ID: 1, Name: "Cono Sur"}
	carmenere = domain.Variety{ID: 1, Name: "Carmenere"}
	red       = domain.Type{ID: 1, Name: "Red"}
)

func reservaDTO() domain.ProductDTO {
	return domain.ProductDTO{
		Name:        mapper.Ptr("Reserva"),
		Description: mapper.Ptr("Encorpado"),
		Image:       mapper.Ptr("reserva.png"),
		Year:        mapper.Ptr(2019),
		Price:       mapper.Ptr(12.5),
		Stock:       mapper.Ptr(40),
		IDWinery:    mapper.Ptr(1),
		IDVariety:   mapper.Ptr(1),
		IDType:      mapper.Ptr(1),
	}
}

// TestCreate_Success resolve as três referências e devolve o DTO com o ID atribuído.
func TestCreate_Success(t *testing.T) {
	f := newFixture()

	f.wineries.On("FindByID", mock.Anything, 1).Return(coneSur, nil)
	f.varieties.On("FindByID", mock.Anything, 1).Return(carmenere, nil)
	f.types.On("FindByID", mock.Anything, 1).Return(red, nil)

	expected := domain.ProductFromDTO(0, reservaDTO(), coneSur, carmenere, red)
	saved := expected
	saved.ID = 10
	f.repo.On("Save", mock.Anything, expected).Return(saved, nil)

	result, err := f.svc.Create(context.Background(), reservaDTO())

	require.NoError(t, err)
	assert.Equal(t, 10, *result.ID)
	assert.Equal(t, "Reserva", *result.Name)
	assert.Equal(t, 1, *result.IDWinery)
	f.repo.AssertExpectations(t)
}

// TestCreate_MissingVariety falha com NotFound nomeando a referência e não persiste.
func TestCreate_MissingVariety(t *testing.T) {
	f := newFixture()

	f.wineries.On("FindByID", mock.Anything, 1).Return(coneSur, nil)
	f.varieties.On("FindByID", mock.Anything, 1).Return(domain.Variety{}, apperror.NewNotFoundError("x"))

	_, err := f.svc.Create(context.Background(), reservaDTO())

	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Contains(t, err.Error(), "Variedade não existe (ID: 1)")
	f.types.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestCreate_MissingField não consulta referências nem persiste.
func TestCreate_MissingField(t *testing.T) {
	f := newFixture()

	dto := reservaDTO()
	dto.Price = nil

	_, err := f.svc.Create(context.Background(), dto)

	assert.IsType(t, &apperror.BadRequestError{}, err)
	assert.Contains(t, err.Error(), "price")
	f.wineries.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestUpdate_MissingType falha sem modificar o produto.
func TestUpdate_MissingType(t *testing.T) {
	f := newFixture()

	dto := reservaDTO()
	dto.ID = mapper.Ptr(10)
	dto.IDType = mapper.Ptr(5)

	f.repo.On("FindByID", mock.Anything, 10).Return(domain.Product{ID: 10}, nil)
	f.wineries.On("FindByID", mock.Anything, 1).Return(coneSur, nil)
	f.varieties.On("FindByID", mock.Anything, 1).Return(carmenere, nil)
	f.types.On("FindByID", mock.Anything, 5).Return(domain.Type{}, apperror.NewNotFoundError("x"))

	_, err := f.svc.Update(context.Background(), dto)

	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Contains(t, err.Error(), "Tipo não existe (ID: 5)")
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestDelete_NotFound não remove nada.
func TestDelete_NotFound(t *testing.T) {
	f := newFixture()

	f.repo.On("FindByID", mock.Anything, 3).Return(domain.Product{}, apperror.NewNotFoundError("x"))

	err := f.svc.Delete(context.Background(), 3)

	assert.IsType(t, &apperror.NotFoundError{}, err)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestList_EmptyResults devolve lista vazia (não nula) sem erro.
func TestList_EmptyResults(t *testing.T) {
	f := newFixture()

	f.repo.On("FindAllProjections", mock.Anything).Return([]domain.ProductProjection(nil), nil)

	products, err := f.svc.List(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Len(t, products, 0)
}

// TestList_RepoError converte qualquer falha em NotFound.
func TestList_RepoError(t *testing.T) {
	f := newFixture()

	f.repo.On("FindAllProjections", mock.Anything).Return([]domain.ProductProjection(nil), errors.New("database connection lost"))

	_, err := f.svc.List(context.Background())

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestGetByID_Projection devolve os nomes das referências.
func TestGetByID_Projection(t *testing.T) {
	f := newFixture()

	projection := domain.ProductProjection{ID: 10, Name: "Reserva", WineryName: "Cono Sur", VarietyName: "Carmenere", TypeName: "Red"}
	f.repo.On("FindProjectionByID", mock.Anything, 10).Return(projection, nil)
	f.repo.On("FindProjectionByID", mock.Anything, 11).Return(domain.ProductProjection{}, apperror.NewNotFoundError("x"))
	f.repo.On("FindProjectionByID", mock.Anything, 12).Return(domain.ProductProjection{}, errors.New("timeout"))

	got, err := f.svc.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, projection, got)

	_, err = f.svc.GetByID(context.Background(), 11)
	assert.IsType(t, &apperror.NotFoundError{}, err)

	_, err = f.svc.GetByID(context.Background(), 12)
	assert.IsType(t, &apperror.InternalError{}, err)
}

// TestFilters_EmptyIsNotFound cobre ByWinery/ByVariety/ByType sem resultados.
func TestFilters_EmptyIsNotFound(t *testing.T) {
	f := newFixture()

	f.repo.On("FindProjectionsByWineryID", mock.Anything, 2).Return([]domain.ProductProjection{}, nil)
	f.repo.On("FindProjectionsByVarietyID", mock.Anything, 2).Return([]domain.ProductProjection(nil), nil)
	f.repo.On("FindProjectionsByTypeID", mock.Anything, 2).Return([]domain.ProductProjection{}, nil)

	_, err := f.svc.ByWinery(context.Background(), 2)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	_, err = f.svc.ByVariety(context.Background(), 2)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	_, err = f.svc.ByType(context.Background(), 2)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestByWinery_Success devolve as projeções do filtro.
func TestByWinery_Success(t *testing.T) {
	f := newFixture()

	rows := []domain.ProductProjection{{ID: 1, WineryName: "Cono Sur"}, {ID: 2, WineryName: "Cono Sur"}}
	f.repo.On("FindProjectionsByWineryID", mock.Anything, 1).Return(rows, nil)

	got, err := f.svc.ByWinery(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

// TestRandomSample pede no máximo oito linhas e trata catálogo vazio como NotFound.
func TestRandomSample(t *testing.T) {
	f := newFixture()

	rows := []domain.ProductProjection{{ID: 3}, {ID: 1}}
	f.repo.On("FindRandomProjections", mock.Anything, productservice.RandomSampleSize).Return(rows, nil).Once()

	got, err := f.svc.RandomSample(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	f.repo.On("FindRandomProjections", mock.Anything, productservice.RandomSampleSize).Return([]domain.ProductProjection{}, nil).Once()

	_, err = f.svc.RandomSample(context.Background())
	assert.IsType(t, &apperror.NotFoundError{}, err)
	f.repo.AssertExpectations(t)
}
