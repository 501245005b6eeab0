package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type AddProductRepo struct{ mock.Mock }

func (m *AddProductRepo) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *AddProductRepo) Get(_ context.Context, _ kernel.UUID) (*product.Product, error) {
	return nil, errors.New("not implemented in mock")
}

type AddProductUoW struct{ mock.Mock }

func (m *AddProductUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *AddProductUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *AddProductUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *AddProductUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type AddProductUoWFactory struct{ mock.Mock }

func (m *AddProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

func TestNewAddProductCommand_ValidInput(t *testing.T) {
	productID := kernel.NewUUID()
	farmerID := kernel.NewUUID()

	cmd, err := commands.NewAddProductCommand(productID, farmerID, "Raw Honey", 1250, 30)
	require.NoError(t, err)
	assert.Equal(t, productID, cmd.ProductID())
	assert.Equal(t, farmerID, cmd.FarmerID())
	assert.Equal(t, "Raw Honey", cmd.Name())
	assert.Equal(t, int64(1250), cmd.PriceCents())
	assert.Equal(t, 30, cmd.Quantity())
}

func TestNewAddProductCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewAddProductCommand(kernel.UUID{}, kernel.NewUUID(), "", -1, -1)
	require.Error(t, err)
}

func TestAddProductCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddProductCommand(kernel.NewUUID(), kernel.NewUUID(), "Raw Honey", 1250, 30)
	require.NoError(t, err)

	repo := new(AddProductRepo)
	uow := new(AddProductUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(AddProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddProductCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddProductCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewAddProductCommandHandler(new(AddProductUoWFactory))
	err := h.Handle(t.Context(), commands.AddProductCommand{})
	require.ErrorIs(t, err, commands.ErrAddProductCommandIsNotConstructed)
}

func TestAddProductCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddProductCommand(kernel.NewUUID(), kernel.NewUUID(), "Raw Honey", 1250, 30)
	require.NoError(t, err)

	repo := new(AddProductRepo)
	uow := new(AddProductUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*product.Product")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(AddProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddProductCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
}
