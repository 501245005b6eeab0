package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CreateProductRepo struct{ mock.Mock }

func (m *CreateProductRepo) Add(_ context.Context, _ *product.Product) error {
	return errors.New("not implemented in mock")
}
func (m *CreateProductRepo) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type CreateOrderRepo struct{ mock.Mock }

func (m *CreateOrderRepo) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *CreateOrderRepo) Update(_ context.Context, _ *order.Order) error { return nil }
func (m *CreateOrderRepo) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type CreateLedger struct{ mock.Mock }

func (m *CreateLedger) Reserve(ctx context.Context, productID kernel.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}
func (m *CreateLedger) Restore(ctx context.Context, productID kernel.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

type CreateNotifier struct{ mock.Mock }

func (m *CreateNotifier) OrderCreated(o *order.Order, by actor.Actor, at time.Time) {
	m.Called(o, by, at)
}
func (m *CreateNotifier) OrderUpdated(_ *order.Order, _ actor.Actor, _ order.Status, _ time.Time) {
}
func (m *CreateNotifier) OrderTerminated(_ *order.Order, _ actor.Actor, _ order.Status, _ time.Time) {
}

type CreateUoW struct{ mock.Mock }

func (m *CreateUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *CreateUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *CreateUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *CreateUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *CreateUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}
func (m *CreateUoW) RestorationRepository() ports.RestorationRepository { return nil }
func (m *CreateUoW) InventoryLedger() ports.InventoryLedger             { return nil }

type CreateUoWFactory struct{ mock.Mock }

func (m *CreateUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProduct(t *testing.T, farmerID kernel.UUID, priceCents int64, quantity int) *product.Product {
	t.Helper()
	price, err := kernel.NewMoney(priceCents)
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), farmerID, "Heirloom Tomatoes", price, quantity)
	require.NoError(t, err)
	return p
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	first := testProduct(t, farmerID, 250, 10)
	second := testProduct(t, farmerID, 300, 5)

	items := []commands.ItemInput{
		{ProductID: first.ID(), Quantity: 2},
		{ProductID: second.ID(), Quantity: 1},
	}
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), items, order.PaymentMethodCard, "12 Market Lane", 800)
	require.NoError(t, err)

	productRepo := new(CreateProductRepo)
	productRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	productRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()

	orderRepo := new(CreateOrderRepo)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	ledger := new(CreateLedger)
	ledger.On("Reserve", mock.Anything, first.ID(), 2).Return(nil).Once()
	ledger.On("Reserve", mock.Anything, second.ID(), 1).Return(nil).Once()

	uow := new(CreateUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CreateUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(CreateNotifier)
	notifier.On("OrderCreated", mock.AnythingOfType("*order.Order"), mock.Anything, mock.Anything).Once()

	h := commands.NewCreateOrderCommandHandler(factory, ledger, notifier, false, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(
		new(CreateUoWFactory), new(CreateLedger), new(CreateNotifier), false, discardLogger())
	err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	missingID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		[]commands.ItemInput{{ProductID: missingID, Quantity: 1}},
		order.PaymentMethodCash, "12 Market Lane", 100)
	require.NoError(t, err)

	productRepo := new(CreateProductRepo)
	productRepo.On("Get", mock.Anything, missingID).
		Return(nil, errs.NewObjectNotFoundError("productID", missingID)).Once()

	uow := new(CreateUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CreateUoWFactory)
	factory.On("Create").Return(uow).Once()

	ledger := new(CreateLedger) // no expectations: stock must stay untouched
	h := commands.NewCreateOrderCommandHandler(factory, ledger, new(CreateNotifier), false, discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStockCompensates(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	first := testProduct(t, farmerID, 250, 10)
	second := testProduct(t, farmerID, 300, 0)

	items := []commands.ItemInput{
		{ProductID: first.ID(), Quantity: 2},
		{ProductID: second.ID(), Quantity: 1},
	}
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), items, order.PaymentMethodCash, "12 Market Lane", 800)
	require.NoError(t, err)

	productRepo := new(CreateProductRepo)
	productRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	productRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()

	ledger := new(CreateLedger)
	ledger.On("Reserve", mock.Anything, first.ID(), 2).Return(nil).Once()
	ledger.On("Reserve", mock.Anything, second.ID(), 1).Return(product.ErrInsufficientStock).Once()
	// the already-applied reservation must be returned
	ledger.On("Restore", mock.Anything, first.ID(), 2).Return(nil).Once()

	uow := new(CreateUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CreateUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(CreateNotifier) // no expectations: nothing was committed
	h := commands.NewCreateOrderCommandHandler(factory, ledger, notifier, false, discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, product.ErrInsufficientStock)
	ledger.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_TotalMismatchRejected(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	first := testProduct(t, farmerID, 250, 10)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		[]commands.ItemInput{{ProductID: first.ID(), Quantity: 2}},
		order.PaymentMethodCash, "12 Market Lane", 999)
	require.NoError(t, err)

	productRepo := new(CreateProductRepo)
	productRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()

	uow := new(CreateUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CreateUoWFactory)
	factory.On("Create").Return(uow).Once()

	ledger := new(CreateLedger) // rejection happens before any reservation
	h := commands.NewCreateOrderCommandHandler(factory, ledger, new(CreateNotifier), true, discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	ledger.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_TotalMismatchLoggedByDefault(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	first := testProduct(t, farmerID, 250, 10)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		[]commands.ItemInput{{ProductID: first.ID(), Quantity: 2}},
		order.PaymentMethodCash, "12 Market Lane", 999)
	require.NoError(t, err)

	productRepo := new(CreateProductRepo)
	productRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()

	orderRepo := new(CreateOrderRepo)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	ledger := new(CreateLedger)
	ledger.On("Reserve", mock.Anything, first.ID(), 2).Return(nil).Once()

	uow := new(CreateUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CreateUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(CreateNotifier)
	notifier.On("OrderCreated", mock.AnythingOfType("*order.Order"), mock.Anything, mock.Anything).Once()

	h := commands.NewCreateOrderCommandHandler(factory, ledger, notifier, false, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitErrorCompensates(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	first := testProduct(t, farmerID, 250, 10)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		[]commands.ItemInput{{ProductID: first.ID(), Quantity: 2}},
		order.PaymentMethodCash, "12 Market Lane", 500)
	require.NoError(t, err)

	productRepo := new(CreateProductRepo)
	productRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()

	orderRepo := new(CreateOrderRepo)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	ledger := new(CreateLedger)
	ledger.On("Reserve", mock.Anything, first.ID(), 2).Return(nil).Once()
	ledger.On("Restore", mock.Anything, first.ID(), 2).Return(nil).Once()

	uow := new(CreateUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CreateUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, ledger, new(CreateNotifier), false, discardLogger())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}
