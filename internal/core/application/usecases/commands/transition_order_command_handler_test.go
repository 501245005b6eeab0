package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type TransitionOrderRepo struct{ mock.Mock }

func (m *TransitionOrderRepo) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *TransitionOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *TransitionOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type TransitionUoW struct{ mock.Mock }

func (m *TransitionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *TransitionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *TransitionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *TransitionUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type TransitionUoWFactory struct{ mock.Mock }

func (m *TransitionUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type TransitionNotifier struct{ mock.Mock }

func (m *TransitionNotifier) OrderCreated(_ *order.Order, _ actor.Actor, _ time.Time) {}
func (m *TransitionNotifier) OrderUpdated(o *order.Order, by actor.Actor, oldStatus order.Status, at time.Time) {
	m.Called(o, by, oldStatus, at)
}
func (m *TransitionNotifier) OrderTerminated(_ *order.Order, _ actor.Actor, _ order.Status, _ time.Time) {
}

func testOrder(t *testing.T, consumerID kernel.UUID, farmerIDs ...kernel.UUID) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(250)
	require.NoError(t, err)

	items := make([]order.Item, 0, len(farmerIDs))
	for _, farmerID := range farmerIDs {
		item, err := order.NewItem(kernel.NewUUID(), farmerID, 2, price)
		require.NoError(t, err)
		items = append(items, item)
	}

	o, err := order.NewOrder(
		kernel.NewUUID(), "", consumerID, items,
		order.PaymentMethodCash, "12 Market Lane", time.Now().UTC())
	require.NoError(t, err)
	return o
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	farmer := testActor(t, actor.RoleFarmer)
	aggregate := testOrder(t, kernel.NewUUID(), farmer.ID())

	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), farmer, order.StatusConfirmed, "")
	require.NoError(t, err)

	repo := new(TransitionOrderRepo)
	uow := new(TransitionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(TransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(TransitionNotifier)
	notifier.On("OrderUpdated", aggregate, farmer, order.StatusPending, mock.Anything).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.StatusConfirmed, aggregate.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewTransitionOrderCommandHandler(new(TransitionUoWFactory), new(TransitionNotifier))
	err := h.Handle(t.Context(), commands.TransitionOrderCommand{})
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
}

func TestTransitionOrderCommandHandler_Handle_DeniedTransitionMutatesNothing(t *testing.T) {
	ctx := t.Context()
	consumerID := kernel.NewUUID()
	consumer, err := actor.NewActor(consumerID, actor.RoleConsumer)
	require.NoError(t, err)
	aggregate := testOrder(t, consumerID, kernel.NewUUID())

	// consumers may not confirm orders
	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), consumer, order.StatusConfirmed, "")
	require.NoError(t, err)

	repo := new(TransitionOrderRepo)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(TransitionUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(TransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(TransitionNotifier) // nothing committed, nothing announced
	h := commands.NewTransitionOrderCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusPending, aggregate.Status())
	assert.Len(t, aggregate.History(), 1)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	farmer := testActor(t, actor.RoleFarmer)
	aggregate := testOrder(t, kernel.NewUUID(), farmer.ID())

	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), farmer, order.StatusConfirmed, "")
	require.NoError(t, err)

	repo := new(TransitionOrderRepo)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(ports.ErrVersionConflict).Once()

	uow := new(TransitionUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(TransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(TransitionNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrVersionConflict)
	repo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	farmer := testActor(t, actor.RoleFarmer)
	orderID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(orderID, farmer, order.StatusConfirmed, "")
	require.NoError(t, err)

	repo := new(TransitionOrderRepo)
	repo.On("Get", mock.Anything, orderID).Return(nil, errors.New("not found")).Once()

	uow := new(TransitionUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(TransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(TransitionNotifier))
	require.Error(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
}
