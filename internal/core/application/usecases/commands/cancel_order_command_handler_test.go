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
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CancelOrderRepo struct{ mock.Mock }

func (m *CancelOrderRepo) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *CancelOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *CancelOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type CancelRestorationRepo struct{ mock.Mock }

func (m *CancelRestorationRepo) Add(ctx context.Context, restorations []product.Restoration) error {
	args := m.Called(ctx, restorations)
	return args.Error(0)
}
func (m *CancelRestorationRepo) GetPending(_ context.Context, _ int) ([]product.Restoration, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *CancelRestorationRepo) MarkDone(_ context.Context, _ int64) error {
	return errors.New("not implemented in mock")
}
func (m *CancelRestorationRepo) MarkAttempt(_ context.Context, _ int64) error {
	return errors.New("not implemented in mock")
}

type CancelUoW struct{ mock.Mock }

func (m *CancelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *CancelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *CancelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *CancelUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *CancelUoW) RestorationRepository() ports.RestorationRepository {
	args := m.Called()
	return args.Get(0).(ports.RestorationRepository)
}
func (m *CancelUoW) ProductRepository() ports.ProductRepository { return nil }
func (m *CancelUoW) InventoryLedger() ports.InventoryLedger     { return nil }

type CancelUoWFactory struct{ mock.Mock }

func (m *CancelUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type CancelNotifier struct{ mock.Mock }

func (m *CancelNotifier) OrderCreated(_ *order.Order, _ actor.Actor, _ time.Time) {}
func (m *CancelNotifier) OrderUpdated(_ *order.Order, _ actor.Actor, _ order.Status, _ time.Time) {}
func (m *CancelNotifier) OrderTerminated(o *order.Order, by actor.Actor, oldStatus order.Status, at time.Time) {
	m.Called(o, by, oldStatus, at)
}

// Deterministic no-op collaborators for the background restoration pass; the
// pass itself is covered by the restore handler tests.
type noopRestorationRepo struct{}

func (noopRestorationRepo) Add(_ context.Context, _ []product.Restoration) error { return nil }
func (noopRestorationRepo) GetPending(_ context.Context, _ int) ([]product.Restoration, error) {
	return nil, nil
}
func (noopRestorationRepo) MarkDone(_ context.Context, _ int64) error    { return nil }
func (noopRestorationRepo) MarkAttempt(_ context.Context, _ int64) error { return nil }

type noopLedger struct{}

func (noopLedger) Reserve(_ context.Context, _ kernel.UUID, _ int) error { return nil }
func (noopLedger) Restore(_ context.Context, _ kernel.UUID, _ int) error { return nil }

type noopLedgerUoW struct{}

func (noopLedgerUoW) Begin(_ context.Context) error    { return nil }
func (noopLedgerUoW) Commit(_ context.Context) error   { return nil }
func (noopLedgerUoW) Rollback(_ context.Context) error { return nil }
func (noopLedgerUoW) RestorationRepository() ports.RestorationRepository {
	return noopRestorationRepo{}
}
func (noopLedgerUoW) InventoryLedger() ports.InventoryLedger { return noopLedger{} }

type noopLedgerUoWFactory struct{}

func (noopLedgerUoWFactory) Create() commands.LedgerUoW { return noopLedgerUoW{} }

func noopRestoreHandler() commands.RestorePendingStockCommandHandler {
	return commands.NewRestorePendingStockCommandHandler(noopLedgerUoWFactory{}, discardLogger())
}

func TestCancelOrderCommandHandler_Handle_ConsumerCancelsRestoresAllItems(t *testing.T) {
	ctx := t.Context()
	consumerID := kernel.NewUUID()
	consumer, err := actor.NewActor(consumerID, actor.RoleConsumer)
	require.NoError(t, err)
	aggregate := testOrder(t, consumerID, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), consumer, "changed my mind")
	require.NoError(t, err)

	repo := new(CancelOrderRepo)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	var recorded []product.Restoration
	restorationRepo := new(CancelRestorationRepo)
	restorationRepo.On("Add", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).([]product.Restoration)
		}).
		Return(nil).Once()

	uow := new(CancelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("RestorationRepository").Return(restorationRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(CancelNotifier)
	notifier.On("OrderTerminated", aggregate, consumer, order.StatusPending, mock.Anything).Once()

	h := commands.NewCancelOrderCommandHandler(factory, noopRestoreHandler(), notifier, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusCancelled, aggregate.Status())
	require.Len(t, recorded, 2)
	assert.True(t, recorded[0].OrderID.IsEqual(aggregate.ID()))
	repo.AssertExpectations(t)
	restorationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_FarmerRejectsRestoresOwnItemsOnly(t *testing.T) {
	ctx := t.Context()
	farmer := testActor(t, actor.RoleFarmer)
	otherFarmerID := kernel.NewUUID()
	aggregate := testOrder(t, kernel.NewUUID(), farmer.ID(), otherFarmerID)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), farmer, "out of stock")
	require.NoError(t, err)

	repo := new(CancelOrderRepo)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	var recorded []product.Restoration
	restorationRepo := new(CancelRestorationRepo)
	restorationRepo.On("Add", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).([]product.Restoration)
		}).
		Return(nil).Once()

	uow := new(CancelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("RestorationRepository").Return(restorationRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(CancelNotifier)
	notifier.On("OrderTerminated", aggregate, farmer, order.StatusPending, mock.Anything).Once()

	h := commands.NewCancelOrderCommandHandler(factory, noopRestoreHandler(), notifier, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusRejected, aggregate.Status())
	require.Len(t, recorded, 1)
	assert.True(t, recorded[0].ProductID.IsEqual(aggregate.Items()[0].ProductID()))
	notifier.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_NotCancellableAfterShipment(t *testing.T) {
	ctx := t.Context()
	consumerID := kernel.NewUUID()
	consumer, err := actor.NewActor(consumerID, actor.RoleConsumer)
	require.NoError(t, err)
	farmer := testActor(t, actor.RoleFarmer)
	aggregate := testOrder(t, consumerID, farmer.ID())

	now := time.Now().UTC()
	require.NoError(t, aggregate.TransitionTo(order.StatusConfirmed, farmer, "", now))
	require.NoError(t, aggregate.TransitionTo(order.StatusProcessing, farmer, "", now))
	require.NoError(t, aggregate.TransitionTo(order.StatusShipped, farmer, "", now))

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), consumer, "too late")
	require.NoError(t, err)

	repo := new(CancelOrderRepo)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(CancelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(CancelNotifier) // nothing committed, nothing announced
	h := commands.NewCancelOrderCommandHandler(factory, noopRestoreHandler(), notifier, discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrNotCancellable)
	assert.Equal(t, order.StatusShipped, aggregate.Status())
	notifier.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_StrangerNotAuthorized(t *testing.T) {
	ctx := t.Context()
	stranger := testActor(t, actor.RoleConsumer)
	aggregate := testOrder(t, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), stranger, "")
	require.NoError(t, err)

	repo := new(CancelOrderRepo)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(CancelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(CancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, noopRestoreHandler(), new(CancelNotifier), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrNotAuthorized)
	assert.Equal(t, order.StatusPending, aggregate.Status())
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCancelOrderCommandHandler(
		new(CancelUoWFactory), noopRestoreHandler(), new(CancelNotifier), discardLogger())
	err := h.Handle(t.Context(), commands.CancelOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
}
