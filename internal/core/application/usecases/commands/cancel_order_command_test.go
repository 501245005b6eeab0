package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	consumer := testActor(t, actor.RoleConsumer)

	cmd, err := commands.NewCancelOrderCommand(orderID, consumer, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, consumer, cmd.By())
	assert.Equal(t, "changed my mind", cmd.Reason())
}

func TestNewCancelOrderCommand_EmptyReasonAllowed(t *testing.T) {
	cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), testActor(t, actor.RoleAdmin), "")
	require.NoError(t, err)
	assert.Empty(t, cmd.Reason())
}

func TestNewCancelOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.UUID{}, testActor(t, actor.RoleConsumer), "")
	require.Error(t, err)
}

func TestNewCancelOrderCommand_InvalidActor(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), actor.Actor{}, "")
	require.Error(t, err)
}

func TestCancelOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CancelOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
}
