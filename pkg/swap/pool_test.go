package swap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ic-swap/pkg/canister"
)

func TestFindPoolMatchesEitherTokenOrder(t *testing.T) {
	client := newFakeClient()
	pools := []Pool{chatIcpPool()}
	client.on(DefaultICPSwapFactoryID, "getPools", respond(canister.LowerResult[[]Pool, venueError]{Ok: &pools}))

	locator := NewPoolLocator(client, "")

	forward, err := locator.FindPool(context.Background(), chatToken.CanisterID, icpToken.CanisterID)
	require.NoError(t, err)
	reversed, err := locator.FindPool(context.Background(), icpToken.CanisterID, chatToken.CanisterID)
	require.NoError(t, err)

	assert.Equal(t, forward.CanisterID, reversed.CanisterID)
	assert.Equal(t, forward.Key, reversed.Key)
}

func TestFindPoolNotFound(t *testing.T) {
	client := newFakeClient()
	pools := []Pool{chatIcpPool()}
	client.on(DefaultICPSwapFactoryID, "getPools", respond(canister.LowerResult[[]Pool, venueError]{Ok: &pools}))

	locator := NewPoolLocator(client, "")
	_, err := locator.FindPool(context.Background(), chatToken.CanisterID, "cngnf-vqaaa-aaaar-qag4q-cai")

	var swapErr *Error
	require.ErrorAs(t, err, &swapErr)
	assert.Equal(t, CodePoolNotFound, swapErr.Code)
}

func TestFindPoolSurfacesFactoryError(t *testing.T) {
	client := newFakeClient()
	detail := "factory upgrading"
	client.on(DefaultICPSwapFactoryID, "getPools", respond(canister.LowerResult[[]Pool, venueError]{
		Err: &venueError{InternalError: &detail},
	}))

	locator := NewPoolLocator(client, "")
	_, err := locator.FindPool(context.Background(), chatToken.CanisterID, icpToken.CanisterID)

	var swapErr *Error
	require.ErrorAs(t, err, &swapErr)
	assert.Equal(t, CodeRemoteCallFailed, swapErr.Code)
	assert.Contains(t, swapErr.Detail, "factory upgrading")
}
