package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SunShop/internal/catalog"
)

func newTestEngine() *Engine {
	cat := catalog.NewMemStore(
		[]catalog.Brand{{ID: "4", Name: "DKNY"}},
		[]catalog.Product{
			{ID: "8", CategoryID: "4", Name: "Coke cans", Description: "The thickest glasses in the world", Price: 110},
			{ID: "9", CategoryID: "4", Name: "Sugar", Description: "The sweetest glasses in the world", Price: 125},
		},
	)
	return &Engine{Catalog: cat, Carts: NewStore()}
}

func TestEngine_AddMergesQuantity(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	items, err := e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "8", items[0].ID)
	assert.Equal(t, "Coke cans", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)

	items, err = e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestEngine_AddUnknownProductLeavesCartAlone(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Add(ctx, "greenlion235", "15")
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, e.Items("greenlion235"))
}

func TestEngine_AddPreservesInsertionOrder(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Add(ctx, "greenlion235", "9")
	require.NoError(t, err)
	_, err = e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)
	items, err := e.Add(ctx, "greenlion235", "9")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "9", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "8", items[1].ID)
}

func TestEngine_RemoveDropsItemEntirely(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)
	_, err = e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)

	// No decrement-to-one; removal empties the entry outright.
	items, err := e.Remove(ctx, "greenlion235", "8")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEngine_RemoveNotInCartIsNoop(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)

	items, err := e.Remove(ctx, "greenlion235", "9")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "8", items[0].ID)
}

func TestEngine_RemoveUnknownProductFails(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Remove(ctx, "greenlion235", "99")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestEngine_CartsAreIsolatedPerUser(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)

	assert.Empty(t, e.Items("lazywolf342"))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	items, err := e.Add(ctx, "greenlion235", "8")
	require.NoError(t, err)

	items[0].Quantity = 99
	fresh := e.Items("greenlion235")
	assert.Equal(t, 1, fresh[0].Quantity)
}
