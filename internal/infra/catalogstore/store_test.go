package catalogstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
)

func TestMemoryStoreExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveProducts(ctx, catalog.DefaultProducts(), time.Minute))
	products, ok, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, products, 3)

	now = now.Add(time.Minute)
	_, ok, err = store.GetProducts(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreInvalidate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.SaveProducts(ctx, catalog.DefaultProducts(), 0))
	require.NoError(t, store.Invalidate(ctx))
	_, ok, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func newValkeyStore(t *testing.T) (*ValkeyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return NewValkeyStore(client, "test"), mr
}

func TestValkeyStoreRoundTrip(t *testing.T) {
	store, mr := newValkeyStore(t)
	ctx := context.Background()

	_, ok, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveProducts(ctx, catalog.DefaultProducts(), 10*time.Minute))
	require.True(t, mr.Exists("test:products"))
	require.Equal(t, 10*time.Minute, mr.TTL("test:products"))

	products, ok, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, products, 3)
	require.Equal(t, "FlexTerm Life 20", products[0].Name)
	require.Equal(t, []int{10, 20, 30}, products[0].TermOptions)

	mr.FastForward(11 * time.Minute)
	_, ok, err = store.GetProducts(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyStoreInvalidate(t *testing.T) {
	store, mr := newValkeyStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveProducts(ctx, catalog.DefaultProducts(), 0))
	require.NoError(t, store.Invalidate(ctx))
	require.False(t, mr.Exists("test:products"))
}

func TestValkeyStoreRejectsCorruptPayload(t *testing.T) {
	store, mr := newValkeyStore(t)
	require.NoError(t, mr.Set("test:products", "{not json"))
	_, _, err := store.GetProducts(context.Background())
	require.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	opt, err := ClientOptions("localhost:6379")
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:6379"}, opt.InitAddress)

	opt, err = ClientOptions("redis://cache.internal:6380/2")
	require.NoError(t, err)
	require.Equal(t, []string{"cache.internal:6380"}, opt.InitAddress)
	require.Equal(t, 2, opt.SelectDB)

	_, err = ClientOptions("  ")
	require.Error(t, err)
}
