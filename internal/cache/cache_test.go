package cache

import (
	"context"
	"testing"

	"evercraft/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, logger.NewNoOpLogger()), mr
}

type doc struct {
	Name string `json:"name"`
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, ProductKey("p1"), doc{Name: "beeswax wrap"})

	var got doc
	require.True(t, c.Get(ctx, ProductKey("p1"), &got))
	assert.Equal(t, "beeswax wrap", got.Name)
}

func TestCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got doc
	assert.False(t, c.Get(context.Background(), ProductKey("absent"), &got))
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, ShopKey("s1"), doc{Name: "shop"})
	c.Set(ctx, ShopProductsKey("s1"), []doc{{Name: "a"}})
	c.Set(ctx, ShopKey("s2"), doc{Name: "other"})

	c.Invalidate(ctx, ShopKey("s1"))

	var got doc
	assert.False(t, c.Get(ctx, ShopKey("s1"), &got))
	assert.False(t, c.Get(ctx, ShopProductsKey("s1"), &got))
	assert.True(t, c.Get(ctx, ShopKey("s2"), &got))
}

func TestCache_NilClientIsNoOp(t *testing.T) {
	c := New(nil, logger.NewNoOpLogger())
	ctx := context.Background()

	c.Set(ctx, "k", doc{})
	c.Invalidate(ctx, "k")

	var got doc
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set(ProductKey("p1"), "{not json"))

	var got doc
	assert.False(t, c.Get(context.Background(), ProductKey("p1"), &got))
}
