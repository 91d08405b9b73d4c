package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/db"
	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/testutil"
)

func TestPostgresPropertyStore(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	store := db.NewFromPool(pool)
	ctx := context.Background()

	v, err := store.GetString(ctx, "shroud_zones", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", v)

	const zones = "0xD2A80024 [100 80 20] 0 0 0 1|10|40;0x01010001 [5 5 0] 0 0 0 1|3|6"
	require.NoError(t, store.SetString(ctx, "shroud_zones", zones, "shroud zone list"))

	v, err = store.GetString(ctx, "shroud_zones", "")
	require.NoError(t, err)
	assert.Equal(t, zones, v)

	require.NoError(t, store.SetString(ctx, "shroud_zones", "replaced", ""))
	v, err = store.GetString(ctx, "shroud_zones", "")
	require.NoError(t, err)
	assert.Equal(t, "replaced", v)

	require.NoError(t, store.DeleteString(ctx, "shroud_zones"))
	v, err = store.GetString(ctx, "shroud_zones", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", v)
}
