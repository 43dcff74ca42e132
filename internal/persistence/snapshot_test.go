package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, store.Save(ctx, "k", []byte(`[{"a":1}]`)))
	doc, err = store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"a":1}]`), doc)

	require.NoError(t, store.Delete(ctx, "k"))
	doc, err = store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, doc)

	// deleting a missing key is a no-op
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := []byte("original")
	require.NoError(t, store.Save(ctx, "k", in))
	in[0] = 'X'

	out, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), out)

	out[0] = 'Y'
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
