package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("providers.pexels.api_key", "original"))
	require.NoError(t, store.Set("providers.pexels.api_key", "updated"))

	val, ok := store.Get("providers.pexels.api_key")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{
		"int":        7,
		"int64":      int64(8),
		"float":      9.0,
		"int_string": "10",
		"bool":       true,
		"bool_str":   "true",
		"name":       "vmt",
	})

	assert.Equal(t, 7, store.GetInt("int"))
	assert.Equal(t, 8, store.GetInt("int64"))
	assert.Equal(t, 9, store.GetInt("float"))
	assert.Equal(t, 10, store.GetInt("int_string"))
	assert.Equal(t, 0, store.GetInt("name"))
	assert.True(t, store.GetBool("bool"))
	assert.True(t, store.GetBool("bool_str"))
	assert.False(t, store.GetBool("missing"))
	assert.Equal(t, "vmt", store.GetString("name"))
	assert.Empty(t, store.GetString("int"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{"providers.pexels.api_key": "px"})

	require.NoError(t, store.Delete("providers.pexels.api_key"))
	require.NoError(t, store.Delete("missing"))

	assert.Empty(t, store.Keys())
	assert.Empty(t, store.GetString("providers.pexels.api_key"))
}

func TestConfigStore_SeedIsCopied(t *testing.T) {
	seed := map[string]any{"a": 1}
	store := NewConfigStoreFrom(seed)
	seed["b"] = 2

	assert.Equal(t, []string{"a"}, store.Keys())
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("search.per_provider", 3)
	_ = store.Set("export.dir", ".")

	assert.Equal(t, []string{"export.dir", "search.per_provider"}, store.Keys())
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("key", i)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("key")
		}()
	}
	wg.Wait()
}
