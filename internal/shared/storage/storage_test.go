package storage_test

import (
	"os"
	"strings"
	"testing"

	"github.com/STS-Engineer/rh-app-backend/internal/shared/storage"

	"github.com/stretchr/testify/assert"
)

func setupStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := storage.NewDiskStore(t.TempDir(), "http://localhost:5000")
	assert.NoError(t, err)
	return store
}

func TestDiskStore_Save(t *testing.T) {
	t.Run("generates distinct keys for the same name", func(t *testing.T) {
		store := setupStore(t)

		key1, url1, err := store.Save("passeport.pdf", []byte("a"))
		assert.NoError(t, err)
		key2, _, err := store.Save("passeport.pdf", []byte("b"))
		assert.NoError(t, err)

		assert.NotEqual(t, key1, key2)
		assert.True(t, strings.HasSuffix(key1, "passeport.pdf"))
		assert.Equal(t, "http://localhost:5000/files/"+key1, url1)
	})

	t.Run("sanitizes hostile original names", func(t *testing.T) {
		store := setupStore(t)

		key, _, err := store.Save("../../etc/passwd", []byte("x"))
		assert.NoError(t, err)
		assert.NotContains(t, key, "/")
		assert.NotContains(t, key, "..")

		path, err := store.Open(key)
		assert.NoError(t, err)
		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, []byte("x"), data)
	})
}

func TestDiskStore_Open(t *testing.T) {
	store := setupStore(t)

	t.Run("rejects traversal", func(t *testing.T) {
		for _, key := range []string{"../secret", "a/../b", "..", "sub/dir.pdf", "a\\b.pdf"} {
			_, err := store.Open(key)
			assert.Error(t, err, key)
		}
	})

	t.Run("unknown key is not found", func(t *testing.T) {
		_, err := store.Open("123-deadbeef-missing.pdf")
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		key, _, err := store.Save("ordre_mission.pdf", []byte("pdf-bytes"))
		assert.NoError(t, err)

		path, err := store.Open(key)
		assert.NoError(t, err)

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, []byte("pdf-bytes"), data)
	})
}
