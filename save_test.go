// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Save(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if no path is given and the store has no origin", func(t *testing.T) {
			store, err := New(Map{"name": "test"})
			require.NoError(t, err)

			err = store.Save("")

			var nperr NoPathError
			if !assert.ErrorAs(t, err, &nperr) {
				return
			}
			if !assert.NotEmpty(t, nperr.Error()) {
				return
			}
		})
	})

	t.Run("will write back to the origin path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.json")
		err := os.WriteFile(path, []byte(`{"name": "test", "value": 42}`), 0o644)
		require.NoError(t, err)

		store, err := New(Open(path))
		require.NoError(t, err)

		store.Set("name", "modified")
		err = store.Save("")
		require.NoError(t, err)

		reloaded, err := New(Open(path))
		require.NoError(t, err)

		if !assert.True(t, store.Equal(reloaded)) {
			return
		}
		if !assert.Equal(t, "modified", reloaded.Get("name").String()) {
			return
		}
	})

	t.Run("will write to an explicit path", func(t *testing.T) {
		store, err := New(Map{"name": "test"})
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "out.json")
		err = store.Save(path)
		require.NoError(t, err)

		reloaded, err := New(Open(path))
		require.NoError(t, err)
		assert.True(t, store.Equal(reloaded))
	})

	t.Run("will honor the indent option", func(t *testing.T) {
		store, err := New(Map{"nested": map[string]any{"key": "value"}})
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "out.json")
		err = store.Save(path, WithIndent(4))
		require.NoError(t, err)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "\n    \"nested\"")
	})

	t.Run("will serialize as YAML", func(t *testing.T) {
		store, err := New(Map{"name": "test", "value": 42})
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "out.yaml")
		err = store.Save(path)
		require.NoError(t, err)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		if !assert.True(t, strings.Contains(string(b), "name: test")) {
			return
		}

		reloaded, err := New(Open(path))
		require.NoError(t, err)
		assert.True(t, store.Equal(reloaded))
	})

	t.Run("will force the format option over the extension", func(t *testing.T) {
		store, err := New(Map{"name": "test"})
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "out.conf")
		err = store.Save(path, WithFormat(FormatYAML))
		require.NoError(t, err)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "name: test")
	})
}
