// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fsFunc func(string) (fs.File, error)

func (f fsFunc) Open(path string) (fs.File, error) {
	return f(path)
}

func TestFileReader_Read(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the fs.FS fails to open the file", func(t *testing.T) {
			openErr := errors.New("failed to open")
			fsys := fsFunc(func(s string) (fs.File, error) {
				return nil, openErr
			})

			r := NewFileReader(fsys, "config.yaml")
			_, err := io.ReadAll(r)
			if !assert.ErrorIs(t, err, openErr) {
				return
			}
		})

		t.Run("if the OS file does not exist", func(t *testing.T) {
			r := NewFileReader(nil, filepath.Join(t.TempDir(), "missing.json"))
			_, err := io.ReadAll(r)
			if !assert.ErrorIs(t, err, fs.ErrNotExist) {
				return
			}
		})
	})
}

func TestFileReader_Close(t *testing.T) {
	t.Run("will not return an error", func(t *testing.T) {
		t.Run("if Close is called before the underlying file has been opened", func(t *testing.T) {
			fsys := fsFunc(func(s string) (fs.File, error) {
				return nil, nil
			})

			r := NewFileReader(fsys, "config.yaml")
			err := r.Close()
			if !assert.Nil(t, err) {
				return
			}
		})
	})
}

func TestFileSource_Apply(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the file does not exist", func(t *testing.T) {
			_, err := New(Open(filepath.Join(t.TempDir(), "missing.json")))

			var iserr InvalidSourceError
			if !assert.ErrorAs(t, err, &iserr) {
				return
			}
		})
	})

	t.Run("will record the origin path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.json")
		err := os.WriteFile(path, []byte(`{"name": "test"}`), 0o644)
		require.NoError(t, err)

		store, err := New(Open(path))
		require.NoError(t, err)

		if !assert.Equal(t, path, store.Origin()) {
			return
		}
	})

	t.Run("will pick the codec by extension", func(t *testing.T) {
		dir := t.TempDir()

		jsonPath := filepath.Join(dir, "app.json")
		err := os.WriteFile(jsonPath, []byte(`{"format": "json"}`), 0o644)
		require.NoError(t, err)

		yamlPath := filepath.Join(dir, "app.yaml")
		err = os.WriteFile(yamlPath, []byte("format: yaml\n"), 0o644)
		require.NoError(t, err)

		jsonStore, err := New(Open(jsonPath))
		require.NoError(t, err)
		assert.Equal(t, "json", jsonStore.Get("format").String())

		yamlStore, err := New(Open(yamlPath))
		require.NoError(t, err)
		assert.Equal(t, "yaml", yamlStore.Get("format").String())
	})

	t.Run("will read from an fs.FS", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "app.json"), []byte(`{"name": "test"}`), 0o644)
		require.NoError(t, err)

		store, err := New(File(os.DirFS(dir), "app.json"))
		require.NoError(t, err)
		assert.Equal(t, "test", store.Get("name").String())
	})
}
