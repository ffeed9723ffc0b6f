// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYaml_Apply(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the document is not valid YAML", func(t *testing.T) {
			_, err := New(YAML(strings.NewReader("\t- broken")))

			var iserr InvalidSourceError
			if !assert.ErrorAs(t, err, &iserr) {
				return
			}
		})

		t.Run("if the document root is not a mapping", func(t *testing.T) {
			_, err := New(YAML(strings.NewReader("- 1\n- 2\n")))

			var iserr InvalidSourceError
			if !assert.ErrorAs(t, err, &iserr) {
				return
			}
		})

		t.Run("if the document is null", func(t *testing.T) {
			_, err := New(YAML(strings.NewReader("null\n")))

			var iserr InvalidSourceError
			if !assert.ErrorAs(t, err, &iserr) {
				return
			}
		})

		t.Run("if the document is empty", func(t *testing.T) {
			_, err := New(YAML(strings.NewReader("")))

			var iserr InvalidSourceError
			if !assert.ErrorAs(t, err, &iserr) {
				return
			}
		})
	})

	t.Run("will parse the document", func(t *testing.T) {
		doc := `
name: test
value: 42
nested:
  key: value
  numbers:
    - 1
    - 2
    - 3
`

		store, err := New(YAML(strings.NewReader(doc)))
		require.NoError(t, err)

		assert.Equal(t, "test", store.Get("name").String())
		assert.Equal(t, 42, store.Get("value").Int())
		assert.Equal(t, "value", store.Get("nested.key").String())
		assert.Equal(t, []any{1, 2, 3}, store.Get("nested.numbers").Raw())
	})

	t.Run("will stringify non-string mapping keys", func(t *testing.T) {
		store, err := New(YAML(strings.NewReader("1: one\n")))
		require.NoError(t, err)

		assert.Equal(t, "one", store.Get("1").String())
	})
}
