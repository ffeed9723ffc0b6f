// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/confstore/confstore/internal/try"

	"github.com/tidwall/jsonc"
)

// Json represents a Source where its underlying format is JSON. Line and
// block comments are tolerated and stripped before parsing.
type Json struct {
	r io.Reader
}

// JSON returns a source which will apply its config from JSON values
// parsed from the given io.Reader. The reader is closed if it is an
// io.Closer.
func JSON(r io.Reader) Json {
	return Json{r: r}
}

// Text returns a source which will apply its config from the given
// serialized JSON document.
func Text(doc string) Json {
	return JSON(strings.NewReader(doc))
}

// Apply implements the Source interface. A document whose root is not an
// object fails with InvalidSourceError.
func (src Json) Apply(s Setter) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	var root any
	err = json.Unmarshal(jsonc.ToJSON(b), &root)
	if err != nil {
		return InvalidSourceError{Cause: err}
	}

	// json.Unmarshal accepts a bare null, so an object root must be
	// checked for explicitly.
	m, ok := normalize(root).(map[string]any)
	if !ok {
		return InvalidSourceError{Cause: fmt.Errorf("document root must be an object, got %T", root)}
	}
	return Map(m).Apply(s)
}
