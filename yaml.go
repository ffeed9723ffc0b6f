// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"fmt"
	"io"

	"github.com/confstore/confstore/internal/try"

	"gopkg.in/yaml.v3"
)

// Yaml represents a Source where its underlying format is YAML.
type Yaml struct {
	r io.Reader
}

// YAML returns a source which will apply its config from YAML values
// parsed from the given io.Reader. The reader is closed if it is an
// io.Closer.
func YAML(r io.Reader) Yaml {
	return Yaml{r: r}
}

// Apply implements the Source interface. A document whose root is not a
// mapping fails with InvalidSourceError.
func (src Yaml) Apply(s Setter) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	var root any
	err = yaml.Unmarshal(b, &root)
	if err != nil {
		return InvalidSourceError{Cause: err}
	}

	// yaml.Unmarshal decodes empty and null documents to nil, so a
	// mapping root must be checked for explicitly. Normalizing first
	// admits mappings with non-string keys.
	m, ok := normalize(root).(map[string]any)
	if !ok {
		return InvalidSourceError{Cause: fmt.Errorf("document root must be a mapping, got %T", root)}
	}
	return Map(m).Apply(s)
}
