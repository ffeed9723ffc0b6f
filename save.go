// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a serialization format for Save.
type Format int

const (
	// FormatAuto picks the format from the target path's extension,
	// defaulting to JSON.
	FormatAuto Format = iota

	// FormatJSON serializes the projection as indented JSON.
	FormatJSON

	// FormatYAML serializes the projection as YAML.
	FormatYAML
)

// SaveOption represents options for configuring how Save serializes
// the store.
type SaveOption func(*saveConfig)

type saveConfig struct {
	format Format
	indent int
}

// WithFormat forces the serialization format instead of deriving it
// from the path extension.
func WithFormat(f Format) SaveOption {
	return func(sc *saveConfig) {
		sc.format = f
	}
}

// WithIndent sets the indentation width. The default is 2 for JSON and
// 4 for YAML. Both serializers emit keys in sorted order, so output is
// deterministic.
func WithIndent(n int) SaveOption {
	return func(sc *saveConfig) {
		sc.indent = n
	}
}

// Save serializes the projection and writes it to path, or to the origin
// path the store was loaded from when path is empty. It fails with
// NoPathError when neither is available. The write is an atomic replace:
// the target never holds a partially written document.
func (s *Store) Save(path string, opts ...SaveOption) error {
	if path == "" {
		path = s.origin
	}
	if path == "" {
		return NoPathError{}
	}

	sc := saveConfig{format: FormatAuto}
	for _, opt := range opts {
		opt(&sc)
	}
	if sc.format == FormatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			sc.format = FormatYAML
		default:
			sc.format = FormatJSON
		}
	}

	b, err := sc.marshal(s.ToMap())
	if err != nil {
		return err
	}

	pf, err := renameio.NewPendingFile(path)
	if err != nil {
		return err
	}
	defer pf.Cleanup()

	_, err = pf.Write(b)
	if err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}

func (sc saveConfig) marshal(m map[string]any) ([]byte, error) {
	switch sc.format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		if sc.indent > 0 {
			enc.SetIndent(sc.indent)
		}
		err := enc.Encode(m)
		if err != nil {
			return nil, err
		}
		err = enc.Close()
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		indent := sc.indent
		if indent <= 0 {
			indent = 2
		}
		b, err := json.MarshalIndent(m, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
}
