// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

// Setter represents a general key value structure a Source writes into.
type Setter interface {
	Set(key string, v any)
}

// Source defines valid config sources as those who can serialize
// themselves into a key value like structure.
type Source interface {
	Apply(Setter) error
}

// Map is a Source of inline configuration values.
type Map map[string]any

// Apply implements the Source interface.
func (m Map) Apply(s Setter) error {
	for k, v := range m {
		s.Set(k, v)
	}
	return nil
}

// ToMap implements the Mapper interface.
func (m Map) ToMap() map[string]any {
	return map[string]any(m)
}
