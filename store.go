// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Mapper is the duck-typed merge input: anything able to project itself
// into a plain nested mapping. Both *Store and Map satisfy it.
type Mapper interface {
	ToMap() map[string]any
}

// ErrNotMapping is returned by Sub when the requested key holds a
// scalar or sequence value.
var ErrNotMapping = errors.New("value is not a mapping")

// Store owns one normalized tree of configuration values. The zero Store
// is unloaded; it must be initialized exactly once via Load, which is
// what New does. All other operations assume a loaded store.
//
// A Store is not safe for concurrent use.
type Store struct {
	tree   map[string]any
	origin string
	loaded bool
}

// originSource is implemented by sources tied to a file, so the store can
// retain the path for default-path saves.
type originSource interface {
	Origin() string
}

// New constructs a Store by loading the given source.
func New(src Source) (*Store, error) {
	s := &Store{}
	err := s.Load(src)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Load initializes the store from the given source. It is the only state
// transition a store has: a second call on an already loaded store fails
// with AlreadyLoadedError, regardless of the source.
func (s *Store) Load(src Source) error {
	if s.loaded {
		return AlreadyLoadedError{}
	}
	if src == nil {
		return InvalidSourceError{Cause: errors.New("nil source")}
	}

	s.tree = make(map[string]any)
	err := src.Apply(s)
	if err != nil {
		s.tree = nil

		var iserr InvalidSourceError
		if errors.As(err, &iserr) {
			return err
		}
		return InvalidSourceError{Cause: err}
	}

	if o, ok := src.(originSource); ok {
		s.origin = o.Origin()
	}
	s.loaded = true
	return nil
}

// Origin returns the path the store was loaded from, if any.
func (s *Store) Origin() string {
	return s.origin
}

// ToMap returns the plain nested map/slice/scalar projection of the tree.
// The projection is a deep copy: mutating it never affects the store.
func (s *Store) ToMap() map[string]any {
	if s.tree == nil {
		return map[string]any{}
	}
	return deepCopy(s.tree).(map[string]any)
}

// Set stores a top-level key, normalizing the value if it is a mapping
// or a sequence of mappings.
func (s *Store) Set(key string, v any) {
	if s.tree == nil {
		s.tree = make(map[string]any)
	}
	s.tree[key] = normalize(v)
}

// Get returns the value at the given dotted path, e.g. "db.host". It
// returns the zero Value when any path segment is absent.
func (s *Store) Get(path string) Value {
	cur := any(s.tree)
	for seg := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return Value{}
		}
		cur, ok = m[seg]
		if !ok {
			return Value{}
		}
	}
	return Value{v: cur, ok: true}
}

// GetDefault returns the raw value of a top-level key, or def when the
// key is absent.
func (s *Store) GetDefault(key string, def any) any {
	v, ok := s.tree[key]
	if !ok {
		return def
	}
	return v
}

// Lookup returns the value of a top-level key. It fails with
// KeyNotFoundError when the key is absent.
func (s *Store) Lookup(key string) (Value, error) {
	v, ok := s.tree[key]
	if !ok {
		return Value{}, KeyNotFoundError{Key: key}
	}
	return Value{v: v, ok: true}, nil
}

// Has reports whether the store contains the given top-level key.
func (s *Store) Has(key string) bool {
	_, ok := s.tree[key]
	return ok
}

// Len returns the number of top-level keys.
func (s *Store) Len() int {
	return len(s.tree)
}

// IsEmpty reports whether the store has zero top-level keys.
func (s *Store) IsEmpty() bool {
	return len(s.tree) == 0
}

// Keys returns the top-level keys in sorted order.
func (s *Store) Keys() []string {
	ks := make([]string, 0, len(s.tree))
	for k := range s.tree {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

// Values returns the top-level values ordered to match Keys.
func (s *Store) Values() []Value {
	ks := s.Keys()
	vs := make([]Value, len(ks))
	for i, k := range ks {
		vs[i] = Value{v: s.tree[k], ok: true}
	}
	return vs
}

// All iterates over the top-level key value pairs in sorted key order.
func (s *Store) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range s.Keys() {
			if !yield(k, Value{v: s.tree[k], ok: true}) {
				return
			}
		}
	}
}

// Delete removes a top-level key. It fails with KeyNotFoundError when
// the key is absent.
func (s *Store) Delete(key string) error {
	if _, ok := s.tree[key]; !ok {
		return KeyNotFoundError{Key: key}
	}
	delete(s.tree, key)
	return nil
}

// Pop removes a top-level key and returns its value. It fails with
// KeyNotFoundError when the key is absent.
func (s *Store) Pop(key string) (Value, error) {
	v, ok := s.tree[key]
	if !ok {
		return Value{}, KeyNotFoundError{Key: key}
	}
	delete(s.tree, key)
	return Value{v: v, ok: true}, nil
}

// PopDefault removes a top-level key and returns its raw value, or def
// when the key is absent.
func (s *Store) PopDefault(key string, def any) any {
	v, ok := s.tree[key]
	if !ok {
		return def
	}
	delete(s.tree, key)
	return v
}

// PopItem removes and returns an arbitrary key value pair. It fails with
// KeyNotFoundError when the store is empty.
func (s *Store) PopItem() (string, Value, error) {
	for k, v := range s.tree {
		delete(s.tree, k)
		return k, Value{v: v, ok: true}, nil
	}
	return "", Value{}, KeyNotFoundError{}
}

// Clear removes all top-level keys.
func (s *Store) Clear() {
	s.tree = make(map[string]any)
}

// Sub returns the nested mapping at the given top-level key as a child
// store. The child shares the subtree with its parent, so mutations are
// visible through both. It fails with KeyNotFoundError when the key is
// absent and ErrNotMapping when the value is not a mapping.
func (s *Store) Sub(key string) (*Store, error) {
	v, ok := s.tree[key]
	if !ok {
		return nil, KeyNotFoundError{Key: key}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, ErrNotMapping)
	}
	return &Store{tree: m, loaded: true}, nil
}

// Update merges the given mapping into the tree, overwriting overlapping
// top-level keys. The merge is shallow: nested mappings are replaced
// wholesale, exactly like a map assignment per key. Newly introduced
// mappings are normalized.
func (s *Store) Update(other map[string]any) {
	for k, v := range other {
		s.Set(k, v)
	}
}

// Merge returns a new store holding a deep copy of the tree with other
// shallow-merged on top. Neither input is modified.
func (s *Store) Merge(other Mapper) *Store {
	c := s.Copy()
	c.MergeInPlace(other)
	return c
}

// MergeInPlace shallow-merges other into the store.
func (s *Store) MergeInPlace(other Mapper) {
	if other == nil {
		return
	}
	s.Update(other.ToMap())
}

// MergeDeep recursively merges other into the store, values from other
// winning on conflict. Unlike Update, nested mappings are combined key
// by key instead of replaced.
func (s *Store) MergeDeep(other Mapper) error {
	if other == nil {
		return nil
	}
	om := normalize(other.ToMap()).(map[string]any)
	if s.tree == nil {
		s.tree = make(map[string]any)
	}
	return mergo.Merge(&s.tree, om, mergo.WithOverride)
}

// Copy returns a new store over a deep copy of the tree. The copy and
// the original never share state; the origin path is carried over.
func (s *Store) Copy() *Store {
	return &Store{
		tree:   deepCopy(s.ToMap()).(map[string]any),
		origin: s.origin,
		loaded: s.loaded,
	}
}

// Equal reports whether the store and other have structurally equal
// projections.
func (s *Store) Equal(other Mapper) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(s.ToMap(), normalize(other.ToMap()))
}

// String returns the canonical pretty-printed JSON rendering of the tree.
func (s *Store) String() string {
	b, err := json.MarshalIndent(s.ToMap(), "", "  ")
	if err != nil {
		return fmt.Sprintf("confstore.Store(%v)", s.tree)
	}
	return string(b)
}

// MarshalJSON implements json.Marshaler. The transported form is the
// plain-mapping projection.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// UnmarshalJSON implements json.Unmarshaler. Decoding counts as the
// store's one load.
func (s *Store) UnmarshalJSON(b []byte) error {
	if s.loaded {
		return AlreadyLoadedError{}
	}
	m := make(map[string]any)
	err := json.Unmarshal(b, &m)
	if err != nil {
		return InvalidSourceError{Cause: err}
	}
	s.tree = normalize(m).(map[string]any)
	s.loaded = true
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s *Store) MarshalYAML() (any, error) {
	return s.ToMap(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Decoding counts as the
// store's one load.
func (s *Store) UnmarshalYAML(node *yaml.Node) error {
	if s.loaded {
		return AlreadyLoadedError{}
	}
	m := make(map[string]any)
	err := node.Decode(&m)
	if err != nil {
		return InvalidSourceError{Cause: err}
	}
	s.tree = normalize(m).(map[string]any)
	s.loaded = true
	return nil
}
