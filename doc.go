// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package confstore provides a small configuration-value container.
//
// The package is built around two core abstractions:
//
//   - Source: anything that can serialize itself into a key value structure
//   - Store: a normalized tree of configuration values loaded from a Source
//
// A Store is constructed from exactly one Source: an inline [Map], a text
// document ([Text]), a reader of JSON or YAML ([JSON], [YAML]), or a file
// ([Open], [File]). Every nested mapping in the source is normalized into a
// uniform map shape so the tree can be walked, projected, merged and saved
// without caring where it came from.
//
// # Basic Usage
//
// Load a store from a file and read values from it:
//
//	store, err := confstore.New(confstore.Open("app.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	host := store.Get("db.host").String()
//
// Merge overrides on top of a base configuration:
//
//	merged := base.Merge(confstore.Map{"debug": true})
//
// Decode the tree into a struct:
//
//	var cfg struct {
//	    Debug bool `conf:"debug"`
//	    DB    struct {
//	        Host string `conf:"host"`
//	    } `conf:"db"`
//	}
//	err = store.Unmarshal(&cfg)
//
// # Projection
//
// [Store.ToMap] returns the plain nested map/slice/scalar projection of the
// tree. The projection is the canonical interchange form: equality, JSON and
// YAML marshaling, and [Store.Save] all operate on it, and a store can always
// be reconstructed from it alone.
//
// # Error Handling
//
// All failures are typed errors which surface immediately to the caller:
// [InvalidSourceError], [AlreadyLoadedError], [KeyNotFoundError] and
// [NoPathError]. There are no retries and no silent fallbacks.
package confstore
