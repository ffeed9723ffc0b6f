// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileSource is a Source backed by a config file. The file format is
// picked by extension: ".yaml" and ".yml" parse as YAML, everything else
// as JSON. The path is retained by the store as its origin so Save can
// default to writing back to it.
type FileSource struct {
	path string
	fsys fs.FS
}

// Open returns a source reading the file at path on the OS filesystem.
func Open(path string) *FileSource {
	return &FileSource{path: path}
}

// File returns a source reading path from the given fs.FS. Note that
// origin paths recorded from an fs.FS are only meaningful to Save when
// the fs is rooted at the working directory.
func File(fsys fs.FS, path string) *FileSource {
	return &FileSource{path: path, fsys: fsys}
}

// Origin returns the file path.
func (src *FileSource) Origin() string {
	return src.path
}

// Apply implements the Source interface.
func (src *FileSource) Apply(s Setter) error {
	r := NewFileReader(src.fsys, src.path)
	switch strings.ToLower(filepath.Ext(src.path)) {
	case ".yaml", ".yml":
		return YAML(r).Apply(s)
	default:
		return JSON(r).Apply(s)
	}
}

// FileReader is an io.Reader that handles opening a file for reading
// automatically. A nil fs.FS means the OS filesystem.
type FileReader struct {
	path string

	openOnce sync.Once
	openErr  error
	fsys     fs.FS
	file     io.ReadCloser
}

// NewFileReader configures a FileReader.
func NewFileReader(fsys fs.FS, path string) *FileReader {
	return &FileReader{
		path: path,
		fsys: fsys,
	}
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.open()
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

func (r *FileReader) open() (io.ReadCloser, error) {
	if r.fsys == nil {
		return os.Open(r.path)
	}
	f, err := r.fsys.Open(r.path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}
