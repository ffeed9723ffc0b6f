// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/confstore/confstore/internal/try"
)

// ExpandOption represents options for configuring an expansion reader.
type ExpandOption func(*expandReader)

// ExpandFunc registers the given function, f, for use in the document
// template via the given name.
func ExpandFunc(name string, f any) ExpandOption {
	return func(er *expandReader) {
		er.funcs[name] = f
	}
}

// ExpandDelims sets the action delimiters to the specified strings. An
// empty delimiter stands for the corresponding default: {{ or }}.
func ExpandDelims(left, right string) ExpandOption {
	return func(er *expandReader) {
		er.leftDelim = left
		er.rightDelim = right
	}
}

// TemplateParseError occurs when the config document fails to parse as
// a text/template.
type TemplateParseError struct {
	Cause error
}

// Error implements the error interface.
func (e TemplateParseError) Error() string {
	return fmt.Sprintf("failed to parse config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TemplateParseError) Unwrap() error {
	return e.Cause
}

// TemplateExecError occurs when a config template fails to execute, for
// example when it references a value absent from the data store.
type TemplateExecError struct {
	Cause error
}

// Error implements the error interface.
func (e TemplateExecError) Error() string {
	return fmt.Sprintf("failed to exec config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TemplateExecError) Unwrap() error {
	return e.Cause
}

// Expand returns an io.Reader which renders the config document read
// from r as a text/template, with the projection of data as template
// data. It lets one store parameterize another:
//
//	base, _ := confstore.New(confstore.Map{"db": confstore.Map{"host": "localhost"}})
//	store, err := confstore.New(confstore.JSON(
//	    confstore.Expand(f, base),
//	))
//
// where the document may reference {{ .db.host }}. A nil data renders
// with no template data.
func Expand(r io.Reader, data Mapper, opts ...ExpandOption) io.Reader {
	er := &expandReader{
		r:     r,
		data:  data,
		funcs: make(template.FuncMap),
	}
	for _, opt := range opts {
		opt(er)
	}
	return er
}

type expandReader struct {
	r    io.Reader
	data Mapper

	leftDelim  string
	rightDelim string
	funcs      template.FuncMap
	renderOnce sync.Once
	renderErr  error
	buf        bytes.Buffer
}

// Read implements the io.Reader interface.
func (er *expandReader) Read(b []byte) (int, error) {
	er.renderOnce.Do(func() {
		var err error
		defer func() { er.renderErr = err }()
		defer try.Close(&err, er.r)

		var sb strings.Builder
		_, err = io.Copy(&sb, er.r)
		if err != nil && !errors.Is(err, try.CloseError{}) {
			// A close failure after a complete read is not worth
			// losing the rendered document over.
			return
		}

		var tmpl *template.Template
		tmpl, err = template.New("config").
			Delims(er.leftDelim, er.rightDelim).
			Funcs(er.funcs).
			Option("missingkey=error").
			Parse(sb.String())
		if err != nil {
			err = TemplateParseError{Cause: err}
			return
		}

		var data any
		if er.data != nil {
			data = er.data.ToMap()
		}
		err = tmpl.Execute(&er.buf, data)
		if err != nil {
			err = TemplateExecError{Cause: err}
			return
		}
	})
	if er.renderErr != nil {
		return 0, er.renderErr
	}
	return er.buf.Read(b)
}
