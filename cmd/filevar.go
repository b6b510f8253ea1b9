// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"os"

	"github.com/juju/errors"
)

// FileVar represents a path to a file.
type FileVar struct {
	// Path is the path to the file.
	Path string
}

var errNoPath = errors.New("path not set")

// Set stores the chosen path name in f.Path.
func (f *FileVar) Set(v string) error {
	f.Path = v
	return nil
}

// Read returns the contents of the file.
func (f *FileVar) Read(ctx *Context) ([]byte, error) {
	if f.Path == "" {
		return nil, errNoPath
	}
	data, err := os.ReadFile(ctx.AbsPath(f.Path))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return data, nil
}

// String returns the path to the file.
func (f *FileVar) String() string {
	return f.Path
}
