// Package filesystem is the single entry point to the disk for config, logs and caches.
// Tests swap it for an in-memory afero backend.
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

func API() afero.Afero {
	return backend
}

func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Remove deletes path, recursively when it is a directory.
func Remove(path string) error {
	info, err := backend.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return backend.RemoveAll(path)
	}
	return backend.Remove(path)
}

// CacheFS lets gache store its files on the current backend.
type CacheFS struct{}

func (CacheFS) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (CacheFS) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
