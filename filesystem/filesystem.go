// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Audio files, lyric sidecars and logs are all read through API(), so tests can
// swap the backend for an in-memory one.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// IsOs reports whether the active backend is the native filesystem.
// Decoders that need a real path (taglib) check this first.
func IsOs() bool {
	_, ok := backend.Fs.(*afero.OsFs)
	return ok
}
