package enver

import (
	"errors"
	"os"
)

// FS is the file system collaborator used by Manager.
type FS interface {
	// Exists reports whether path is present.
	Exists(path string) bool
	// Mkdir creates the directory path.
	Mkdir(path string) error
	// Append appends text to path, creating the file on first call.
	Append(path, text string) error
}

// OSFS returns an FS backed by the os package.
func OSFS() FS { return osFS{} }

type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) Mkdir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return ErrCannotCreateDirectories
	}
	return nil
}

func (osFS) Append(path, text string) (retErr error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	_, err = f.WriteString(text)
	return err
}

// EnsureDir creates dir through fsys unless it already exists.
func EnsureDir(fsys FS, dir string) error {
	if fsys.Exists(dir) {
		return nil
	}
	if err := fsys.Mkdir(dir); err != nil {
		return errors.Join(ErrEnsureConfigDir, err)
	}
	return nil
}
