// Package dotenv loads dotenv-formatted files into an envstore.Store.
//
// Parsing is delegated to github.com/joho/godotenv. Keys already present in the
// store are left untouched, so across repeated loads the first writer wins.
package dotenv

import (
	"errors"
	"fmt"
	"sort"

	"github.com/joho/godotenv"

	"github.com/ygrebnov/enver/envstore"
)

var (
	ErrRead = errors.New("read dotenv file")
	ErrSet  = errors.New("set environment variable")
)

// Loader merges dotenv files into a store.
type Loader struct{}

// New returns a Loader.
func New() Loader { return Loader{} }

// Load parses path and binds every key not yet present in store.
func (Loader) Load(path string, store envstore.Store) error {
	pairs, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	_, err = Merge(pairs, store)
	return err
}

// Merge binds pairs into store without overwriting present keys, in sorted key
// order. It returns the keys it set.
func Merge(pairs map[string]string, store envstore.Store) ([]string, error) {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var set []string
	for _, k := range keys {
		if store.Has(k) {
			continue
		}
		if err := store.Set(k, pairs[k]); err != nil {
			return set, fmt.Errorf("%w %s: %w", ErrSet, k, err)
		}
		set = append(set, k)
	}
	return set, nil
}
