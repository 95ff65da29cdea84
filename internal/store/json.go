// Package store persists scribe's small JSON documents: preferences, format
// mappings and the recent-files list. Each document is read whole and
// rewritten atomically on every mutation.
package store

import (
	"os"
	"path/filepath"

	"scribe/internal/errors"
	"scribe/internal/log"

	"github.com/goccy/go-json"
)

// Load decodes the JSON document at path into v. A missing file yields a
// FileNotFound error; undecodable content yields a StoreCorrupt error.
func Load(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("document not found", path, errors.FileNotFound, err)
		}
		return errors.NewFileError("cannot read document", path, errors.FileReadFailed, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewStoreError("corrupt document", filepath.Base(path), errors.StoreCorrupt, err).WithOperation("decode")
	}
	return nil
}

// LoadOrEmpty is Load for callers that treat any failure as "no data".
// It reports whether v was filled; failures other than a missing file are
// logged.
func LoadOrEmpty(path string, v interface{}) bool {
	err := Load(path, v)
	if err == nil {
		return true
	}
	if !errors.IsFileNotFound(err) {
		log.LogWithError(err).Warn("Ignoring unreadable document")
	}
	return false
}

// Save writes v to path as indented JSON. The data goes to a temporary file
// in the same directory which is then renamed over path, so readers never
// observe a partial document.
func Save(path string, v interface{}) error {
	name := filepath.Base(path)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewStoreError("cannot encode document", name, errors.StoreWriteFailed, err).WithOperation("encode")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStoreError("cannot create document directory", name, errors.StoreWriteFailed, err).WithOperation("mkdir")
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return errors.NewStoreError("cannot create temporary file", name, errors.StoreWriteFailed, err).WithOperation("create")
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return errors.NewStoreError("cannot write document", name, errors.StoreWriteFailed, err).WithOperation("write")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return errors.NewStoreError("cannot sync document", name, errors.StoreWriteFailed, err).WithOperation("sync")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.NewStoreError("cannot close document", name, errors.StoreWriteFailed, err).WithOperation("close")
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return errors.NewStoreError("cannot set document permissions", name, errors.StoreWriteFailed, err).WithOperation("chmod")
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.NewStoreError("cannot replace document", name, errors.StoreWriteFailed, err).WithOperation("rename")
	}
	return nil
}
