// Package fileio reads files into decoded FileRecords and writes text back
// in a caller-chosen encoding.
package fileio

import (
	"os"
	"path/filepath"

	"scribe/internal/errors"
	"scribe/internal/language"
	"scribe/internal/log"
	"scribe/internal/textenc"
	"scribe/pkg/types"
)

// Bridge performs file reads and writes for the host.
type Bridge struct {
	resolver *language.Resolver
}

// NewBridge creates a bridge classifying languages with resolver. A nil
// resolver classifies by extension only.
func NewBridge(resolver *language.Resolver) *Bridge {
	if resolver == nil {
		resolver = language.NewResolver(nil)
	}
	return &Bridge{resolver: resolver}
}

// Resolver returns the language resolver used for reads.
func (b *Bridge) Resolver() *language.Resolver {
	return b.resolver
}

// Read loads path, detects its encoding and decodes it.
func (b *Bridge) Read(path string) (*types.FileRecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewFileError("invalid file path", path, errors.InvalidPath, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fileError("cannot open file", abs, err, errors.FileReadFailed)
	}
	if info.IsDir() {
		return nil, errors.NewFileError("is a directory", abs, errors.InvalidPath, nil)
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fileError("cannot read file", abs, err, errors.FileReadFailed)
	}

	enc := textenc.Detect(raw)
	content, err := textenc.Decode(raw, enc)
	if err != nil {
		return nil, err
	}

	rec := &types.FileRecord{
		Path:     abs,
		Content:  content,
		Encoding: enc,
		Language: b.resolver.Resolve(abs),
		Size:     int64(len(raw)),
	}
	log.LogWithFields(
		log.F("path", abs),
		log.F("encoding", string(enc)),
		log.F("language", string(rec.Language)),
		log.F("bytes", len(raw)),
	).Debug("Read file")
	return rec, nil
}

// Write encodes content with enc and writes it to path. The encoding is the
// caller's choice and is never re-detected. Failures are reported in the
// result rather than returned.
func (b *Bridge) Write(path, content string, enc types.Encoding) types.SaveResult {
	if err := b.write(path, content, enc); err != nil {
		log.LogWithError(err).Warn("Save failed")
		return types.Failed(err)
	}
	return types.SaveResult{Success: true}
}

func (b *Bridge) write(path, content string, enc types.Encoding) error {
	if path == "" {
		return errors.ErrInvalidPath
	}
	if enc == "" {
		enc = types.DefaultEncoding
	}

	data, err := textenc.Encode(content, enc)
	if err != nil {
		return err
	}

	// Keep the permissions of a file being overwritten.
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return errors.NewFileError("is a directory", path, errors.InvalidPath, nil)
		}
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fileError("cannot write file", path, err, errors.FileWriteFailed)
	}
	log.LogWithFields(log.F("path", path), log.F("encoding", string(enc)), log.F("bytes", len(data))).Info("Saved file")
	return nil
}

func fileError(msg, path string, err error, fallback errors.ErrorKind) error {
	kind := fallback
	switch {
	case os.IsNotExist(err):
		kind = errors.FileNotFound
	case os.IsPermission(err):
		kind = errors.FileAccessDenied
	}
	return errors.NewFileError(msg, path, kind, err)
}
