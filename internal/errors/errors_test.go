package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("peer closed")
	assert.Equal(t, "peer closed", err.Error())
	assert.Equal(t, Unknown, KindOf(err))

	err = Newf("unknown channel %q", "menu-print")
	assert.Equal(t, `unknown channel "menu-print"`, err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	base := New("disk full")

	saving := Wrap(base, "saving notes.txt")
	assert.Equal(t, "saving notes.txt: disk full", saving.Error())
	assert.Equal(t, base, Unwrap(saving))
	assert.True(t, Is(saving, base))

	outer := Wrapf(saving, "closing %s", "window")
	assert.Equal(t, "closing window: saving notes.txt: disk full", outer.Error())
	assert.True(t, Is(outer, base))

	assert.Nil(t, Wrap(nil, "saving"))
	assert.Nil(t, Wrapf(nil, "saving %s", "x"))
}

func TestFileError(t *testing.T) {
	denied := NewFileError("cannot write file", "/etc/hosts", FileAccessDenied, nil)
	assert.Equal(t, "cannot write file: /etc/hosts", denied.Error())
	assert.Equal(t, "/etc/hosts", denied.Path())
	assert.Equal(t, FileAccessDenied, denied.Kind())
	assert.True(t, IsFileAccessDenied(denied))
	assert.False(t, IsFileNotFound(denied))

	cause := fmt.Errorf("permission denied")
	wrapped := NewFileError("cannot write file", "/etc/hosts", FileWriteFailed, cause)
	assert.Equal(t, "cannot write file: /etc/hosts: permission denied", wrapped.Error())
	assert.Equal(t, cause, Unwrap(wrapped))

	missing := Wrap(NewFileError("cannot open file", "/gone.txt", FileNotFound, nil), "reload")
	assert.True(t, IsFileNotFound(missing))
	var fe *FileError
	require.True(t, As(missing, &fe))
	assert.Equal(t, "/gone.txt", fe.Path())

	assert.Equal(t, FileNotFound, ErrFileNotFound.Kind())
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("must be positive", "editor.font_size", InvalidConfig, nil)
	assert.Equal(t, "must be positive: editor.font_size", err.Error())
	assert.Equal(t, "editor.font_size", err.Param())
	assert.True(t, IsInvalidConfig(err))
	assert.False(t, IsInvalidConfig(New("other")))

	cause := fmt.Errorf("yaml: line 3: did not find expected key")
	err = NewConfigError("error parsing config file", "/cfg.yaml", InvalidConfig, cause)
	assert.Equal(t, "error parsing config file: /cfg.yaml: yaml: line 3: did not find expected key", err.Error())

	var ce *ConfigError
	assert.True(t, As(Wrap(err, "startup"), &ce))
	assert.Equal(t, "/cfg.yaml", ce.Param())
	assert.Equal(t, InvalidConfig, ErrInvalidConfig.Kind())
}

func TestEncodingError(t *testing.T) {
	encErr := NewEncodingError("unsupported encoding", "shift_jis", UnsupportedEncoding, nil)
	assert.Equal(t, "unsupported encoding: shift_jis", encErr.Error())
	assert.Equal(t, "shift_jis", encErr.Encoding())
	assert.Equal(t, UnsupportedEncoding, encErr.Kind())

	origErr := fmt.Errorf("transform failed")
	encErr = NewEncodingError("encode failed", "utf-16le", EncodeFailed, origErr)
	assert.Equal(t, "encode failed: utf-16le: transform failed", encErr.Error())
	assert.Equal(t, origErr, Unwrap(encErr))

	assert.True(t, IsUnsupportedEncoding(ErrUnsupportedEncoding))
	assert.False(t, IsUnsupportedEncoding(encErr))
}

func TestStoreError(t *testing.T) {
	storeErr := NewStoreError("cannot persist", "preferences.json", StoreWriteFailed, nil)
	assert.Equal(t, "cannot persist: preferences.json", storeErr.Error())

	storeErr = storeErr.WithOperation("rename")
	assert.Equal(t, "cannot persist: preferences.json: operation=rename", storeErr.Error())
	assert.Equal(t, "rename", storeErr.Operation())
	assert.Equal(t, "preferences.json", storeErr.Document())

	origErr := fmt.Errorf("disk full")
	storeErr = NewStoreError("cannot persist", "recent-files.json", StoreWriteFailed, origErr)
	assert.Equal(t, "cannot persist: recent-files.json: disk full", storeErr.Error())
	assert.True(t, IsStoreError(Wrap(storeErr, "save")))
}

func TestProtocolError(t *testing.T) {
	protoErr := NewProtocolError("no handler registered", "save-file", UnknownChannel, nil)
	assert.Equal(t, "no handler registered: save-file", protoErr.Error())
	assert.Equal(t, "save-file", protoErr.Channel())
	assert.True(t, IsProtocolError(protoErr))
	assert.False(t, IsProtocolError(New("plain")))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, Unknown},
		{"plain", fmt.Errorf("boom"), Unknown},
		{"file", NewFileError("missing", "/a", FileNotFound, nil), FileNotFound},
		{"wrapped file", Wrap(NewFileError("missing", "/a", FileNotFound, nil), "open"), FileNotFound},
		{"config", ErrInvalidConfig, InvalidConfig},
		{"encoding", NewEncodingError("bad", "x", DecodeFailed, nil), DecodeFailed},
		{"store", NewStoreError("bad", "doc", StoreCorrupt, nil), StoreCorrupt},
		{"protocol", NewProtocolError("closed", "", TransportClosed, nil), TransportClosed},
		{"canceled", ErrDialogCanceled, Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}

	assert.True(t, IsCanceled(Wrap(ErrDialogCanceled, "save as")))
	assert.False(t, IsCanceled(ErrFileNotFound))
}

func TestErrorChains(t *testing.T) {
	cause := errors.New("invalid byte sequence")
	decode := NewEncodingError("cannot decode", "utf-16be", DecodeFailed, cause)
	open := NewFileError("cannot open file", "/notes/todo.txt", FileReadFailed, decode)
	reply := NewProtocolError("handler failed", "open-file", RemoteFailure, open)

	assert.Equal(t,
		"handler failed: open-file: cannot open file: /notes/todo.txt: cannot decode: utf-16be: invalid byte sequence",
		reply.Error())
	assert.True(t, Is(reply, cause))
	assert.True(t, Is(reply, decode))

	var fe *FileError
	require.True(t, As(reply, &fe))
	assert.Equal(t, "/notes/todo.txt", fe.Path())

	var ee *EncodingError
	require.True(t, As(reply, &ee))
	assert.Equal(t, "utf-16be", ee.Encoding())

	assert.Equal(t, RemoteFailure, KindOf(reply))
	assert.Equal(t, FileReadFailed, KindOf(Wrap(open, "reload")))
}
