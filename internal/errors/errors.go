// Package errors holds the error kinds shared by the host and view
// processes. A kind survives the trip across the message channel, so the
// receiving side can branch on it the same way the sender would.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard library so callers need one import.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Sentinels for conditions checked by kind.
var (
	ErrFileNotFound        = NewFileError("file not found", "", FileNotFound, nil)
	ErrFileAccess          = NewFileError("file access denied", "", FileAccessDenied, nil)
	ErrInvalidPath         = NewFileError("invalid file path", "", InvalidPath, nil)
	ErrInvalidConfig       = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrUnsupportedEncoding = NewEncodingError("unsupported encoding", "", UnsupportedEncoding, nil)
	ErrDialogCanceled      = &ApplicationError{msg: "dialog canceled", kind: Canceled}
)

// ErrorKind classifies an error. Values travel in ipc replies, so new
// kinds go at the end.
type ErrorKind int

const (
	Unknown ErrorKind = iota

	FileNotFound
	FileAccessDenied
	InvalidPath
	FileReadFailed
	FileWriteFailed

	InvalidConfig
	ConfigNotFound

	UnsupportedEncoding
	EncodeFailed
	DecodeFailed

	StoreCorrupt
	StoreWriteFailed

	UnknownChannel
	TransportClosed
	RemoteFailure

	// Canceled marks a user cancellation, which is not a failure.
	Canceled
)

// ApplicationError carries a message, an optional cause and a kind. The
// typed errors below embed it and add the thing the error is about.
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

func (e *ApplicationError) Error() string {
	return e.describe("")
}

// describe renders "msg[: subject][: cause]".
func (e *ApplicationError) describe(subject string) string {
	s := e.msg
	if subject != "" {
		s += ": " + subject
	}
	if e.err != nil {
		s = fmt.Sprintf("%s: %v", s, e.err)
	}
	return s
}

func (e *ApplicationError) Unwrap() error { return e.err }

// Kind returns the error's own kind, ignoring its cause.
func (e *ApplicationError) Kind() ErrorKind { return e.kind }

func base(msg string, kind ErrorKind, err error) ApplicationError {
	return ApplicationError{msg: msg, err: err, kind: kind}
}

// FileError is about a path on disk.
type FileError struct {
	ApplicationError
	path string
}

func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{ApplicationError: base(msg, kind, err), path: path}
}

func (e *FileError) Error() string { return e.describe(e.path) }

// Path is the file the error refers to, empty for the sentinels.
func (e *FileError) Path() string { return e.path }

// ConfigError names the offending setting or config file.
type ConfigError struct {
	ApplicationError
	param string
}

func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{ApplicationError: base(msg, kind, err), param: param}
}

func (e *ConfigError) Error() string { return e.describe(e.param) }

func (e *ConfigError) Param() string { return e.param }

// EncodingError is raised while converting between bytes and text.
type EncodingError struct {
	ApplicationError
	encoding string
}

func NewEncodingError(msg string, encoding string, kind ErrorKind, err error) *EncodingError {
	return &EncodingError{ApplicationError: base(msg, kind, err), encoding: encoding}
}

func (e *EncodingError) Error() string { return e.describe(e.encoding) }

// Encoding is the tag being read or written, such as "utf-16le".
func (e *EncodingError) Encoding() string { return e.encoding }

// StoreError refers to one persisted JSON document.
type StoreError struct {
	ApplicationError
	document  string
	operation string
}

func NewStoreError(msg string, document string, kind ErrorKind, err error) *StoreError {
	return &StoreError{ApplicationError: base(msg, kind, err), document: document}
}

// WithOperation records the step that failed, e.g. "rename".
func (e *StoreError) WithOperation(operation string) *StoreError {
	e.operation = operation
	return e
}

func (e *StoreError) Error() string {
	subject := e.document
	if e.operation != "" {
		if subject != "" {
			subject += ": "
		}
		subject += "operation=" + e.operation
	}
	return e.describe(subject)
}

func (e *StoreError) Document() string { return e.document }

func (e *StoreError) Operation() string { return e.operation }

// ProtocolError is raised on the host/view channel.
type ProtocolError struct {
	ApplicationError
	channel string
}

func NewProtocolError(msg string, channel string, kind ErrorKind, err error) *ProtocolError {
	return &ProtocolError{ApplicationError: base(msg, kind, err), channel: channel}
}

func (e *ProtocolError) Error() string { return e.describe(e.channel) }

func (e *ProtocolError) Channel() string { return e.channel }

// New returns an error of kind Unknown.
func New(msg string) error {
	return &ApplicationError{msg: msg}
}

func Newf(format string, args ...interface{}) error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap prefixes err with msg. It returns nil when err is nil. The wrapper
// has kind Unknown, so KindOf still reports the cause's kind.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: msg, err: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the first kind other than Unknown found in err's chain.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

func IsFileNotFound(err error) bool {
	var fe *FileError
	return errors.As(err, &fe) && fe.Kind() == FileNotFound
}

func IsFileAccessDenied(err error) bool {
	var fe *FileError
	return errors.As(err, &fe) && fe.Kind() == FileAccessDenied
}

func IsInvalidConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.Kind() == InvalidConfig
}

// IsUnsupportedEncoding reports whether err names an encoding with no codec.
func IsUnsupportedEncoding(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee) && ee.Kind() == UnsupportedEncoding
}

func IsCanceled(err error) bool {
	return KindOf(err) == Canceled
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
