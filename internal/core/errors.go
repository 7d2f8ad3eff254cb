package core

import (
	"errors"
	"fmt"
)

// Kind classifies reconciliation failures. Callers branch on the kind
// instead of string-matching messages.
type Kind int

const (
	// KindConfig marks desired-state input that is internally inconsistent.
	// Detected before any remote call, never retried.
	KindConfig Kind = iota
	// KindNotFound marks an update or delete whose target id is absent
	// from the cluster.
	KindNotFound
	// KindDuplicate marks a create whose name is already in use.
	KindDuplicate
	// KindTransport marks connectivity, auth or protocol failures from the
	// cluster API. Retry policy, if any, belongs to the transport layer.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindDuplicate:
		return "duplicate"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// Error carries enough context to diagnose a failed reconciliation without
// re-deriving it: the operation attempted, the identifying key (account
// name or id) and the underlying cause.
type Error struct {
	Kind Kind
	Op   string // e.g. "create cluster admin", "list cluster admins"
	Key  string // account name or id, empty when not applicable
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Key != "" {
		msg = fmt.Sprintf("%s %q", e.Op, e.Key)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", msg, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a leaf *Error with a formatted cause.
func Errorf(kind Kind, op, key, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Key: key, Err: fmt.Errorf(format, args...)}
}

// WrapErr attaches operation context to an upstream error. If err is
// already an *Error its kind is preserved; otherwise it becomes a
// transport failure.
func WrapErr(op, key string, err error) *Error {
	kind := KindTransport
	var ce *Error
	if errors.As(err, &ce) {
		kind = ce.Kind
	}
	return &Error{Kind: kind, Op: op, Key: key, Err: err}
}

func isKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

// IsConfig reports whether err is a desired-state validation failure.
func IsConfig(err error) bool { return isKind(err, KindConfig) }

// IsNotFound reports whether err is an unknown-account failure.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsDuplicate reports whether err is a duplicate-name failure.
func IsDuplicate(err error) bool { return isKind(err, KindDuplicate) }

// IsTransport reports whether err is a connectivity or protocol failure.
func IsTransport(err error) bool { return isKind(err, KindTransport) }
