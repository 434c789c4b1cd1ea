package types

import (
	"errors"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ibc proxy sentinel errors. Every error returned by the module wraps exactly one of these,
// so callers can tell the failure kind apart with errors.Is.
var (
	ErrUnauthorized      = sdkerrors.Register(ModuleName, 2, "unauthorized")
	ErrInvalidInput      = sdkerrors.Register(ModuleName, 3, "invalid input")
	ErrInternalInvariant = sdkerrors.Register(ModuleName, 4, "internal invariant violated")
	ErrRemoteFailure     = sdkerrors.Register(ModuleName, 5, "forwarded message failed")
)

// Kind names one of the four failure classes of the proxy.
type Kind string

const (
	KindNone              Kind = ""
	KindUnauthorized      Kind = "unauthorized"
	KindInvalidInput      Kind = "invalid_input"
	KindInternalInvariant Kind = "internal_invariant"
	KindRemoteFailure     Kind = "remote_failure"
	KindUnknown           Kind = "unknown"
)

// ErrorKind classifies err into one of the proxy failure kinds.
func ErrorKind(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInternalInvariant):
		return KindInternalInvariant
	case errors.Is(err, ErrRemoteFailure):
		return KindRemoteFailure
	default:
		return KindUnknown
	}
}
