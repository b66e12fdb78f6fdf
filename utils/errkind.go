package utils

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

// ErrorKind classifies contract errors so callers can decide between
// retrying and abandoning a call.
type ErrorKind string

const (
	KindUnknown       ErrorKind = "unknown"
	KindAuthorization ErrorKind = "authorization"
	KindState         ErrorKind = "state"
	KindValidation    ErrorKind = "validation"
	KindResource      ErrorKind = "resource"
	KindTransport     ErrorKind = "transport"
)

// Registered error codes are grouped in blocks of 100, one block per kind.
const (
	AuthorizationCodeBase uint32 = 100
	StateCodeBase         uint32 = 200
	ValidationCodeBase    uint32 = 300
	ResourceCodeBase      uint32 = 400
	TransportCodeBase     uint32 = 500
)

// KindOf returns the kind of the first registered error found in err's chain.
func KindOf(err error) ErrorKind {
	var registered *errorsmod.Error
	if !errors.As(err, &registered) {
		return KindUnknown
	}

	switch registered.ABCICode() / 100 {
	case 1:
		return KindAuthorization
	case 2:
		return KindState
	case 3:
		return KindValidation
	case 4:
		return KindResource
	case 5:
		return KindTransport
	default:
		return KindUnknown
	}
}
