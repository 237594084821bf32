package sender

import "github.com/prilive-com/oshibot/oshi"

// Error is a classified failure; see oshi.Error.
type Error = oshi.Error

// Sentinel errors re-exported from oshi so callers of this package need one import.
var (
	ErrTransport       = oshi.ErrTransport
	ErrProtocol        = oshi.ErrProtocol
	ErrUnauthorized    = oshi.ErrUnauthorized
	ErrGroupAssignment = oshi.ErrGroupAssignment
	ErrNotFound        = oshi.ErrNotFound
	ErrRateLimited     = oshi.ErrRateLimited
	ErrAPI             = oshi.ErrAPI

	ErrCircuitOpen      = oshi.ErrCircuitOpen
	ErrResponseTooLarge = oshi.ErrResponseTooLarge
	ErrInvalidToken     = oshi.ErrInvalidToken
)
