package auction

import (
	"errors"
)

var (
	ErrUnauthorized       = errors.New("unauthorized: caller is not the auction admin")
	ErrInvalidAssetSource = errors.New("invalid asset source: notification not sent by the configured asset gateway")
	ErrAuctionNotActive   = errors.New("auction is not active")
	ErrAlreadyActive      = errors.New("auction is already active")
	ErrAuctionStillActive = errors.New("auction still active")
	ErrNoDeposit          = errors.New("no deposit found for caller")
	ErrDivisionByZero     = errors.New("total deposits is zero")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrOverflow           = errors.New("amount overflows uint128")
	ErrNotInitialized     = errors.New("auction is not instantiated")
	ErrAlreadyInitialized = errors.New("auction is already instantiated")
)

var taxonomy = []error{
	ErrUnauthorized,
	ErrInvalidAssetSource,
	ErrAuctionNotActive,
	ErrAlreadyActive,
	ErrAuctionStillActive,
	ErrNoDeposit,
	ErrDivisionByZero,
	ErrInvalidPayload,
	ErrOverflow,
	ErrNotInitialized,
	ErrAlreadyInitialized,
}

// Rejected reports whether err is a rule violation of the auction, as opposed
// to a storage or encoding failure.
func Rejected(err error) bool {
	for _, e := range taxonomy {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// ErrorCode returns the short name of a rule violation, "internal" otherwise.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidAssetSource):
		return "invalid_asset_source"
	case errors.Is(err, ErrAuctionNotActive):
		return "auction_not_active"
	case errors.Is(err, ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, ErrAuctionStillActive):
		return "auction_still_active"
	case errors.Is(err, ErrNoDeposit):
		return "no_deposit"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	case errors.Is(err, ErrNotInitialized):
		return "not_initialized"
	case errors.Is(err, ErrAlreadyInitialized):
		return "already_initialized"
	default:
		return "internal"
	}
}
