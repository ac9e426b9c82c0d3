package auction

import (
	"github.com/meterio/meter-auction/meter"
)

// IsAdmin reports whether caller is the configured administrator.
func IsAdmin(cfg *meter.AuctionConfig, caller meter.Address) bool {
	return cfg != nil && caller == cfg.Admin
}

// IsAssetGateway reports whether caller is the gateway contract of the expected asset.
func IsAssetGateway(caller meter.Address, expected meter.AssetRef) bool {
	return caller == expected.Contract
}
