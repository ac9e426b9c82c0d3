package script

import (
	"github.com/meterio/meter-auction/script/auction"
)

const (
	AUCTION_MODULE_NAME = string("auction")
	AUCTION_MODULE_ID   = uint32(1002)
)

func ModuleAuctionInit(se *ScriptEngine) *auction.Auction {
	a := auction.NewAuction()
	mod := &Module{
		modName:    AUCTION_MODULE_NAME,
		modID:      AUCTION_MODULE_ID,
		modHandler: a.Handle,
	}
	if err := se.modReg.Register(AUCTION_MODULE_ID, mod); err != nil {
		panic("register auction module failed")
	}
	return a
}
