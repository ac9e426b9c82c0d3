package auction

import (
	"github.com/meterio/meter-auction/meter"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/pkg/errors"
)

// Receive handles a gateway notification. The caller of env is the gateway,
// ab.From the account whose value was moved. Sender and memo are not used.
func (a *Auction) Receive(env *setypes.ScriptEnv, ab *AuctionBody, rb *ReceiveBody) error {
	if !meter.ValidAmount(ab.Amount) {
		return errors.Wrapf(ErrInvalidPayload, "receive amount %v", ab.Amount)
	}
	switch rb.Opcode {
	case meter.OP_DEPOSIT:
		return a.Deposit(env, ab.From, ab.Amount)
	case meter.OP_BEGIN:
		return a.BeginAuction(env, ab.From, ab.Amount)
	default:
		return errors.Wrapf(ErrInvalidPayload, "unknown receive opcode %d", rb.Opcode)
	}
}
