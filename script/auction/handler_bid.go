package auction

import (
	"math/big"

	"github.com/meterio/meter-auction/meter"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/pkg/errors"
)

// Deposit credits amount of paired asset to the initiator while the window is open.
func (a *Auction) Deposit(env *setypes.ScriptEnv, initiator meter.Address, amount *big.Int) error {
	st := env.GetState()
	cfg, auctionState, err := loadAuction(st)
	if err != nil {
		return err
	}

	if !IsAssetGateway(env.GetCaller(), cfg.PairedAsset) {
		a.logger.Info("deposit from unexpected asset", "caller", env.GetCaller())
		return ErrInvalidAssetSource
	}
	if !auctionState.IsActive() {
		return ErrAuctionNotActive
	}

	entry, _, err := st.GetDeposit(initiator)
	if err != nil {
		return errors.Wrap(err, "load deposit")
	}
	total, ok := meter.AddAmount(auctionState.TotalDeposits, amount)
	if !ok {
		return ErrOverflow
	}
	entry, ok = meter.AddAmount(entry, amount)
	if !ok {
		return ErrOverflow
	}

	auctionState.TotalDeposits = total
	st.SetDeposit(initiator, entry)
	st.SetAuctionState(auctionState)
	if err := st.Err(); err != nil {
		return err
	}

	emit(env, ActionDeposit, initiator, amount)
	a.logger.Info("deposit accepted", "from", initiator, "amount", amount, "entry", entry, "total", total)
	return nil
}
