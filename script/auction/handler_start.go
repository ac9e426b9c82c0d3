package auction

import (
	"math/big"

	"github.com/meterio/meter-auction/meter"
	setypes "github.com/meterio/meter-auction/script/types"
)

// BeginAuction opens the window after the admin pushed amount of project asset
// through the project gateway. The pool accumulates over rounds.
func (a *Auction) BeginAuction(env *setypes.ScriptEnv, initiator meter.Address, amount *big.Int) error {
	st := env.GetState()
	cfg, auctionState, err := loadAuction(st)
	if err != nil {
		return err
	}

	if !IsAssetGateway(env.GetCaller(), cfg.ProjectAsset) {
		a.logger.Info("begin auction from unexpected asset", "caller", env.GetCaller())
		return ErrInvalidAssetSource
	}
	if !IsAdmin(cfg, initiator) {
		a.logger.Info("begin auction by non admin", "initiator", initiator)
		return ErrUnauthorized
	}
	if auctionState.IsActive() {
		return ErrAlreadyActive
	}
	pool, ok := meter.AddAmount(auctionState.PoolAmount, amount)
	if !ok {
		return ErrOverflow
	}

	auctionState.PoolAmount = pool
	auctionState.Active = true
	auctionState.Round++
	st.SetAuctionState(auctionState)
	if err := st.Err(); err != nil {
		return err
	}

	emit(env, ActionBeginAuction, initiator, amount)
	a.logger.Info("auction started", "round", auctionState.Round, "pool", auctionState.PoolAmount)
	return nil
}
