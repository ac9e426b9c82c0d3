package auction

import (
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/pkg/errors"
)

// Claim pays the caller its pro-rata share of the pool and removes its entry,
// so a second claim fails with ErrNoDeposit.
func (a *Auction) Claim(env *setypes.ScriptEnv) error {
	st := env.GetState()
	cfg, auctionState, err := loadAuction(st)
	if err != nil {
		return err
	}

	caller := env.GetCaller()
	if auctionState.IsActive() {
		return ErrAuctionStillActive
	}
	entry, exists, err := st.GetDeposit(caller)
	if err != nil {
		return errors.Wrap(err, "load deposit")
	}
	if !exists {
		return ErrNoDeposit
	}
	share, err := ComputeShare(auctionState.PoolAmount, entry, auctionState.TotalDeposits)
	if err != nil {
		return err
	}

	st.RemoveDeposit(caller)
	if err := st.Err(); err != nil {
		return err
	}

	env.AddTransfer(cfg.ProjectAsset, caller, share)
	emit(env, ActionClaim, caller, share)
	a.logger.Info("claimed", "caller", caller, "deposit", entry, "share", share)
	return nil
}
