package auction

import (
	"github.com/meterio/meter-auction/meter"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/pkg/errors"
)

// EndAuction closes the window and pays the collected paired asset to the admin.
// Pool and total deposits stay as they are so claims can be computed.
func (a *Auction) EndAuction(env *setypes.ScriptEnv) error {
	st := env.GetState()
	cfg, auctionState, err := loadAuction(st)
	if err != nil {
		return err
	}

	caller := env.GetCaller()
	if !IsAdmin(cfg, caller) {
		a.logger.Info("end auction by non admin", "caller", caller)
		return ErrUnauthorized
	}
	if !auctionState.IsActive() {
		return ErrAuctionNotActive
	}

	summaries, err := st.GetSummaryList()
	if err != nil {
		return errors.Wrap(err, "load round summaries")
	}
	summaries.Add(&meter.RoundSummary{
		Round:         auctionState.Round,
		PoolAmount:    auctionState.PoolAmount,
		TotalDeposits: auctionState.TotalDeposits,
		EndTime:       env.GetTxCtx().Time,
	})

	auctionState.Active = false
	st.SetAuctionState(auctionState)
	st.SetSummaryList(summaries)
	if err := st.Err(); err != nil {
		return err
	}

	env.AddTransfer(cfg.PairedAsset, cfg.Admin, auctionState.TotalDeposits)
	emit(env, ActionEndAuction, caller, auctionState.TotalDeposits)
	a.logger.Info("auction ended", "round", auctionState.Round, "pool", auctionState.PoolAmount, "totalDeposits", auctionState.TotalDeposits)
	return nil
}
