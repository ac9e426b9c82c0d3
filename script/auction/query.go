package auction

import (
	"math/big"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/state"
	"github.com/pkg/errors"
)

// StateResponse is the combined view of config and state.
type StateResponse struct {
	Config *meter.AuctionConfig
	State  *meter.AuctionState
}

// GetState returns config and state; it never writes.
func GetState(st *state.State) (*StateResponse, error) {
	cfg, auctionState, err := loadAuction(st)
	if err != nil {
		return nil, err
	}
	return &StateResponse{Config: cfg, State: auctionState}, nil
}

// GetDeposit returns the outstanding entry of addr, zero when there is none.
func GetDeposit(st *state.State, addr meter.Address) (*big.Int, error) {
	if _, _, err := loadAuction(st); err != nil {
		return nil, err
	}
	return DepositOf(st, addr)
}

// DepositOf is the ledger lookup with a zero default.
func DepositOf(st *state.State, addr meter.Address) (*big.Int, error) {
	amount, exists, err := st.GetDeposit(addr)
	if err != nil {
		return nil, errors.Wrap(err, "load deposit")
	}
	if !exists {
		return big.NewInt(0), nil
	}
	return amount, nil
}

// GetSummaries returns the closed rounds, oldest first.
func GetSummaries(st *state.State) ([]*meter.RoundSummary, error) {
	list, err := st.GetSummaryList()
	if err != nil {
		return nil, errors.Wrap(err, "load round summaries")
	}
	return list.Summaries, nil
}

// GetSummary returns the summary of round, nil when the round never closed or
// was already dropped from the list.
func GetSummary(st *state.State, round uint64) (*meter.RoundSummary, error) {
	list, err := st.GetSummaryList()
	if err != nil {
		return nil, errors.Wrap(err, "load round summaries")
	}
	return list.Get(round), nil
}
