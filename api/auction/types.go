package auction

import (
	"fmt"
	"math/big"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/node"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/tx"
)

type Empty struct{}

// ReceivePayload selects the receive operation. Exactly one field is set.
type ReceivePayload struct {
	Deposit      *Empty `json:"deposit,omitempty"`
	BeginAuction *Empty `json:"begin_auction,omitempty"`
}

type ReceiveMsg struct {
	Sender meter.Address  `json:"sender"`
	From   meter.Address  `json:"from"`
	Amount string         `json:"amount"`
	Msg    ReceivePayload `json:"msg"`
	Memo   string         `json:"memo,omitempty"`
}

// ExecuteMsg is the tagged union of the executable operations. Exactly one field is set.
type ExecuteMsg struct {
	Claim      *Empty      `json:"claim,omitempty"`
	EndAuction *Empty      `json:"end_auction,omitempty"`
	Receive    *ReceiveMsg `json:"receive,omitempty"`
}

type ExecuteRequest struct {
	Caller meter.Address `json:"caller"`
	Msg    ExecuteMsg    `json:"msg"`
}

// ToBody converts m to the module message.
func (m *ExecuteMsg) ToBody() (*auction.AuctionBody, error) {
	set := 0
	for _, ok := range []bool{m.Claim != nil, m.EndAuction != nil, m.Receive != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of claim, end_auction, receive must be set, got %d", set)
	}

	switch {
	case m.Claim != nil:
		return auction.NewClaimBody(), nil
	case m.EndAuction != nil:
		return auction.NewEndAuctionBody(), nil
	}

	r := m.Receive
	amount, err := meter.ParseAmount(r.Amount)
	if err != nil {
		return nil, err
	}
	var op uint32
	switch {
	case r.Msg.Deposit != nil && r.Msg.BeginAuction == nil:
		op = meter.OP_DEPOSIT
	case r.Msg.BeginAuction != nil && r.Msg.Deposit == nil:
		op = meter.OP_BEGIN
	default:
		return nil, fmt.Errorf("exactly one of deposit, begin_auction must be set")
	}
	return auction.NewReceiveBody(r.Sender, r.From, amount, op, r.Memo), nil
}

type Config struct {
	Admin        meter.Address  `json:"admin"`
	ProjectAsset meter.AssetRef `json:"projectAsset"`
	PairedAsset  meter.AssetRef `json:"pairedAsset"`
}

type State struct {
	PoolAmount    string `json:"poolAmount"`
	TotalDeposits string `json:"totalDeposits"`
	Active        bool   `json:"active"`
	Round         uint64 `json:"round"`
}

type StateResponse struct {
	Config Config `json:"config"`
	State  State  `json:"state"`
}

func ConvertState(resp *auction.StateResponse) *StateResponse {
	return &StateResponse{
		Config: Config{
			Admin:        resp.Config.Admin,
			ProjectAsset: resp.Config.ProjectAsset,
			PairedAsset:  resp.Config.PairedAsset,
		},
		State: State{
			PoolAmount:    resp.State.PoolAmount.String(),
			TotalDeposits: resp.State.TotalDeposits.String(),
			Active:        resp.State.Active,
			Round:         resp.State.Round,
		},
	}
}

type DepositResponse struct {
	Address meter.Address `json:"address"`
	Amount  string        `json:"amount"`
}

type RoundSummary struct {
	Round         uint64 `json:"round"`
	PoolAmount    string `json:"poolAmount"`
	TotalDeposits string `json:"totalDeposits"`
	EndTime       uint64 `json:"endTime"`
}

func ConvertSummaries(list []*meter.RoundSummary) []*RoundSummary {
	out := make([]*RoundSummary, 0, len(list))
	for _, s := range list {
		out = append(out, &RoundSummary{
			Round:         s.Round,
			PoolAmount:    amountString(s.PoolAmount),
			TotalDeposits: amountString(s.TotalDeposits),
			EndTime:       s.EndTime,
		})
	}
	return out
}

type Transfer struct {
	Asset     meter.AssetRef `json:"asset"`
	Sender    meter.Address  `json:"sender"`
	Recipient meter.Address  `json:"recipient"`
	Amount    string         `json:"amount"`
}

type ExecuteResult struct {
	ExecID    string      `json:"execID"`
	UniteHash string      `json:"uniteHash"`
	Transfers []*Transfer `json:"transfers"`
	Events    []*tx.Event `json:"events"`
}

func ConvertReceipt(r *node.Receipt) *ExecuteResult {
	res := &ExecuteResult{
		ExecID:    r.ExecID.String(),
		UniteHash: r.UniteHash.String(),
		Transfers: make([]*Transfer, 0, len(r.Transfers)),
		Events:    r.Events,
	}
	for _, t := range r.Transfers {
		res.Transfers = append(res.Transfers, &Transfer{
			Asset:     t.Asset,
			Sender:    t.Sender,
			Recipient: t.Recipient,
			Amount:    t.Amount.String(),
		})
	}
	return res
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
