// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"log/slog"
	"math/big"
	"time"

	"github.com/meterio/meter-auction/meter"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
)

// Auction is the pool auction module. It keeps no state of its own: everything
// lives in the State handed over with each ScriptEnv.
type Auction struct {
	logger *slog.Logger
}

func NewAuction() *Auction {
	return &Auction{
		logger: slog.Default().With("pkg", "auction"),
	}
}

// Handle decodes payload as an AuctionBody and runs the operation it names.
// Any error leaves the state of env unusable; the caller must not commit it.
func (a *Auction) Handle(env *setypes.ScriptEnv, payload []byte) (err error) {
	start := time.Now()
	op := "unknown"
	defer func() {
		observe(op, err)
		if err != nil {
			env.SetReturnData([]byte(err.Error()))
			a.logger.Debug("operation rejected", "op", op, "error", err, "elapsed", time.Since(start))
			return
		}
		a.logger.Debug("operation completed", "op", op, "elapsed", time.Since(start))
	}()

	ab, err := AuctionDecodeFromBytes(payload)
	if err != nil {
		a.logger.Error("decode script message failed", "error", err)
		return err
	}
	a.logger.Debug("received auction", "op", ab.GetOpName(ab.Opcode), "body", ab.ToString())

	switch ab.Opcode {
	case meter.OP_CLAIM:
		op = ActionClaim
		err = a.Claim(env)
	case meter.OP_END:
		op = ActionEndAuction
		err = a.EndAuction(env)
	case meter.OP_RECEIVE:
		var rb *ReceiveBody
		if rb, err = ReceiveDecodeFromBytes(ab.Msg); err != nil {
			return err
		}
		op = receiveAction(rb.Opcode)
		a.logger.Debug("received transfer", "op", meter.GetReceiveOpName(rb.Opcode), "from", ab.From, "amount", ab.Amount)
		err = a.Receive(env, ab, rb)
	default:
		a.logger.Error("unknown opcode", "opcode", ab.Opcode)
		err = errors.Wrapf(ErrInvalidPayload, "unknown auction opcode %d", ab.Opcode)
	}
	return
}

func receiveAction(op uint32) string {
	switch op {
	case meter.OP_DEPOSIT:
		return ActionDeposit
	case meter.OP_BEGIN:
		return ActionBeginAuction
	default:
		return "receive"
	}
}

// loadAuction reads config and state, failing with ErrNotInitialized before instantiation.
func loadAuction(st *state.State) (*meter.AuctionConfig, *meter.AuctionState, error) {
	cfg, err := st.GetAuctionConfig()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load auction config")
	}
	auctionState, err := st.GetAuctionState()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load auction state")
	}
	if cfg == nil || auctionState == nil {
		return nil, nil, ErrNotInitialized
	}
	return cfg, auctionState.Copy(), nil
}

func emit(env *setypes.ScriptEnv, action string, from meter.Address, amount *big.Int) {
	env.AddEvent(
		tx.Attribute{Key: AttrAction, Value: action},
		tx.Attribute{Key: AttrFrom, Value: from.String()},
		tx.Attribute{Key: AttrAmount, Value: amount.String()},
	)
}
