// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"bytes"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/meter-auction/script/auction"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

var (
	errPatternMismatch = errors.New("script pattern mismatch")
	errUnknownModule   = errors.New("unknown script module")
)

// ScriptEngine runs module payloads. Every execution works on its own State
// and is committed in one batch only when the module returns no error.
type ScriptEngine struct {
	stateCreator *state.Creator
	contract     *xenv.ContractContext
	logger       *slog.Logger
	modReg       Registry
	auction      *auction.Auction
}

func NewScriptEngine(stateCreator *state.Creator, contract *xenv.ContractContext) *ScriptEngine {
	se := &ScriptEngine{
		stateCreator: stateCreator,
		contract:     contract,
		logger:       slog.Default().With("pkg", "se"),
	}

	// start all sub modules
	se.StartAllModules()
	return se
}

func (se *ScriptEngine) StartAllModules() {
	se.auction = ModuleAuctionInit(se)
	for _, m := range se.modReg.All() {
		se.logger.Info("module started", "module", m.ToString())
	}
}

func (se *ScriptEngine) Contract() *xenv.ContractContext {
	return se.contract
}

// HandleScriptData decodes an envelope, runs the addressed module and commits.
// The leading 0xffffffff prefix is optional.
func (se *ScriptEngine) HandleScriptData(txCtx *xenv.TransactionContext, data []byte) (*setypes.ScriptEngineOutput, error) {
	data = bytes.TrimPrefix(data, ScriptPrefix[:])
	if len(data) < len(ScriptPattern) || !bytes.Equal(data[:len(ScriptPattern)], ScriptPattern[:]) {
		head := data
		if len(head) > len(ScriptPattern) {
			head = head[:len(ScriptPattern)]
		}
		return nil, errors.Wrapf(auction.ErrInvalidPayload, "%v, pattern = %v", errPatternMismatch, hex.EncodeToString(head))
	}
	script, err := DecodeScriptData(data[len(ScriptPattern):])
	if err != nil {
		se.logger.Debug("decode script message failed", "error", err)
		return nil, errors.Wrap(auction.ErrInvalidPayload, err.Error())
	}

	header := script.Header
	mod, find := se.modReg.Find(header.GetModID())
	if !find {
		return nil, errors.Wrapf(auction.ErrInvalidPayload, "%v %v", errUnknownModule, header.GetModID())
	}
	uniteHash := script.UniteHash()
	se.logger.Debug("script header", "header", header.ToString(), "module", mod.ToString(), "uniteHash", uniteHash)

	out, err := se.execute(txCtx, func(env *setypes.ScriptEnv) error {
		return mod.modHandler(env, script.Payload)
	})
	if err != nil {
		return nil, err
	}
	out.SetUniteHash(uniteHash)
	return out, nil
}

// Instantiate configures the auction. It fails once a config is stored.
func (se *ScriptEngine) Instantiate(txCtx *xenv.TransactionContext, msg *auction.InitMsg) (*setypes.ScriptEngineOutput, error) {
	return se.execute(txCtx, func(env *setypes.ScriptEnv) error {
		return se.auction.Instantiate(env, msg)
	})
}

// Query runs fn against a fresh State that is never committed.
func (se *ScriptEngine) Query(fn func(st *state.State) error) error {
	return fn(se.stateCreator.NewState())
}

func (se *ScriptEngine) execute(txCtx *xenv.TransactionContext, fn func(env *setypes.ScriptEnv) error) (*setypes.ScriptEngineOutput, error) {
	start := time.Now()
	st := se.stateCreator.NewState()
	env := setypes.NewScriptEnv(st, txCtx, se.contract)
	if err := fn(env); err != nil {
		return nil, err
	}
	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		se.logger.Error("commit failed", "txCtx", txCtx.String(), "error", err)
		return nil, errors.Wrap(err, "commit")
	}
	if auctionState, err := st.GetAuctionState(); err == nil && auctionState != nil {
		auction.PublishState(auctionState)
	}
	se.logger.Debug("execution committed", "txCtx", txCtx.String(), "changes", stage.Len(), "elapsed", time.Since(start))
	return env.GetOutput(), nil
}

// EncodeScriptData wraps body in the envelope of its module.
func EncodeScriptData(body interface{}) ([]byte, error) {
	var modID uint32
	switch body.(type) {
	case auction.AuctionBody, *auction.AuctionBody:
		modID = AUCTION_MODULE_ID
	default:
		return nil, errors.New("unrecognized body")
	}
	payload, err := rlp.EncodeToBytes(body)
	if err != nil {
		return nil, errors.Wrap(err, "rlp encode body")
	}
	b := &Builder{}
	return b.SetVersion(0).SetModID(modID).SetPayload(payload).Encode()
}

func DecodeScriptData(bytes []byte) (*ScriptData, error) {
	script := ScriptData{}
	err := rlp.DecodeBytes(bytes, &script)
	return &script, err
}
