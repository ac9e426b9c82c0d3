// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"math/big"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/tx"
	"github.com/meterio/meter-auction/xenv"
)

// ScriptEnv is handed to a module for one execution. It collects what the
// module declares; nothing leaves it unless the execution succeeds.
type ScriptEnv struct {
	state    *state.State
	txCtx    *xenv.TransactionContext
	contract *xenv.ContractContext

	returnData    []byte
	transfers     []*tx.Transfer
	registrations []*tx.Registration
	events        []*tx.Event
}

func NewScriptEnv(state *state.State, txCtx *xenv.TransactionContext, contract *xenv.ContractContext) *ScriptEnv {
	return &ScriptEnv{
		state:         state,
		txCtx:         txCtx,
		contract:      contract,
		returnData:    make([]byte, 0),
		transfers:     make([]*tx.Transfer, 0),
		registrations: make([]*tx.Registration, 0),
		events:        make([]*tx.Event, 0),
	}
}

func (env *ScriptEnv) GetState() *state.State             { return env.state }
func (env *ScriptEnv) GetTxCtx() *xenv.TransactionContext { return env.txCtx }
func (env *ScriptEnv) GetContract() *xenv.ContractContext { return env.contract }
func (env *ScriptEnv) GetCaller() meter.Address           { return env.txCtx.Origin }

func (env *ScriptEnv) SetReturnData(data []byte) {
	env.returnData = data
}

func (env *ScriptEnv) GetReturnData() []byte {
	if len(env.returnData) == 0 {
		return nil
	}
	return env.returnData
}

// AddTransfer declares an outbound transfer from the auction contract.
func (env *ScriptEnv) AddTransfer(asset meter.AssetRef, recipient meter.Address, amount *big.Int) {
	env.transfers = append(env.transfers, &tx.Transfer{
		Asset:     asset,
		Sender:    env.contract.Address,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
	})
}

// AddRegistration declares a receive registration of the auction contract at asset.
func (env *ScriptEnv) AddRegistration(asset meter.AssetRef) {
	env.registrations = append(env.registrations, &tx.Registration{
		Asset:            asset,
		Receiver:         env.contract.Address,
		ReceiverCodeHash: env.contract.CodeHash,
	})
}

func (env *ScriptEnv) AddEvent(attrs ...tx.Attribute) {
	env.events = append(env.events, &tx.Event{
		Address:    env.contract.Address,
		Attributes: attrs,
	})
}

func (env *ScriptEnv) GetTransfers() tx.Transfers {
	return env.transfers
}

func (env *ScriptEnv) GetRegistrations() tx.Registrations {
	return env.registrations
}

func (env *ScriptEnv) GetEvents() tx.Events {
	return env.events
}

func (env *ScriptEnv) GetOutput() *ScriptEngineOutput {
	return &ScriptEngineOutput{
		data:          env.GetReturnData(),
		transfers:     env.transfers,
		registrations: env.registrations,
		events:        env.events,
	}
}
