// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meterio/meter-auction/genesis"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/tx"
	"github.com/meterio/meter-auction/xenv"
)

// Receipt describes a committed execution.
type Receipt struct {
	ExecID        uuid.UUID
	UniteHash     meter.Bytes32 // zero for instantiate
	Time          uint64
	Data          []byte
	Transfers     tx.Transfers
	Registrations tx.Registrations
	Events        tx.Events
}

// Node hosts the auction. Executions are serialized; queries may run
// concurrently with each other but never with an execution.
type Node struct {
	mu      sync.RWMutex
	script  *script.ScriptEngine
	logDB   *logdb.LogDB // optional
	gateway AssetGateway
	logger  *slog.Logger
	now     func() time.Time
}

func New(script *script.ScriptEngine, logDB *logdb.LogDB, gateway AssetGateway) *Node {
	if gateway == nil {
		gateway = NewLogGateway()
	}
	return &Node{
		script:  script,
		logDB:   logDB,
		gateway: gateway,
		logger:  slog.Default().With("pkg", "node"),
		now:     time.Now,
	}
}

// Contract returns the identity of the hosted auction.
func (n *Node) Contract() *xenv.ContractContext {
	return n.script.Contract()
}

// Execute runs an encoded script on behalf of caller. Nothing is recorded or
// settled unless the execution commits.
func (n *Node) Execute(ctx context.Context, caller meter.Address, data []byte) (*Receipt, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	txCtx := n.newTxCtx(caller)
	out, err := n.script.HandleScriptData(txCtx.ctx, data)
	if err != nil {
		n.logger.Debug("execution failed", "caller", caller, "error", err)
		return nil, err
	}
	return n.settle(ctx, txCtx, out), nil
}

// Instantiate builds g once. It fails if the auction is already instantiated.
func (n *Node) Instantiate(ctx context.Context, g *genesis.Genesis) (*Receipt, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	out, err := g.Build(n.script)
	if err != nil {
		return nil, err
	}
	initializer := g.Initializer
	if initializer.IsZero() {
		initializer = g.Admin
	}
	txCtx := &execContext{id: uuid.New(), ctx: &xenv.TransactionContext{Origin: initializer, Time: g.LaunchTime}}
	return n.settle(ctx, txCtx, out), nil
}

// Query runs fn against the committed state.
func (n *Node) Query(fn func(st *state.State) error) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.script.Query(fn)
}

type execContext struct {
	id  uuid.UUID
	ctx *xenv.TransactionContext
}

func (n *Node) newTxCtx(caller meter.Address) *execContext {
	id := uuid.New()
	return &execContext{
		id: id,
		ctx: &xenv.TransactionContext{
			ID:     meter.Blake2b(id[:]),
			Origin: caller,
			Time:   uint64(n.now().Unix()),
		},
	}
}

// settle records and hands off the output of a committed execution. Failures
// here are logged: the state change is already durable.
func (n *Node) settle(ctx context.Context, ec *execContext, out *setypes.ScriptEngineOutput) *Receipt {
	receipt := &Receipt{
		ExecID:        ec.id,
		UniteHash:     out.GetUniteHash(),
		Time:          ec.ctx.Time,
		Data:          out.GetData(),
		Transfers:     out.GetTransfers(),
		Registrations: out.GetRegistrations(),
		Events:        out.GetEvents(),
	}

	if n.logDB != nil {
		exec := &logdb.Execution{ID: ec.id, Origin: ec.ctx.Origin, Time: ec.ctx.Time}
		if err := n.logDB.Prepare(exec).Insert(receipt.Events, receipt.Transfers, receipt.Registrations).Commit(); err != nil {
			n.logger.Error("write execution logs failed", "exec", ec.id, "error", err)
		}
	}
	for _, r := range receipt.Registrations {
		if err := n.gateway.RegisterReceive(ctx, r); err != nil {
			n.logger.Error("register receive failed", "exec", ec.id, "asset", r.Asset.Contract, "error", err)
		}
	}
	for _, t := range receipt.Transfers {
		if err := n.gateway.Transfer(ctx, t); err != nil {
			n.logger.Error("transfer failed", "exec", ec.id, "asset", t.Asset.Contract, "to", t.Recipient, "error", err)
		}
	}
	for _, e := range receipt.Events {
		n.logger.Info("event", "exec", ec.id, "uniteHash", receipt.UniteHash, "event", e.String())
	}
	return receipt
}
