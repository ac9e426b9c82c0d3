// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"log/slog"

	"github.com/meterio/meter-auction/tx"
)

// AssetGateway settles the instructions of committed executions. Inbound
// value arrives as OP_RECEIVE notifications instead.
type AssetGateway interface {
	RegisterReceive(ctx context.Context, r *tx.Registration) error
	Transfer(ctx context.Context, t *tx.Transfer) error
}

// LogGateway only logs the instructions; the log database keeps them for an
// external settlement process.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway() *LogGateway {
	return &LogGateway{logger: slog.Default().With("pkg", "gateway")}
}

func (g *LogGateway) RegisterReceive(ctx context.Context, r *tx.Registration) error {
	g.logger.Info("register receive", "asset", r.Asset.Contract, "receiver", r.Receiver, "codeHash", r.ReceiverCodeHash)
	return nil
}

func (g *LogGateway) Transfer(ctx context.Context, t *tx.Transfer) error {
	g.logger.Info("transfer", "asset", t.Asset.Contract, "from", t.Sender, "to", t.Recipient, "amount", t.Amount)
	return nil
}
