// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/meterio/meter-auction/meter"
)

// ContractContext identifies the auction itself.
type ContractContext struct {
	Address  meter.Address
	CodeHash string
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID     meter.Bytes32
	Origin meter.Address // the direct caller: a participant, the admin or an asset gateway
	Time   uint64
}

func (ctx *TransactionContext) String() string {
	return fmt.Sprintf("txCtx{ID:%s Origin:%s Time:%d}", ctx.ID.AbbrevString(), ctx.Origin.String(), ctx.Time)
}
