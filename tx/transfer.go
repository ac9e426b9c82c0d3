// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"math/big"

	"github.com/meterio/meter-auction/meter"
)

// Transfer is an outbound instruction: the asset gateway Asset should move
// Amount from Sender to Recipient. It is declared by the auction and settled
// by the host afterwards.
type Transfer struct {
	Asset     meter.AssetRef
	Sender    meter.Address
	Recipient meter.Address
	Amount    *big.Int
}

func (t *Transfer) String() string {
	return fmt.Sprintf("Transfer(asset=%v, sender=%v, recipient=%v, amount=%v)", t.Asset.Contract, t.Sender, t.Recipient, t.Amount)
}

// Transfers slisce of transfer instructions.
type Transfers []*Transfer

// Registration asks the asset gateway Asset to notify Receiver (routed by
// ReceiverCodeHash) whenever value is sent to it.
type Registration struct {
	Asset            meter.AssetRef
	Receiver         meter.Address
	ReceiverCodeHash string
}

func (r *Registration) String() string {
	return fmt.Sprintf("Registration(asset=%v, receiver=%v, hash=%v)", r.Asset.Contract, r.Receiver, r.ReceiverCodeHash)
}

// Registrations slice of registration instructions.
type Registrations []*Registration
