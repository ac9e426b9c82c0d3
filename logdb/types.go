// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
)

// Execution identifies one committed operation.
type Execution struct {
	ID     uuid.UUID
	Origin meter.Address // direct caller
	Time   uint64
}

// Event represents tx.Event that can be stored in db.
type Event struct {
	Seq        uint64
	ExecID     uuid.UUID
	Index      uint32
	ExecTime   uint64
	Origin     meter.Address
	Address    meter.Address // always the auction contract
	Action     string
	From       string
	Amount     string
	Attributes []tx.Attribute
}

func newEvent(exec *Execution, index uint32, txEvent *tx.Event) *Event {
	ev := &Event{
		ExecID:     exec.ID,
		Index:      index,
		ExecTime:   exec.Time,
		Origin:     exec.Origin,
		Address:    txEvent.Address,
		Attributes: txEvent.Attributes,
	}
	ev.Action, _ = txEvent.Get("action")
	ev.From, _ = txEvent.Get("from")
	ev.Amount, _ = txEvent.Get("amount")
	return ev
}

// Transfer represents tx.Transfer that can be stored in db.
type Transfer struct {
	Seq       uint64
	ExecID    uuid.UUID
	Index     uint32
	ExecTime  uint64
	Origin    meter.Address
	Asset     meter.AssetRef
	Sender    meter.Address
	Recipient meter.Address
	Amount    *big.Int
}

func newTransfer(exec *Execution, index uint32, transfer *tx.Transfer) *Transfer {
	return &Transfer{
		ExecID:    exec.ID,
		Index:     index,
		ExecTime:  exec.Time,
		Origin:    exec.Origin,
		Asset:     transfer.Asset,
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
	}
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds the execution time, inclusive. To < From means unbounded.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventCriteria struct {
	Action string         // empty matches all
	From   *meter.Address // logical initiator recorded in the event
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}

type TransferCriteria struct {
	Asset     *meter.Address // gateway contract
	Recipient *meter.Address
}

type TransferFilter struct {
	ExecID      *uuid.UUID
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}
