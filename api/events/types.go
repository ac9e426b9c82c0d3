// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"

	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
)

type LogMeta struct {
	ExecID   string        `json:"execID"`
	ExecTime uint64        `json:"execTime"`
	Origin   meter.Address `json:"origin"`
}

// FilteredEvent only comes from one contract
type FilteredEvent struct {
	Address    meter.Address  `json:"address"`
	Action     string         `json:"action"`
	From       string         `json:"from,omitempty"`
	Amount     string         `json:"amount,omitempty"`
	Attributes []tx.Attribute `json:"attributes"`
	Meta       LogMeta        `json:"meta"`
}

// convert a logdb.Event into a json format Event
func convertEvent(event *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Address:    event.Address,
		Action:     event.Action,
		From:       event.From,
		Amount:     event.Amount,
		Attributes: event.Attributes,
		Meta: LogMeta{
			ExecID:   event.ExecID.String(),
			ExecTime: event.ExecTime,
			Origin:   event.Origin,
		},
	}
}

func (e *FilteredEvent) String() string {
	return fmt.Sprintf(`
		Event(
			address: %v,
			action:  %v,
			from:    %v,
			amount:  %v,
			meta: (execID   %v,
				execTime %v,
				origin   %v)
			)`,
		e.Address,
		e.Action,
		e.From,
		e.Amount,
		e.Meta.ExecID,
		e.Meta.ExecTime,
		e.Meta.Origin,
	)
}

type EventCriteria struct {
	Action string         `json:"action"`
	From   *meter.Address `json:"from"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *logdb.Range     `json:"range"`
	Options     *logdb.Options   `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertEventFilter(filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	for _, c := range filter.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.EventCriteria{Action: c.Action, From: c.From})
	}
	return f
}

type FilteredTransfer struct {
	Asset     meter.AssetRef `json:"asset"`
	Sender    meter.Address  `json:"sender"`
	Recipient meter.Address  `json:"recipient"`
	Amount    string         `json:"amount"`
	Meta      LogMeta        `json:"meta"`
}

func convertTransfer(t *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Asset:     t.Asset,
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    t.Amount.String(),
		Meta: LogMeta{
			ExecID:   t.ExecID.String(),
			ExecTime: t.ExecTime,
			Origin:   t.Origin,
		},
	}
}

type TransferCriteria struct {
	Asset     *meter.Address `json:"asset"`
	Recipient *meter.Address `json:"recipient"`
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria `json:"criteriaSet"`
	Range       *logdb.Range        `json:"range"`
	Options     *logdb.Options      `json:"options"`
	Order       logdb.Order         `json:"order"`
}

func convertTransferFilter(filter *TransferFilter) *logdb.TransferFilter {
	f := &logdb.TransferFilter{
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	for _, c := range filter.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.TransferCriteria{Asset: c.Asset, Recipient: c.Recipient})
	}
	return f
}

type FilteredRegistration struct {
	Asset            meter.AssetRef `json:"asset"`
	Receiver         meter.Address  `json:"receiver"`
	ReceiverCodeHash string         `json:"receiverCodeHash"`
}

func convertRegistration(r *tx.Registration) *FilteredRegistration {
	return &FilteredRegistration{
		Asset:            r.Asset,
		Receiver:         r.Receiver,
		ReceiverCodeHash: r.ReceiverCodeHash,
	}
}
