// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	contract = meter.BytesToAddress([]byte("auction"))
	gateway  = meter.AssetRef{Contract: meter.BytesToAddress([]byte("paired")), CodeHash: "paired-hash"}
	alice    = meter.BytesToAddress([]byte("alice"))
	bob      = meter.BytesToAddress([]byte("bob"))
)

func depositEvent(from meter.Address, amount string) *tx.Event {
	return &tx.Event{
		Address: contract,
		Attributes: []tx.Attribute{
			{Key: "action", Value: "deposit"},
			{Key: "from", Value: from.String()},
			{Key: "amount", Value: amount},
		},
	}
}

func TestEvents(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 10; i++ {
		from := alice
		if i%2 == 1 {
			from = bob
		}
		exec := &logdb.Execution{ID: uuid.New(), Origin: gateway.Contract, Time: uint64(i)}
		require.NoError(t, db.Prepare(exec).Insert(tx.Events{depositEvent(from, "5")}, nil, nil).Commit())
	}

	all, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 10)
	assert.Equal(t, "deposit", all[0].Action)
	assert.Equal(t, alice.String(), all[0].From)
	assert.Equal(t, "5", all[0].Amount)
	require.Len(t, all[0].Attributes, 3)

	es, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Action: "deposit", From: &bob}},
		Range:       &logdb.Range{From: 2, To: 8},
		Options:     &logdb.Options{Offset: 0, Limit: 2},
		Order:       logdb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, es, 2)
	assert.Equal(t, uint64(7), es[0].ExecTime)
	assert.Equal(t, uint64(5), es[1].ExecTime)

	es, err = db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Action: "claim"}, {From: &alice}},
	})
	require.NoError(t, err)
	assert.Len(t, es, 5)
}

func TestTransfers(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	exec := &logdb.Execution{ID: uuid.New(), Origin: alice, Time: 42}
	amount, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	transfer := &tx.Transfer{Asset: gateway, Sender: contract, Recipient: alice, Amount: amount}
	reg := &tx.Registration{Asset: gateway, Receiver: contract, ReceiverCodeHash: "auction-hash"}
	require.NoError(t, db.Prepare(exec).Insert(nil, tx.Transfers{transfer}, tx.Registrations{reg}).Commit())

	ts, err := db.FilterTransfers(context.Background(), &logdb.TransferFilter{
		ExecID:      &exec.ID,
		CriteriaSet: []*logdb.TransferCriteria{{Recipient: &alice}},
	})
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, exec.ID, ts[0].ExecID)
	assert.Equal(t, gateway, ts[0].Asset)
	assert.Equal(t, 0, ts[0].Amount.Cmp(amount))

	ts, err = db.FilterTransfers(context.Background(), &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Recipient: &bob}},
	})
	require.NoError(t, err)
	assert.Empty(t, ts)

	regs, err := db.Registrations(context.Background())
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, *reg, *regs[0])
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := logdb.New(path)
	require.NoError(t, err)
	exec := &logdb.Execution{ID: uuid.New(), Origin: gateway.Contract, Time: 1}
	require.NoError(t, db.Prepare(exec).Insert(tx.Events{depositEvent(alice, "1")}, nil, nil).Commit())
	db.Close()

	db, err = logdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())
	es, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.Equal(t, exec.ID, es[0].ExecID)
}
