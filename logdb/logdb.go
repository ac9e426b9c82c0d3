// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	logger        *slog.Logger
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	logger := slog.Default().With("pkg", "logdb")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			if err := db.Close(); err != nil {
				logger.Warn("could not close logdb", "error", err)
			}
		}
	}()
	if path == ":memory:" {
		// every connection would open its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema + transferTableSchema + registrationTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
		logger,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() {
	if err := db.db.Close(); err != nil {
		db.logger.Warn("could not close logdb", "error", err)
	}
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

func (db *LogDB) Prepare(exec *Execution) *ExecBatch {
	return &ExecBatch{
		db:     db.db,
		exec:   exec,
		logger: db.logger,
	}
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const selectEvents = "SELECT seq, execID, eventIndex, execTime, origin, address, action, fromAddr, amount, attributes FROM event"
	if filter == nil {
		return db.queryEvents(ctx, selectEvents+" ORDER BY seq ASC")
	}
	var args []interface{}
	stmt := selectEvents + " WHERE 1"
	stmt, args = appendRange(stmt, args, filter.Range)
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Action != "" {
			args = append(args, criteria.Action)
			stmt += " AND action = ? "
		}
		if criteria.From != nil {
			args = append(args, criteria.From.String())
			stmt += " AND fromAddr = ? "
		}
		stmt += ")"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	stmt, args = appendOptions(stmt, args, filter.Options)
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	const selectTransfers = "SELECT seq, execID, transferIndex, execTime, origin, asset, assetCodeHash, sender, recipient, amount FROM transfer"
	if filter == nil {
		return db.queryTransfers(ctx, selectTransfers+" ORDER BY seq ASC")
	}
	var args []interface{}
	stmt := selectTransfers + " WHERE 1"
	stmt, args = appendRange(stmt, args, filter.Range)
	if filter.ExecID != nil {
		args = append(args, filter.ExecID[:])
		stmt += " AND execID = ? "
	}
	length := len(filter.CriteriaSet)
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1 "
		} else {
			stmt += " OR ( 1 "
		}
		if criteria.Asset != nil {
			args = append(args, criteria.Asset.Bytes())
			stmt += " AND asset = ? "
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			stmt += " AND recipient = ? "
		}
		if i == length-1 {
			stmt += " )) "
		} else {
			stmt += " ) "
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	stmt, args = appendOptions(stmt, args, filter.Options)
	return db.queryTransfers(ctx, stmt, args...)
}

// Registrations returns every receive registration ever declared.
func (db *LogDB) Registrations(ctx context.Context) ([]*tx.Registration, error) {
	rows, err := db.db.QueryContext(ctx, "SELECT asset, assetCodeHash, receiver, receiverCodeHash FROM registration ORDER BY seq ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*tx.Registration
	for rows.Next() {
		var (
			asset, receiver         []byte
			assetHash, receiverHash string
		)
		if err := rows.Scan(&asset, &assetHash, &receiver, &receiverHash); err != nil {
			return nil, err
		}
		regs = append(regs, &tx.Registration{
			Asset:            meter.AssetRef{Contract: meter.BytesToAddress(asset), CodeHash: assetHash},
			Receiver:         meter.BytesToAddress(receiver),
			ReceiverCodeHash: receiverHash,
		})
	}
	return regs, rows.Err()
}

func appendRange(stmt string, args []interface{}, r *Range) (string, []interface{}) {
	if r == nil {
		return stmt, args
	}
	args = append(args, r.From)
	stmt += " AND execTime >= ? "
	if r.To >= r.From {
		args = append(args, r.To)
		stmt += " AND execTime <= ? "
	}
	return stmt, args
}

func appendOptions(stmt string, args []interface{}, opts *Options) (string, []interface{}) {
	if opts == nil {
		return stmt, args
	}
	return stmt + " limit ?, ? ", append(args, opts.Offset, opts.Limit)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq      uint64
			execID   []byte
			index    uint32
			execTime uint64
			origin   []byte
			address  []byte
			action   string
			from     sql.NullString
			amount   sql.NullString
			attrs    string
		)
		if err := rows.Scan(
			&seq,
			&execID,
			&index,
			&execTime,
			&origin,
			&address,
			&action,
			&from,
			&amount,
			&attrs,
		); err != nil {
			return nil, err
		}
		id, err := uuid.FromBytes(execID)
		if err != nil {
			return nil, errors.Wrap(err, "decode execution id")
		}
		event := &Event{
			Seq:      seq,
			ExecID:   id,
			Index:    index,
			ExecTime: execTime,
			Origin:   meter.BytesToAddress(origin),
			Address:  meter.BytesToAddress(address),
			Action:   action,
			From:     from.String,
			Amount:   amount.String,
		}
		if err := json.Unmarshal([]byte(attrs), &event.Attributes); err != nil {
			return nil, errors.Wrap(err, "decode event attributes")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       uint64
			execID    []byte
			index     uint32
			execTime  uint64
			origin    []byte
			asset     []byte
			assetHash string
			sender    []byte
			recipient []byte
			amount    string
		)
		if err := rows.Scan(
			&seq,
			&execID,
			&index,
			&execTime,
			&origin,
			&asset,
			&assetHash,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		id, err := uuid.FromBytes(execID)
		if err != nil {
			return nil, errors.Wrap(err, "decode execution id")
		}
		value, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, errors.Errorf("invalid stored amount %q", amount)
		}
		transfers = append(transfers, &Transfer{
			Seq:       seq,
			ExecID:    id,
			Index:     index,
			ExecTime:  execTime,
			Origin:    meter.BytesToAddress(origin),
			Asset:     meter.AssetRef{Contract: meter.BytesToAddress(asset), CodeHash: assetHash},
			Sender:    meter.BytesToAddress(sender),
			Recipient: meter.BytesToAddress(recipient),
			Amount:    value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// ExecBatch collects the records of one execution and writes them in one sql transaction.
type ExecBatch struct {
	db            *sql.DB
	exec          *Execution
	logger        *slog.Logger
	events        []*Event
	transfers     []*Transfer
	registrations []*tx.Registration
}

func (eb *ExecBatch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := eb.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		if e := tx.Rollback(); e != nil {
			eb.logger.Warn("could not rollback", "error", e)
		}
		return err
	}
	return tx.Commit()
}

func (eb *ExecBatch) Insert(events tx.Events, transfers tx.Transfers, registrations tx.Registrations) *ExecBatch {
	for _, event := range events {
		eb.events = append(eb.events, newEvent(eb.exec, uint32(len(eb.events)), event))
	}
	for _, transfer := range transfers {
		eb.transfers = append(eb.transfers, newTransfer(eb.exec, uint32(len(eb.transfers)), transfer))
	}
	eb.registrations = append(eb.registrations, registrations...)
	return eb
}

func (eb *ExecBatch) Commit() error {
	execID := eb.exec.ID[:]
	return eb.execInTx(func(tx *sql.Tx) error {
		for _, event := range eb.events {
			attrs, err := json.Marshal(event.Attributes)
			if err != nil {
				return err
			}
			if _, err := tx.Exec("INSERT INTO event(execID, eventIndex, execTime, origin, address, action, fromAddr, amount, attributes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);",
				execID,
				event.Index,
				event.ExecTime,
				event.Origin.Bytes(),
				event.Address.Bytes(),
				event.Action,
				nullString(event.From),
				nullString(event.Amount),
				string(attrs),
			); err != nil {
				return err
			}
		}

		for _, transfer := range eb.transfers {
			if _, err := tx.Exec("INSERT INTO transfer(execID, transferIndex, execTime, origin, asset, assetCodeHash, sender, recipient, amount) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);",
				execID,
				transfer.Index,
				transfer.ExecTime,
				transfer.Origin.Bytes(),
				transfer.Asset.Contract.Bytes(),
				transfer.Asset.CodeHash,
				transfer.Sender.Bytes(),
				transfer.Recipient.Bytes(),
				transfer.Amount.String(),
			); err != nil {
				return err
			}
		}

		for _, reg := range eb.registrations {
			if _, err := tx.Exec("INSERT INTO registration(execID, execTime, asset, assetCodeHash, receiver, receiverCodeHash) VALUES (?, ?, ?, ?, ?, ?);",
				execID,
				eb.exec.Time,
				reg.Asset.Contract.Bytes(),
				reg.Asset.CodeHash,
				reg.Receiver.Bytes(),
				reg.ReceiverCodeHash,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (e *Event) String() string {
	return fmt.Sprintf("Event(seq=%v, exec=%v, action=%v, from=%v, amount=%v)", e.Seq, e.ExecID, e.Action, e.From, e.Amount)
}
