// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// rows are never updated; seq gives the global commit order
const (
	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	execID BLOB(16) NOT NULL,
	eventIndex INTEGER NOT NULL,
	execTime INTEGER NOT NULL,
	origin BLOB(20) NOT NULL,
	address BLOB(20) NOT NULL,
	action TEXT NOT NULL,
	fromAddr TEXT,
	amount TEXT,
	attributes TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS eventActionIndex ON event(action);
CREATE INDEX IF NOT EXISTS eventFromIndex ON event(fromAddr);
CREATE INDEX IF NOT EXISTS eventExecIndex ON event(execID);
`

	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	execID BLOB(16) NOT NULL,
	transferIndex INTEGER NOT NULL,
	execTime INTEGER NOT NULL,
	origin BLOB(20) NOT NULL,
	asset BLOB(20) NOT NULL,
	assetCodeHash TEXT NOT NULL,
	sender BLOB(20) NOT NULL,
	recipient BLOB(20) NOT NULL,
	amount TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS transferRecipientIndex ON transfer(recipient);
CREATE INDEX IF NOT EXISTS transferExecIndex ON transfer(execID);
`

	registrationTableSchema = `CREATE TABLE IF NOT EXISTS registration (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	execID BLOB(16) NOT NULL,
	execTime INTEGER NOT NULL,
	asset BLOB(20) NOT NULL,
	assetCodeHash TEXT NOT NULL,
	receiver BLOB(20) NOT NULL,
	receiverCodeHash TEXT NOT NULL
);
`
)
