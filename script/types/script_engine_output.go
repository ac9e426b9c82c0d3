package types

import (
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
)

// ScriptEngineOutput is what a committed execution hands back to the host.
type ScriptEngineOutput struct {
	data          []byte
	transfers     []*tx.Transfer
	registrations []*tx.Registration
	events        []*tx.Event
	uniteHash     meter.Bytes32
}

// SetUniteHash records the fingerprint of the script that produced o.
func (o *ScriptEngineOutput) SetUniteHash(h meter.Bytes32) {
	o.uniteHash = h
}

// GetUniteHash is zero for executions not driven by a script, e.g. instantiate.
func (o *ScriptEngineOutput) GetUniteHash() meter.Bytes32 {
	return o.uniteHash
}

func (o *ScriptEngineOutput) GetTransfers() tx.Transfers {
	return o.transfers
}

func (o *ScriptEngineOutput) GetRegistrations() tx.Registrations {
	return o.registrations
}

func (o *ScriptEngineOutput) GetEvents() tx.Events {
	return o.events
}

func (o *ScriptEngineOutput) GetData() []byte {
	if len(o.data) == 0 {
		return nil
	}
	return o.data
}
