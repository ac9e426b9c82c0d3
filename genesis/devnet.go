// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/meterio/meter-auction/meter"
)

// DevAccount account for development.
type DevAccount struct {
	Name    string
	Address meter.Address
}

var devAccounts = func() []DevAccount {
	var accs []DevAccount
	for _, name := range []string{"admin", "alice", "bob", "carol", "dave"} {
		h := meter.Blake2b([]byte("devnet-account"), []byte(name))
		accs = append(accs, DevAccount{name, meter.BytesToAddress(h[12:])})
	}
	return accs
}()

// DevAccounts returns fixed accounts for the devnet: the admin first, then participants.
// The slice is a copy and may be modified by the caller.
func DevAccounts() []DevAccount {
	return append([]DevAccount(nil), devAccounts...)
}

func devAddress(name string) meter.Address {
	h := meter.Blake2b([]byte("devnet-contract"), []byte(name))
	return meter.BytesToAddress(h[12:])
}

// NewDevnet create genesis for solo mode.
func NewDevnet() *Genesis {
	launchTime := uint64(1526400000) // 'Wed May 16 2018 00:00:00 GMT+0800 (CST)'

	return &Genesis{
		Name:         "devnet",
		Contract:     Contract{Address: devAddress("auction"), CodeHash: "devnet-auction"},
		Admin:        DevAccounts()[0].Address,
		ProjectAsset: meter.AssetRef{Contract: devAddress("project"), CodeHash: "devnet-project"},
		PairedAsset:  meter.AssetRef{Contract: devAddress("paired"), CodeHash: "devnet-paired"},
		LaunchTime:   launchTime,
	}
}
