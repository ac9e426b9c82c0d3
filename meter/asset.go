// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import "fmt"

// AssetRef points at an asset gateway: the contract that moves a fungible
// asset and notifies receivers, plus the code hash used to route calls to it.
type AssetRef struct {
	Contract Address `json:"contract" yaml:"contract"`
	CodeHash string  `json:"codeHash" yaml:"codeHash"`
}

func (r AssetRef) String() string {
	return fmt.Sprintf("AssetRef(%v, hash=%v)", r.Contract, r.CodeHash)
}
