// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/auction"
)

var (
	ScriptPattern = [4]byte{0xde, 0xad, 0xbe, 0xef} //pattern: deadbeef
	ScriptPrefix  = [4]byte{0xff, 0xff, 0xff, 0xff}
)

type ScriptData struct {
	Header  ScriptHeader
	Payload []byte
}

func (s *ScriptData) UniteHash() (hash meter.Bytes32) {
	hw := meter.NewBlake2b()

	var bodyHash meter.Bytes32
	payloadHash := meter.Blake2b(s.Payload)
	switch s.Header.ModID {
	case AUCTION_MODULE_ID:
		ab, err := auction.AuctionDecodeFromBytes(s.Payload)
		if err != nil {
			slog.Default().With("pkg", "se").Debug("could not decode auction, use payload directly for unite hash")
			bodyHash = payloadHash
		} else {
			bodyHash = ab.UniteHash()
		}
	default:
		bodyHash = payloadHash
	}
	err := rlp.Encode(hw, []interface{}{
		s.Header.Version,
		s.Header.ModID,
		bodyHash,
	})
	if err != nil {
		return
	}

	hw.Sum(hash[:0])
	return
}

type ScriptHeader struct {
	Version uint32
	ModID   uint32
}

func (sh *ScriptHeader) GetVersion() uint32 { return sh.Version }
func (sh *ScriptHeader) GetModID() uint32   { return sh.ModID }

func (sh *ScriptHeader) ToString() string {
	return fmt.Sprintf("ScriptHeader:::  Version: %v, ModID: %v", sh.Version, sh.ModID)
}
