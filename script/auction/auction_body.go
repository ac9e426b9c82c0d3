// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/meter-auction/meter"
	"github.com/pkg/errors"
)

// AuctionBody is the execute message of the auction module. Only OP_RECEIVE
// uses the remaining fields: it is the notification an asset gateway sends
// when value is pushed to the auction.
type AuctionBody struct {
	Opcode  uint32
	Version uint32
	Sender  meter.Address // account that called the gateway
	From    meter.Address // owner of the transferred value, the logical initiator
	Amount  *big.Int
	Msg     []byte // RLP encoded ReceiveBody, opaque to the gateway
	Memo    string
}

// ReceiveBody selects what an incoming transfer is for.
type ReceiveBody struct {
	Opcode uint32
}

func NewClaimBody() *AuctionBody {
	return &AuctionBody{Opcode: meter.OP_CLAIM, Amount: big.NewInt(0)}
}

func NewEndAuctionBody() *AuctionBody {
	return &AuctionBody{Opcode: meter.OP_END, Amount: big.NewInt(0)}
}

// NewReceiveBody builds the notification of a gateway transfer of amount from
// the initiator, whose payload selects the receive operation op.
func NewReceiveBody(sender, from meter.Address, amount *big.Int, op uint32, memo string) *AuctionBody {
	return &AuctionBody{
		Opcode: meter.OP_RECEIVE,
		Sender: sender,
		From:   from,
		Amount: amount,
		Msg:    ReceiveEncodeBytes(&ReceiveBody{Opcode: op}),
		Memo:   memo,
	}
}

func (ab *AuctionBody) ToString() string {
	return fmt.Sprintf("AuctionBody: Opcode=%v, Version=%v, Sender=%v, From=%v, Amount=%v, Msg=%x, Memo=%v",
		ab.Opcode, ab.Version, ab.Sender, ab.From, ab.Amount, ab.Msg, ab.Memo)
}

func (ab *AuctionBody) String() string {
	return ab.ToString()
}

func (ab *AuctionBody) GetOpName(op uint32) string {
	return meter.GetOpName(op)
}

func AuctionEncodeBytes(ab *AuctionBody) []byte {
	auctionBytes, err := rlp.EncodeToBytes(ab)
	if err != nil {
		slog.Default().With("pkg", "auction").Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return auctionBytes
}

func AuctionDecodeFromBytes(bytes []byte) (*AuctionBody, error) {
	ab := AuctionBody{}
	if err := rlp.DecodeBytes(bytes, &ab); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}
	return &ab, nil
}

func ReceiveEncodeBytes(rb *ReceiveBody) []byte {
	receiveBytes, err := rlp.EncodeToBytes(rb)
	if err != nil {
		slog.Default().With("pkg", "auction").Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return receiveBytes
}

func ReceiveDecodeFromBytes(bytes []byte) (*ReceiveBody, error) {
	rb := ReceiveBody{}
	if err := rlp.DecodeBytes(bytes, &rb); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}
	return &rb, nil
}

// UniteHash identifies the body, e.g. for logging or deduplication by the host.
func (ab *AuctionBody) UniteHash() (hash meter.Bytes32) {
	hw := meter.NewBlake2b()
	err := rlp.Encode(hw, []interface{}{
		ab.Opcode,
		ab.Version,
		ab.Sender,
		ab.From,
		ab.Amount,
		ab.Msg,
		//ab.Memo,
	})
	if err != nil {
		return
	}
	hw.Sum(hash[:0])
	return
}
