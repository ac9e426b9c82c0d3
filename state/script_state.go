// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/meter-auction/meter"
)

// GetAuctionConfig returns the stored config, or nil before instantiation.
func (s *State) GetAuctionConfig() (result *meter.AuctionConfig, err error) {
	err = s.DecodeStorage(meter.AuctionConfigKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		var cfg meter.AuctionConfig
		if err := rlp.DecodeBytes(raw, &cfg); err != nil {
			return err
		}
		result = &cfg
		return nil
	})
	return
}

func (s *State) SetAuctionConfig(cfg *meter.AuctionConfig) {
	s.EncodeStorage(meter.AuctionConfigKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(cfg)
	})
}

// GetAuctionState returns the stored state, or nil before instantiation.
func (s *State) GetAuctionState() (result *meter.AuctionState, err error) {
	err = s.DecodeStorage(meter.AuctionStateKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		var st meter.AuctionState
		if err := rlp.DecodeBytes(raw, &st); err != nil {
			return err
		}
		result = &st
		return nil
	})
	return
}

func (s *State) SetAuctionState(st *meter.AuctionState) {
	s.EncodeStorage(meter.AuctionStateKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(st)
	})
}

// GetDeposit returns the outstanding ledger entry of addr and whether it exists.
func (s *State) GetDeposit(addr meter.Address) (amount *big.Int, exists bool, err error) {
	err = s.DecodeStorage(meter.DepositKey(addr), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		v := new(big.Int)
		if err := rlp.DecodeBytes(raw, v); err != nil {
			return err
		}
		amount, exists = v, true
		return nil
	})
	return
}

func (s *State) SetDeposit(addr meter.Address, amount *big.Int) {
	s.EncodeStorage(meter.DepositKey(addr), func() ([]byte, error) {
		return rlp.EncodeToBytes(amount)
	})
}

func (s *State) RemoveDeposit(addr meter.Address) {
	s.SetStorage(meter.DepositKey(addr), nil)
}

// GetSummaryList returns the closed rounds, empty when none is stored.
func (s *State) GetSummaryList() (result *meter.RoundSummaryList, err error) {
	err = s.DecodeStorage(meter.SummaryListKey, func(raw []byte) error {
		summaries := make([]*meter.RoundSummary, 0)
		if len(raw) > 0 {
			if err := rlp.DecodeBytes(raw, &summaries); err != nil {
				return err
			}
		}
		result = meter.NewRoundSummaryList(summaries)
		return nil
	})
	return
}

func (s *State) SetSummaryList(list *meter.RoundSummaryList) {
	s.EncodeStorage(meter.SummaryListKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(list.Summaries)
	})
}
