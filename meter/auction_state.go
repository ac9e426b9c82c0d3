// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"fmt"
	"math/big"
)

// AuctionConfig is written once when the auction is instantiated and never changes.
type AuctionConfig struct {
	Admin        Address
	ProjectAsset AssetRef
	PairedAsset  AssetRef
}

func (c *AuctionConfig) ToString() string {
	return fmt.Sprintf("AuctionConfig(admin=%v, project=%v, paired=%v)", c.Admin, c.ProjectAsset, c.PairedAsset)
}

// AuctionState is the mutable singleton of the auction.
type AuctionState struct {
	PoolAmount    *big.Int // project asset made available for distribution
	TotalDeposits *big.Int // paired asset received
	Active        bool
	Round         uint64 // number of windows opened so far
}

// NewAuctionState returns the genesis state: nothing pooled, nothing deposited, inactive.
func NewAuctionState() *AuctionState {
	return &AuctionState{
		PoolAmount:    big.NewInt(0),
		TotalDeposits: big.NewInt(0),
		Active:        false,
		Round:         0,
	}
}

func (s *AuctionState) IsActive() bool {
	return s.Active
}

// Copy returns a deep copy so callers may mutate amounts freely.
func (s *AuctionState) Copy() *AuctionState {
	return &AuctionState{
		PoolAmount:    new(big.Int).Set(amountOrZero(s.PoolAmount)),
		TotalDeposits: new(big.Int).Set(amountOrZero(s.TotalDeposits)),
		Active:        s.Active,
		Round:         s.Round,
	}
}

func (s *AuctionState) ToString() string {
	return fmt.Sprintf("AuctionState(pool=%v, totalDeposits=%v, active=%v, round=%v)",
		amountOrZero(s.PoolAmount).String(), amountOrZero(s.TotalDeposits).String(), s.Active, s.Round)
}

func (s *AuctionState) String() string {
	return s.ToString()
}
