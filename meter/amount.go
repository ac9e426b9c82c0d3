// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// MaxUint128 is the upper bound of every amount handled by the auction.
var MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

var errAmountOutOfRange = errors.New("amount out of uint128 range")

// ValidAmount reports whether v is a non-nil value within [0, MaxUint128].
func ValidAmount(v *big.Int) bool {
	return v != nil && v.Sign() >= 0 && v.Cmp(MaxUint128) <= 0
}

// ParseAmount parses a base-10 unsigned amount.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	if !ValidAmount(v) {
		return nil, errors.Wrapf(errAmountOutOfRange, "parse amount %q", s)
	}
	return v, nil
}

// AddAmount returns a+b as a fresh value, or false when the sum leaves the uint128 range.
func AddAmount(a, b *big.Int) (*big.Int, bool) {
	sum := new(big.Int).Add(amountOrZero(a), amountOrZero(b))
	if !ValidAmount(sum) {
		return nil, false
	}
	return sum, true
}

func amountOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
