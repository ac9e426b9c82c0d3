package auction

import (
	"math/big"
)

// ComputeShare returns floor(pool * deposit / total). The product is computed
// at full precision so it cannot overflow; a zero total yields ErrDivisionByZero.
func ComputeShare(pool, deposit, total *big.Int) (*big.Int, error) {
	if total == nil || total.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if pool == nil || deposit == nil {
		return big.NewInt(0), nil
	}
	share := new(big.Int).Mul(pool, deposit)
	return share.Quo(share, total), nil
}
