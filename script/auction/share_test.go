package auction

import (
	"math/big"
	"testing"

	"github.com/meterio/meter-auction/meter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeShare(t *testing.T) {
	tests := []struct {
		pool, deposit, total int64
		want                 int64
	}{
		{1000, 300, 1000, 300},
		{1000, 700, 1000, 700},
		{100, 1, 3, 33},
		{100, 2, 3, 66},
		{0, 5, 10, 0},
		{7, 0, 10, 0},
	}
	for _, tt := range tests {
		got, err := ComputeShare(big.NewInt(tt.pool), big.NewInt(tt.deposit), big.NewInt(tt.total))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Int64(), "pool=%d deposit=%d total=%d", tt.pool, tt.deposit, tt.total)
	}
}

func TestComputeShareZeroTotal(t *testing.T) {
	_, err := ComputeShare(big.NewInt(10), big.NewInt(1), big.NewInt(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestComputeShareNoOverflow(t *testing.T) {
	share, err := ComputeShare(meter.MaxUint128, meter.MaxUint128, meter.MaxUint128)
	require.NoError(t, err)
	assert.Equal(t, 0, share.Cmp(meter.MaxUint128))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "ok", ErrorCode(nil))
	assert.Equal(t, "no_deposit", ErrorCode(ErrNoDeposit))
	assert.True(t, Rejected(ErrOverflow))
	assert.False(t, Rejected(assert.AnError))
	assert.Equal(t, "internal", ErrorCode(assert.AnError))
}
