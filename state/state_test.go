package state_test

import (
	"bytes"
	"log/slog"
	"math/big"
	"testing"

	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreator(t *testing.T) (*state.Creator, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.NewCreator(db), db
}

func TestUncommittedChangesAreInvisible(t *testing.T) {
	creator, db := newCreator(t)
	addr := meter.BytesToAddress([]byte("alice"))

	st := creator.NewState()
	st.SetDeposit(addr, big.NewInt(42))

	// visible inside the same state
	amount, exists, err := st.GetDeposit(addr)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(42), amount.Int64())

	// but not to a fresh state or the store
	_, exists, err = creator.NewState().GetDeposit(addr)
	require.NoError(t, err)
	assert.False(t, exists)
	has, _ := db.Has(meter.DepositKey(addr).Bytes())
	assert.False(t, has)

	require.NoError(t, st.Stage().Commit())
	amount, exists, err = creator.NewState().GetDeposit(addr)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(42), amount.Int64())
}

func TestRemoveDeposit(t *testing.T) {
	creator, _ := newCreator(t)
	addr := meter.BytesToAddress([]byte("bob"))

	st := creator.NewState()
	st.SetDeposit(addr, big.NewInt(7))
	require.NoError(t, st.Stage().Commit())

	st = creator.NewState()
	st.RemoveDeposit(addr)
	_, exists, err := st.GetDeposit(addr)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, st.Stage().Commit())

	_, exists, err = creator.NewState().GetDeposit(addr)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestZeroDepositIsAnEntry(t *testing.T) {
	creator, _ := newCreator(t)
	addr := meter.BytesToAddress([]byte("carol"))

	st := creator.NewState()
	st.SetDeposit(addr, big.NewInt(0))
	require.NoError(t, st.Stage().Commit())

	amount, exists, err := creator.NewState().GetDeposit(addr)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 0, amount.Sign())
}

func TestAuctionRecords(t *testing.T) {
	creator, _ := newCreator(t)

	st := creator.NewState()
	cfg, err := st.GetAuctionConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg)
	as, err := st.GetAuctionState()
	require.NoError(t, err)
	assert.Nil(t, as)

	want := &meter.AuctionConfig{
		Admin:        meter.BytesToAddress([]byte("admin")),
		ProjectAsset: meter.AssetRef{Contract: meter.BytesToAddress([]byte("project")), CodeHash: "aa"},
		PairedAsset:  meter.AssetRef{Contract: meter.BytesToAddress([]byte("paired")), CodeHash: "bb"},
	}
	st.SetAuctionConfig(want)
	wantState := meter.NewAuctionState()
	wantState.PoolAmount = big.NewInt(1000)
	wantState.Active = true
	wantState.Round = 1
	st.SetAuctionState(wantState)
	require.NoError(t, st.Stage().Commit())

	st = creator.NewState()
	cfg, err = st.GetAuctionConfig()
	require.NoError(t, err)
	assert.Equal(t, want, cfg)
	as, err = st.GetAuctionState()
	require.NoError(t, err)
	assert.Equal(t, "1000", as.PoolAmount.String())
	assert.Equal(t, 0, as.TotalDeposits.Sign())
	assert.True(t, as.Active)
	assert.Equal(t, uint64(1), as.Round)
}

func TestSummaryListCapped(t *testing.T) {
	creator, _ := newCreator(t)

	st := creator.NewState()
	list, err := st.GetSummaryList()
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count())

	for i := 1; i <= meter.AUCTION_MAX_SUMMARIES+3; i++ {
		list.Add(&meter.RoundSummary{Round: uint64(i), PoolAmount: big.NewInt(1), TotalDeposits: big.NewInt(2)})
	}
	st.SetSummaryList(list)
	require.NoError(t, st.Stage().Commit())

	list, err = creator.NewState().GetSummaryList()
	require.NoError(t, err)
	assert.Equal(t, meter.AUCTION_MAX_SUMMARIES, list.Count())
	assert.Nil(t, list.Get(1))
	assert.Equal(t, uint64(meter.AUCTION_MAX_SUMMARIES+3), list.Last().Round)
}

func TestCorruptRecordFailsDecode(t *testing.T) {
	creator, db := newCreator(t)
	require.NoError(t, db.Put(meter.AuctionStateKey.Bytes(), []byte{0xff, 0x01}))

	_, err := creator.NewState().GetAuctionState()
	assert.Error(t, err)
}

func TestCommitLogsThroughInstalledHandler(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	creator, _ := newCreator(t)
	st := creator.NewState()
	st.SetDeposit(meter.BytesToAddress([]byte("carol")), big.NewInt(1))
	require.NoError(t, st.Stage().Commit())

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="committed stage"`)
	assert.Contains(t, out, "pkg=state")
	assert.Contains(t, out, "keys=1")
}
