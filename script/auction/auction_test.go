package auction_test

import (
	"math/big"
	"testing"

	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/auction"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/xenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = meter.BytesToAddress([]byte("admin"))
	alice    = meter.BytesToAddress([]byte("alice"))
	bob      = meter.BytesToAddress([]byte("bob"))
	stranger = meter.BytesToAddress([]byte("stranger"))

	project = meter.AssetRef{Contract: meter.BytesToAddress([]byte("project-token")), CodeHash: "project-hash"}
	paired  = meter.AssetRef{Contract: meter.BytesToAddress([]byte("paired-token")), CodeHash: "paired-hash"}
	self    = &xenv.ContractContext{Address: meter.BytesToAddress([]byte("auction")), CodeHash: "auction-hash"}
)

type testAuction struct {
	t  *testing.T
	se *script.ScriptEngine
}

func newTestAuction(t *testing.T) *testAuction {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	se := script.NewScriptEngine(state.NewCreator(db), self)
	_, err = se.Instantiate(&xenv.TransactionContext{Origin: admin}, &auction.InitMsg{
		Admin:        admin,
		ProjectAsset: project,
		PairedAsset:  paired,
	})
	require.NoError(t, err)
	return &testAuction{t: t, se: se}
}

func (ta *testAuction) exec(caller meter.Address, body *auction.AuctionBody) (*setypes.ScriptEngineOutput, error) {
	data, err := script.EncodeScriptData(body)
	require.NoError(ta.t, err)
	return ta.se.HandleScriptData(&xenv.TransactionContext{Origin: caller, Time: 1000}, data)
}

func (ta *testAuction) begin(gateway, initiator meter.Address, amount int64) (*setypes.ScriptEngineOutput, error) {
	return ta.exec(gateway, auction.NewReceiveBody(initiator, initiator, big.NewInt(amount), meter.OP_BEGIN, ""))
}

func (ta *testAuction) deposit(gateway, initiator meter.Address, amount int64) (*setypes.ScriptEngineOutput, error) {
	return ta.exec(gateway, auction.NewReceiveBody(initiator, initiator, big.NewInt(amount), meter.OP_DEPOSIT, "memo"))
}

func (ta *testAuction) end(caller meter.Address) (*setypes.ScriptEngineOutput, error) {
	return ta.exec(caller, auction.NewEndAuctionBody())
}

func (ta *testAuction) claim(caller meter.Address) (*setypes.ScriptEngineOutput, error) {
	return ta.exec(caller, auction.NewClaimBody())
}

func (ta *testAuction) state() *meter.AuctionState {
	var resp *auction.StateResponse
	require.NoError(ta.t, ta.se.Query(func(st *state.State) (err error) {
		resp, err = auction.GetState(st)
		return
	}))
	return resp.State
}

func (ta *testAuction) depositOf(addr meter.Address) *big.Int {
	var amount *big.Int
	require.NoError(ta.t, ta.se.Query(func(st *state.State) (err error) {
		amount, err = auction.GetDeposit(st, addr)
		return
	}))
	return amount
}

func mustSucceed(t *testing.T) func(*setypes.ScriptEngineOutput, error) *setypes.ScriptEngineOutput {
	return func(out *setypes.ScriptEngineOutput, err error) *setypes.ScriptEngineOutput {
		require.NoError(t, err)
		return out
	}
}

func action(t *testing.T, out *setypes.ScriptEngineOutput) string {
	require.Len(t, out.GetEvents(), 1)
	v, ok := out.GetEvents()[0].Get(auction.AttrAction)
	require.True(t, ok)
	return v
}

func TestInstantiate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	se := script.NewScriptEngine(state.NewCreator(db), self)

	msg := &auction.InitMsg{Admin: admin, ProjectAsset: project, PairedAsset: paired}
	out, err := se.Instantiate(&xenv.TransactionContext{Origin: stranger}, msg)
	require.NoError(t, err)

	regs := out.GetRegistrations()
	require.Len(t, regs, 2)
	assert.Equal(t, project, regs[0].Asset)
	assert.Equal(t, paired, regs[1].Asset)
	for _, r := range regs {
		assert.Equal(t, self.Address, r.Receiver)
		assert.Equal(t, self.CodeHash, r.ReceiverCodeHash)
	}
	assert.Equal(t, auction.ActionInstantiate, action(t, out))
	from, _ := out.GetEvents()[0].Get(auction.AttrFrom)
	assert.Equal(t, stranger.String(), from)

	var resp *auction.StateResponse
	require.NoError(t, se.Query(func(st *state.State) (err error) {
		resp, err = auction.GetState(st)
		return
	}))
	assert.Equal(t, admin, resp.Config.Admin)
	assert.False(t, resp.State.Active)
	assert.Equal(t, 0, resp.State.PoolAmount.Sign())
	assert.Equal(t, 0, resp.State.TotalDeposits.Sign())

	_, err = se.Instantiate(&xenv.TransactionContext{Origin: admin}, msg)
	assert.ErrorIs(t, err, auction.ErrAlreadyInitialized)
}

func TestNotInitialized(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	se := script.NewScriptEngine(state.NewCreator(db), self)

	data, err := script.EncodeScriptData(auction.NewClaimBody())
	require.NoError(t, err)
	_, err = se.HandleScriptData(&xenv.TransactionContext{Origin: alice}, data)
	assert.ErrorIs(t, err, auction.ErrNotInitialized)
}

func TestFullRound(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	out := ok(ta.begin(project.Contract, admin, 1000))
	assert.Equal(t, auction.ActionBeginAuction, action(t, out))
	assert.Empty(t, out.GetTransfers())

	out = ok(ta.deposit(paired.Contract, alice, 30))
	assert.Equal(t, auction.ActionDeposit, action(t, out))
	ok(ta.deposit(paired.Contract, bob, 70))
	assert.Equal(t, int64(30), ta.depositOf(alice).Int64())
	assert.Equal(t, int64(100), ta.state().TotalDeposits.Int64())

	out = ok(ta.end(admin))
	assert.Equal(t, auction.ActionEndAuction, action(t, out))
	require.Len(t, out.GetTransfers(), 1)
	tr := out.GetTransfers()[0]
	assert.Equal(t, paired, tr.Asset)
	assert.Equal(t, admin, tr.Recipient)
	assert.Equal(t, self.Address, tr.Sender)
	assert.Equal(t, int64(100), tr.Amount.Int64())

	out = ok(ta.claim(alice))
	assert.Equal(t, auction.ActionClaim, action(t, out))
	require.Len(t, out.GetTransfers(), 1)
	assert.Equal(t, project, out.GetTransfers()[0].Asset)
	assert.Equal(t, alice, out.GetTransfers()[0].Recipient)
	assert.Equal(t, int64(300), out.GetTransfers()[0].Amount.Int64())

	out = ok(ta.claim(bob))
	assert.Equal(t, int64(700), out.GetTransfers()[0].Amount.Int64())

	// amounts are not reset by claims
	st := ta.state()
	assert.Equal(t, int64(1000), st.PoolAmount.Int64())
	assert.Equal(t, int64(100), st.TotalDeposits.Int64())
	assert.False(t, st.Active)
}

func TestScenario1000(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	ok(ta.begin(project.Contract, admin, 1000))
	ok(ta.deposit(paired.Contract, alice, 300))
	ok(ta.deposit(paired.Contract, bob, 700))

	out := ok(ta.end(admin))
	require.Len(t, out.GetTransfers(), 1)
	assert.Equal(t, admin, out.GetTransfers()[0].Recipient)
	assert.Equal(t, int64(1000), out.GetTransfers()[0].Amount.Int64())

	out = ok(ta.claim(alice))
	require.Len(t, out.GetTransfers(), 1)
	assert.Equal(t, alice, out.GetTransfers()[0].Recipient)
	assert.Equal(t, int64(300), out.GetTransfers()[0].Amount.Int64())

	out = ok(ta.claim(bob))
	require.Len(t, out.GetTransfers(), 1)
	assert.Equal(t, bob, out.GetTransfers()[0].Recipient)
	assert.Equal(t, int64(700), out.GetTransfers()[0].Amount.Int64())

	_, err := ta.claim(alice)
	assert.ErrorIs(t, err, auction.ErrNoDeposit)
}

func TestLedgerSumsToTotal(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	carol := meter.BytesToAddress([]byte("carol"))
	participants := []meter.Address{alice, bob, carol}
	ok(ta.begin(project.Contract, admin, 999))

	amounts := []int64{5, 17, 1, 40, 3, 3, 250, 9, 11, 2}
	for i, amount := range amounts {
		ok(ta.deposit(paired.Contract, participants[i%len(participants)], amount))

		sum := new(big.Int)
		for _, p := range participants {
			sum.Add(sum, ta.depositOf(p))
		}
		assert.Equal(t, 0, sum.Cmp(ta.state().TotalDeposits), "after deposit %d", i)
	}

	// claimed shares never exceed the pool
	ok(ta.end(admin))
	claimed := new(big.Int)
	for _, p := range participants {
		out := ok(ta.claim(p))
		claimed.Add(claimed, out.GetTransfers()[0].Amount)
	}
	assert.True(t, claimed.Cmp(big.NewInt(999)) <= 0)
}

func TestRepeatedDepositsAccumulate(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	ok(ta.begin(project.Contract, admin, 10))
	ok(ta.deposit(paired.Contract, alice, 5))
	ok(ta.deposit(paired.Contract, alice, 6))
	assert.Equal(t, int64(11), ta.depositOf(alice).Int64())
	assert.Equal(t, int64(11), ta.state().TotalDeposits.Int64())
	assert.Equal(t, 0, ta.depositOf(bob).Sign())
}

func TestClaimExactlyOnce(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	ok(ta.begin(project.Contract, admin, 1000))
	ok(ta.deposit(paired.Contract, alice, 10))
	ok(ta.end(admin))
	ok(ta.claim(alice))

	_, err := ta.claim(alice)
	assert.ErrorIs(t, err, auction.ErrNoDeposit)
	_, err = ta.claim(bob)
	assert.ErrorIs(t, err, auction.ErrNoDeposit)
	assert.Equal(t, 0, ta.depositOf(alice).Sign())
}

func TestSharesRoundDown(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	ok(ta.begin(project.Contract, admin, 100))
	ok(ta.deposit(paired.Contract, alice, 1))
	ok(ta.deposit(paired.Contract, bob, 2))
	ok(ta.end(admin))

	a := ok(ta.claim(alice)).GetTransfers()[0].Amount
	b := ok(ta.claim(bob)).GetTransfers()[0].Amount
	assert.Equal(t, int64(33), a.Int64())
	assert.Equal(t, int64(66), b.Int64())
	assert.LessOrEqual(t, new(big.Int).Add(a, b).Int64(), int64(100))
}

func TestLifecycleGating(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	_, err := ta.deposit(paired.Contract, alice, 5)
	assert.ErrorIs(t, err, auction.ErrAuctionNotActive)
	_, err = ta.end(admin)
	assert.ErrorIs(t, err, auction.ErrAuctionNotActive)

	ok(ta.begin(project.Contract, admin, 100))
	_, err = ta.begin(project.Contract, admin, 100)
	assert.ErrorIs(t, err, auction.ErrAlreadyActive)

	ok(ta.deposit(paired.Contract, alice, 5))
	_, err = ta.claim(alice)
	assert.ErrorIs(t, err, auction.ErrAuctionStillActive)

	ok(ta.end(admin))
	_, err = ta.end(admin)
	assert.ErrorIs(t, err, auction.ErrAuctionNotActive)
	_, err = ta.deposit(paired.Contract, bob, 5)
	assert.ErrorIs(t, err, auction.ErrAuctionNotActive)
}

func TestAccessControl(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	// gateway is checked before the initiator
	_, err := ta.begin(paired.Contract, stranger, 100)
	assert.ErrorIs(t, err, auction.ErrInvalidAssetSource)
	_, err = ta.begin(admin, admin, 100)
	assert.ErrorIs(t, err, auction.ErrInvalidAssetSource)
	_, err = ta.begin(project.Contract, stranger, 100)
	assert.ErrorIs(t, err, auction.ErrUnauthorized)

	ok(ta.begin(project.Contract, admin, 100))

	_, err = ta.deposit(project.Contract, alice, 5)
	assert.ErrorIs(t, err, auction.ErrInvalidAssetSource)
	_, err = ta.deposit(alice, alice, 5)
	assert.ErrorIs(t, err, auction.ErrInvalidAssetSource)

	_, err = ta.end(stranger)
	assert.ErrorIs(t, err, auction.ErrUnauthorized)
	assert.True(t, ta.state().Active)
}

func TestClaimWithZeroTotal(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	ok(ta.begin(project.Contract, admin, 100))
	ok(ta.deposit(paired.Contract, alice, 0))
	ok(ta.end(admin))

	_, err := ta.claim(alice)
	assert.ErrorIs(t, err, auction.ErrDivisionByZero)
}

func TestFailedOperationChangesNothing(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	ok(ta.begin(project.Contract, admin, 100))
	ok(ta.exec(paired.Contract, auction.NewReceiveBody(alice, alice, meter.MaxUint128, meter.OP_DEPOSIT, "")))
	before := ta.state().ToString()

	out, err := ta.deposit(paired.Contract, bob, 1)
	assert.ErrorIs(t, err, auction.ErrOverflow)
	assert.Nil(t, out)

	assert.Equal(t, before, ta.state().ToString())
	assert.Equal(t, 0, ta.depositOf(bob).Sign())
	assert.Equal(t, 0, ta.depositOf(alice).Cmp(meter.MaxUint128))
}

func TestAmountAboveUint128Rejected(t *testing.T) {
	ta := newTestAuction(t)
	mustSucceed(t)(ta.begin(project.Contract, admin, 100))

	tooBig := new(big.Int).Add(meter.MaxUint128, big.NewInt(1))
	_, err := ta.exec(paired.Contract, auction.NewReceiveBody(alice, alice, tooBig, meter.OP_DEPOSIT, ""))
	assert.ErrorIs(t, err, auction.ErrInvalidPayload)
	assert.Equal(t, 0, ta.state().TotalDeposits.Sign())
}

func TestInvalidPayload(t *testing.T) {
	ta := newTestAuction(t)

	_, err := ta.se.HandleScriptData(&xenv.TransactionContext{Origin: alice}, []byte{0x01, 0x02})
	assert.ErrorIs(t, err, auction.ErrInvalidPayload)

	_, err = ta.exec(alice, &auction.AuctionBody{Opcode: 99, Amount: big.NewInt(0)})
	assert.ErrorIs(t, err, auction.ErrInvalidPayload)

	body := auction.NewReceiveBody(admin, admin, big.NewInt(1), meter.OP_BEGIN, "")
	body.Msg = []byte{0xff, 0x00}
	_, err = ta.exec(project.Contract, body)
	assert.ErrorIs(t, err, auction.ErrInvalidPayload)

	body = auction.NewReceiveBody(admin, admin, big.NewInt(1), 42, "")
	_, err = ta.exec(project.Contract, body)
	assert.ErrorIs(t, err, auction.ErrInvalidPayload)
	assert.False(t, ta.state().Active)
}

func TestRoundsAccumulate(t *testing.T) {
	ta := newTestAuction(t)
	ok := mustSucceed(t)

	ok(ta.begin(project.Contract, admin, 1000))
	ok(ta.deposit(paired.Contract, alice, 100))
	ok(ta.end(admin))

	ok(ta.begin(project.Contract, admin, 500))
	ok(ta.deposit(paired.Contract, bob, 50))
	out := ok(ta.end(admin))
	// the second payout covers the deposits of both rounds
	assert.Equal(t, int64(150), out.GetTransfers()[0].Amount.Int64())

	st := ta.state()
	assert.Equal(t, uint64(2), st.Round)
	assert.Equal(t, int64(1500), st.PoolAmount.Int64())
	assert.Equal(t, int64(150), st.TotalDeposits.Int64())

	var summaries []*meter.RoundSummary
	require.NoError(t, ta.se.Query(func(s *state.State) (err error) {
		summaries, err = auction.GetSummaries(s)
		return
	}))
	require.Len(t, summaries, 2)
	assert.Equal(t, uint64(1), summaries[0].Round)
	assert.Equal(t, int64(1000), summaries[0].PoolAmount.Int64())
	assert.Equal(t, uint64(2), summaries[1].Round)
	assert.Equal(t, uint64(1000), summaries[1].EndTime)
}
