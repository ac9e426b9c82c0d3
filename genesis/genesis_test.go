package genesis_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/meterio/meter-auction/genesis"
	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
name: sample
contract:
  address: "0x0000000000000000000000000000000000000a01"
  codeHash: auction-hash
admin: "0x0000000000000000000000000000000000000001"
projectAsset:
  contract: "0x0000000000000000000000000000000000000b01"
  codeHash: project-hash
pairedAsset:
  contract: 0000000000000000000000000000000000000b02
  codeHash: paired-hash
launchTime: 1000
`

func TestParse(t *testing.T) {
	g, err := genesis.Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "sample", g.Name)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", g.Admin.String())
	assert.Equal(t, "paired-hash", g.PairedAsset.CodeHash)
	assert.Equal(t, "auction-hash", g.ContractContext().CodeHash)

	out, err := g.Marshal()
	require.NoError(t, err)
	again, err := genesis.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestParseRejects(t *testing.T) {
	_, err := genesis.Parse([]byte(sample + "unknown: 1\n"))
	assert.Error(t, err)

	_, err = genesis.Parse([]byte("name: x\n"))
	assert.Error(t, err)

	g := genesis.NewDevnet()
	g.PairedAsset = g.ProjectAsset
	assert.Error(t, g.Validate())
}

func TestLoadAndBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	g, err := genesis.Load(path)
	require.NoError(t, err)

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	se := script.NewScriptEngine(state.NewCreator(db), g.ContractContext())

	out, err := g.Build(se)
	require.NoError(t, err)
	assert.Len(t, out.GetRegistrations(), 2)

	_, err = g.Build(se)
	assert.ErrorIs(t, err, auction.ErrAlreadyInitialized)
}

func TestDevnet(t *testing.T) {
	g := genesis.NewDevnet()
	require.NoError(t, g.Validate())
	assert.Equal(t, genesis.DevAccounts()[0].Address, g.Admin)
	assert.Len(t, genesis.DevAccounts(), 5)
}

func TestDevAccountsConcurrent(t *testing.T) {
	want := genesis.DevAccounts()

	var wg sync.WaitGroup
	got := make([][]genesis.DevAccount, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = genesis.DevAccounts()
		}(i)
	}
	wg.Wait()
	for _, accs := range got {
		assert.Equal(t, want, accs)
	}

	// callers get their own copy
	want[0].Name = "mallory"
	assert.Equal(t, "admin", genesis.DevAccounts()[0].Name)
}
