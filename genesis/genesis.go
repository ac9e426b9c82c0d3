// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"log/slog"
	"os"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/auction"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Contract is the identity of the auction itself, handed to the asset
// gateways when registering as receiver.
type Contract struct {
	Address  meter.Address `yaml:"address"`
	CodeHash string        `yaml:"codeHash"`
}

// Genesis describes how an auction is instantiated.
type Genesis struct {
	Name         string         `yaml:"name"`
	Contract     Contract       `yaml:"contract"`
	Initializer  meter.Address  `yaml:"initializer"` // defaults to admin
	Admin        meter.Address  `yaml:"admin"`
	ProjectAsset meter.AssetRef `yaml:"projectAsset"`
	PairedAsset  meter.AssetRef `yaml:"pairedAsset"`
	LaunchTime   uint64         `yaml:"launchTime"`
}

// Load reads a YAML genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

// Parse decodes and validates a YAML genesis. Unknown fields are rejected.
func Parse(data []byte) (*Genesis, error) {
	var g Genesis
	if err := yaml.UnmarshalStrict(data, &g); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Marshal encodes g as YAML.
func (g *Genesis) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

func (g *Genesis) Validate() error {
	switch {
	case g.Contract.Address.IsZero():
		return errors.New("genesis: contract address is required")
	case g.Admin.IsZero():
		return errors.New("genesis: admin is required")
	case g.ProjectAsset.Contract.IsZero():
		return errors.New("genesis: project asset contract is required")
	case g.PairedAsset.Contract.IsZero():
		return errors.New("genesis: paired asset contract is required")
	case g.ProjectAsset.Contract == g.PairedAsset.Contract:
		// a notification could not tell a pool top-up from a deposit
		return errors.New("genesis: project and paired asset must differ")
	}
	return nil
}

func (g *Genesis) ContractContext() *xenv.ContractContext {
	return &xenv.ContractContext{Address: g.Contract.Address, CodeHash: g.Contract.CodeHash}
}

func (g *Genesis) InitMsg() *auction.InitMsg {
	return &auction.InitMsg{
		Admin:        g.Admin,
		ProjectAsset: g.ProjectAsset,
		PairedAsset:  g.PairedAsset,
	}
}

// Build instantiates the auction through se.
func (g *Genesis) Build(se *script.ScriptEngine) (*setypes.ScriptEngineOutput, error) {
	initializer := g.Initializer
	if initializer.IsZero() {
		initializer = g.Admin
	}
	txCtx := &xenv.TransactionContext{
		ID:     meter.Blake2b([]byte("genesis"), []byte(g.Name)),
		Origin: initializer,
		Time:   g.LaunchTime,
	}
	out, err := se.Instantiate(txCtx, g.InitMsg())
	if err != nil {
		return nil, err
	}
	slog.Default().With("pkg", "genesis").Info("genesis built", "name", g.Name, "admin", g.Admin, "contract", g.Contract.Address)
	return out, nil
}
