package auction

import (
	"github.com/meterio/meter-auction/meter"
	setypes "github.com/meterio/meter-auction/script/types"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
)

// InitMsg configures a new auction.
type InitMsg struct {
	Admin        meter.Address  `json:"admin" yaml:"admin"`
	ProjectAsset meter.AssetRef `json:"projectAsset" yaml:"projectAsset"`
	PairedAsset  meter.AssetRef `json:"pairedAsset" yaml:"pairedAsset"`
}

// Instantiate stores the config and the genesis state, then registers the
// auction as receiver with both asset gateways. The caller of env is the
// initializer.
func (a *Auction) Instantiate(env *setypes.ScriptEnv, msg *InitMsg) (err error) {
	defer func() { observe(ActionInstantiate, err) }()

	if msg == nil {
		return errors.Wrap(ErrInvalidPayload, "missing init message")
	}
	st := env.GetState()
	existing, err := st.GetAuctionConfig()
	if err != nil {
		return errors.Wrap(err, "load auction config")
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}

	cfg := &meter.AuctionConfig{
		Admin:        msg.Admin,
		ProjectAsset: msg.ProjectAsset,
		PairedAsset:  msg.PairedAsset,
	}
	st.SetAuctionConfig(cfg)
	st.SetAuctionState(meter.NewAuctionState())
	if err := st.Err(); err != nil {
		return err
	}

	env.AddRegistration(cfg.ProjectAsset)
	env.AddRegistration(cfg.PairedAsset)
	env.AddEvent(
		tx.Attribute{Key: AttrAction, Value: ActionInstantiate},
		tx.Attribute{Key: AttrFrom, Value: env.GetCaller().String()},
	)
	a.logger.Info("auction instantiated", "config", cfg.ToString())
	return nil
}
