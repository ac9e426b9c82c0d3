package node

import (
	"context"
	"math/big"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/auction"
)

// ExecuteBody encodes ab and executes it on behalf of caller.
func (n *Node) ExecuteBody(ctx context.Context, caller meter.Address, ab *auction.AuctionBody) (*Receipt, error) {
	data, err := script.EncodeScriptData(ab)
	if err != nil {
		return nil, err
	}
	return n.Execute(ctx, caller, data)
}

func (n *Node) Claim(ctx context.Context, caller meter.Address) (*Receipt, error) {
	return n.ExecuteBody(ctx, caller, auction.NewClaimBody())
}

func (n *Node) EndAuction(ctx context.Context, caller meter.Address) (*Receipt, error) {
	return n.ExecuteBody(ctx, caller, auction.NewEndAuctionBody())
}

// Receive delivers a notification from the asset gateway at gateway.
func (n *Node) Receive(ctx context.Context, gateway, sender, from meter.Address, amount *big.Int, op uint32, memo string) (*Receipt, error) {
	return n.ExecuteBody(ctx, gateway, auction.NewReceiveBody(sender, from, amount, op, memo))
}
