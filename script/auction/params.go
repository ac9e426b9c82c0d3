package auction

// Event attribute keys and actions.
const (
	AttrAction = "action"
	AttrFrom   = "from"
	AttrAmount = "amount"

	ActionInstantiate  = "instantiate"
	ActionBeginAuction = "begin_auction"
	ActionDeposit      = "deposit"
	ActionEndAuction   = "end_auction"
	ActionClaim        = "claim"
)
