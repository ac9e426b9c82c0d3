package meter

const (
	OP_CLAIM   = uint32(1)
	OP_END     = uint32(2)
	OP_RECEIVE = uint32(3)

	// receive sub operations, selected by the payload of a gateway notification
	OP_DEPOSIT = uint32(1)
	OP_BEGIN   = uint32(2)
)

const (
	AUCTION_MAX_SUMMARIES = 32
)

// Storage keys of the auction records.
var (
	AuctionConfigKey = Blake2b([]byte("auction-config-key"))
	AuctionStateKey  = Blake2b([]byte("auction-state-key"))
	SummaryListKey   = Blake2b([]byte("summary-list-key"))
	depositKeyPrefix = []byte("deposit-amounts")
)

// DepositKey is the storage key of the ledger entry of addr.
func DepositKey(addr Address) Bytes32 {
	return Blake2b(depositKeyPrefix, addr.Bytes())
}

func GetOpName(op uint32) string {
	switch op {
	case OP_CLAIM:
		return "Claim"
	case OP_END:
		return "EndAuction"
	case OP_RECEIVE:
		return "Receive"
	default:
		return "Unknown"
	}
}

func GetReceiveOpName(op uint32) string {
	switch op {
	case OP_DEPOSIT:
		return "Deposit"
	case OP_BEGIN:
		return "BeginAuction"
	default:
		return "Unknown"
	}
}
