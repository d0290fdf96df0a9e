package common

// Transaction carries the subset of eth_getBlockByNumber transaction fields
// the pipelines consume. Value and GasPrice stay as raw hex quantities so the
// CSV output matches the gateway byte for byte.
type Transaction struct {
	Hash        string
	FromAddress string
	// ToAddress is nil for contract-creation transactions.
	ToAddress *string
	Value     string
	GasPrice  string
	// Creates is the created contract address. Most gateways omit it from
	// eth_getBlockByNumber; Etherscan-proxy-shaped ones populate it.
	Creates *string
}

// IsContractCreation reports whether the transaction deploys a contract.
func (t *Transaction) IsContractCreation() bool {
	return t.ToAddress == nil
}
