package common

import (
	"math/big"
)

// ContractCreationSummary is one row of the contracts pipeline output.
type ContractCreationSummary struct {
	TxHash      string
	BlockNumber *big.Int
	FromAddress string
	Creator     string
	Value       string
	GasPrice    string

	// Set only when the transaction resolved a contract address.
	ContractAddress     string
	Verified            bool
	VerificationMessage string
}

// VerificationResult is the outcome of one explorer ABI lookup. Lookups never
// fail hard: transport and parse errors come back as Verified=false with the
// error text in Message.
type VerificationResult struct {
	Address  string
	Verified bool
	Message  string
	Result   string
}
