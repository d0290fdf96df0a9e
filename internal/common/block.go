package common

import (
	"math/big"
)

// RawBlock is the undecoded eth_getBlockByNumber payload.
type RawBlock = map[string]interface{}

type Block struct {
	Number           *big.Int
	TransactionCount uint64
	Transactions     []Transaction
}
