package rpc

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func GetBlockWithTransactionsParams(blockNum *big.Int) []interface{} {
	return []interface{}{hexutil.EncodeBig(blockNum), true}
}
