package rpc

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainharvest/chainharvest/internal/common"
)

func TestSerializeFullBlocksDecodesHexBlockNumber(t *testing.T) {
	raw := common.RawBlock{
		"number": "0x1455e65",
		"transactions": []interface{}{
			map[string]interface{}{
				"hash":     "0xtx1",
				"from":     "0xcreator",
				"to":       nil,
				"value":    "0x0",
				"gasPrice": "0x6fc23ac00",
			},
		},
	}

	results := SerializeFullBlocks([]RPCFetchBatchResult[*big.Int, common.RawBlock]{
		{Key: big.NewInt(21323365), Result: raw},
	})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Error)
	assert.Equal(t, big.NewInt(21323365), results[0].Data.Number)
	assert.Equal(t, uint64(1), results[0].Data.TransactionCount)

	tx := results[0].Data.Transactions[0]
	assert.Equal(t, "0xtx1", tx.Hash)
	assert.Equal(t, "0xcreator", tx.FromAddress)
	assert.Nil(t, tx.ToAddress)
	assert.True(t, tx.IsContractCreation())
	assert.Equal(t, "0x0", tx.Value)
	assert.Equal(t, "0x6fc23ac00", tx.GasPrice)
	assert.Nil(t, tx.Creates)
}

func TestSerializeFullBlocksKeepsToAddress(t *testing.T) {
	raw := common.RawBlock{
		"number": "0x64",
		"transactions": []interface{}{
			map[string]interface{}{
				"hash": "0xtx1",
				"from": "0xsender",
				"to":   "0xabc",
			},
		},
	}

	results := SerializeFullBlocks([]RPCFetchBatchResult[*big.Int, common.RawBlock]{
		{Key: big.NewInt(100), Result: raw},
	})

	require.Len(t, results, 1)
	tx := results[0].Data.Transactions[0]
	require.NotNil(t, tx.ToAddress)
	assert.Equal(t, "0xabc", *tx.ToAddress)
	assert.False(t, tx.IsContractCreation())
}

func TestSerializeFullBlocksKeepsCreates(t *testing.T) {
	raw := common.RawBlock{
		"number": "0x64",
		"transactions": []interface{}{
			map[string]interface{}{
				"hash":    "0xtx1",
				"from":    "0xsender",
				"to":      nil,
				"creates": "0xcontract",
			},
			map[string]interface{}{
				"hash":    "0xtx2",
				"from":    "0xsender",
				"to":      nil,
				"creates": "",
			},
		},
	}

	results := SerializeFullBlocks([]RPCFetchBatchResult[*big.Int, common.RawBlock]{
		{Key: big.NewInt(100), Result: raw},
	})

	require.Len(t, results, 1)
	txs := results[0].Data.Transactions
	require.NotNil(t, txs[0].Creates)
	assert.Equal(t, "0xcontract", *txs[0].Creates)
	// an empty creates field resolves nothing
	assert.Nil(t, txs[1].Creates)
}

func TestSerializeFullBlocksPropagatesErrors(t *testing.T) {
	fetchErr := errors.New("block not available")

	results := SerializeFullBlocks([]RPCFetchBatchResult[*big.Int, common.RawBlock]{
		{Key: big.NewInt(1), Error: fetchErr},
		{Key: big.NewInt(2), Result: nil},
	})

	require.Len(t, results, 2)
	assert.Equal(t, fetchErr, results[0].Error)
	assert.Error(t, results[1].Error)
}

func TestSerializeFullBlocksPreservesOrder(t *testing.T) {
	batch := []RPCFetchBatchResult[*big.Int, common.RawBlock]{
		{Key: big.NewInt(10), Result: common.RawBlock{"number": "0xa", "transactions": []interface{}{}}},
		{Key: big.NewInt(11), Result: common.RawBlock{"number": "0xb", "transactions": []interface{}{}}},
		{Key: big.NewInt(12), Result: common.RawBlock{"number": "0xc", "transactions": []interface{}{}}},
	}

	results := SerializeFullBlocks(batch)

	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, batch[i].Key, result.BlockNumber)
		assert.Equal(t, batch[i].Key, result.Data.Number)
	}
}
