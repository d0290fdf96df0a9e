package rpc

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"

	"github.com/chainharvest/chainharvest/internal/common"
)

func SerializeFullBlocks(blocks []RPCFetchBatchResult[*big.Int, common.RawBlock]) []GetFullBlockResult {
	results := make([]GetFullBlockResult, 0, len(blocks))

	for _, rawBlock := range blocks {
		result := GetFullBlockResult{
			BlockNumber: rawBlock.Key,
		}
		if rawBlock.Error != nil {
			result.Error = rawBlock.Error
			results = append(results, result)
			continue
		}
		if rawBlock.Result == nil {
			log.Warn().Msgf("Received a nil block result for block %s.", rawBlock.Key.String())
			result.Error = fmt.Errorf("received a nil block result from RPC")
			results = append(results, result)
			continue
		}

		result.Data = serializeBlock(rawBlock.Result)
		results = append(results, result)
	}

	return results
}

func serializeBlock(block common.RawBlock) common.Block {
	return common.Block{
		Number:           hexToBigInt(block["number"]),
		TransactionCount: uint64(transactionCount(block["transactions"])),
		Transactions:     serializeTransactions(block["transactions"]),
	}
}

func transactionCount(transactions interface{}) int {
	txs, ok := transactions.([]interface{})
	if !ok {
		return 0
	}
	return len(txs)
}

func serializeTransactions(transactions interface{}) []common.Transaction {
	txs, ok := transactions.([]interface{})
	if !ok || len(txs) == 0 {
		return []common.Transaction{}
	}
	serializedTransactions := make([]common.Transaction, 0, len(txs))
	for _, tx := range txs {
		serializedTransactions = append(serializedTransactions, serializeTransaction(tx))
	}
	return serializedTransactions
}

func serializeTransaction(rawTx interface{}) common.Transaction {
	tx, ok := rawTx.(map[string]interface{})
	if !ok {
		log.Debug().Msgf("Failed to serialize transaction: %v", rawTx)
		return common.Transaction{}
	}
	return common.Transaction{
		Hash:        interfaceToString(tx["hash"]),
		FromAddress: interfaceToString(tx["from"]),
		ToAddress:   optionalString(tx["to"]),
		Value:       interfaceToString(tx["value"]),
		GasPrice:    interfaceToString(tx["gasPrice"]),
		Creates:     optionalNonEmptyString(tx["creates"]),
	}
}

func hexToBigInt(hex interface{}) *big.Int {
	hexString := interfaceToString(hex)
	if len(hexString) < 3 {
		return new(big.Int)
	}
	v, ok := new(big.Int).SetString(hexString[2:], 16)
	if !ok {
		return new(big.Int)
	}
	return v
}

func interfaceToString(value interface{}) string {
	if value == nil {
		return ""
	}
	res, ok := value.(string)
	if !ok {
		return ""
	}
	return res
}

// optionalString keeps JSON null distinguishable from an empty string. A nil
// return for the "to" field marks a contract-creation transaction.
func optionalString(value interface{}) *string {
	if value == nil {
		return nil
	}
	res, ok := value.(string)
	if !ok {
		return nil
	}
	return &res
}

func optionalNonEmptyString(value interface{}) *string {
	res := optionalString(value)
	if res == nil || *res == "" {
		return nil
	}
	return res
}
