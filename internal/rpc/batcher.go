package rpc

import (
	"context"
	"encoding/json"
	"errors"

	gethRpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/chainharvest/chainharvest/internal/common"
)

type RPCFetchBatchResult[K any, T any] struct {
	Key    K
	Error  error
	Result T
}

// NewBatch builds one batch element per key, in key order. The element for
// keys[i] carries argsFunc(keys[i]) so each key is requested exactly once.
func NewBatch[K any, T any](keys []K, method string, argsFunc func(K) []interface{}) []gethRpc.BatchElem {
	batch := make([]gethRpc.BatchElem, len(keys))
	for i, key := range keys {
		batch[i] = gethRpc.BatchElem{
			Method: method,
			Args:   argsFunc(key),
			Result: new(T),
		}
	}
	return batch
}

// RPCFetchSingleBatch submits all keys as a single batch call. A call-level
// failure is attached to every result, per-element errors to their result only.
func RPCFetchSingleBatch[K any, T any](rpc *Client, ctx context.Context, keys []K, method string, argsFunc func(K) []interface{}) []RPCFetchBatchResult[K, T] {
	batch := NewBatch[K, T](keys, method, argsFunc)
	results := make([]RPCFetchBatchResult[K, T], len(keys))
	for i, key := range keys {
		results[i] = RPCFetchBatchResult[K, T]{Key: key}
	}

	err := rpc.RPCClient.BatchCallContext(ctx, batch)
	if err != nil {
		batchErr := classifyBatchError(method, rpc.url, err)
		for i := range results {
			results[i].Error = batchErr
		}
		return results
	}

	for i, elem := range batch {
		if elem.Error != nil {
			results[i].Error = elem.Error
		} else {
			results[i].Result = *elem.Result.(*T)
		}
	}

	return results
}

func classifyBatchError(op string, url string, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &common.ParseError{Op: op, Err: err}
	}
	return &common.TransportError{Op: op, URL: common.RedactURL(url), Err: err}
}
