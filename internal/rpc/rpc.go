package rpc

import (
	"context"
	"fmt"
	"math/big"

	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"

	config "github.com/chainharvest/chainharvest/configs"
	"github.com/chainharvest/chainharvest/internal/common"
	"github.com/chainharvest/chainharvest/internal/metrics"
)

type GetFullBlockResult struct {
	BlockNumber *big.Int
	Error       error
	Data        common.Block
}

type IRPCClient interface {
	GetFullBlocks(ctx context.Context, blockNumbers []*big.Int) []GetFullBlockResult
	GetURL() string
	Close()
}

type Client struct {
	RPCClient *gethRpc.Client
	url       string
}

func Initialize() (IRPCClient, error) {
	rpcUrl := config.Cfg.RPC.URL
	if rpcUrl == "" {
		return nil, fmt.Errorf("rpc.url is not set")
	}
	log.Debug().Msgf("Initializing RPC with URL: %s", common.RedactURL(rpcUrl))
	rpcClient, dialErr := gethRpc.Dial(rpcUrl)
	if dialErr != nil {
		return nil, dialErr
	}

	return &Client{
		RPCClient: rpcClient,
		url:       rpcUrl,
	}, nil
}

func (rpc *Client) GetURL() string {
	return rpc.url
}

func (rpc *Client) Close() {
	rpc.RPCClient.Close()
}

// GetFullBlocks fetches the given blocks with full transaction objects as one
// batch request. A transport failure marks every result in the batch failed;
// there is no partial recovery and no retry.
func (rpc *Client) GetFullBlocks(ctx context.Context, blockNumbers []*big.Int) []GetFullBlockResult {
	log.Info().Msgf("Making batch request for %d blocks to %s", len(blockNumbers), common.RedactURL(rpc.GetURL()))

	blocks := RPCFetchSingleBatch[*big.Int, common.RawBlock](rpc, ctx, blockNumbers, "eth_getBlockByNumber", GetBlockWithTransactionsParams)

	metrics.RPCBatchRequests.Inc()
	metrics.BlocksFetched.Add(float64(len(blocks)))
	log.Info().Msgf("Batch returned %d block results", len(blocks))

	return SerializeFullBlocks(blocks)
}
