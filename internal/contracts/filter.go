package contracts

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/chainharvest/chainharvest/internal/common"
	"github.com/chainharvest/chainharvest/internal/csvout"
	customLogger "github.com/chainharvest/chainharvest/internal/log"
	"github.com/chainharvest/chainharvest/internal/metrics"
	"github.com/chainharvest/chainharvest/internal/rpc"
)

// Verifier resolves verification status for a set of contract addresses.
type Verifier interface {
	Run(ctx context.Context, addresses []string) map[string]common.VerificationResult
}

// Filter scans fetched blocks for contract-creation transactions.
type Filter struct {
	verifier Verifier
	logger   zerolog.Logger
}

func NewFilter(verifier Verifier) *Filter {
	return &Filter{
		verifier: verifier,
		logger:   customLogger.NewLogger("contracts"),
	}
}

// CollectCreations walks block results in order and emits one summary per
// transaction without a "to" address. Block results without a usable payload
// are skipped. Summaries keep block order, then transaction order within a
// block. Verification for resolved contract addresses runs once per distinct
// address and is merged back afterwards.
func (f *Filter) CollectCreations(ctx context.Context, blockResults []rpc.GetFullBlockResult) []common.ContractCreationSummary {
	summaries := []common.ContractCreationSummary{}
	addresses := []string{}

	for _, blockResult := range blockResults {
		if blockResult.Error != nil {
			f.logger.Debug().Err(blockResult.Error).Msgf("Skipping block %s without a usable payload", blockResult.BlockNumber.String())
			metrics.SkippedBlockResults.Inc()
			continue
		}

		for _, tx := range blockResult.Data.Transactions {
			if !tx.IsContractCreation() {
				continue
			}
			summary := common.ContractCreationSummary{
				TxHash:      tx.Hash,
				BlockNumber: blockResult.Data.Number,
				FromAddress: tx.FromAddress,
				Creator:     tx.FromAddress,
				Value:       tx.Value,
				GasPrice:    tx.GasPrice,
			}
			if tx.Creates != nil {
				summary.ContractAddress = *tx.Creates
				addresses = append(addresses, *tx.Creates)
			}
			summaries = append(summaries, summary)
		}
	}

	metrics.ContractCreationsFound.Add(float64(len(summaries)))
	f.logger.Info().Msgf("Found %d contract creations", len(summaries))

	if len(addresses) > 0 {
		verifications := f.verifier.Run(ctx, addresses)
		for i := range summaries {
			if summaries[i].ContractAddress == "" {
				continue
			}
			if result, ok := verifications[summaries[i].ContractAddress]; ok {
				summaries[i].Verified = result.Verified
				summaries[i].VerificationMessage = result.Message
			}
		}
	}

	return summaries
}

// Records flattens summaries into CSV records. Every record carries the same
// column set; verification columns stay empty for creations without a resolved
// contract address.
func Records(summaries []common.ContractCreationSummary) []*csvout.Record {
	records := make([]*csvout.Record, 0, len(summaries))
	for _, summary := range summaries {
		record := csvout.NewRecord().
			Set("txHash", summary.TxHash).
			Set("blockNumber", summary.BlockNumber.String()).
			Set("from", summary.FromAddress).
			Set("to", "").
			Set("creator", summary.Creator).
			Set("value", summary.Value).
			Set("gasPrice", summary.GasPrice).
			Set("contractAddress", summary.ContractAddress)
		if summary.ContractAddress != "" {
			record.Set("verified", strconv.FormatBool(summary.Verified)).
				Set("verificationMessage", summary.VerificationMessage)
		} else {
			record.Set("verified", "").
				Set("verificationMessage", "")
		}
		records = append(records, record)
	}
	return records
}
