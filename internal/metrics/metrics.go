package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RPC Metrics
var (
	RPCBatchRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpc_batch_requests_total",
		Help: "The total number of block batch requests sent to the RPC",
	})

	BlocksFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpc_blocks_fetched_total",
		Help: "The total number of block results received from the RPC",
	})
)

// Contract Filter Metrics
var (
	ContractCreationsFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contracts_creations_found_total",
		Help: "The total number of contract-creation transactions found",
	})

	SkippedBlockResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contracts_skipped_block_results_total",
		Help: "The total number of block results skipped for missing payloads",
	})
)

// Verification Metrics
var (
	VerificationLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explorer_verification_lookups_total",
		Help: "The total number of ABI lookups sent to the explorer",
	})

	VerificationDeduped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explorer_verification_deduped_total",
		Help: "The number of addresses skipped because they were already queued",
	})
)

// Pools Metrics
var (
	PoolsListed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pools_listed",
		Help: "The number of pools returned by the last list request",
	})

	PoolDetailFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pools_detail_fetches_total",
		Help: "The total number of per-pool detail requests",
	})
)

// Output Metrics
var CsvRowsWritten = promauto.NewCounter(prometheus.CounterOpts{
	Name: "csv_rows_written_total",
	Help: "The total number of data rows written to CSV files",
})
