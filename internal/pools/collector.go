package pools

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chainharvest/chainharvest/internal/common"
	"github.com/chainharvest/chainharvest/internal/csvout"
	customLogger "github.com/chainharvest/chainharvest/internal/log"
	"github.com/chainharvest/chainharvest/internal/metrics"
)

// PoolFetcher is the pool-data API surface the collector needs.
type PoolFetcher interface {
	GetNewPools(ctx context.Context, page int, pageSize int, sort string) ([]Pool, error)
	GetPoolDetails(ctx context.Context, poolID string) (*Pool, error)
}

// Collector drives the pools pipeline: list the newest pools, then fetch
// details one by one with a pacing delay between calls.
type Collector struct {
	client   PoolFetcher
	page     int
	pageSize int
	sort     string
	delay    time.Duration
	logger   zerolog.Logger
}

func NewCollector(client PoolFetcher, page int, pageSize int, sort string, delay time.Duration) *Collector {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if sort == "" {
		sort = DefaultSort
	}
	return &Collector{
		client:   client,
		page:     page,
		pageSize: pageSize,
		sort:     sort,
		delay:    delay,
		logger:   customLogger.NewLogger("pools"),
	}
}

// Run returns one summary per pool whose details could be fetched. A failed
// detail fetch skips that pool; only a failed list call aborts the run.
func (c *Collector) Run(ctx context.Context) ([]common.PoolSummary, error) {
	c.logger.Info().Msgf("Fetching new pools (page %d, limit %d)", c.page, c.pageSize)
	listed, err := c.client.GetNewPools(ctx, c.page, c.pageSize, c.sort)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Msgf("Found %d new pools", len(listed))
	metrics.PoolsListed.Set(float64(len(listed)))

	summaries := make([]common.PoolSummary, 0, len(listed))
	for i, pool := range listed {
		if pool.ID == "" {
			continue
		}
		c.logger.Debug().Msgf("Fetching details for pool %s", pool.ID)
		metrics.PoolDetailFetches.Inc()
		details, err := c.client.GetPoolDetails(ctx, pool.ID)
		if err != nil {
			c.logger.Warn().Err(err).Msgf("Error fetching pool details for %s", pool.ID)
		} else {
			summaries = append(summaries, Flatten(*details))
		}

		if i < len(listed)-1 {
			select {
			case <-ctx.Done():
				return summaries, ctx.Err()
			case <-time.After(c.delay):
			}
		}
	}
	return summaries, nil
}

// Flatten extracts the CSV-relevant attributes from a pool document.
func Flatten(pool Pool) common.PoolSummary {
	return common.PoolSummary{
		PoolAddress:        pool.ID,
		CreatedAt:          pool.Attributes.CreatedAt,
		Name:               pool.Attributes.Name,
		BaseTokenPriceUSD:  pool.Attributes.BaseTokenPriceUSD,
		QuoteTokenPriceUSD: pool.Attributes.QuoteTokenPriceUSD,
		PoolCreatedAt:      pool.Attributes.PoolCreatedAt,
		ReserveInUSD:       pool.Attributes.ReserveInUSD,
		DexID:              pool.Relationships.Dex.Data.ID,
	}
}

// Records flattens pool summaries into CSV records, preserving input order.
func Records(summaries []common.PoolSummary) []*csvout.Record {
	records := make([]*csvout.Record, 0, len(summaries))
	for _, summary := range summaries {
		records = append(records, csvout.NewRecord().
			Set("pool_address", summary.PoolAddress).
			Set("created_at", summary.CreatedAt).
			Set("name", summary.Name).
			Set("base_token_price_usd", summary.BaseTokenPriceUSD).
			Set("quote_token_price_usd", summary.QuoteTokenPriceUSD).
			Set("pool_created_at", summary.PoolCreatedAt).
			Set("reserve_in_usd", summary.ReserveInUSD).
			Set("dex_id", summary.DexID))
	}
	return records
}
