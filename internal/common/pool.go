package common

// PoolSummary is one row of the pools pipeline output, flattened from the
// JSON:API pool document.
type PoolSummary struct {
	PoolAddress        string
	CreatedAt          string
	Name               string
	BaseTokenPriceUSD  string
	QuoteTokenPriceUSD string
	PoolCreatedAt      string
	ReserveInUSD       string
	DexID              string
}
