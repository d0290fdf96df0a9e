package pools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/rs/zerolog"

	"github.com/chainharvest/chainharvest/internal/common"
	customLogger "github.com/chainharvest/chainharvest/internal/log"
)

const (
	DefaultURL     = "https://api.geckoterminal.com/api/v2"
	DefaultNetwork = "eth"
	DefaultSort    = "created_at"

	DefaultPage     = 1
	DefaultPageSize = 20
)

var encoder = schema.NewEncoder()

// Pool is one JSON:API pool document from the pool-data API.
type Pool struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    PoolAttributes    `json:"attributes"`
	Relationships PoolRelationships `json:"relationships"`
}

type PoolAttributes struct {
	Name               string `json:"name"`
	CreatedAt          string `json:"created_at"`
	BaseTokenPriceUSD  string `json:"base_token_price_usd"`
	QuoteTokenPriceUSD string `json:"quote_token_price_usd"`
	PoolCreatedAt      string `json:"pool_created_at"`
	ReserveInUSD       string `json:"reserve_in_usd"`
}

type PoolRelationships struct {
	Dex Relationship `json:"dex"`
}

type Relationship struct {
	Data ResourceID `json:"data"`
}

type ResourceID struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type listQuery struct {
	Page  int    `schema:"page"`
	Limit int    `schema:"limit"`
	Sort  string `schema:"sort"`
}

type listEnvelope struct {
	Data []Pool `json:"data"`
}

type detailEnvelope struct {
	Data Pool `json:"data"`
}

// Client queries a GeckoTerminal-compatible pool-data API.
type Client struct {
	httpClient *http.Client
	url        string
	network    string
	logger     zerolog.Logger
}

func NewClient(apiURL string, network string) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	if network == "" {
		network = DefaultNetwork
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        apiURL,
		network:    network,
		logger:     customLogger.NewLogger("pools"),
	}
}

// GetNewPools fetches one page of the most recently created pools.
func (c *Client) GetNewPools(ctx context.Context, page int, pageSize int, sort string) ([]Pool, error) {
	query := listQuery{
		Page:  page,
		Limit: pageSize,
		Sort:  sort,
	}
	values := url.Values{}
	if err := encoder.Encode(&query, values); err != nil {
		return nil, fmt.Errorf("failed to encode query: %v", err)
	}

	endpoint := fmt.Sprintf("%s/networks/%s/new_pools", c.url, c.network)
	var envelope listEnvelope
	if err := c.getJSON(ctx, endpoint+"?"+values.Encode(), &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetPoolDetails fetches one pool by id. A "<network>_" prefix on the id is
// stripped first, the list endpoint returns ids in that form.
func (c *Client) GetPoolDetails(ctx context.Context, poolID string) (*Pool, error) {
	poolAddress := strings.TrimPrefix(poolID, c.network+"_")
	endpoint := fmt.Sprintf("%s/networks/%s/pools/%s", c.url, c.network, poolAddress)

	var envelope detailEnvelope
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, out interface{}) error {
	c.logger.Debug().Msgf("GET %s", requestURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "chainharvest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.TransportError{Op: "pools", URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &common.TransportError{Op: "pools", URL: requestURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.ParseError{Op: "pools", Err: err}
	}
	return nil
}
