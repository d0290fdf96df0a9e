package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/schema"
	"github.com/rs/zerolog"

	"github.com/chainharvest/chainharvest/internal/common"
	customLogger "github.com/chainharvest/chainharvest/internal/log"
	"github.com/chainharvest/chainharvest/internal/metrics"
)

const DefaultURL = "https://api.etherscan.io/api"

var encoder = schema.NewEncoder()

// Client looks up contract verification status on an Etherscan-compatible
// explorer API.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	logger     zerolog.Logger
}

type abiQuery struct {
	Module  string `schema:"module"`
	Action  string `schema:"action"`
	Address string `schema:"address"`
	APIKey  string `schema:"apikey"`
}

type abiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func NewClient(apiURL string, apiKey string) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        apiURL,
		apiKey:     apiKey,
		logger:     customLogger.NewLogger("explorer"),
	}
}

// CheckVerification issues one getabi lookup for the address. It never fails
// hard: any transport or parse error comes back as an unverified result with
// the error text as the message.
func (c *Client) CheckVerification(ctx context.Context, contractAddress string) common.VerificationResult {
	c.logger.Debug().Msgf("Checking verification status for contract: %s", contractAddress)
	metrics.VerificationLookups.Inc()

	data, err := c.fetchABI(ctx, contractAddress)
	if err != nil {
		c.logger.Warn().Err(err).Msgf("Error checking verification status for %s", contractAddress)
		return common.VerificationResult{
			Address:  contractAddress,
			Verified: false,
			Message:  err.Error(),
		}
	}

	message := data.Message
	if message == "" {
		message = "Unknown"
	}
	return common.VerificationResult{
		Address:  contractAddress,
		Verified: data.Status == "1",
		Message:  message,
		Result:   data.Result,
	}
}

func (c *Client) fetchABI(ctx context.Context, contractAddress string) (*abiResponse, error) {
	query := abiQuery{
		Module:  "contract",
		Action:  "getabi",
		Address: contractAddress,
		APIKey:  c.apiKey,
	}
	values := url.Values{}
	if err := encoder.Encode(&query, values); err != nil {
		return nil, fmt.Errorf("failed to encode query: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.TransportError{Op: "getabi", URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &common.TransportError{Op: "getabi", URL: c.url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var data abiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &common.ParseError{Op: "getabi", Err: err}
	}
	return &data, nil
}
