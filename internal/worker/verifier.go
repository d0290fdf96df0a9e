package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/chainharvest/chainharvest/internal/common"
	"github.com/chainharvest/chainharvest/internal/metrics"
)

const DefaultConcurrency = 4

// Checker performs one verification lookup.
type Checker interface {
	CheckVerification(ctx context.Context, contractAddress string) common.VerificationResult
}

// Verifier fans verification lookups out over a bounded pool of workers,
// deduplicated by address so repeated creators cost one round trip.
type Verifier struct {
	checker     Checker
	concurrency int
}

func NewVerifier(checker Checker, concurrency int) *Verifier {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Verifier{
		checker:     checker,
		concurrency: concurrency,
	}
}

// Run checks every distinct address and returns results keyed by address.
func (v *Verifier) Run(ctx context.Context, addresses []string) map[string]common.VerificationResult {
	unique := dedupe(addresses)
	if len(unique) == 0 {
		return map[string]common.VerificationResult{}
	}
	log.Debug().Msgf("Checking verification for %d addresses (%d unique)", len(addresses), len(unique))

	addressCh := make(chan string, len(unique))
	for _, address := range unique {
		addressCh <- address
	}
	close(addressCh)

	resultsCh := make(chan common.VerificationResult, len(unique))
	var wg sync.WaitGroup
	workers := v.concurrency
	if workers > len(unique) {
		workers = len(unique)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for address := range addressCh {
				resultsCh <- v.checker.CheckVerification(ctx, address)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	results := make(map[string]common.VerificationResult, len(unique))
	for result := range resultsCh {
		results[result.Address] = result
	}
	return results
}

func dedupe(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	unique := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if address == "" {
			continue
		}
		if _, ok := seen[address]; ok {
			metrics.VerificationDeduped.Inc()
			continue
		}
		seen[address] = struct{}{}
		unique = append(unique, address)
	}
	return unique
}
