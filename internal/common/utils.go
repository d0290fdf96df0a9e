package common

import (
	"math/big"
	"strings"
)

// BlockRange returns every block number in [start, end] inclusive, ascending.
// start > end yields an empty slice.
func BlockRange(start, end uint64) []*big.Int {
	if start > end {
		return []*big.Int{}
	}
	blockNumbers := make([]*big.Int, 0, end-start+1)
	for n := start; n <= end; n++ {
		blockNumbers = append(blockNumbers, new(big.Int).SetUint64(n))
	}
	return blockNumbers
}

// RedactURL hides everything after the last path separator so provider URLs
// with embedded keys can be logged.
func RedactURL(url string) string {
	idx := strings.LastIndex(url, "/")
	if idx == -1 || idx == len(url)-1 {
		return url
	}
	tail := url[idx+1:]
	if len(tail) <= 6 {
		return url
	}
	return url[:idx+1] + tail[:6] + "..."
}
