package keys

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const (
	// PfxSnapshot prefixes refresher dataset snapshots
	PfxSnapshot = "snapshot"
	// PfxAuctionView prefixes cached view-call results
	PfxAuctionView = "auctionView"
)

// MD5 hashes the data with md5
func MD5(data string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(data)))
}

// CustomKey joins key components with the given delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// CacheKey joins cache key components with ":"
func CacheKey(components ...string) string {
	return CustomKey(":", components...)
}
