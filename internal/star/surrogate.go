package star

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// Surrogate key namespaces. The prefix keeps keys from different dimensions
// distinct even for identical natural key strings.
const (
	prefixGeography = "GEO"
	prefixCustomer  = "CUS"
	prefixProduct   = "PRD"
)

// surrogateHexLen is the number of leading hex digits of the SHA-1 digest
// used for a key. 12 digits give 48 bits, which fits comfortably in an int64
// and keeps the collision probability negligible at the cardinalities of
// these dimensions (countries, customers, stock codes).
const surrogateHexLen = 12

// SurrogateKey derives the deterministic surrogate key for a natural key in
// the given namespace. The same input always yields the same key, across
// runs and independent of input ordering.
func SurrogateKey(prefix, naturalKey string) int64 {
	sum := sha1.Sum([]byte(prefix + "|" + naturalKey))
	digest := hex.EncodeToString(sum[:])
	key, err := strconv.ParseInt(digest[:surrogateHexLen], 16, 64)
	if err != nil {
		// Unreachable: a hex prefix of a SHA-1 digest always parses.
		panic(err)
	}
	return key
}

// GeographyKey returns the surrogate key for a country.
func GeographyKey(country string) int64 {
	return SurrogateKey(prefixGeography, country)
}

// CustomerKey returns the surrogate key for a registered customer ID.
func CustomerKey(customerID string) int64 {
	return SurrogateKey(prefixCustomer, customerID)
}

// ProductKey returns the surrogate key for a stock code.
func ProductKey(stockCode string) int64 {
	return SurrogateKey(prefixProduct, stockCode)
}

// DateKey returns the YYYYMMDD integer key for a calendar day.
func DateKey(year int, month int, day int) int64 {
	return int64(year)*10000 + int64(month)*100 + int64(day)
}
