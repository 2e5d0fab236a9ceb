package redisx

import "time"

const (
	// Serialized in-stock product listing: products:instock -> JSON array
	KeyProductListing = "products:instock"
)

var (
	// How long the listing may be served without re-reading Postgres.
	TTLProductListing = 300 * time.Second
)
