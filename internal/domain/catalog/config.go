package catalog

import "time"

// Config holds runtime knobs for the catalog service.
type Config struct {
	CacheTTL time.Duration
}
