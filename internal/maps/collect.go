package maps

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

// seenCacheSize bounds the dedup set. It is far above any admissible run size
// so no placeId is ever evicted within a traversal.
const seenCacheSize = 8192

// collector accumulates admitted records in document order, deduplicating by
// place identifier. The first record seen for an id wins; later duplicates
// are dropped silently. Records without a placeId are never deduplicated
// against each other.
type collector struct {
	max     int
	seen    *lru.Cache[string, struct{}]
	records []models.BusinessRecord
	dropped int
}

func newCollector(max int) (*collector, error) {
	seen, err := lru.New[string, struct{}](seenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create dedup cache: %w", err)
	}
	return &collector{max: max, seen: seen}, nil
}

// add offers a record to the output set. It returns true when the record was
// admitted, false when dropped as a duplicate or because the set is full.
func (c *collector) add(rec models.BusinessRecord) bool {
	if c.full() {
		return false
	}
	if rec.PlaceID != "" {
		if _, dup := c.seen.Get(rec.PlaceID); dup {
			c.dropped++
			return false
		}
		c.seen.Add(rec.PlaceID, struct{}{})
	}
	c.records = append(c.records, rec)
	return true
}

func (c *collector) full() bool {
	return len(c.records) >= c.max
}

func (c *collector) result() []models.BusinessRecord {
	return c.records
}
