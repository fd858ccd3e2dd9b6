package maps

import "github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"

// CardStatus classifies the result of parsing one card. The explicit result
// type replaces blanket exception suppression: a skip is an expected outcome,
// not a swallowed failure.
type CardStatus int

const (
	// CardAdmitted means a record with a non-empty title was derived.
	CardAdmitted CardStatus = iota
	// CardSkipped means no title could be derived; the card is dropped and
	// traversal continues.
	CardSkipped
)

// CardOutcome is the typed result of one card parse.
type CardOutcome struct {
	Status CardStatus
	Record models.BusinessRecord
	// Missing lists the optional fields that could not be derived; only
	// meaningful for admitted cards.
	Missing []string
	// Reason explains a skip for logging.
	Reason string
}

func admitted(rec models.BusinessRecord, missing []string) CardOutcome {
	return CardOutcome{Status: CardAdmitted, Record: rec, Missing: missing}
}

func skipped(reason string) CardOutcome {
	return CardOutcome{Status: CardSkipped, Reason: reason}
}
