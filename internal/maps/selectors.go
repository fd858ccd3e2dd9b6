package maps

// Structural selectors for the Google Maps search surface. Maps ships
// obfuscated class names, so everything here keys off roles, aria labels, and
// data attributes, with class-substring fallbacks where nothing stable exists.
const (
	// mapsOrigin qualifies site-relative hrefs found on result cards.
	mapsOrigin = "https://www.google.com"

	// selResultsFeed is the scrollable container holding the result cards.
	selResultsFeed = `div[role="feed"]`

	// selResultCards enumerates the materialized result cards inside the feed.
	selResultCards = `div[role="feed"] div[role="article"]`

	// selCardRating is the star-rating glyph carrying the accessible label.
	selCardRating = `span[role="img"]`

	// Detail page selectors.
	selDetailHeading  = `h1`
	selDetailRating   = `span[role="img"][aria-label*="star"]`
	selDetailReviews  = `button[aria-label*="review"]`
	selDetailAddress  = `button[data-item-id*="address"]`
	selDetailPhone    = `button[data-item-id*="phone"]`
	selDetailWebsite  = `a[data-item-id*="authority"]`
	selDetailCategory = `button[jsaction*="category"]`
	selDetailHoursBtn = `button[aria-label*="Hours"]`
	selDetailHoursBox = `div[aria-label*="Hours"]`
	selDetailPlusCode = `button[data-item-id*="oloc"]`
)

// titleStrategies are tried in order against a card; the first strategy
// returning non-empty text wins. Kept as data so each entry is independently
// testable against fixture markup.
var titleStrategies = []struct {
	name     string
	selector string
}{
	{"headline-small", `[class*="fontHeadlineSmall"]`},
	{"headline", `[class*="fontHeadline"]`},
	{"font-first-child", `div[class*="font"] div:first-child`},
	{"anchor-first-child", `a div:first-child`},
}
