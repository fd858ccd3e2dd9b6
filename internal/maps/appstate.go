package maps

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"

	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

// coordinatesFromAppState recovers the viewport coordinates from the
// APP_INITIALIZATION_STATE bootstrap blob Maps embeds in an inline script,
// for detail pages whose URL carries no coordinate markers. The script is
// evaluated in a sandboxed goja VM with a minimal window mock; any failure
// yields nil.
func coordinatesFromAppState(pageHTML string) *models.Coordinates {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), "APP_INITIALIZATION_STATE") {
			script = s.Text()
			return false
		}
		return true
	})
	if script == "" {
		return nil
	}

	vm := goja.New()
	// window aliases the global object so `window.X = ...` assignments land
	// as globals we can read back, even if later statements throw.
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	if _, err := vm.RunString(script); err != nil {
		log.Debug().Err(err).Msg("App state script did not run to completion")
	}

	state := vm.Get("APP_INITIALIZATION_STATE")
	if state == nil || goja.IsUndefined(state) || goja.IsNull(state) {
		return nil
	}
	return coordsFromState(state.Export())
}

// coordsFromState walks the exported state: the first entry's first entry is
// a [zoom, lng, lat] float triple describing the viewport.
func coordsFromState(v interface{}) *models.Coordinates {
	outer, ok := v.([]interface{})
	if !ok || len(outer) == 0 {
		return nil
	}
	inner, ok := outer[0].([]interface{})
	if !ok || len(inner) == 0 {
		return nil
	}
	triple, ok := inner[0].([]interface{})
	if !ok || len(triple) < 3 {
		return nil
	}
	lng, okLng := asFloat(triple[1])
	lat, okLat := asFloat(triple[2])
	if !okLng || !okLat {
		return nil
	}
	return &models.Coordinates{Lat: lat, Lng: lng}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
