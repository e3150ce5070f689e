package diagnosis

import (
	"sort"

	"github.com/dileepadns7-pixel/animal-disease-ai/internal/catalog"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/models"
)

// Rank sorts an adjusted distribution by descending probability and
// returns the top-N diseases as ranked entries, each with its bilingual
// display name, confidence percentage, severity band and advisory. Ties
// keep catalog order. The second return value is true when any returned
// entry reaches the high band.
func Rank(adjusted map[string]float64, cat *catalog.Catalog, topN int) ([]models.RankedEntry, bool) {
	keys := make([]string, 0, len(adjusted))
	for d := range adjusted {
		keys = append(keys, d)
	}

	// Pre-sort into catalog order (name as a fallback for labels the
	// catalog does not know), then stable-sort by probability so equal
	// probabilities keep that order.
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := cat.Order(keys[i]), cat.Order(keys[j])
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})
	sort.SliceStable(keys, func(i, j int) bool {
		return adjusted[keys[i]] > adjusted[keys[j]]
	})

	if topN > len(keys) {
		topN = len(keys)
	}

	entries := make([]models.RankedEntry, 0, topN)
	alert := false
	for _, d := range keys[:topN] {
		confidence := adjusted[d] * 100
		band := models.BandFor(confidence)
		if band == models.BandHigh {
			alert = true
		}

		entry, ok := cat.Lookup(d)
		if !ok {
			entry = catalog.Entry{Name: d}
		}

		entries = append(entries, models.RankedEntry{
			Disease:     d,
			DisplayName: entry.BilingualName(),
			Confidence:  confidence,
			Band:        band,
			Advisory:    models.BandAdvisories[band],
		})
	}

	return entries, alert
}
