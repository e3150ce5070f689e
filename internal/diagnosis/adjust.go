package diagnosis

import (
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/catalog"
)

// Adjust applies the species-consistency correction to a raw
// probability distribution and renormalizes it to sum to 1.0.
//
// Diseases whose species set excludes the detected species are scaled
// by penalty; diseases without species tags, and diseases consistent
// with the detected species, keep their raw probability. When no
// species was detected the raw distribution is returned unchanged.
//
// If the penalized total collapses to zero (only possible when every
// raw probability was already zero), the pre-penalty values are
// renormalized instead; if that total is also zero the mass is spread
// uniformly. The result never contains a negative or NaN probability.
func Adjust(raw map[string]float64, cat *catalog.Catalog, species catalog.Species, detected bool, penalty float64) map[string]float64 {
	adjusted := make(map[string]float64, len(raw))

	if !detected {
		for d, p := range raw {
			adjusted[d] = p
		}
		return adjusted
	}

	penalized := false
	for d, p := range raw {
		if entry, ok := cat.Lookup(d); ok && len(entry.Species) > 0 && !entry.AppliesTo(species) {
			p *= penalty
			penalized = true
		}
		adjusted[d] = p
	}

	if !penalized {
		return adjusted
	}

	total := 0.0
	for _, p := range adjusted {
		total += p
	}

	if total <= 0 {
		// Degenerate: every probability was zero before the penalty.
		// Fall back to the pre-penalty values.
		total = 0.0
		for d, p := range raw {
			adjusted[d] = p
			total += p
		}
		if total <= 0 {
			uniform := 1.0 / float64(len(adjusted))
			for d := range adjusted {
				adjusted[d] = uniform
			}
			return adjusted
		}
	}

	for d := range adjusted {
		adjusted[d] /= total
	}
	return adjusted
}
