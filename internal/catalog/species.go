package catalog

import "strings"

// Species identifies one of the supported animal species.
type Species string

const (
	Dog Species = "dog"
	Cat Species = "cat"
	Cow Species = "cow"
)

// SpeciesOrder is the fixed priority in which input text is scanned for
// species keywords. The first species with a keyword hit wins, so the
// order is part of the detector's contract: "cattle" matches cat's
// "cat" keyword before cow's "cattle" is ever checked.
var SpeciesOrder = []Species{Dog, Cat, Cow}

// speciesKeywords maps each species to its surface forms (English and
// Sinhala). All keywords are lowercase; matching is done on lowercased
// input.
var speciesKeywords = map[Species][]string{
	Dog: {"dog", "බල්ලා", "canine"},
	Cat: {"cat", "පූසා", "feline"},
	Cow: {"cow", "ගවයා", "cattle", "ගෝමිය"},
}

// DetectSpecies scans free text for species keywords and returns the
// first species (by SpeciesOrder) with a substring match. The second
// return value is false when no keyword of any species appears.
func DetectSpecies(text string) (Species, bool) {
	lower := strings.ToLower(text)
	for _, sp := range SpeciesOrder {
		for _, kw := range speciesKeywords[sp] {
			if strings.Contains(lower, kw) {
				return sp, true
			}
		}
	}
	return "", false
}

// Keywords returns the keyword list for a species. The returned slice
// must not be modified.
func Keywords(sp Species) []string {
	return speciesKeywords[sp]
}
