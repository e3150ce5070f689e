package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoSinhalaName is the display-name placeholder used when a disease has
// no Sinhala localization. Looking up an unknown disease is not an
// error; the placeholder is rendered instead.
const NoSinhalaName = "— සිංහල නාමය නොමැත —"

// Entry describes one disease in the catalog. Species is the set of
// species the disease applies to; an empty set means the disease is not
// species-specific and is never penalized by the normalizer.
type Entry struct {
	Name        string    `yaml:"name"`
	Species     []Species `yaml:"species,omitempty"`
	SinhalaName string    `yaml:"sinhala_name,omitempty"`
}

// AppliesTo reports whether the entry is consistent with the given
// species. Entries without species tags apply to everything.
func (e Entry) AppliesTo(sp Species) bool {
	if len(e.Species) == 0 {
		return true
	}
	for _, s := range e.Species {
		if s == sp {
			return true
		}
	}
	return false
}

// BilingualName renders "Name (සිංහල)" the way results are presented,
// falling back to the placeholder when no Sinhala name exists.
func (e Entry) BilingualName() string {
	si := e.SinhalaName
	if si == "" {
		si = NoSinhalaName
	}
	return fmt.Sprintf("%s (%s)", e.Name, si)
}

// Catalog is the immutable disease catalog. Entry order is significant:
// it is the tie-break order when ranked probabilities are equal.
type Catalog struct {
	entries []Entry
	index   map[string]int // lowercase name -> position in entries
}

// New builds a catalog from entries, preserving their order. Duplicate
// names (case-insensitive) are rejected.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.Name)
		}
		c.index[key] = i
	}
	return c, nil
}

// LoadFile reads a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc struct {
		Diseases []Entry `yaml:"diseases"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(doc.Diseases) == 0 {
		return nil, fmt.Errorf("catalog file %s lists no diseases", path)
	}

	return New(doc.Diseases)
}

// Entries returns the catalog entries in catalog order. The returned
// slice must not be modified.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Len returns the number of diseases in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup finds a disease by name, case-insensitively.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Order returns the catalog position of a disease, or len(entries) for
// unknown names so that unknowns sort after every catalog disease.
func (c *Catalog) Order(name string) int {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return len(c.entries)
	}
	return i
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New([]Entry{
		{Name: "Parvovirus", Species: []Species{Dog}, SinhalaName: "පාර්වෝ වෛරස් රෝගය (බල්ලා)"},
		{Name: "Distemper", Species: []Species{Dog}, SinhalaName: "ඩිස්ටෙම්පර් රෝගය (බල්ලා)"},
		{Name: "Skin_Allergy", Species: []Species{Dog, Cat}, SinhalaName: "සම අසාත්මිකතාව (බල්ලා / පූසා)"},
		{Name: "Arthritis", Species: []Species{Dog, Cow}, SinhalaName: "අස්ථි සන්ධි රෝගය (බල්ලා / ගවයා)"},
		{Name: "Kidney_Disease", Species: []Species{Dog, Cat}, SinhalaName: "වකුගඩු රෝගය (බල්ලා / පූසා)"},
		{Name: "Feline_Panleukopenia", Species: []Species{Cat}, SinhalaName: "පූසාගේ පෑන්ලියුකෝපෙනියා"},
		{Name: "Rhinotracheitis", Species: []Species{Cat}, SinhalaName: "රයිනෝට්‍රැකයිටිස් (පූසා)"},
		{Name: "Feline_UTI", Species: []Species{Cat}, SinhalaName: "පූසාගේ මූත්‍රා පද්ධති ආසාදනය (UTI)"},
		{Name: "Feline_Allergy", Species: []Species{Cat}, SinhalaName: "පූසාගේ සම අසාත්මිකතාව"},
		{Name: "Feline_Arthritis", Species: []Species{Cat}, SinhalaName: "පූසාගේ අස්ථි රෝගය"},
		{Name: "Mastitis", Species: []Species{Cow}, SinhalaName: "ස්තන ආසාදනය (ගවයා)"},
		{Name: "Foot_and_Mouth", Species: []Species{Cow}, SinhalaName: "පා සහ මුව රෝගය (ගවයා)"},
		{Name: "Bovine_Diarrhea", Species: []Species{Cow}, SinhalaName: "ගවයාගේ දියවැඩියාව"},
		{Name: "Bovine_Tuberculosis", Species: []Species{Cow}, SinhalaName: "ගවයාගේ ටියුබර්කියුලෝසිස් (TB)"},
		{Name: "Ketosis", Species: []Species{Cow}, SinhalaName: "කීටෝසිස් (ගවයා)"},
	})
	if err != nil {
		panic(err) // Built-in data, cannot fail
	}
	return c
}
