package diagnosis

import (
	"testing"

	"github.com/dileepadns7-pixel/animal-disease-ai/internal/catalog"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/models"
)

func TestRank_OrderAndBands(t *testing.T) {
	cat := catalog.Default()
	adjusted := map[string]float64{
		"Mastitis":   0.698,
		"Arthritis":  0.233,
		"Parvovirus": 0.070,
	}

	entries, alert := Rank(adjusted, cat, 3)

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	wantOrder := []string{"Mastitis", "Arthritis", "Parvovirus"}
	wantBands := []models.SeverityBand{models.BandHigh, models.BandMedium, models.BandLow}
	for i := range wantOrder {
		if entries[i].Disease != wantOrder[i] {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Disease, wantOrder[i])
		}
		if entries[i].Band != wantBands[i] {
			t.Errorf("entry %d band = %q, want %q", i, entries[i].Band, wantBands[i])
		}
		if entries[i].Advisory != models.BandAdvisories[wantBands[i]] {
			t.Errorf("entry %d advisory = %q, want the %q advisory", i, entries[i].Advisory, wantBands[i])
		}
	}

	if entries[0].Confidence != 69.8 {
		t.Errorf("top confidence = %v, want 69.8", entries[0].Confidence)
	}
	if !alert {
		t.Error("alert should trigger when an entry reaches the high band")
	}
}

func TestRank_NoAlertBelowFifty(t *testing.T) {
	cat := catalog.Default()
	adjusted := map[string]float64{
		"Mastitis":  0.49,
		"Arthritis": 0.31,
		"Ketosis":   0.20,
	}

	entries, alert := Rank(adjusted, cat, 3)

	if alert {
		t.Error("alert must not trigger when no entry reaches 50%")
	}
	if entries[0].Band != models.BandMedium {
		t.Errorf("top band = %q, want medium at 49%%", entries[0].Band)
	}
}

func TestRank_AlertAtExactlyFifty(t *testing.T) {
	cat := catalog.Default()
	adjusted := map[string]float64{
		"Mastitis":  0.50,
		"Arthritis": 0.50,
	}

	entries, alert := Rank(adjusted, cat, 3)

	if !alert {
		t.Error("alert should trigger at exactly 50%")
	}
	if entries[0].Band != models.BandHigh {
		t.Errorf("band at 50%% = %q, want high", entries[0].Band)
	}
}

func TestRank_TruncatesToTopN(t *testing.T) {
	cat := catalog.Default()
	adjusted := map[string]float64{
		"Parvovirus": 0.30,
		"Distemper":  0.25,
		"Mastitis":   0.20,
		"Arthritis":  0.15,
		"Ketosis":    0.10,
	}

	entries, _ := Rank(adjusted, cat, 3)
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}

	// Fewer diseases than N: everything is returned.
	entries, _ = Rank(map[string]float64{"Mastitis": 1.0}, cat, 3)
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	cat := catalog.Default()

	// Ketosis sits last in the catalog, Parvovirus first. With equal
	// probabilities the catalog order decides.
	adjusted := map[string]float64{
		"Ketosis":    0.25,
		"Parvovirus": 0.25,
		"Mastitis":   0.25,
		"Distemper":  0.25,
	}

	entries, _ := Rank(adjusted, cat, 4)

	wantOrder := []string{"Parvovirus", "Distemper", "Mastitis", "Ketosis"}
	for i := range wantOrder {
		if entries[i].Disease != wantOrder[i] {
			t.Errorf("entry %d = %q, want %q (catalog-order tie-break)", i, entries[i].Disease, wantOrder[i])
		}
	}
}

func TestRank_DisplayNames(t *testing.T) {
	cat := catalog.Default()
	adjusted := map[string]float64{
		"Mastitis":       0.6,
		"Novel_Syndrome": 0.4, // not in the catalog
	}

	entries, _ := Rank(adjusted, cat, 2)

	if got, want := entries[0].DisplayName, "Mastitis (ස්තන ආසාදනය (ගවයා))"; got != want {
		t.Errorf("display name = %q, want %q", got, want)
	}
	// Unknown diseases get the placeholder, never an error.
	if got, want := entries[1].DisplayName, "Novel_Syndrome ("+catalog.NoSinhalaName+")"; got != want {
		t.Errorf("fallback display name = %q, want %q", got, want)
	}
}
