package catalog

import "testing"

func TestDetectSpecies(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     Species
		detected bool
	}{
		{"english dog", "dog fever vomiting diarrhea", Dog, true},
		{"sinhala dog", "බල්ලා උණ වමන", Dog, true},
		{"canine keyword", "canine cough and lethargy", Dog, true},
		{"english cat", "cat sneezing watery eyes", Cat, true},
		{"sinhala cat", "පූසා කැස්ස", Cat, true},
		{"feline keyword", "feline losing weight", Cat, true},
		{"english cow", "cow swollen udder", Cow, true},
		{"sinhala cow", "ගවයා උණ", Cow, true},
		{"uppercase input", "My DOG has a fever", Dog, true},
		{"no species", "fever vomiting diarrhea", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, detected := DetectSpecies(tt.text)
			if detected != tt.detected {
				t.Fatalf("DetectSpecies(%q) detected = %v, want %v", tt.text, detected, tt.detected)
			}
			if got != tt.want {
				t.Errorf("DetectSpecies(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// The check order is a contract: dog before cat before cow. "cattle"
// contains "cat", so cat wins even though "cattle" is a cow keyword.
func TestDetectSpecies_PriorityOrder(t *testing.T) {
	got, detected := DetectSpecies("cattle limping")
	if !detected {
		t.Fatal("expected a species to be detected")
	}
	if got != Cat {
		t.Errorf("DetectSpecies(\"cattle limping\") = %q, want %q (priority order)", got, Cat)
	}

	// Multiple species mentioned: first in SpeciesOrder wins.
	got, _ = DetectSpecies("cow bitten by dog")
	if got != Dog {
		t.Errorf("DetectSpecies(\"cow bitten by dog\") = %q, want %q", got, Dog)
	}
}

func TestSpeciesOrder(t *testing.T) {
	want := []Species{Dog, Cat, Cow}
	if len(SpeciesOrder) != len(want) {
		t.Fatalf("SpeciesOrder has %d entries, want %d", len(SpeciesOrder), len(want))
	}
	for i, sp := range want {
		if SpeciesOrder[i] != sp {
			t.Errorf("SpeciesOrder[%d] = %q, want %q", i, SpeciesOrder[i], sp)
		}
	}
	for _, sp := range SpeciesOrder {
		if len(Keywords(sp)) == 0 {
			t.Errorf("species %q has no keywords", sp)
		}
	}
}
