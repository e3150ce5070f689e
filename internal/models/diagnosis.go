package models

import (
	"fmt"
	"strings"
	"time"
)

// SeverityBand classifies a ranked disease by its adjusted confidence.
type SeverityBand string

const (
	BandHigh   SeverityBand = "high"   // confidence >= 50%
	BandMedium SeverityBand = "medium" // 20% <= confidence < 50%
	BandLow    SeverityBand = "low"    // confidence < 20%
)

// BandAdvisories maps each severity band to its bilingual advisory
// (English + Sinhala), shown to the user alongside the disease.
var BandAdvisories = map[SeverityBand]string{
	BandHigh:   "Visit a qualified vet immediately. වෛද්‍යවරයෙකු වෙත ගිය යුතුය.",
	BandMedium: "Possible but less likely. Monitor carefully. සතුන්ගේ තත්ත්වය නිරීක්ෂණය කරන්න.",
	BandLow:    "Mild risk. Observe for new symptoms. අඩු අවදානමක් ඇත.",
}

// BandFor returns the severity band for a confidence percentage.
func BandFor(confidence float64) SeverityBand {
	switch {
	case confidence >= 50:
		return BandHigh
	case confidence >= 20:
		return BandMedium
	default:
		return BandLow
	}
}

// RankedEntry is one disease in a diagnosis result, ordered by
// descending confidence.
type RankedEntry struct {
	Disease     string       `json:"disease"`
	DisplayName string       `json:"display_name"`
	Confidence  float64      `json:"confidence"` // percentage, 0-100
	Band        SeverityBand `json:"band"`
	Advisory    string       `json:"advisory"`
}

// Result is the outcome of one diagnosis request.
type Result struct {
	Entries         []RankedEntry `json:"results"`
	AlertTriggered  bool          `json:"alert_triggered"`
	DetectedSpecies string        `json:"detected_species,omitempty"`
}

// FlattenPredictions renders the ranked entries in the compact
// "DisplayName|12.3%" form, joined with ";", used by the history log
// and CSV export.
func (r Result) FlattenPredictions() string {
	parts := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		parts = append(parts, fmt.Sprintf("%s|%.1f%%", e.DisplayName, e.Confidence))
	}
	return strings.Join(parts, ";")
}

// Record is one row of the diagnosis history. Immutable once created.
type Record struct {
	ID              string    `json:"id" db:"id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	InputText       string    `json:"input" db:"input_text"`
	SpeciesDetected string    `json:"species_detected" db:"species_detected"` // empty when none
	TopDisease      string    `json:"top_disease" db:"top_disease"`
	TopConfidence   float64   `json:"top_confidence" db:"top_confidence"`
	Alert           bool      `json:"alert" db:"alert"`
	Predictions     string    `json:"predictions" db:"predictions"`
}

// DiagnoseRequest is the body of a single diagnosis call.
type DiagnoseRequest struct {
	Text string `json:"text" binding:"required"`
}

// BatchDiagnoseRequest carries multiple inputs for one batch call.
type BatchDiagnoseRequest struct {
	Inputs []DiagnoseInput `json:"inputs" binding:"required,min=1"`
}

// DiagnoseInput is one item of a batch request.
type DiagnoseInput struct {
	ID   *int64 `json:"id,omitempty"` // Optional external ID
	Text string `json:"text" binding:"required"`
}

// BatchDiagnoseItem is the per-input outcome of a batch call: either a
// result or an error string, never both.
type BatchDiagnoseItem struct {
	ID     *int64  `json:"id,omitempty"`
	Text   string  `json:"text"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}
