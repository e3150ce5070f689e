package diagnosis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dileepadns7-pixel/animal-disease-ai/internal/catalog"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/models"
)

// Classifier produces a raw probability distribution over all known
// diseases for a symptom text.
type Classifier interface {
	Predict(ctx context.Context, text string) (map[string]float64, error)
}

// HistorySink accepts diagnosis records for the append-only history
// log. Failures are logged and suppressed; they never affect the
// delivered result.
type HistorySink interface {
	SaveRecord(record *models.Record) error
}

// Config holds the pipeline tuning parameters.
type Config struct {
	MinConfidence  float64 // validity gate threshold on the max raw probability
	SpeciesPenalty float64 // factor applied to species-inconsistent diseases
	TopN           int     // number of ranked entries returned
}

// DefaultConfig returns the standard pipeline parameters.
func DefaultConfig() Config {
	return Config{
		MinConfidence:  0.10,
		SpeciesPenalty: 0.05,
		TopN:           3,
	}
}

// Service runs the diagnosis pipeline: validity gate, species
// detection, species-consistency adjustment, ranking and banding, and
// the history append. It is stateless per request; concurrent calls
// need no coordination.
type Service struct {
	classifier Classifier
	history    HistorySink
	cat        *catalog.Catalog
	cfg        Config
	logger     *zap.Logger
}

// NewService creates a diagnosis service. history may be nil to disable
// the log sink.
func NewService(classifier Classifier, history HistorySink, cat *catalog.Catalog, cfg Config, logger *zap.Logger) *Service {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	return &Service{
		classifier: classifier,
		history:    history,
		cat:        cat,
		cfg:        cfg,
		logger:     logger,
	}
}

// Diagnose runs the full pipeline for one symptom text.
//
// It returns ErrEmptyInput for blank text (before any classifier call)
// and ErrInvalidSymptoms when the classifier's best guess falls below
// the minimum confidence. A classifier failure propagates wrapped; no
// retry is attempted here.
func (s *Service) Diagnose(ctx context.Context, text string) (*models.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	raw, err := s.classifier.Predict(ctx, strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("classifier prediction failed: %w", err)
	}

	// Validity gate: a uniformly low distribution means the classifier
	// could not match any disease profile to the input.
	maxProb := 0.0
	for _, p := range raw {
		if p > maxProb {
			maxProb = p
		}
	}
	if maxProb < s.cfg.MinConfidence {
		return nil, ErrInvalidSymptoms
	}

	species, detected := catalog.DetectSpecies(text)

	adjusted := Adjust(raw, s.cat, species, detected, s.cfg.SpeciesPenalty)
	entries, alert := Rank(adjusted, s.cat, s.cfg.TopN)

	result := &models.Result{
		Entries:        entries,
		AlertTriggered: alert,
	}
	if detected {
		result.DetectedSpecies = string(species)
	}

	s.saveRecord(text, result)

	return result, nil
}

// saveRecord appends the diagnosis to the history log. Best effort: an
// append failure is logged and swallowed so the already-computed result
// still reaches the caller.
func (s *Service) saveRecord(text string, result *models.Result) {
	if s.history == nil {
		return
	}

	record := &models.Record{
		ID:              uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		InputText:       text,
		SpeciesDetected: result.DetectedSpecies,
		Alert:           result.AlertTriggered,
		Predictions:     result.FlattenPredictions(),
	}
	if len(result.Entries) > 0 {
		record.TopDisease = result.Entries[0].Disease
		record.TopConfidence = result.Entries[0].Confidence
	}

	if err := s.history.SaveRecord(record); err != nil {
		s.logger.Warn("Failed to save diagnosis record",
			zap.String("id", record.ID),
			zap.Error(err))
	}
}
