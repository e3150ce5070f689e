package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/dileepadns7-pixel/animal-disease-ai/internal/models"
)

// HistoryRepository stores diagnosis records in SQLite.
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository opens (or creates) the history database.
func NewHistoryRepository(dbPath string, logger *zap.Logger) (*HistoryRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &HistoryRepository{
		db:     db,
		logger: logger,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("History repository initialized", zap.String("db_path", dbPath))

	return repo, nil
}

// migrate creates tables
func (r *HistoryRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS diagnosis_history (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		input_text TEXT NOT NULL,
		species_detected TEXT NOT NULL DEFAULT '',
		top_disease TEXT NOT NULL DEFAULT '',
		top_confidence REAL NOT NULL DEFAULT 0,
		alert BOOLEAN NOT NULL DEFAULT 0,
		predictions TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_created_at ON diagnosis_history(created_at);
	CREATE INDEX IF NOT EXISTS idx_top_disease ON diagnosis_history(top_disease);
	CREATE INDEX IF NOT EXISTS idx_species_detected ON diagnosis_history(species_detected);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveRecord appends a single diagnosis record.
func (r *HistoryRepository) SaveRecord(record *models.Record) error {
	query := `
		INSERT INTO diagnosis_history (
			id, created_at, input_text, species_detected,
			top_disease, top_confidence, alert, predictions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		record.ID,
		record.CreatedAt,
		record.InputText,
		record.SpeciesDetected,
		record.TopDisease,
		record.TopConfidence,
		record.Alert,
		record.Predictions,
	)

	if err != nil {
		return fmt.Errorf("failed to save diagnosis record: %w", err)
	}

	return nil
}

// ListRecords retrieves records, newest first. A non-positive limit
// returns everything.
func (r *HistoryRepository) ListRecords(limit int) ([]*models.Record, error) {
	query := `
		SELECT id, created_at, input_text, species_detected,
		       top_disease, top_confidence, alert, predictions
		FROM diagnosis_history
		ORDER BY created_at DESC
	`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = r.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnosis records: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		record := &models.Record{}
		err := rows.Scan(
			&record.ID,
			&record.CreatedAt,
			&record.InputText,
			&record.SpeciesDetected,
			&record.TopDisease,
			&record.TopConfidence,
			&record.Alert,
			&record.Predictions,
		)
		if err != nil {
			r.logger.Error("Failed to scan diagnosis record", zap.Error(err))
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// GetStats returns aggregate statistics over the diagnosis history.
func (r *HistoryRepository) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	// Total count
	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM diagnosis_history").Scan(&total)
	if err != nil {
		return nil, err
	}
	stats["total"] = total

	// Alerts
	var alerts int
	err = r.db.QueryRow("SELECT COUNT(*) FROM diagnosis_history WHERE alert = 1").Scan(&alerts)
	if err != nil {
		return nil, err
	}
	stats["alerts"] = alerts

	// By top disease
	byDisease, err := r.countBy("top_disease")
	if err != nil {
		return nil, err
	}
	stats["by_disease"] = byDisease

	// By detected species
	bySpecies, err := r.countBy("species_detected")
	if err != nil {
		return nil, err
	}
	stats["by_species"] = bySpecies

	return stats, nil
}

// countBy groups history rows by a column, skipping empty values.
func (r *HistoryRepository) countBy(column string) (map[string]int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) as count
		FROM diagnosis_history
		WHERE %s != ''
		GROUP BY %s
		ORDER BY count DESC
	`, column, column, column)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			continue
		}
		counts[value] = count
	}

	return counts, nil
}

// Close closes the database connection.
func (r *HistoryRepository) Close() error {
	return r.db.Close()
}
