package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"roamscope/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; also keeps an in-memory database from being
	// split across pooled connections.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS surveys (
		floor TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		captured_at DATETIME,
		station_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS observations (
		floor TEXT NOT NULL,
		bssid TEXT NOT NULL,
		essid TEXT NOT NULL DEFAULT '',
		channel INTEGER NOT NULL DEFAULT 0,
		frequency INTEGER NOT NULL DEFAULT 0,
		band TEXT NOT NULL DEFAULT '',
		signal_dbm REAL NOT NULL,
		beacons INTEGER NOT NULL DEFAULT 0,
		privacy TEXT NOT NULL DEFAULT '',
		cipher TEXT NOT NULL DEFAULT '',
		auth TEXT NOT NULL DEFAULT '',
		first_seen DATETIME,
		last_seen DATETIME,
		PRIMARY KEY (floor, bssid),
		FOREIGN KEY (floor) REFERENCES surveys(floor) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS measurements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		floor TEXT NOT NULL,
		ts DATETIME,
		x REAL NOT NULL,
		y REAL NOT NULL,
		bssid TEXT NOT NULL,
		ssid TEXT NOT NULL DEFAULT '',
		channel INTEGER NOT NULL DEFAULT 0,
		frequency INTEGER NOT NULL DEFAULT 0,
		signal_dbm REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_observations_essid ON observations(essid);
	CREATE INDEX IF NOT EXISTS idx_measurements_floor ON measurements(floor);
	CREATE INDEX IF NOT EXISTS idx_measurements_bssid ON measurements(bssid);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveSurvey stores a survey, replacing any previous survey for the
// same floor along with its observations.
func (r *Repository) SaveSurvey(ctx context.Context, survey *domain.Survey) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO surveys (floor, source, captured_at, station_count, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(floor) DO UPDATE SET
			source = excluded.source,
			captured_at = excluded.captured_at,
			station_count = excluded.station_count,
			updated_at = CURRENT_TIMESTAMP
	`, survey.Floor, string(survey.Source), timeToNull(survey.CapturedAt), survey.StationCount)
	if err != nil {
		return fmt.Errorf("failed to upsert survey: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM observations WHERE floor = ?`, survey.Floor); err != nil {
		return fmt.Errorf("failed to clear observations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (floor, bssid, essid, channel, frequency, band,
			signal_dbm, beacons, privacy, cipher, auth, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(floor, bssid) DO UPDATE SET
			essid = excluded.essid,
			channel = excluded.channel,
			frequency = excluded.frequency,
			band = excluded.band,
			signal_dbm = excluded.signal_dbm,
			beacons = excluded.beacons,
			privacy = excluded.privacy,
			cipher = excluded.cipher,
			auth = excluded.auth,
			first_seen = excluded.first_seen,
			last_seen = excluded.last_seen
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare observation statement: %w", err)
	}
	defer stmt.Close()

	for _, obs := range survey.Observations {
		if _, err := stmt.ExecContext(ctx, observationInsertArgs(survey.Floor, &obs)...); err != nil {
			return fmt.Errorf("failed to insert observation %s: %w", obs.BSSID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSurvey loads the survey for a floor, or nil if none exists
func (r *Repository) GetSurvey(ctx context.Context, floor string) (*domain.Survey, error) {
	survey := &domain.Survey{Floor: floor}

	var capturedAt sql.NullTime
	var source string
	err := r.db.QueryRowContext(ctx, `
		SELECT source, captured_at, station_count FROM surveys WHERE floor = ?
	`, floor).Scan(&source, &capturedAt, &survey.StationCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query survey: %w", err)
	}

	survey.Source = domain.SurveySource(source)
	if capturedAt.Valid {
		survey.CapturedAt = capturedAt.Time
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+observationColumns+`
		FROM observations WHERE floor = ? ORDER BY bssid
	`, floor)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row observationRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		survey.Observations = append(survey.Observations, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating observations: %w", err)
	}

	return survey, nil
}

// ListSurveys loads all stored surveys ordered by floor
func (r *Repository) ListSurveys(ctx context.Context) ([]domain.Survey, error) {
	floors, err := r.Floors(ctx)
	if err != nil {
		return nil, err
	}

	surveys := make([]domain.Survey, 0, len(floors))
	for _, floor := range floors {
		survey, err := r.GetSurvey(ctx, floor)
		if err != nil {
			return nil, err
		}
		if survey != nil {
			surveys = append(surveys, *survey)
		}
	}
	return surveys, nil
}

// DeleteSurvey removes a floor's survey; observations go with it via
// cascade, measurements are removed explicitly.
func (r *Repository) DeleteSurvey(ctx context.Context, floor string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM surveys WHERE floor = ?`, floor); err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE floor = ?`, floor); err != nil {
		return fmt.Errorf("failed to delete measurements: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Floors lists the floors with a stored survey
func (r *Repository) Floors(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT floor FROM surveys ORDER BY floor`)
	if err != nil {
		return nil, fmt.Errorf("failed to query floors: %w", err)
	}
	defer rows.Close()

	var floors []string
	for rows.Next() {
		var floor string
		if err := rows.Scan(&floor); err != nil {
			return nil, fmt.Errorf("failed to scan floor: %w", err)
		}
		floors = append(floors, floor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating floors: %w", err)
	}
	return floors, nil
}

// SaveMeasurements replaces all positioned measurements for a floor
func (r *Repository) SaveMeasurements(ctx context.Context, floor string, measurements []domain.Measurement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE floor = ?`, floor); err != nil {
		return fmt.Errorf("failed to clear measurements: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO measurements (floor, ts, x, y, bssid, ssid, channel, frequency, signal_dbm)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare measurement statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range measurements {
		if _, err := stmt.ExecContext(ctx, measurementInsertArgs(floor, &m)...); err != nil {
			return fmt.Errorf("failed to insert measurement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetMeasurements loads all positioned measurements for a floor
func (r *Repository) GetMeasurements(ctx context.Context, floor string) ([]domain.Measurement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+measurementColumns+`
		FROM measurements WHERE floor = ? ORDER BY ts, id
	`, floor)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var measurements []domain.Measurement
	for rows.Next() {
		var row measurementRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		measurements = append(measurements, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating measurements: %w", err)
	}
	return measurements, nil
}

// APStats aggregates per-AP signal statistics from a floor's
// positioned measurements.
func (r *Repository) APStats(ctx context.Context, floor string) ([]domain.APSignalStats, error) {
	measurements, err := r.GetMeasurements(ctx, floor)
	if err != nil {
		return nil, err
	}
	return domain.AggregateByAP(measurements), nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
