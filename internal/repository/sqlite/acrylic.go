package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"roamscope/internal/domain"
)

// AcrylicFloor is the per-floor payload extracted from an Acrylic
// WiFi Heatmaps project file.
type AcrylicFloor struct {
	Floor        string
	Survey       *domain.Survey
	Measurements []domain.Measurement
}

// ExtractAcrylicProject reads an Acrylic .prj file, which is a SQLite
// database with floors, access_points and measurements tables, and
// returns one payload per floor. The project file is opened read-only
// and never modified.
func ExtractAcrylicProject(ctx context.Context, path string) ([]AcrylicFloor, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open project file: %w", err)
	}
	defer db.Close()

	floors, err := acrylicFloors(ctx, db)
	if err != nil {
		return nil, err
	}

	var result []AcrylicFloor
	for id, name := range floors {
		measurements, err := acrylicMeasurements(ctx, db, id, name)
		if err != nil {
			return nil, err
		}

		survey, err := acrylicSurvey(ctx, db, id, name)
		if err != nil {
			return nil, err
		}

		result = append(result, AcrylicFloor{
			Floor:        name,
			Survey:       survey,
			Measurements: measurements,
		})
	}

	return result, nil
}

func acrylicFloors(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM floors`)
	if err != nil {
		return nil, fmt.Errorf("failed to query floors: %w", err)
	}
	defer rows.Close()

	floors := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan floor: %w", err)
		}
		floors[id] = domain.NormalizeFloor(name)
	}
	return floors, rows.Err()
}

func acrylicMeasurements(ctx context.Context, db *sql.DB, floorID int64, floor string) ([]domain.Measurement, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT m.timestamp, m.x_position, m.y_position,
			a.bssid, a.ssid, a.channel, a.frequency, m.signal_strength
		FROM measurements m
		JOIN access_points a ON m.ap_id = a.id
		WHERE m.floor_id = ?
		ORDER BY m.timestamp, a.ssid
	`, floorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var measurements []domain.Measurement
	for rows.Next() {
		var (
			ts               sql.NullTime
			x, y, signal     float64
			bssid            string
			ssid             sql.NullString
			channel, frequency sql.NullInt64
		)
		if err := rows.Scan(&ts, &x, &y, &bssid, &ssid, &channel, &frequency, &signal); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}

		measurements = append(measurements, domain.Measurement{
			Floor:     floor,
			Timestamp: nullToTime(ts),
			X:         x,
			Y:         y,
			BSSID:     domain.NormalizeBSSID(bssid),
			SSID:      ssid.String,
			Channel:   int(channel.Int64),
			Frequency: int(frequency.Int64),
			Signal:    signal,
		})
	}
	return measurements, rows.Err()
}

// acrylicSurvey builds a reference survey from the project's access
// point table, one observation per AP with its mean measured signal.
func acrylicSurvey(ctx context.Context, db *sql.DB, floorID int64, floor string) (*domain.Survey, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT a.bssid, a.ssid, a.channel, AVG(m.signal_strength)
		FROM measurements m
		JOIN access_points a ON m.ap_id = a.id
		WHERE m.floor_id = ?
		GROUP BY a.bssid, a.ssid
	`, floorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query access points: %w", err)
	}
	defer rows.Close()

	survey := domain.NewSurvey(floor, domain.SourceAcrylic)
	for rows.Next() {
		var (
			bssid   string
			ssid    sql.NullString
			channel sql.NullInt64
			signal  float64
		)
		if err := rows.Scan(&bssid, &ssid, &channel, &signal); err != nil {
			return nil, fmt.Errorf("failed to scan access point: %w", err)
		}
		survey.AddObservation(*domain.NewObservation(bssid, ssid.String, int(channel.Int64), signal))
	}
	return survey, rows.Err()
}
