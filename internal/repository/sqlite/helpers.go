package sqlite

import (
	"database/sql"
	"time"

	"roamscope/internal/domain"
)

// nullToTime converts sql.NullTime to time.Time (zero when invalid)
func nullToTime(nt sql.NullTime) time.Time {
	if nt.Valid {
		return nt.Time
	}
	return time.Time{}
}

// timeToNull converts time.Time to sql.NullTime (invalid when zero)
func timeToNull(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// observationRow holds all columns from an observation query for scanning
type observationRow struct {
	Floor     string
	BSSID     string
	ESSID     string
	Channel   int
	Frequency int
	Band      string
	Signal    float64
	Beacons   int
	Privacy   string
	Cipher    string
	Auth      string
	FirstSeen sql.NullTime
	LastSeen  sql.NullTime
}

// observationColumns is the SELECT column list for observation queries.
// Order must match scanArgs.
const observationColumns = `floor, bssid, essid, channel, frequency, band,
	signal_dbm, beacons, privacy, cipher, auth, first_seen, last_seen`

// scanArgs returns pointers to all fields for sql.Scan()
func (r *observationRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Floor,
		&r.BSSID,
		&r.ESSID,
		&r.Channel,
		&r.Frequency,
		&r.Band,
		&r.Signal,
		&r.Beacons,
		&r.Privacy,
		&r.Cipher,
		&r.Auth,
		&r.FirstSeen,
		&r.LastSeen,
	}
}

// toDomain converts the scanned row to a domain.Observation
func (r *observationRow) toDomain() domain.Observation {
	return domain.Observation{
		BSSID:     r.BSSID,
		ESSID:     r.ESSID,
		Channel:   r.Channel,
		Frequency: r.Frequency,
		Band:      domain.Band(r.Band),
		Signal:    r.Signal,
		Beacons:   r.Beacons,
		Privacy:   r.Privacy,
		Cipher:    r.Cipher,
		Auth:      r.Auth,
		FirstSeen: nullToTime(r.FirstSeen),
		LastSeen:  nullToTime(r.LastSeen),
	}
}

// observationInsertArgs prepares arguments for observation INSERT.
// Order: floor, bssid, essid, channel, frequency, band, signal_dbm,
// beacons, privacy, cipher, auth, first_seen, last_seen
func observationInsertArgs(floor string, obs *domain.Observation) []interface{} {
	return []interface{}{
		floor,
		obs.BSSID,
		obs.ESSID,
		obs.Channel,
		obs.Frequency,
		string(obs.Band),
		obs.Signal,
		obs.Beacons,
		obs.Privacy,
		obs.Cipher,
		obs.Auth,
		timeToNull(obs.FirstSeen),
		timeToNull(obs.LastSeen),
	}
}

// measurementRow holds all columns from a measurement query for scanning
type measurementRow struct {
	Floor     string
	Timestamp sql.NullTime
	X         float64
	Y         float64
	BSSID     string
	SSID      string
	Channel   int
	Frequency int
	Signal    float64
}

// measurementColumns is the SELECT column list for measurement queries.
// Order must match scanArgs.
const measurementColumns = `floor, ts, x, y, bssid, ssid, channel, frequency, signal_dbm`

// scanArgs returns pointers to all fields for sql.Scan()
func (r *measurementRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Floor,
		&r.Timestamp,
		&r.X,
		&r.Y,
		&r.BSSID,
		&r.SSID,
		&r.Channel,
		&r.Frequency,
		&r.Signal,
	}
}

// toDomain converts the scanned row to a domain.Measurement
func (r *measurementRow) toDomain() domain.Measurement {
	return domain.Measurement{
		Floor:     r.Floor,
		Timestamp: nullToTime(r.Timestamp),
		X:         r.X,
		Y:         r.Y,
		BSSID:     r.BSSID,
		SSID:      r.SSID,
		Channel:   r.Channel,
		Frequency: r.Frequency,
		Signal:    r.Signal,
	}
}

// measurementInsertArgs prepares arguments for measurement INSERT.
// Order: floor, ts, x, y, bssid, ssid, channel, frequency, signal_dbm
func measurementInsertArgs(floor string, m *domain.Measurement) []interface{} {
	return []interface{}{
		floor,
		timeToNull(m.Timestamp),
		m.X,
		m.Y,
		m.BSSID,
		m.SSID,
		m.Channel,
		m.Frequency,
		m.Signal,
	}
}
