package codec

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"roamscope/internal/domain"
)

const airodumpTimeLayout = "2006-01-02 15:04:05"

// AirodumpCodec parses airodump-ng CSV capture output. The format has
// two sections: an access point table whose header line starts with
// "BSSID", followed by a client table whose header starts with
// "Station MAC". Fields are comma-separated with significant leading
// whitespace, so this is not RFC 4180 CSV.
type AirodumpCodec struct{}

// NewAirodumpCodec creates a new airodump-ng capture codec.
func NewAirodumpCodec() *AirodumpCodec {
	return &AirodumpCodec{}
}

// Format returns the codec format identifier.
func (c *AirodumpCodec) Format() string {
	return "airodump"
}

// Parse reads a full capture file and returns the access points it
// observed. Rows whose signal strength cannot be parsed are dropped;
// airodump reports -1 for APs it heard only indirectly and those rows
// carry no usable power reading either, so they are dropped too.
func (c *AirodumpCodec) Parse(r io.Reader) (*domain.Survey, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}

	apStart, clientStart := -1, -1
	for i, line := range lines {
		if strings.HasPrefix(line, "BSSID") {
			apStart = i
		} else if strings.HasPrefix(line, "Station MAC") {
			clientStart = i
			break
		}
	}
	if apStart < 0 {
		return nil, fmt.Errorf("no access point section found")
	}

	apEnd := len(lines)
	if clientStart > apStart {
		apEnd = clientStart
	}

	survey := domain.NewSurvey("", domain.SourcePi)

	header := splitFields(lines[apStart])
	cols := columnIndex(header)

	for _, line := range lines[apStart+1 : apEnd] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := splitFields(line)
		if len(parts) < len(header) {
			continue
		}

		signal, err := strconv.ParseFloat(cols.field(parts, "Power"), 64)
		if err != nil || signal >= -1 {
			continue
		}

		channel, _ := strconv.Atoi(cols.field(parts, "channel"))
		essid := strings.ReplaceAll(cols.field(parts, "ESSID"), `"`, "")

		obs := domain.NewObservation(cols.field(parts, "BSSID"), essid, channel, signal)
		obs.Privacy = cols.field(parts, "Privacy")
		obs.Cipher = cols.field(parts, "Cipher")
		obs.Auth = cols.field(parts, "Authentication")
		obs.Beacons, _ = strconv.Atoi(cols.field(parts, "# beacons"))
		obs.FirstSeen = parseSeen(cols.field(parts, "First time seen"))
		obs.LastSeen = parseSeen(cols.field(parts, "Last time seen"))

		survey.AddObservation(*obs)
	}

	if clientStart >= 0 {
		survey.StationCount = countStations(lines[clientStart:])
	}

	return survey, nil
}

// splitFields splits an airodump row on commas and trims each field.
func splitFields(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

type columns map[string]int

func columnIndex(header []string) columns {
	cols := make(columns, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func (c columns) field(parts []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(parts) {
		return ""
	}
	return parts[i]
}

func parseSeen(s string) time.Time {
	t, err := time.Parse(airodumpTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func countStations(lines []string) int {
	if len(lines) < 2 {
		return 0
	}
	header := splitFields(lines[0])

	count := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(splitFields(line)) >= len(header) {
			count++
		}
	}
	return count
}

// FloorFromFilename derives the floor name from the capture filename.
// Captures follow the survey_<floor>-<nn>.csv convention that
// airodump-ng produces when given the prefix survey_<floor>; anything
// else maps to "unknown".
func FloorFromFilename(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	rest, ok := strings.CutPrefix(stem, "survey_")
	if !ok || rest == "" {
		return "unknown"
	}

	if i := strings.LastIndex(rest, "-"); i > 0 {
		if _, err := strconv.Atoi(rest[i+1:]); err == nil {
			rest = rest[:i]
		}
	}
	return rest
}
