// Command analyze runs the survey analysis pipeline offline, without a
// server or database. It reads airodump-ng captures from a directory
// and writes a building report to stdout or a file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"roamscope/internal/codec"
	"roamscope/internal/config"
	"roamscope/internal/domain"
)

func main() {
	dir := flag.String("dir", ".", "directory containing survey_*.csv captures")
	ssid := flag.String("ssid", "", "target SSID for the focused analysis")
	threshold := flag.Float64("threshold", domain.DefaultHandoverThreshold, "handover signal threshold in dBm")
	format := flag.String("format", "json", "output format: json or yaml")
	out := flag.String("out", "", "output file (default stdout)")
	configPath := flag.String("config", "", "config file with reference baselines for validation")
	flag.Parse()

	log.SetFlags(0)

	report, err := analyzeDir(*dir, *ssid, *threshold)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	if *configPath != "" {
		cfg, _, err := config.LoadFromPath(*configPath)
		if err != nil {
			log.Fatalf("analyze: %v", err)
		}
		validate(report, cfg, *ssid)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("analyze: %v", err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "json":
		err = codec.NewJSONCodec().ExportBuilding(report, w)
	case "yaml":
		err = codec.NewYAMLCodec().ExportBuilding(report, w)
	default:
		err = fmt.Errorf("unsupported format %q", *format)
	}
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}
}

// analyzeDir parses every capture in dir, keeping the richest capture
// per floor, and rolls the per-floor analyses into a building report.
func analyzeDir(dir, ssid string, threshold float64) (*domain.BuildingReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	parser := codec.NewAirodumpCodec()
	surveys := make(map[string]*domain.Survey)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "survey_") || !strings.HasSuffix(name, ".csv") {
			continue
		}

		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		survey, err := parser.Parse(f)
		f.Close()
		if err != nil {
			log.Printf("skipping %s: %v", name, err)
			continue
		}

		floor := codec.FloorFromFilename(name)
		survey.Floor = floor

		// Multiple captures per floor keep the one that saw the most APs.
		if prev, ok := surveys[floor]; !ok || len(survey.Observations) > len(prev.Observations) {
			surveys[floor] = survey
		}
	}

	if len(surveys) == 0 {
		return nil, fmt.Errorf("no captures found in %s", dir)
	}

	floors := make([]string, 0, len(surveys))
	for floor := range surveys {
		floors = append(floors, floor)
	}
	sort.Strings(floors)

	analyses := make([]domain.FloorAnalysis, 0, len(floors))
	for _, floor := range floors {
		analysis := domain.AnalyzeFloor(surveys[floor], nil, ssid, threshold)
		log.Printf("%s: %d APs, %d networks, avg %.1f dBm",
			floor, analysis.Summary.TotalAPs, analysis.Summary.UniqueESSIDs, analysis.Summary.AvgSignal)
		analyses = append(analyses, analysis)
	}

	report := domain.BuildReport(analyses)
	return &report, nil
}

// validate grades each analyzed floor against the reference baselines
// from the config file and logs the verdicts.
func validate(report *domain.BuildingReport, cfg *config.Config, ssid string) {
	var results []domain.ValidationResult
	for _, f := range report.Floors {
		baseline, ok := cfg.BaselineFor(f.Floor)
		if !ok {
			continue
		}

		target := f.TargetSummary
		if ssid == "" {
			target = f.Summary
		}

		result := domain.Validate(f.Floor, f.Summary, target, baseline)
		log.Printf("%s: signal diff %.1f dBm (%s), bssid match %.0f%%, overall %s",
			f.Floor, result.SignalDiff, result.SignalVerdict, result.BSSIDMatchPct, result.OverallVerdict)
		results = append(results, result)
	}

	if len(results) == 0 {
		log.Printf("validation: no floors with baselines")
		return
	}

	summary := domain.SummarizeValidation(results)
	log.Printf("validation: avg signal diff %.1f dBm, avg bssid match %.0f%%, verdict %s",
		summary.AvgSignalDiff, summary.AvgBSSIDMatch, summary.Verdict)
}
