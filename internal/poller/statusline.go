package poller

import (
	"regexp"
	"strings"
)

// Status lines shown while no job-level progress is available.
const (
	StatusInitializing = "Initializing search..."
	StatusConnecting   = "Connecting to scrapers..."
	StatusScanning     = "Scanning market portals..."
	StatusAnalyzing    = "Analyzing results..."
	StatusRecovering   = "Looking up finished search..."
)

var progressCounter = regexp.MustCompile(`\(\d+/\d+\)`)

// StatusLine derives a human-readable progress line from a task log.
//
// It scans from the newest entry backward for a per-job scraping event: a
// line containing " @ " and either "(" or "Scraping". Progress counters such
// as "(4/10)" are removed from the match. With no such line it reports a
// generic scanning message, or a connecting message when the log is empty.
func StatusLine(logs []string) string {
	if len(logs) == 0 {
		return StatusConnecting
	}
	for i := len(logs) - 1; i >= 0; i-- {
		line := logs[i]
		if !strings.Contains(line, " @ ") {
			continue
		}
		if !strings.Contains(line, "(") && !strings.Contains(line, "Scraping") {
			continue
		}
		cleaned := strings.Join(strings.Fields(progressCounter.ReplaceAllString(line, "")), " ")
		if cleaned != "" {
			return cleaned
		}
	}
	return StatusScanning
}
