package policy

import (
	"strings"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// ShouldFail reports whether any finding has a severity at or above the
// configured enforcement.fail_on_severity threshold.
//
// It returns false when:
//   - cfg is nil (no policy loaded)
//   - fail_on_severity is empty or an unrecognised value
//   - findings is empty
func ShouldFail(findings []models.Finding, cfg *PolicyConfig) bool {
	if cfg == nil || cfg.Enforcement.FailOnSeverity == "" {
		return false
	}
	threshold := models.Severity(strings.ToUpper(cfg.Enforcement.FailOnSeverity))
	if !validSeverity(string(threshold)) {
		return false
	}
	for _, f := range findings {
		if f.Severity.Rank() <= threshold.Rank() {
			return true
		}
	}
	return false
}
