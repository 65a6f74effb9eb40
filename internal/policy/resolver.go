package policy

import (
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// PhaseEnabled reports whether the named scan phase should run. Phases not
// mentioned in the policy are enabled; a nil cfg enables everything.
func PhaseEnabled(cfg *PolicyConfig, phase string) bool {
	if cfg == nil {
		return true
	}
	if p, ok := cfg.Phases[phase]; ok {
		return p.Enabled
	}
	return true
}

// RuleEnabled reports whether the rule identified by its category ID should
// fire. Rules not mentioned in the policy are enabled.
func RuleEnabled(cfg *PolicyConfig, category string) bool {
	if cfg == nil {
		return true
	}
	rc, ok := cfg.Rules[category]
	if !ok || rc.Enabled == nil {
		return true
	}
	return *rc.Enabled
}

// ApplyPolicy drops findings whose rule the policy disables. The input
// slice is not modified.
func ApplyPolicy(findings []models.Finding, cfg *PolicyConfig) []models.Finding {
	if cfg == nil {
		return findings
	}

	var result []models.Finding
	for _, f := range findings {
		if !RuleEnabled(cfg, f.Category) {
			continue
		}
		result = append(result, f)
	}
	return result
}
