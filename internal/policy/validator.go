package policy

import (
	"fmt"
	"strings"
)

// validPhases is the set of recognised scan phase names.
var validPhases = map[string]struct{}{
	"compute":  {},
	"cluster":  {},
	"storage":  {},
	"firewall": {},
	"database": {},
}

// validSeverities is the set of allowed severity strings (upper-case canonical form).
var validSeverities = map[string]struct{}{
	"CRITICAL": {},
	"HIGH":     {},
	"MEDIUM":   {},
	"LOW":      {},
	"INFO":     {},
}

func validSeverity(s string) bool {
	_, ok := validSeverities[strings.ToUpper(s)]
	return ok
}

// Validate checks cfg for semantic correctness and returns every problem
// found. Hard errors make the policy unusable; warnings flag entries that
// have no effect (an unknown rule ID is a warning so a policy written for a
// newer rule catalog still loads).
//
// Checks performed:
//   - version must be 1
//   - phase names must be one of: compute, cluster, storage, firewall, database
//   - enforcement fail_on_severity must be a valid severity value if set
//   - rule IDs should appear in availableRuleIDs (warning otherwise)
//
// All problems are collected before returning; Validate never stops at the
// first error.
func Validate(cfg *PolicyConfig, availableRuleIDs []string) (errs []error, warnings []string) {
	if cfg == nil {
		return []error{fmt.Errorf("policy config is nil")}, nil
	}

	// Build a lookup set for fast rule ID membership tests.
	knownIDs := make(map[string]struct{}, len(availableRuleIDs))
	for _, id := range availableRuleIDs {
		knownIDs[id] = struct{}{}
	}

	// Version check.
	if cfg.Version != 1 {
		errs = append(errs, fmt.Errorf("version: unsupported value %d; must be 1", cfg.Version))
	}

	// Phase checks.
	for name := range cfg.Phases {
		if _, ok := validPhases[name]; !ok {
			errs = append(errs, fmt.Errorf("phases.%s: unknown phase; valid values: compute, cluster, storage, firewall, database", name))
		}
	}

	// Rule checks.
	for ruleID := range cfg.Rules {
		if _, ok := knownIDs[ruleID]; !ok {
			warnings = append(warnings, fmt.Sprintf("rules.%s: unknown rule ID; entry has no effect", ruleID))
		}
	}

	// Enforcement checks.
	if fos := cfg.Enforcement.FailOnSeverity; fos != "" && !validSeverity(fos) {
		errs = append(errs, fmt.Errorf("enforcement.fail_on_severity: invalid value %q; valid values: CRITICAL, HIGH, MEDIUM, LOW, INFO", fos))
	}

	return errs, warnings
}
