package policy

// PolicyConfig is the parsed scan policy file. A nil *PolicyConfig means
// no policy: every phase and rule is enabled and enforcement is off.
type PolicyConfig struct {
	Version     int                    `yaml:"version"`
	Phases      map[string]PhaseConfig `yaml:"phases"`
	Rules       map[string]RuleConfig  `yaml:"rules"`
	Enforcement EnforcementConfig      `yaml:"enforcement"`
}

// PhaseConfig enables or disables one scan phase. A phase absent from the
// file stays enabled.
type PhaseConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RuleConfig enables or disables one rule by its category ID. Severity is
// fixed by the rule catalog and cannot be overridden here.
type RuleConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// EnforcementConfig controls the scan exit status. When FailOnSeverity is
// set, a scan whose report contains at least one finding at or above that
// severity exits non-zero.
type EnforcementConfig struct {
	FailOnSeverity string `yaml:"fail_on_severity,omitempty"`
}
