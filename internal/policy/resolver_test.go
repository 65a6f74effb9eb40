package policy

import (
	"testing"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestPhaseEnabled_NilConfig(t *testing.T) {
	if !PhaseEnabled(nil, "compute") {
		t.Fatalf("nil cfg must enable every phase")
	}
}

func TestPhaseEnabled_AbsentPhaseEnabled(t *testing.T) {
	cfg := &PolicyConfig{
		Phases: map[string]PhaseConfig{
			"firewall": {Enabled: false},
		},
	}

	if !PhaseEnabled(cfg, "compute") {
		t.Fatalf("phase absent from policy must stay enabled")
	}
}

func TestPhaseEnabled_DisabledPhase(t *testing.T) {
	cfg := &PolicyConfig{
		Phases: map[string]PhaseConfig{
			"firewall": {Enabled: false},
		},
	}

	if PhaseEnabled(cfg, "firewall") {
		t.Fatalf("phase with enabled=false must be disabled")
	}
}

func TestRuleEnabled_DefaultsToEnabled(t *testing.T) {
	cfg := &PolicyConfig{Rules: map[string]RuleConfig{}}

	if !RuleEnabled(cfg, "OPEN_SSH_PORT") {
		t.Fatalf("rule absent from policy must stay enabled")
	}
}

func TestApplyPolicy_RuleDisabled(t *testing.T) {
	cfg := &PolicyConfig{
		Rules: map[string]RuleConfig{
			"OPEN_SSH_PORT": {Enabled: boolPtr(false)},
		},
	}

	findings := []models.Finding{
		{Category: "OPEN_SSH_PORT"},
		{Category: "OPEN_RDP_PORT"},
	}

	result := ApplyPolicy(findings, cfg)

	if len(result) != 1 {
		t.Fatalf("expected one finding remaining")
	}
	if result[0].Category != "OPEN_RDP_PORT" {
		t.Fatalf("wrong finding kept")
	}
}

func TestApplyPolicy_ExplicitEnableKept(t *testing.T) {
	cfg := &PolicyConfig{
		Rules: map[string]RuleConfig{
			"OPEN_SSH_PORT": {Enabled: boolPtr(true)},
		},
	}

	findings := []models.Finding{
		{Category: "OPEN_SSH_PORT"},
	}

	result := ApplyPolicy(findings, cfg)

	if len(result) != 1 {
		t.Fatalf("explicitly enabled rule must be kept")
	}
}

func TestApplyPolicy_NoPolicy(t *testing.T) {
	findings := []models.Finding{
		{Category: "OPEN_SSH_PORT"},
	}

	result := ApplyPolicy(findings, nil)

	if len(result) != 1 {
		t.Fatalf("nil policy should not modify findings")
	}
}

func TestApplyPolicy_InputNotModified(t *testing.T) {
	cfg := &PolicyConfig{
		Rules: map[string]RuleConfig{
			"OPEN_SSH_PORT": {Enabled: boolPtr(false)},
		},
	}

	findings := []models.Finding{
		{Category: "OPEN_SSH_PORT"},
		{Category: "OPEN_RDP_PORT"},
	}

	ApplyPolicy(findings, cfg)

	if findings[0].Category != "OPEN_SSH_PORT" || findings[1].Category != "OPEN_RDP_PORT" {
		t.Fatalf("ApplyPolicy must not modify its input slice")
	}
}
