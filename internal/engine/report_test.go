package engine

import (
	"strings"
	"testing"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// reportFinding constructs a Finding with the fields the sorter keys on.
func reportFinding(resource, category string, sev models.Severity) models.Finding {
	f := sinkFinding(resource, sev)
	f.Category = category
	return f
}

// ── buildReport ───────────────────────────────────────────────────────────────

func TestBuildReport_IDPrefixAndUniqueness(t *testing.T) {
	a := buildReport("", []string{"proj-a"}, nil, nil)
	b := buildReport("", []string{"proj-a"}, nil, nil)

	if !strings.HasPrefix(a.ReportID, "scan-") {
		t.Errorf("ReportID = %q; want scan- prefix", a.ReportID)
	}
	if a.ReportID == b.ReportID {
		t.Errorf("two reports share ReportID %q; want unique IDs", a.ReportID)
	}
	if a.GeneratedAt.IsZero() {
		t.Error("GeneratedAt must be set")
	}
}

func TestBuildReport_AttachesProjectsAndErrors(t *testing.T) {
	errs := []models.ScanError{{Phase: string(PhaseCompute), Project: "proj-b", Message: "denied"}}
	report := buildReport("123456789", []string{"proj-a", "proj-b"}, nil, errs)

	if report.OrgID != "123456789" {
		t.Errorf("OrgID = %q; want 123456789", report.OrgID)
	}
	if len(report.Projects) != 2 {
		t.Errorf("len(Projects) = %d; want 2", len(report.Projects))
	}
	if len(report.Errors) != 1 {
		t.Fatalf("len(Errors) = %d; want 1", len(report.Errors))
	}
	if report.Summary.ErrorCount != 1 {
		t.Errorf("Summary.ErrorCount = %d; want 1", report.Summary.ErrorCount)
	}
	if report.Summary.ProjectsScanned != 2 {
		t.Errorf("Summary.ProjectsScanned = %d; want 2", report.Summary.ProjectsScanned)
	}
}

func TestBuildReport_EmptyScan(t *testing.T) {
	report := buildReport("123456789", nil, nil, nil)

	if report.Summary.TotalFindings != 0 {
		t.Errorf("TotalFindings = %d; want 0", report.Summary.TotalFindings)
	}
	if len(report.Findings) != 0 {
		t.Errorf("len(Findings) = %d; want 0", len(report.Findings))
	}
}

// ── sortFindings ──────────────────────────────────────────────────────────────

func TestSortFindings_SeverityOrder(t *testing.T) {
	findings := []models.Finding{
		reportFinding("r1", "RULE_A", models.SeverityInfo),
		reportFinding("r2", "RULE_B", models.SeverityLow),
		reportFinding("r3", "RULE_C", models.SeverityCritical),
		reportFinding("r4", "RULE_D", models.SeverityMedium),
		reportFinding("r5", "RULE_E", models.SeverityHigh),
	}

	sortFindings(findings)

	wantOrder := []models.Severity{
		models.SeverityCritical,
		models.SeverityHigh,
		models.SeverityMedium,
		models.SeverityLow,
		models.SeverityInfo,
	}
	for i, want := range wantOrder {
		if findings[i].Severity != want {
			t.Errorf("findings[%d].Severity = %q; want %q", i, findings[i].Severity, want)
		}
	}
}

func TestSortFindings_TiesBreakOnResourceThenCategory(t *testing.T) {
	findings := []models.Finding{
		reportFinding("vm-b", "RULE_Z", models.SeverityHigh),
		reportFinding("vm-a", "RULE_Z", models.SeverityHigh),
		reportFinding("vm-a", "RULE_A", models.SeverityHigh),
	}

	sortFindings(findings)

	if findings[0].ResourceName != "vm-a" || findings[0].Category != "RULE_A" {
		t.Errorf("findings[0] = %s/%s; want vm-a/RULE_A", findings[0].ResourceName, findings[0].Category)
	}
	if findings[1].ResourceName != "vm-a" || findings[1].Category != "RULE_Z" {
		t.Errorf("findings[1] = %s/%s; want vm-a/RULE_Z", findings[1].ResourceName, findings[1].Category)
	}
	if findings[2].ResourceName != "vm-b" {
		t.Errorf("findings[2].ResourceName = %q; want vm-b", findings[2].ResourceName)
	}
}

func TestSortFindings_StableOnEqualKeys(t *testing.T) {
	// Two findings with identical sort keys but distinct projects must keep
	// their input order.
	first := reportFinding("vm-a", "RULE_A", models.SeverityHigh)
	first.ResourceProject = "proj-1"
	second := reportFinding("vm-a", "RULE_A", models.SeverityHigh)
	second.ResourceProject = "proj-2"

	findings := []models.Finding{first, second}
	sortFindings(findings)

	if findings[0].ResourceProject != "proj-1" || findings[1].ResourceProject != "proj-2" {
		t.Errorf("equal-key findings reordered: got [%s %s]; want [proj-1 proj-2]",
			findings[0].ResourceProject, findings[1].ResourceProject)
	}
}

// ── computeSummary ────────────────────────────────────────────────────────────

func TestComputeSummary_CountsEverySeverity(t *testing.T) {
	findings := []models.Finding{
		reportFinding("r1", "A", models.SeverityCritical),
		reportFinding("r2", "B", models.SeverityCritical),
		reportFinding("r3", "C", models.SeverityHigh),
		reportFinding("r4", "D", models.SeverityMedium),
		reportFinding("r5", "E", models.SeverityLow),
		reportFinding("r6", "F", models.SeverityInfo),
	}
	errs := []models.ScanError{{Phase: string(PhaseStorage), Project: "proj-a", Message: "bucket list failed"}}

	s := computeSummary(findings, []string{"proj-a", "proj-b", "proj-c"}, errs)

	if s.TotalFindings != 6 {
		t.Errorf("TotalFindings = %d; want 6", s.TotalFindings)
	}
	if s.CriticalFindings != 2 {
		t.Errorf("CriticalFindings = %d; want 2", s.CriticalFindings)
	}
	if s.HighFindings != 1 {
		t.Errorf("HighFindings = %d; want 1", s.HighFindings)
	}
	if s.MediumFindings != 1 {
		t.Errorf("MediumFindings = %d; want 1", s.MediumFindings)
	}
	if s.LowFindings != 1 {
		t.Errorf("LowFindings = %d; want 1", s.LowFindings)
	}
	if s.InfoFindings != 1 {
		t.Errorf("InfoFindings = %d; want 1", s.InfoFindings)
	}
	if s.ProjectsScanned != 3 {
		t.Errorf("ProjectsScanned = %d; want 3", s.ProjectsScanned)
	}
	if s.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d; want 1", s.ErrorCount)
	}
}
