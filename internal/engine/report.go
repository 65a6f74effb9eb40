package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// buildReport assembles the final scan report from the run's outputs.
// Findings are sorted in place; callers pass slices they own.
func buildReport(orgID string, projects []string, findings []models.Finding, errs []models.ScanError) *models.ScanReport {
	sortFindings(findings)

	return &models.ScanReport{
		ReportID:    "scan-" + uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		OrgID:       orgID,
		Projects:    projects,
		Summary:     computeSummary(findings, projects, errs),
		Findings:    findings,
		Errors:      errs,
	}
}

// sortFindings orders findings by severity (most severe first), then
// resource name, then category. The sort is stable so equal keys keep
// their evaluation order.
func sortFindings(findings []models.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.ResourceName != b.ResourceName {
			return a.ResourceName < b.ResourceName
		}
		return a.Category < b.Category
	})
}

// computeSummary tallies findings per severity and attaches run-level
// counts.
func computeSummary(findings []models.Finding, projects []string, errs []models.ScanError) models.ScanSummary {
	summary := models.ScanSummary{
		TotalFindings:   len(findings),
		ProjectsScanned: len(projects),
		ErrorCount:      len(errs),
	}

	for _, f := range findings {
		switch f.Severity {
		case models.SeverityCritical:
			summary.CriticalFindings++
		case models.SeverityHigh:
			summary.HighFindings++
		case models.SeverityMedium:
			summary.MediumFindings++
		case models.SeverityLow:
			summary.LowFindings++
		case models.SeverityInfo:
			summary.InfoFindings++
		}
	}

	return summary
}
