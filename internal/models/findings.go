package models

import (
	"strings"
	"time"
)

// Severity represents the risk level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// severityRank orders severities by risk, highest first.
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

// Rank returns the sort position of s, 0 being the most severe.
// Unknown severities sort after INFO.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// FindingState tracks the lifecycle of a finding. A fresh scan only
// ever produces ACTIVE findings.
type FindingState string

const (
	StateActive   FindingState = "ACTIVE"
	StateInactive FindingState = "INACTIVE"
)

// FindingClass categorizes what kind of issue a finding describes.
type FindingClass string

const (
	ClassMisconfiguration FindingClass = "MISCONFIGURATION"
	ClassVulnerability    FindingClass = "VULNERABILITY"
)

// ResourceType identifies the kind of cloud resource a finding refers to.
type ResourceType string

const (
	ResourceInstance ResourceType = "compute.googleapis.com/Instance"
	ResourceCluster  ResourceType = "container.googleapis.com/Cluster"
	ResourceBucket   ResourceType = "storage.googleapis.com/Bucket"
	ResourceFirewall ResourceType = "compute.googleapis.com/Firewall"
	ResourceDatabase ResourceType = "sqladmin.googleapis.com/Instance"
	ResourceProject  ResourceType = "compute.googleapis.com/Project"
)

// Finding is a single detected security misconfiguration.
// It is the atomic output unit of the rule engine and is never
// mutated after creation.
type Finding struct {
	// Name is the stable identifier of the finding. The same resource
	// failing the same rule yields the same Name across runs.
	Name             string       `json:"finding_name"`
	Category         string       `json:"finding_category"`
	Severity         Severity     `json:"finding_severity"`
	State            FindingState `json:"finding_state"`
	Class            FindingClass `json:"finding_class"`
	ResourceName     string       `json:"resource_name"`
	ResourceType     ResourceType `json:"resource_type"`
	ResourceProject  string       `json:"resource_project"`
	ResourceLocation string       `json:"resource_location"`
	Description      string       `json:"finding_description"`
	Remediation      string       `json:"remediation"`
	Compliance       []string     `json:"compliance"`
	ScanTime         string       `json:"scan_time"`
}

// Record flattens the finding into the exported column set. Compliance
// tags are joined with "; " and an unset scan time falls back to now.
func (f Finding) Record() map[string]string {
	scanTime := f.ScanTime
	if scanTime == "" {
		scanTime = time.Now().UTC().Format(time.RFC3339)
	}
	return map[string]string{
		"finding_name":        f.Name,
		"finding_category":    f.Category,
		"finding_severity":    string(f.Severity),
		"finding_state":       string(f.State),
		"finding_class":       string(f.Class),
		"resource_name":       f.ResourceName,
		"resource_type":       string(f.ResourceType),
		"resource_project":    f.ResourceProject,
		"resource_location":   f.ResourceLocation,
		"finding_description": f.Description,
		"remediation":         f.Remediation,
		"compliance":          strings.Join(f.Compliance, "; "),
		"scan_time":           scanTime,
	}
}

// RecordFields lists the flat record columns in export order.
var RecordFields = []string{
	"finding_name",
	"finding_category",
	"finding_severity",
	"finding_state",
	"finding_class",
	"resource_name",
	"resource_type",
	"resource_project",
	"resource_location",
	"finding_description",
	"remediation",
	"compliance",
	"scan_time",
}

// ScanError is a non-fatal failure recorded while scanning. Errors are
// reported alongside findings but never mixed into them.
type ScanError struct {
	Phase      string    `json:"phase"`
	Project    string    `json:"project"`
	Resource   string    `json:"resource,omitempty"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ScanSummary aggregates counts across all findings of a scan.
type ScanSummary struct {
	TotalFindings    int `json:"total_findings"`
	CriticalFindings int `json:"critical_findings"`
	HighFindings     int `json:"high_findings"`
	MediumFindings   int `json:"medium_findings"`
	LowFindings      int `json:"low_findings"`
	InfoFindings     int `json:"info_findings"`
	ProjectsScanned  int `json:"projects_scanned"`
	ErrorCount       int `json:"error_count"`
}

// ScanReport is the top-level output of a scan run.
type ScanReport struct {
	ReportID    string      `json:"report_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	OrgID       string      `json:"org_id,omitempty"`
	Projects    []string    `json:"projects"`
	Summary     ScanSummary `json:"summary"`
	Findings    []Finding   `json:"findings"`
	Errors      []ScanError `json:"errors,omitempty"`
}
