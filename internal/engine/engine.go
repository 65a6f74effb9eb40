package engine

import (
	"context"
	"errors"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/policy"
	gcpcompute "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/compute"
	gcpcontainer "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/container"
	gcpsql "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/sql"
	gcpstorage "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/storage"
)

// ScanPhase identifies one stage of the scan pipeline. The five resource
// phases run in the fixed order compute, cluster, storage, firewall,
// database; each starts only after the previous one has drained.
type ScanPhase string

const (
	PhaseDiscovery ScanPhase = "discovery"
	PhaseCompute   ScanPhase = "compute"
	PhaseCluster   ScanPhase = "cluster"
	PhaseStorage   ScanPhase = "storage"
	PhaseFirewall  ScanPhase = "firewall"
	PhaseDatabase  ScanPhase = "database"
)

// DefaultMaxWorkers bounds per-phase concurrency when ScanOptions does not.
const DefaultMaxWorkers = 10

// ErrNoScanTarget is returned when neither an organization ID nor an
// explicit project list is supplied. It is the only fatal configuration
// error; everything else degrades into the report's error list.
var ErrNoScanTarget = errors.New("no scan target: provide an organization ID or explicit project IDs")

// Collectors bundles the per-phase resource collectors.
// All fields are interfaces; swap any with a fake in tests.
type Collectors struct {
	Instances gcpcompute.InstanceCollector
	Firewalls gcpcompute.FirewallCollector
	Clusters  gcpcontainer.ClusterCollector
	Buckets   gcpstorage.BucketCollector
	Databases gcpsql.InstanceCollector
}

// ScanOptions configures a single scan run.
// It is the sole input to Engine.Scan.
type ScanOptions struct {
	// OrgID is the numeric organization to discover projects under.
	// Ignored when Projects is non-empty.
	OrgID string

	// Projects is an explicit list of project IDs to scan. When set,
	// discovery is skipped entirely.
	Projects []string

	// MaxWorkers bounds the number of concurrent per-project tasks within
	// a phase. Defaults to DefaultMaxWorkers when zero or negative.
	MaxWorkers int

	// Policy optionally disables phases or individual rules. Nil means
	// everything enabled.
	Policy *policy.PolicyConfig

	// Progress receives phase totals and task completion events. Nil
	// disables progress reporting.
	Progress ProgressListener
}

// Engine is the central orchestration interface.
// It coordinates project discovery, per-phase collection, rule evaluation,
// and report assembly, returning a fully populated ScanReport.
//
// Engine must not call GCP clients directly; it delegates to the collector
// interfaces.
type Engine interface {
	Scan(ctx context.Context, opts ScanOptions) (*models.ScanReport, error)
}
