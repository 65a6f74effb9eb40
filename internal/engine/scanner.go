package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/policy"
	gcprm "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/resourcemanager"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/rules"
)

// SecurityScanner is the production implementation of Engine.
// It coordinates discovery, per-phase collection, rule evaluation, and
// report assembly. A single SecurityScanner is reusable; every Scan call
// carries its own run state.
type SecurityScanner struct {
	discoverer gcprm.ProjectDiscoverer
	collectors Collectors
	logger     *zap.Logger
}

// NewSecurityScanner constructs a SecurityScanner wired to the supplied
// discoverer and collector bundle. A nil logger is replaced with a no-op
// logger.
func NewSecurityScanner(discoverer gcprm.ProjectDiscoverer, collectors Collectors, logger *zap.Logger) *SecurityScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityScanner{
		discoverer: discoverer,
		collectors: collectors,
		logger:     logger,
	}
}

// scanRun holds the mutable state of a single Scan call.
type scanRun struct {
	findings *FindingSink
	errors   *ErrorSink
	progress *Progress
}

// phase binds a ScanPhase to the task that scans one project during it.
// Task functions never return errors: every failure is absorbed into the
// run's error sink so one project cannot abort its siblings.
type phase struct {
	key   ScanPhase
	label string
	scan  func(ctx context.Context, run *scanRun, project string)
}

// phases returns the pipeline in its fixed execution order.
func (s *SecurityScanner) phases() []phase {
	return []phase{
		{key: PhaseCompute, label: "Compute Instances", scan: s.scanCompute},
		{key: PhaseCluster, label: "GKE Clusters", scan: s.scanCluster},
		{key: PhaseStorage, label: "Storage Buckets", scan: s.scanStorage},
		{key: PhaseFirewall, label: "Firewall Rules", scan: s.scanFirewall},
		{key: PhaseDatabase, label: "Cloud SQL Instances", scan: s.scanDatabase},
	}
}

// Scan implements Engine.
//
// Flow:
//  1. Validate the target: no org and no explicit projects is the only
//     fatal error.
//  2. Resolve targets: the explicit list wins; otherwise discover active
//     projects under the org. Discovery failure is recorded non-fatally
//     and yields an empty target list.
//  3. Zero targets produce a finished, empty report.
//  4. Each enabled phase fans out one task per project on a bounded pool
//     and drains before the next phase starts.
//  5. The report is assembled from the sinks: policy rule-disables applied,
//     findings sorted, summary computed, errors attached.
func (s *SecurityScanner) Scan(ctx context.Context, opts ScanOptions) (*models.ScanReport, error) {
	if opts.OrgID == "" && len(opts.Projects) == 0 {
		return nil, ErrNoScanTarget
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}

	run := &scanRun{
		findings: NewFindingSink(),
		errors:   NewErrorSink(s.logger),
		progress: NewProgress(opts.Progress),
	}
	defer run.progress.Close()

	projects := s.resolveTargets(ctx, opts, run)
	if len(projects) == 0 {
		return buildReport(opts.OrgID, projects, nil, run.errors.Items()), nil
	}

	for _, ph := range s.phases() {
		if !policy.PhaseEnabled(opts.Policy, string(ph.key)) {
			s.logger.Info("phase disabled by policy", zap.String("phase", string(ph.key)))
			continue
		}
		run.progress.SetTotal(len(projects), ph.label)
		if err := s.runPhase(ctx, run, ph, projects, maxWorkers); err != nil {
			return nil, err
		}
	}

	findings := policy.ApplyPolicy(run.findings.Items(), opts.Policy)
	return buildReport(opts.OrgID, projects, findings, run.errors.Items()), nil
}

// resolveTargets returns the explicit project list when provided, otherwise
// discovers active projects under the organization. A discovery failure is
// recorded as a scan error and yields an empty target list, which the
// caller reports as an empty scan.
func (s *SecurityScanner) resolveTargets(ctx context.Context, opts ScanOptions, run *scanRun) []string {
	if len(opts.Projects) > 0 {
		return opts.Projects
	}

	projects, err := s.discoverer.Discover(ctx, opts.OrgID)
	if err != nil {
		run.errors.Record(PhaseDiscovery, "", "organizations/"+opts.OrgID, err)
		return nil
	}
	return projects
}

// runPhase fans out one task per project on a pool bounded by maxWorkers
// and waits for the pool to drain. Task failures never surface here; the
// only error a phase returns is the context's, when the scan is cancelled.
func (s *SecurityScanner) runPhase(ctx context.Context, run *scanRun, ph phase, projects []string, maxWorkers int) error {
	sem := make(chan struct{}, maxWorkers)
	g, gctx := errgroup.WithContext(ctx)

PROJECTS:
	for _, project := range projects {
		select {
		case sem <- struct{}{}: // acquire semaphore slot; blocks when at capacity
		case <-gctx.Done():
			break PROJECTS // scan cancelled
		}

		g.Go(func() error {
			defer func() { <-sem }() // release semaphore slot on return
			defer run.progress.Increment(1)
			defer func() {
				if r := recover(); r != nil {
					run.errors.Recordf(ph.key, project, "", "%s task panic: %v", ph.key, r)
				}
			}()

			ph.scan(gctx, run, project)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s phase: %w", ph.key, err)
	}
	return ctx.Err()
}

// ---------------------------------------------------------------------------
// Per-phase project tasks
//
// Each task collects the project's snapshots and evaluates them one by
// one. A collector failure sinks the error and yields zero findings for
// the project and phase; an evaluator defect is scoped to its resource.
// ---------------------------------------------------------------------------

func (s *SecurityScanner) scanCompute(ctx context.Context, run *scanRun, project string) {
	instances, err := s.collectors.Instances.ListInstances(ctx, project)
	if err != nil {
		run.errors.Record(PhaseCompute, project, "", err)
		return
	}

	for _, inst := range instances {
		findings, err := rules.EvaluateComputeInstance(project, inst)
		if err != nil {
			run.errors.Record(PhaseCompute, project, inst.Name, err)
			continue
		}
		run.findings.Add(findings...)
	}
}

func (s *SecurityScanner) scanCluster(ctx context.Context, run *scanRun, project string) {
	clusters, err := s.collectors.Clusters.ListClusters(ctx, project)
	if err != nil {
		run.errors.Record(PhaseCluster, project, "", err)
		return
	}

	for _, cluster := range clusters {
		findings, err := rules.EvaluateGKECluster(project, cluster)
		if err != nil {
			run.errors.Record(PhaseCluster, project, cluster.Name, err)
			continue
		}
		run.findings.Add(findings...)
	}
}

func (s *SecurityScanner) scanStorage(ctx context.Context, run *scanRun, project string) {
	buckets, err := s.collectors.Buckets.ListBuckets(ctx, project)
	if err != nil {
		run.errors.Record(PhaseStorage, project, "", err)
		return
	}

	for _, bucket := range buckets {
		findings, err := rules.EvaluateStorageBucket(project, bucket)
		if err != nil {
			run.errors.Record(PhaseStorage, project, bucket.Name, err)
			continue
		}
		run.findings.Add(findings...)
	}
}

// scanFirewall evaluates each rule individually, then closes the phase
// with the project-level egress coverage check over the full rule set.
func (s *SecurityScanner) scanFirewall(ctx context.Context, run *scanRun, project string) {
	firewalls, err := s.collectors.Firewalls.ListFirewalls(ctx, project)
	if err != nil {
		run.errors.Record(PhaseFirewall, project, "", err)
		return
	}

	for _, fw := range firewalls {
		findings, err := rules.EvaluateFirewallRule(project, fw)
		if err != nil {
			run.errors.Record(PhaseFirewall, project, fw.Name, err)
			continue
		}
		run.findings.Add(findings...)
	}

	run.findings.Add(rules.EvaluateProjectEgress(project, firewalls)...)
}

func (s *SecurityScanner) scanDatabase(ctx context.Context, run *scanRun, project string) {
	instances, err := s.collectors.Databases.ListInstances(ctx, project)
	if err != nil {
		run.errors.Record(PhaseDatabase, project, "", err)
		return
	}

	for _, inst := range instances {
		findings, err := rules.EvaluateSQLInstance(project, inst)
		if err != nil {
			run.errors.Record(PhaseDatabase, project, inst.Name, err)
			continue
		}
		run.findings.Add(findings...)
	}
}
