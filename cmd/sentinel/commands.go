package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/catalog"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/engine"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/export"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/output"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/policy"
	gcpcompute "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/compute"
	gcpcontainer "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/container"
	gcprm "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/resourcemanager"
	gcpsql "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/sql"
	gcpstorage "github.com/pankaj-dahiya-devops/gcp-sentinel/internal/providers/gcp/storage"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sentinel",
		Short: "Scan GCP organizations and projects for security misconfigurations",
	}
	root.AddCommand(newScanCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newScanCmd() *cobra.Command {
	var (
		orgID      string
		projectIDs []string
		maxWorkers int
		outFile    string
		policyPath string
		format     string
		errorsLog  string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a security scan against GCP projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			policyCfg, err := loadScanPolicy(cmd.ErrOrStderr(), policyPath)
			if err != nil {
				return err
			}

			logger, err := newErrorLogger(errorsLog)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			scanner, cleanup, err := newLiveScanner(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("initialise GCP clients: %w", err)
			}
			defer cleanup()

			opts := engine.ScanOptions{
				OrgID:      orgID,
				Projects:   projectIDs,
				MaxWorkers: maxWorkers,
				Policy:     policyCfg,
			}
			if !noProgress {
				opts.Progress = output.NewConsoleProgress(cmd.ErrOrStderr())
			}

			started := time.Now()
			report, err := scanner.Scan(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if err := renderScanResult(cmd.OutOrStdout(), report, format, outFile, errorsLog, time.Since(started)); err != nil {
				return err
			}

			if policy.ShouldFail(report.Findings, policyCfg) {
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org-id", "", "Numeric organization ID to discover projects under")
	cmd.Flags().StringSliceVar(&projectIDs, "project-ids", nil, "Explicit project ID(s) to scan (skips discovery)")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", engine.DefaultMaxWorkers, "Concurrent per-project tasks within a phase")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "CSV export path (default: security_findings_<timestamp>.csv)")
	cmd.Flags().StringVar(&policyPath, "policy", "", "Path to a scan policy YAML file")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or summary")
	cmd.Flags().StringVar(&errorsLog, "errors-log", "scanner_errors.log", "Path of the structured scan error log")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the live progress bar")

	return cmd
}

func newRulesCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the rule catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRules(cmd.OutOrStdout(), outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: json or table")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// loadScanPolicy loads and validates the policy file at path. An empty path
// means no policy: everything stays enabled. Validation warnings are printed
// to w; validation errors abort the scan before any client is built.
func loadScanPolicy(w io.Writer, path string) (*policy.PolicyConfig, error) {
	if path == "" {
		return nil, nil
	}

	cfg, err := policy.LoadPolicy(path)
	if err != nil {
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}

	errs, warnings := policy.Validate(cfg, catalog.IDs())
	for _, warning := range warnings {
		fmt.Fprintf(w, "policy warning: %s\n", warning)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid policy %s: %w", path, errors.Join(errs...))
	}
	return cfg, nil
}

// newErrorLogger builds the JSON file logger that receives every scan error
// recorded during the run. The file is created if missing and appended to
// across runs.
func newErrorLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open error log %s: %w", path, err)
	}
	return logger, nil
}

// newLiveScanner wires a SecurityScanner to real GCP clients. The returned
// cleanup closes every client that was opened, in reverse order; it is safe
// to call even when construction failed partway.
func newLiveScanner(ctx context.Context, logger *zap.Logger) (*engine.SecurityScanner, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	discoverer, err := gcprm.NewDefaultProjectDiscoverer(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("resource manager client: %w", err)
	}
	closers = append(closers, discoverer.Close)

	instances, err := gcpcompute.NewDefaultInstanceCollector(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("compute instances client: %w", err)
	}
	closers = append(closers, instances.Close)

	firewalls, err := gcpcompute.NewDefaultFirewallCollector(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("compute firewalls client: %w", err)
	}
	closers = append(closers, firewalls.Close)

	clusters, err := gcpcontainer.NewDefaultClusterCollector(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("container client: %w", err)
	}
	closers = append(closers, clusters.Close)

	buckets, err := gcpstorage.NewDefaultBucketCollector(ctx, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("storage client: %w", err)
	}
	closers = append(closers, buckets.Close)

	databases, err := gcpsql.NewDefaultInstanceCollector(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("sqladmin client: %w", err)
	}

	collectors := engine.Collectors{
		Instances: instances,
		Firewalls: firewalls,
		Clusters:  clusters,
		Buckets:   buckets,
		Databases: databases,
	}
	return engine.NewSecurityScanner(discoverer, collectors, logger), cleanup, nil
}

// renderScanResult writes the report to w in the requested format and, when
// findings exist, exports them to CSV. The json format emits only the report
// so the output stays machine-parseable; table and summary formats follow the
// summary with the export path, the scan duration, and the error-log pointer.
func renderScanResult(w io.Writer, report *models.ScanReport, format, outFile, errorsLog string, elapsed time.Duration) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if len(report.Findings) == 0 {
			return nil
		}
		_, err := exportFindings(report.Findings, outFile)
		return err
	}

	printSummary(w, report)

	if format != "summary" && len(report.Findings) > 0 {
		fmt.Fprintln(w)
		output.RenderTable(w, report.Findings, output.TableOptions{
			Colored:        true,
			IncludeProject: len(report.Projects) > 1,
		})
	}

	fmt.Fprintln(w)
	if len(report.Findings) > 0 {
		path, err := exportFindings(report.Findings, outFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Results exported to: %s\n", path)
	} else {
		fmt.Fprintln(w, "No findings detected.")
	}
	fmt.Fprintf(w, "Scan completed in %.1f seconds\n", elapsed.Seconds())
	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "%d scan errors logged to: %s\n", len(report.Errors), errorsLog)
	}
	return nil
}

// exportFindings writes findings to a CSV file, deriving a timestamped
// filename when path is empty, and returns the path written.
func exportFindings(findings []models.Finding, path string) (string, error) {
	if path == "" {
		path = export.DefaultFilename(time.Now())
	}
	if err := export.ExportCSV(path, findings); err != nil {
		return "", err
	}
	return path, nil
}

// printSummary renders the post-scan summary block to w:
//   - Projects scanned, total findings, scan error count
//   - Per-severity finding counts
//   - Finding counts grouped by resource type
//   - The ten most frequent finding categories
//
// It reuses the already-computed ScanSummary; no engine logic is duplicated.
func printSummary(w io.Writer, report *models.ScanReport) {
	s := report.Summary
	banner := strings.Repeat("=", 60)

	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "SCAN SUMMARY")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Projects Scanned:  %d\n", s.ProjectsScanned)
	fmt.Fprintf(w, "Total Findings:    %d\n", s.TotalFindings)
	fmt.Fprintf(w, "Scan Errors:       %d\n", s.ErrorCount)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Severity Breakdown")
	fmt.Fprintf(w, "  %-10s  %d\n", "CRITICAL", s.CriticalFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "HIGH", s.HighFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "MEDIUM", s.MediumFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "LOW", s.LowFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "INFO", s.InfoFindings)

	if len(report.Findings) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Findings by Resource Type")
	for _, kc := range countBy(report.Findings, func(f models.Finding) string {
		return output.ResourceDisplayName(string(f.ResourceType))
	}) {
		fmt.Fprintf(w, "  %-20s  %d\n", kc.key, kc.count)
	}

	top := countBy(report.Findings, func(f models.Finding) string { return f.Category })
	if len(top) > 10 {
		top = top[:10]
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top Finding Categories")
	for _, kc := range top {
		fmt.Fprintf(w, "  %-45s  %d\n", kc.key, kc.count)
	}
}

// keyCount pairs a grouping key with the number of findings under it.
type keyCount struct {
	key   string
	count int
}

// countBy groups findings by key and returns the counts ordered by count
// descending, ties broken by key ascending.
func countBy(findings []models.Finding, key func(models.Finding) string) []keyCount {
	counts := make(map[string]int)
	for _, f := range findings {
		counts[key(f)]++
	}

	out := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, keyCount{key: k, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

// printRules writes the rule catalog to w, one row per rule, ordered by ID.
func printRules(w io.Writer, format string) error {
	ids := catalog.IDs()

	if format == "json" {
		type ruleEntry struct {
			ID          string   `json:"id"`
			Severity    string   `json:"severity"`
			Description string   `json:"description"`
			Compliance  []string `json:"compliance,omitempty"`
		}
		entries := make([]ruleEntry, 0, len(ids))
		for _, id := range ids {
			def, _ := catalog.Lookup(id)
			entries = append(entries, ruleEntry{
				ID:          id,
				Severity:    string(def.Severity),
				Description: def.Description,
				Compliance:  def.Compliance,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Fprintf(w, "%-46s  %-10s  %s\n", "RULE", "SEVERITY", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, id := range ids {
		def, _ := catalog.Lookup(id)
		fmt.Fprintf(w, "%-46s  %-10s  %s\n", id, def.Severity, output.ShortenMessage(def.Description, 60))
	}
	fmt.Fprintf(w, "\n%d rules\n", len(ids))
	return nil
}
