package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/catalog"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/policy"
)

// DoctorResult is the structured output of sentinel doctor. It can be
// serialised to JSON via --format=json or rendered as a human-readable table
// (default).
type DoctorResult struct {
	GCP struct {
		CredentialsOK bool   `json:"credentials_ok"`
		Source        string `json:"source,omitempty"`
		ProjectID     string `json:"project_id,omitempty"`
		Error         string `json:"error,omitempty"`
	} `json:"gcp"`

	Policy struct {
		Path     string   `json:"path"`
		Present  bool     `json:"present"`
		Valid    bool     `json:"valid"`
		Errors   []string `json:"errors,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	} `json:"policy"`

	Catalog struct {
		Rules int `json:"rules"`
	} `json:"catalog"`

	OverallHealthy bool `json:"overall_healthy"`
}

// credentialProbe reports how Application Default Credentials resolve in the
// current environment: the project bound to the credentials (may be empty)
// and where they came from.
type credentialProbe func(ctx context.Context) (projectID, source string, err error)

// adcProbe resolves real Application Default Credentials with the read-only
// scope the scanner needs.
func adcProbe(ctx context.Context) (string, string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform.read-only")
	if err != nil {
		return "", "", err
	}
	source := "application default"
	if path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		source = path
	}
	return creds.ProjectID, source, nil
}

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "doctor",
		Short:         "Run environment diagnostics",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			policyPath, _ := cmd.Flags().GetString("policy")
			result, err := runDoctor(context.Background(), adcProbe, cmd.OutOrStdout(), format, policyPath)
			if err != nil {
				// Rendering failure. Let Cobra/main handle it.
				return err
			}
			if !result.OverallHealthy {
				// Exit directly so no error text reaches main.go's
				// fmt.Fprintln(os.Stderr, err) path.
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().String("format", "table", `Output format: "table" or "json"`)
	cmd.Flags().String("policy", "sentinel.yaml", "Path of the scan policy file to validate")
	return cmd
}

// runDoctor collects all diagnostic results, renders them to w in the
// requested format, and returns the result.
// The returned error covers only rendering failures (e.g. JSON encode error).
// Callers must inspect result.OverallHealthy to determine whether the
// environment is healthy; runDoctor itself never returns an error for an
// unhealthy result so that no error text leaks to callers (such as main).
func runDoctor(ctx context.Context, probe credentialProbe, w io.Writer, format, policyPath string) (DoctorResult, error) {
	result := collectDoctorResult(ctx, probe, policyPath)

	switch format {
	case "json":
		if err := json.NewEncoder(w).Encode(result); err != nil {
			return result, fmt.Errorf("encode doctor result: %w", err)
		}
	default:
		renderDoctorTable(result, w)
	}

	return result, nil
}

// collectDoctorResult runs all environment checks and populates a DoctorResult.
// It performs no rendering; callers decide how to present the result.
func collectDoctorResult(ctx context.Context, probe credentialProbe, policyPath string) DoctorResult {
	var result DoctorResult

	// GCP: Application Default Credentials resolution.
	projectID, source, err := probe(ctx)
	if err != nil {
		result.GCP.Error = err.Error()
	} else {
		result.GCP.CredentialsOK = true
		result.GCP.Source = source
		result.GCP.ProjectID = projectID
	}

	// Policy: stat -> load -> validate (file is optional).
	result.Policy.Path = policyPath
	_, statErr := os.Stat(policyPath)
	if statErr == nil {
		result.Policy.Present = true
		cfg, loadErr := policy.LoadPolicy(policyPath)
		if loadErr != nil {
			result.Policy.Errors = []string{loadErr.Error()}
		} else {
			errs, warnings := policy.Validate(cfg, catalog.IDs())
			result.Policy.Warnings = warnings
			if len(errs) == 0 {
				result.Policy.Valid = true
			} else {
				for _, e := range errs {
					result.Policy.Errors = append(result.Policy.Errors, e.Error())
				}
			}
		}
	} else if !os.IsNotExist(statErr) {
		// A stat failure other than "not found" counts as present but unreadable.
		result.Policy.Present = true
		result.Policy.Errors = []string{statErr.Error()}
	}

	// Catalog: the embedded rule catalog must be non-empty.
	result.Catalog.Rules = len(catalog.IDs())

	result.OverallHealthy = result.GCP.CredentialsOK &&
		result.Catalog.Rules > 0 &&
		(!result.Policy.Present || result.Policy.Valid)

	return result
}

// renderDoctorTable writes the human-readable diagnostic output from result to w.
func renderDoctorTable(result DoctorResult, w io.Writer) {
	fmt.Fprintln(w, "Environment Diagnostics")

	fmt.Fprintln(w, "\nGCP:")
	if !result.GCP.CredentialsOK {
		doctorPrint(w, "Credentials", "FAIL", result.GCP.Error)
	} else {
		doctorPrint(w, "Credentials", "OK", result.GCP.Source)
		if result.GCP.ProjectID != "" {
			doctorPrint(w, "Default Project", "OK", result.GCP.ProjectID)
		} else {
			doctorPrint(w, "Default Project", "none", "credentials carry no project")
		}
	}

	fmt.Fprintln(w, "\nPolicy:")
	if !result.Policy.Present {
		doctorPrint(w, result.Policy.Path+" present", "Not found (optional)", "")
	} else {
		doctorPrint(w, result.Policy.Path+" present", "YES", "")
		if result.Policy.Valid {
			doctorPrint(w, "Policy valid", "OK", "")
		} else {
			for _, e := range result.Policy.Errors {
				doctorPrint(w, "Policy valid", "FAIL", e)
			}
		}
		for _, warn := range result.Policy.Warnings {
			doctorPrint(w, "Policy warning", "WARN", warn)
		}
	}

	fmt.Fprintln(w, "\nRule Catalog:")
	if result.Catalog.Rules > 0 {
		doctorPrint(w, "Rules loaded", "OK", fmt.Sprintf("%d rules", result.Catalog.Rules))
	} else {
		doctorPrint(w, "Rules loaded", "FAIL", "catalog is empty")
	}
}

// doctorPrint writes a single diagnostic check line to w.
// When detail is non-empty it is appended in parentheses.
func doctorPrint(w io.Writer, label, status, detail string) {
	if detail != "" {
		fmt.Fprintf(w, "  %s: %s (%s)\n", label, status, detail)
	} else {
		fmt.Fprintf(w, "  %s: %s\n", label, status)
	}
}
