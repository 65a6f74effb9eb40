package rules

import (
	"fmt"
	"strings"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

const (
	// gkeInstancePrefix marks instances that belong to GKE node pools.
	// Their posture is governed by the cluster rules, not the compute ones.
	gkeInstancePrefix = "gke-"

	// defaultServiceAccount is the marker of the Compute Engine default
	// service account email.
	defaultServiceAccount = "-compute@developer.gserviceaccount.com"

	fullPlatformScope = "cloud-platform"
)

// EvaluateComputeInstance checks one compute instance snapshot against
// the compute rule set. An instance without a shielded configuration
// reads as all Shielded VM protections disabled; the confidential
// computing check applies only to the N2D machine family.
func EvaluateComputeInstance(project string, inst models.ComputeInstance) ([]models.Finding, error) {
	if inst.Name == "" {
		return nil, fmt.Errorf("instance snapshot in project %s has no name", project)
	}
	if strings.HasPrefix(inst.Name, gkeInstancePrefix) {
		return nil, nil
	}

	resource := fmt.Sprintf("//compute.googleapis.com/projects/%s/zones/%s/instances/%s", project, inst.Zone, inst.Name)
	var findings []models.Finding
	add := func(category string) {
		findings = append(findings, newFinding(category, resource, models.ResourceInstance, project, inst.Zone))
	}

	for _, sa := range inst.ServiceAccounts {
		for _, scope := range sa.Scopes {
			if strings.Contains(scope, fullPlatformScope) {
				add("FULL_API_ACCESS")
				break
			}
		}
	}

	for _, nic := range inst.NetworkInterfaces {
		for _, ac := range nic.AccessConfigs {
			if ac.NatIP != "" {
				add("PUBLIC_IP_ADDRESS")
				break
			}
		}
	}

	if !inst.Shielded.SecureBoot {
		add("COMPUTE_SECURE_BOOT_DISABLED")
	}
	if !inst.Shielded.IntegrityMonitoring {
		add("INTEGRITY_MONITORING_DISABLED")
	}
	if !inst.Shielded.VTPM {
		add("VTPM_DISABLED")
	}

	if strings.Contains(strings.ToLower(inst.MachineType), "n2d-") && !inst.ConfidentialComputeEnabled {
		add("CONFIDENTIAL_COMPUTING_DISABLED")
	}

	if inst.CanIPForward {
		add("IP_FORWARDING_ENABLED")
	}

	if !metadataTrue(inst.Metadata, "block-project-ssh-keys") {
		add("COMPUTE_PROJECT_WIDE_SSH_KEYS_ALLOWED")
	}

	for _, sa := range inst.ServiceAccounts {
		if strings.Contains(sa.Email, defaultServiceAccount) {
			add("DEFAULT_SERVICE_ACCOUNT_USED")
			break
		}
	}

	if metadataTrue(inst.Metadata, "serial-port-enable") {
		add("SERIAL_PORT_ENABLED")
	}

	if !inst.DeletionProtection {
		add("DELETION_PROTECTION_DISABLED")
	}

	return findings, nil
}

func metadataTrue(metadata map[string]string, key string) bool {
	return strings.EqualFold(metadata[key], "true")
}
