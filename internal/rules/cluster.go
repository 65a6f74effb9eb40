package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// EvaluateGKECluster checks one GKE cluster snapshot against the
// cluster rule set. Logging and monitoring count as disabled when the
// service is empty or "none". Node pools that report no management
// block are skipped rather than assumed unmanaged.
func EvaluateGKECluster(project string, cluster models.GKECluster) ([]models.Finding, error) {
	if cluster.Name == "" {
		return nil, fmt.Errorf("cluster snapshot in project %s has no name", project)
	}

	resource := fmt.Sprintf("//container.googleapis.com/projects/%s/locations/%s/clusters/%s", project, cluster.Location, cluster.Name)
	var findings []models.Finding
	add := func(category string) {
		findings = append(findings, newFinding(category, resource, models.ResourceCluster, project, cluster.Location))
	}

	if !cluster.PrivateNodesEnabled {
		add("PRIVATE_CLUSTER_DISABLED")
	}
	if !cluster.MasterAuthorizedNetworksEnabled {
		add("MASTER_AUTHORIZED_NETWORKS_DISABLED")
	}
	if !cluster.ShieldedNodesEnabled {
		add("CLUSTER_SHIELDED_NODES_DISABLED")
	}
	if cluster.WorkloadPool == "" {
		add("WORKLOAD_IDENTITY_DISABLED")
	}
	if cluster.LegacyABACEnabled {
		add("LEGACY_AUTHORIZATION_ENABLED")
	}
	if cluster.LoggingService == "" || cluster.LoggingService == "none" {
		add("CLUSTER_LOGGING_DISABLED")
	}
	if cluster.MonitoringService == "" || cluster.MonitoringService == "none" {
		add("CLUSTER_MONITORING_DISABLED")
	}
	if !cluster.NetworkPolicyEnabled {
		add("NETWORK_POLICY_DISABLED")
	}
	if !cluster.BinaryAuthorizationEnabled {
		add("BINARY_AUTHORIZATION_DISABLED")
	}
	if cluster.KubernetesAlphaEnabled {
		add("ALPHA_CLUSTER_ENABLED")
	}

	for _, pool := range cluster.NodePools {
		if pool.Management == nil {
			continue
		}
		if !pool.Management.AutoRepair {
			add("AUTO_REPAIR_DISABLED")
		}
		if !pool.Management.AutoUpgrade {
			add("AUTO_UPGRADE_DISABLED")
		}
	}

	return findings, nil
}
