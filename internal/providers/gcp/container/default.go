package container

import (
	"context"
	"fmt"

	containerapi "cloud.google.com/go/container/apiv1"
	"cloud.google.com/go/container/apiv1/containerpb"
	"google.golang.org/api/option"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// DefaultClusterCollector is the production implementation of
// ClusterCollector, backed by the GKE cluster manager API.
type DefaultClusterCollector struct {
	api clustersAPI
}

// NewDefaultClusterCollector returns a collector backed by the real cluster
// manager client.
func NewDefaultClusterCollector(ctx context.Context, opts ...option.ClientOption) (*DefaultClusterCollector, error) {
	c, err := containerapi.NewClusterManagerClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create cluster manager client: %w", err)
	}
	return &DefaultClusterCollector{api: &grpcClustersAPI{c: c}}, nil
}

// ListClusters returns snapshots of every cluster in the project. The
// wildcard location "-" covers zonal and regional clusters in one call.
func (d *DefaultClusterCollector) ListClusters(ctx context.Context, project string) ([]models.GKECluster, error) {
	parent := fmt.Sprintf("projects/%s/locations/-", project)
	raw, err := d.api.listClusters(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("list clusters in project %s: %w", project, err)
	}

	out := make([]models.GKECluster, 0, len(raw))
	for _, c := range raw {
		out = append(out, clusterSnapshot(c))
	}
	return out, nil
}

// Close releases the underlying client connection.
func (d *DefaultClusterCollector) Close() error { return d.api.close() }

// clusterSnapshot converts an API cluster into the internal snapshot.
// Absent config blocks read as disabled through the generated getters.
func clusterSnapshot(c *containerpb.Cluster) models.GKECluster {
	snap := models.GKECluster{
		Name:                            c.GetName(),
		Location:                        c.GetLocation(),
		PrivateNodesEnabled:             c.GetPrivateClusterConfig().GetEnablePrivateNodes(),
		MasterAuthorizedNetworksEnabled: c.GetMasterAuthorizedNetworksConfig().GetEnabled(),
		ShieldedNodesEnabled:            c.GetShieldedNodes().GetEnabled(),
		WorkloadPool:                    c.GetWorkloadIdentityConfig().GetWorkloadPool(),
		LegacyABACEnabled:               c.GetLegacyAbac().GetEnabled(),
		LoggingService:                  c.GetLoggingService(),
		MonitoringService:               c.GetMonitoringService(),
		NetworkPolicyEnabled:            c.GetNetworkPolicy().GetEnabled(),
		BinaryAuthorizationEnabled:      c.GetBinaryAuthorization().GetEnabled(),
		KubernetesAlphaEnabled:          c.GetEnableKubernetesAlpha(),
	}

	for _, np := range c.GetNodePools() {
		pool := models.NodePool{Name: np.GetName()}
		if m := np.GetManagement(); m != nil {
			pool.Management = &models.NodeManagement{
				AutoRepair:  m.GetAutoRepair(),
				AutoUpgrade: m.GetAutoUpgrade(),
			}
		}
		snap.NodePools = append(snap.NodePools, pool)
	}

	return snap
}
