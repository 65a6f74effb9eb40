package container

import (
	"context"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// ClusterCollector gathers GKE cluster snapshots for one project.
type ClusterCollector interface {
	// ListClusters returns every cluster in the project across all
	// locations, zonal and regional alike.
	ListClusters(ctx context.Context, project string) ([]models.GKECluster, error)
}
