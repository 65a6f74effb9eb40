package sql

import (
	"context"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// InstanceCollector gathers Cloud SQL instance snapshots for one project.
type InstanceCollector interface {
	ListInstances(ctx context.Context, project string) ([]models.SQLInstance, error)
}
