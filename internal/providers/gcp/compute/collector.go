package compute

import (
	"context"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// InstanceCollector gathers compute instance snapshots for one project.
// Implementations convert raw API resources into internal models and must
// not apply security rules.
type InstanceCollector interface {
	// ListInstances returns every instance in the project across all zones.
	ListInstances(ctx context.Context, project string) ([]models.ComputeInstance, error)
}

// FirewallCollector gathers VPC firewall rule snapshots for one project.
type FirewallCollector interface {
	ListFirewalls(ctx context.Context, project string) ([]models.FirewallRule, error)
}
