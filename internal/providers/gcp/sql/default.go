package sql

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sqladmin "google.golang.org/api/sqladmin/v1"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// DefaultInstanceCollector is the production implementation of
// InstanceCollector, backed by the SQL Admin API.
type DefaultInstanceCollector struct {
	api sqlInstancesAPI
}

// NewDefaultInstanceCollector returns a collector backed by the real SQL
// Admin service.
func NewDefaultInstanceCollector(ctx context.Context, opts ...option.ClientOption) (*DefaultInstanceCollector, error) {
	svc, err := sqladmin.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sqladmin service: %w", err)
	}
	return &DefaultInstanceCollector{api: &restSQLInstancesAPI{svc: svc}}, nil
}

// ListInstances returns snapshots of every Cloud SQL instance in the project.
func (d *DefaultInstanceCollector) ListInstances(ctx context.Context, project string) ([]models.SQLInstance, error) {
	raw, err := d.api.listInstances(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("list sql instances in project %s: %w", project, err)
	}

	out := make([]models.SQLInstance, 0, len(raw))
	for _, inst := range raw {
		out = append(out, sqlSnapshot(inst))
	}
	return out, nil
}

// sqlSnapshot converts an API instance into the internal snapshot.
// Instances without a settings block keep the zero values: no IP config,
// backups off, no flags.
func sqlSnapshot(inst *sqladmin.DatabaseInstance) models.SQLInstance {
	snap := models.SQLInstance{
		Name:            inst.Name,
		Region:          inst.Region,
		GceZone:         inst.GceZone,
		DatabaseVersion: inst.DatabaseVersion,
	}

	settings := inst.Settings
	if settings == nil {
		return snap
	}

	if ip := settings.IpConfiguration; ip != nil {
		cfg := models.SQLIPConfig{
			IPv4Enabled: ip.Ipv4Enabled,
			RequireSSL:  ip.RequireSsl,
		}
		for _, an := range ip.AuthorizedNetworks {
			cfg.AuthorizedNetworks = append(cfg.AuthorizedNetworks, an.Value)
		}
		snap.IPConfig = &cfg
	}

	if bc := settings.BackupConfiguration; bc != nil {
		snap.BackupEnabled = bc.Enabled
	}

	if len(settings.DatabaseFlags) > 0 {
		snap.DatabaseFlags = make(map[string]string, len(settings.DatabaseFlags))
		for _, f := range settings.DatabaseFlags {
			snap.DatabaseFlags[f.Name] = f.Value
		}
	}

	return snap
}
