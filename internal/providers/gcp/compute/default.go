package compute

import (
	"context"
	"fmt"

	computeapi "cloud.google.com/go/compute/apiv1"
	"google.golang.org/api/option"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// DefaultInstanceCollector is the production implementation of
// InstanceCollector, backed by the Compute Engine REST API.
type DefaultInstanceCollector struct {
	api instancesAPI
}

// NewDefaultInstanceCollector returns a collector backed by the real
// Compute Engine client.
func NewDefaultInstanceCollector(ctx context.Context, opts ...option.ClientOption) (*DefaultInstanceCollector, error) {
	c, err := computeapi.NewInstancesRESTClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create instances client: %w", err)
	}
	return &DefaultInstanceCollector{api: &restInstancesAPI{c: c}}, nil
}

// ListInstances returns snapshots of every instance in the project, across
// all zones.
func (d *DefaultInstanceCollector) ListInstances(ctx context.Context, project string) ([]models.ComputeInstance, error) {
	raw, err := d.api.aggregatedList(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("list instances in project %s: %w", project, err)
	}

	out := make([]models.ComputeInstance, 0, len(raw))
	for _, inst := range raw {
		out = append(out, instanceSnapshot(inst))
	}
	return out, nil
}

// Close releases the underlying client connection.
func (d *DefaultInstanceCollector) Close() error { return d.api.close() }

// DefaultFirewallCollector is the production implementation of
// FirewallCollector.
type DefaultFirewallCollector struct {
	api firewallsAPI
}

// NewDefaultFirewallCollector returns a collector backed by the real
// Compute Engine client.
func NewDefaultFirewallCollector(ctx context.Context, opts ...option.ClientOption) (*DefaultFirewallCollector, error) {
	c, err := computeapi.NewFirewallsRESTClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firewalls client: %w", err)
	}
	return &DefaultFirewallCollector{api: &restFirewallsAPI{c: c}}, nil
}

// ListFirewalls returns snapshots of every VPC firewall rule in the project.
func (d *DefaultFirewallCollector) ListFirewalls(ctx context.Context, project string) ([]models.FirewallRule, error) {
	raw, err := d.api.list(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("list firewalls in project %s: %w", project, err)
	}

	out := make([]models.FirewallRule, 0, len(raw))
	for _, fw := range raw {
		out = append(out, firewallSnapshot(fw))
	}
	return out, nil
}

// Close releases the underlying client connection.
func (d *DefaultFirewallCollector) Close() error { return d.api.close() }
