package resourcemanager

import (
	"context"
	"fmt"

	rmapi "cloud.google.com/go/resourcemanager/apiv3"
	"cloud.google.com/go/resourcemanager/apiv3/resourcemanagerpb"
	"google.golang.org/api/option"
)

// DefaultProjectDiscoverer is the production implementation of
// ProjectDiscoverer, backed by the Cloud Resource Manager v3 API.
type DefaultProjectDiscoverer struct {
	api projectsAPI
}

// NewDefaultProjectDiscoverer returns a discoverer backed by the real
// Resource Manager client. Credentials come from Application Default
// Credentials unless overridden via opts.
func NewDefaultProjectDiscoverer(ctx context.Context, opts ...option.ClientOption) (*DefaultProjectDiscoverer, error) {
	c, err := rmapi.NewProjectsClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create resource manager client: %w", err)
	}
	return &DefaultProjectDiscoverer{api: &grpcProjectsAPI{c: c}}, nil
}

// Discover returns the IDs of all ACTIVE projects under the organization.
// Projects in any other lifecycle state (pending deletion, suspended) are
// skipped.
func (d *DefaultProjectDiscoverer) Discover(ctx context.Context, orgID string) ([]string, error) {
	query := fmt.Sprintf("parent:organizations/%s", orgID)
	projects, err := d.api.searchProjects(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search projects under organization %s: %w", orgID, err)
	}

	var ids []string
	for _, p := range projects {
		if p.GetState() != resourcemanagerpb.Project_ACTIVE {
			continue
		}
		ids = append(ids, p.GetProjectId())
	}
	return ids, nil
}

// Close releases the underlying client connection.
func (d *DefaultProjectDiscoverer) Close() error { return d.api.close() }
