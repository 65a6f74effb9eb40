package sql

import (
	"context"

	sqladmin "google.golang.org/api/sqladmin/v1"
)

// sqlInstancesAPI is the narrow slice of the SQL Admin service used by this
// package, flattened to a full result slice for stubbing in tests.
type sqlInstancesAPI interface {
	listInstances(ctx context.Context, project string) ([]*sqladmin.DatabaseInstance, error)
}

type restSQLInstancesAPI struct {
	svc *sqladmin.Service
}

func (r *restSQLInstancesAPI) listInstances(ctx context.Context, project string) ([]*sqladmin.DatabaseInstance, error) {
	var out []*sqladmin.DatabaseInstance
	err := r.svc.Instances.List(project).Pages(ctx, func(page *sqladmin.InstancesListResponse) error {
		out = append(out, page.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
