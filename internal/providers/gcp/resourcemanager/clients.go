package resourcemanager

import (
	"context"

	rmapi "cloud.google.com/go/resourcemanager/apiv3"
	"cloud.google.com/go/resourcemanager/apiv3/resourcemanagerpb"
	"google.golang.org/api/iterator"
)

// ---------------------------------------------------------------------------
// Narrow client interface
//
// projectsAPI flattens the SDK's SearchProjects iterator into a full result
// slice so tests can stub it without constructing SDK iterators. The real
// client is wrapped by grpcProjectsAPI.
// ---------------------------------------------------------------------------

type projectsAPI interface {
	searchProjects(ctx context.Context, query string) ([]*resourcemanagerpb.Project, error)
	close() error
}

type grpcProjectsAPI struct {
	c *rmapi.ProjectsClient
}

func (g *grpcProjectsAPI) searchProjects(ctx context.Context, query string) ([]*resourcemanagerpb.Project, error) {
	var out []*resourcemanagerpb.Project
	it := g.c.SearchProjects(ctx, &resourcemanagerpb.SearchProjectsRequest{Query: query})
	for {
		p, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (g *grpcProjectsAPI) close() error { return g.c.Close() }
