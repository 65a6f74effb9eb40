package container

import (
	"context"

	containerapi "cloud.google.com/go/container/apiv1"
	"cloud.google.com/go/container/apiv1/containerpb"
)

// clustersAPI is the narrow slice of the cluster manager client used by
// this package. Tests stub it with canned clusters.
type clustersAPI interface {
	listClusters(ctx context.Context, parent string) ([]*containerpb.Cluster, error)
	close() error
}

type grpcClustersAPI struct {
	c *containerapi.ClusterManagerClient
}

func (g *grpcClustersAPI) listClusters(ctx context.Context, parent string) ([]*containerpb.Cluster, error) {
	resp, err := g.c.ListClusters(ctx, &containerpb.ListClustersRequest{Parent: parent})
	if err != nil {
		return nil, err
	}
	return resp.GetClusters(), nil
}

func (g *grpcClustersAPI) close() error { return g.c.Close() }
