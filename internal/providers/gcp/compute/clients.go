package compute

import (
	"context"

	computeapi "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/api/iterator"
)

// ---------------------------------------------------------------------------
// Narrow client interfaces
//
// Each interface flattens one SDK iterator into a full result slice so tests
// can stub it without constructing SDK iterator types. The real REST clients
// are wrapped by restInstancesAPI and restFirewallsAPI.
// ---------------------------------------------------------------------------

type instancesAPI interface {
	aggregatedList(ctx context.Context, project string) ([]*computepb.Instance, error)
	close() error
}

type firewallsAPI interface {
	list(ctx context.Context, project string) ([]*computepb.Firewall, error)
	close() error
}

type restInstancesAPI struct {
	c *computeapi.InstancesClient
}

// aggregatedList drains the zone-grouped instance listing into a flat slice.
func (r *restInstancesAPI) aggregatedList(ctx context.Context, project string) ([]*computepb.Instance, error) {
	var out []*computepb.Instance
	it := r.c.AggregatedList(ctx, &computepb.AggregatedListInstancesRequest{Project: project})
	for {
		pair, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, pair.Value.GetInstances()...)
	}
	return out, nil
}

func (r *restInstancesAPI) close() error { return r.c.Close() }

type restFirewallsAPI struct {
	c *computeapi.FirewallsClient
}

func (r *restFirewallsAPI) list(ctx context.Context, project string) ([]*computepb.Firewall, error) {
	var out []*computepb.Firewall
	it := r.c.List(ctx, &computepb.ListFirewallsRequest{Project: project})
	for {
		fw, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, fw)
	}
	return out, nil
}

func (r *restFirewallsAPI) close() error { return r.c.Close() }
