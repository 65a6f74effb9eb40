package resourcemanager

import "context"

// ProjectDiscoverer resolves the set of project IDs to scan. Implementations
// must return only projects the caller is allowed to see; a missing
// permission surfaces as an error, not an empty list.
type ProjectDiscoverer interface {
	// Discover returns the IDs of all active projects under the given
	// organization, in the order the API yields them.
	Discover(ctx context.Context, orgID string) ([]string, error)
}
