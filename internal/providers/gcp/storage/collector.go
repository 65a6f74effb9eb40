package storage

import (
	"context"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// BucketCollector gathers storage bucket snapshots for one project,
// including the flattened IAM member list of each bucket.
type BucketCollector interface {
	ListBuckets(ctx context.Context, project string) ([]models.StorageBucket, error)
}
