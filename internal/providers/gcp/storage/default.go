package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/iam"
	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// DefaultBucketCollector is the production implementation of
// BucketCollector, backed by the Cloud Storage API.
type DefaultBucketCollector struct {
	api    bucketsAPI
	logger *zap.Logger
}

// NewDefaultBucketCollector returns a collector backed by the real storage
// client. A nil logger is replaced with a no-op logger.
func NewDefaultBucketCollector(ctx context.Context, logger *zap.Logger, opts ...option.ClientOption) (*DefaultBucketCollector, error) {
	c, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBucketCollector{api: &gcsBucketsAPI{c: c}, logger: logger}, nil
}

// ListBuckets returns snapshots of every bucket in the project. The IAM
// policy of each bucket is fetched separately; a bucket whose policy read
// fails is degraded to an empty member list and logged, the rest of the
// listing proceeds.
func (d *DefaultBucketCollector) ListBuckets(ctx context.Context, project string) ([]models.StorageBucket, error) {
	attrs, err := d.api.listBuckets(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("list buckets in project %s: %w", project, err)
	}

	out := make([]models.StorageBucket, 0, len(attrs))
	for _, a := range attrs {
		var members []string
		policy, err := d.api.bucketPolicy(ctx, a.Name)
		if err != nil {
			d.logger.Warn("bucket IAM policy read failed",
				zap.String("project", project),
				zap.String("bucket", a.Name),
				zap.Error(err))
		} else {
			members = policyMembers(policy)
		}
		out = append(out, bucketSnapshot(a, members))
	}
	return out, nil
}

// Close releases the underlying client connection.
func (d *DefaultBucketCollector) Close() error { return d.api.close() }

// policyMembers flattens every member of every role binding.
func policyMembers(p *iam.Policy) []string {
	var members []string
	for _, role := range p.Roles() {
		members = append(members, p.Members(role)...)
	}
	return members
}

// bucketSnapshot converts bucket attrs plus the flattened IAM member list
// into the internal snapshot.
func bucketSnapshot(attrs *gcs.BucketAttrs, members []string) models.StorageBucket {
	b := models.StorageBucket{
		Name:                     attrs.Name,
		Location:                 attrs.Location,
		IAMMembers:               members,
		UniformBucketLevelAccess: attrs.UniformBucketLevelAccess.Enabled,
		LoggingEnabled:           attrs.Logging != nil,
		VersioningEnabled:        attrs.VersioningEnabled,
		PublicAccessPrevention:   attrs.PublicAccessPrevention.String(),
	}
	if rp := attrs.RetentionPolicy; rp != nil {
		b.HasRetentionPolicy = true
		b.RetentionPolicyLocked = rp.IsLocked
	}
	return b
}
