package storage

import (
	"context"

	"cloud.google.com/go/iam"
	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// bucketsAPI is the narrow slice of the storage client used by this
// package: bucket listing plus per-bucket IAM policy reads. Tests stub it
// with canned attrs and policies.
type bucketsAPI interface {
	listBuckets(ctx context.Context, project string) ([]*gcs.BucketAttrs, error)
	bucketPolicy(ctx context.Context, bucket string) (*iam.Policy, error)
	close() error
}

type gcsBucketsAPI struct {
	c *gcs.Client
}

func (g *gcsBucketsAPI) listBuckets(ctx context.Context, project string) ([]*gcs.BucketAttrs, error) {
	var out []*gcs.BucketAttrs
	it := g.c.Buckets(ctx, project)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, attrs)
	}
	return out, nil
}

func (g *gcsBucketsAPI) bucketPolicy(ctx context.Context, bucket string) (*iam.Policy, error) {
	return g.c.Bucket(bucket).IAM().Policy(ctx)
}

func (g *gcsBucketsAPI) close() error { return g.c.Close() }
