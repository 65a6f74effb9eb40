package storage

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/iam"
	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
)

type fakeBucketsAPI struct {
	attrs      []*gcs.BucketAttrs
	listErr    error
	policies   map[string]*iam.Policy
	policyErrs map[string]error
}

func (f *fakeBucketsAPI) listBuckets(context.Context, string) ([]*gcs.BucketAttrs, error) {
	return f.attrs, f.listErr
}

func (f *fakeBucketsAPI) bucketPolicy(_ context.Context, bucket string) (*iam.Policy, error) {
	if err := f.policyErrs[bucket]; err != nil {
		return nil, err
	}
	return f.policies[bucket], nil
}

func (f *fakeBucketsAPI) close() error { return nil }

func publicPolicy() *iam.Policy {
	p := &iam.Policy{}
	p.Add("allUsers", iam.RoleName("roles/storage.objectViewer"))
	p.Add("user:dev@example.com", iam.RoleName("roles/storage.admin"))
	return p
}

func TestListBuckets_FlattensPolicyMembers(t *testing.T) {
	api := &fakeBucketsAPI{
		attrs:    []*gcs.BucketAttrs{{Name: "assets"}},
		policies: map[string]*iam.Policy{"assets": publicPolicy()},
	}
	c := &DefaultBucketCollector{api: api, logger: zap.NewNop()}

	got, err := c.ListBuckets(context.Background(), "prod-app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 bucket, got %d", len(got))
	}
	if len(got[0].IAMMembers) != 2 {
		t.Fatalf("want 2 members, got %v", got[0].IAMMembers)
	}
}

func TestListBuckets_PolicyFailureDegradesOneBucket(t *testing.T) {
	// The bucket whose policy read fails keeps an empty member list; the
	// other bucket is unaffected and the listing succeeds.
	api := &fakeBucketsAPI{
		attrs: []*gcs.BucketAttrs{{Name: "locked-down"}, {Name: "assets"}},
		policies: map[string]*iam.Policy{
			"assets": publicPolicy(),
		},
		policyErrs: map[string]error{
			"locked-down": errors.New("permission denied"),
		},
	}
	c := &DefaultBucketCollector{api: api, logger: zap.NewNop()}

	got, err := c.ListBuckets(context.Background(), "prod-app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 buckets, got %d", len(got))
	}
	if len(got[0].IAMMembers) != 0 {
		t.Errorf("degraded bucket must carry no members, got %v", got[0].IAMMembers)
	}
	if len(got[1].IAMMembers) != 2 {
		t.Errorf("healthy bucket members: got %v", got[1].IAMMembers)
	}
}

func TestListBuckets_ListFailureIsFatal(t *testing.T) {
	api := &fakeBucketsAPI{listErr: errors.New("boom")}
	c := &DefaultBucketCollector{api: api, logger: zap.NewNop()}

	if _, err := c.ListBuckets(context.Background(), "prod-app"); err == nil {
		t.Fatal("expected error from failed listing")
	}
}

func TestBucketSnapshot_FullMapping(t *testing.T) {
	attrs := &gcs.BucketAttrs{
		Name:                     "assets",
		Location:                 "US-CENTRAL1",
		UniformBucketLevelAccess: gcs.UniformBucketLevelAccess{Enabled: true},
		Logging:                  &gcs.BucketLogging{LogBucket: "audit-logs"},
		VersioningEnabled:        true,
		PublicAccessPrevention:   gcs.PublicAccessPreventionEnforced,
		RetentionPolicy:          &gcs.RetentionPolicy{IsLocked: false},
	}

	snap := bucketSnapshot(attrs, []string{"user:dev@example.com"})

	if snap.Name != "assets" || snap.Location != "US-CENTRAL1" {
		t.Errorf("identity fields: %+v", snap)
	}
	if !snap.UniformBucketLevelAccess || !snap.LoggingEnabled || !snap.VersioningEnabled {
		t.Error("hardening flags not carried over")
	}
	if snap.PublicAccessPrevention != "enforced" {
		t.Errorf("public access prevention: got %q; want enforced", snap.PublicAccessPrevention)
	}
	if !snap.HasRetentionPolicy || snap.RetentionPolicyLocked {
		t.Errorf("retention mapping: has=%v locked=%v", snap.HasRetentionPolicy, snap.RetentionPolicyLocked)
	}
	if len(snap.IAMMembers) != 1 {
		t.Errorf("members: %v", snap.IAMMembers)
	}
}

func TestBucketSnapshot_Defaults(t *testing.T) {
	snap := bucketSnapshot(&gcs.BucketAttrs{Name: "bare"}, nil)

	if snap.LoggingEnabled {
		t.Error("nil logging block must read as disabled")
	}
	if snap.HasRetentionPolicy || snap.RetentionPolicyLocked {
		t.Error("nil retention policy must read as absent")
	}
	if snap.PublicAccessPrevention == "enforced" {
		t.Errorf("zero-value prevention must not read as enforced, got %q", snap.PublicAccessPrevention)
	}
}

func TestPolicyMembers_EmptyPolicy(t *testing.T) {
	if got := policyMembers(&iam.Policy{}); len(got) != 0 {
		t.Errorf("empty policy must yield no members, got %v", got)
	}
}
